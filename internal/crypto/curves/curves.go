// Package curves provides the elliptic-curve groups the key-agreement
// protocol can run on, behind the ecdh.Group interface.
package curves

import (
	"fmt"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

var registry = map[ecdh.CurveID]ecdh.Group{}

func register(g ecdh.Group) ecdh.Group {
	registry[g.ID()] = g
	return g
}

var (
	secp256k1Group = register(newSecp256k1())
	p256Group      = register(newNIST("secp256r1", ecdh.Secp256r1, nistP256))
	p384Group      = register(newNIST("secp384r1", ecdh.Secp384r1, nistP384))
	p521Group      = register(newNIST("secp521r1", ecdh.Secp521r1, nistP521))
	x25519Group    = register(newX25519())
	x448Group      = register(newX448())
)

// ByID resolves a named-curve identifier received on the wire.
func ByID(id ecdh.CurveID) (ecdh.Group, error) {
	g, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ecdh.ErrUnknownCurve, id)
	}
	return g, nil
}

// Secp256k1 returns the secp256k1 group.
func Secp256k1() ecdh.Group { return secp256k1Group }

// P256 returns the NIST P-256 (secp256r1) group.
func P256() ecdh.Group { return p256Group }

// P384 returns the NIST P-384 (secp384r1) group.
func P384() ecdh.Group { return p384Group }

// P521 returns the NIST P-521 (secp521r1) group.
func P521() ecdh.Group { return p521Group }

// Curve25519 returns the X25519 group.
func Curve25519() ecdh.Group { return x25519Group }

// Curve448 returns the X448 group.
func Curve448() ecdh.Group { return x448Group }

// All returns every registered group, mainly for exercising them in tests.
func All() []ecdh.Group {
	return []ecdh.Group{
		secp256k1Group, p256Group, p384Group, p521Group,
		x25519Group, x448Group,
	}
}

package curves

import (
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/dh/x448"
	"golang.org/x/crypto/curve25519"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// Montgomery groups expose only the u-coordinate: points carry a nil Y,
// the point format flag is ignored, and the wire encoding is the raw
// little-endian u of RFC 7748.

type x25519Grp struct {
	order *big.Int
}

func newX25519() *x25519Grp {
	// l = 2^252 + 27742317777372353535851937790883648493
	order, _ := new(big.Int).SetString(
		"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return &x25519Grp{order: order}
}

func (g *x25519Grp) Name() string     { return "x25519" }
func (g *x25519Grp) ID() ecdh.CurveID { return ecdh.X25519 }
func (g *x25519Grp) Order() *big.Int  { return g.order }
func (g *x25519Grp) FieldBytes() int  { return 32 }

func (g *x25519Grp) ScalarBaseMult(k *big.Int) (*ecdh.Point, error) {
	// Fixed-base multiplication runs on the birationally equivalent
	// edwards curve; SetBytesWithClamping applies the same clamping as
	// the X25519 function, so both paths agree on the effective scalar.
	s, err := edwards25519.NewScalar().SetBytesWithClamping(littleEndian(k, 32))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecdh.ErrArithmetic, err)
	}
	u := new(edwards25519.Point).ScalarBaseMult(s).BytesMontgomery()
	return montgomeryPoint(u), nil
}

func (g *x25519Grp) ScalarMult(p *ecdh.Point, k *big.Int) (*ecdh.Point, error) {
	if p.IsZero() {
		return nil, ecdh.ErrArithmetic
	}
	u, err := curve25519.X25519(littleEndian(k, 32), littleEndian(p.X, 32))
	if err != nil {
		// The library reports a low-order input as an error; that is
		// the all-zero (degenerate) product.
		return &ecdh.Point{}, nil
	}
	return montgomeryPoint(u), nil
}

func (g *x25519Grp) IsOnCurve(p *ecdh.Point) bool {
	return !p.IsZero() && p.Y == nil && p.X.Sign() != 0 && p.X.BitLen() <= 255
}

func (g *x25519Grp) Encode(p *ecdh.Point, _ ecdh.PointFormat) ([]byte, error) {
	if p.IsZero() {
		return nil, ecdh.ErrArithmetic
	}
	return littleEndian(p.X, 32), nil
}

func (g *x25519Grp) Decode(b []byte) (*ecdh.Point, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: x25519 point is %d bytes, want 32",
			ecdh.ErrInvalidPeerPoint, len(b))
	}
	u := make([]byte, 32)
	copy(u, b)
	u[31] &= 0x7f // RFC 7748 masks the unused high bit
	p := montgomeryPoint(u)
	if !g.IsOnCurve(p) {
		return nil, ecdh.ErrInvalidPeerPoint
	}
	return p, nil
}

type x448Grp struct {
	order *big.Int
}

func newX448() *x448Grp {
	// l = 2^446 - 13818066809895115352007386748515426880336692474882178609894547503885
	order, _ := new(big.Int).SetString(
		"181709681073901722637330951972001133588410340171829515070372549795146003961539585716195755291692375963310293709091662304773755859649779", 10)
	return &x448Grp{order: order}
}

func (g *x448Grp) Name() string     { return "x448" }
func (g *x448Grp) ID() ecdh.CurveID { return ecdh.X448 }
func (g *x448Grp) Order() *big.Int  { return g.order }
func (g *x448Grp) FieldBytes() int  { return x448.Size }

func (g *x448Grp) ScalarBaseMult(k *big.Int) (*ecdh.Point, error) {
	var sk, pk x448.Key
	copy(sk[:], littleEndian(k, x448.Size))
	x448.KeyGen(&pk, &sk)
	return montgomeryPoint(pk[:]), nil
}

func (g *x448Grp) ScalarMult(p *ecdh.Point, k *big.Int) (*ecdh.Point, error) {
	if p.IsZero() {
		return nil, ecdh.ErrArithmetic
	}
	var sk, in, out x448.Key
	copy(sk[:], littleEndian(k, x448.Size))
	copy(in[:], littleEndian(p.X, x448.Size))
	if ok := x448.Shared(&out, &sk, &in); !ok {
		return &ecdh.Point{}, nil
	}
	return montgomeryPoint(out[:]), nil
}

func (g *x448Grp) IsOnCurve(p *ecdh.Point) bool {
	return !p.IsZero() && p.Y == nil && p.X.Sign() != 0 && p.X.BitLen() <= 448
}

func (g *x448Grp) Encode(p *ecdh.Point, _ ecdh.PointFormat) ([]byte, error) {
	if p.IsZero() {
		return nil, ecdh.ErrArithmetic
	}
	return littleEndian(p.X, x448.Size), nil
}

func (g *x448Grp) Decode(b []byte) (*ecdh.Point, error) {
	if len(b) != x448.Size {
		return nil, fmt.Errorf("%w: x448 point is %d bytes, want %d",
			ecdh.ErrInvalidPeerPoint, len(b), x448.Size)
	}
	p := montgomeryPoint(b)
	if !g.IsOnCurve(p) {
		return nil, ecdh.ErrInvalidPeerPoint
	}
	return p, nil
}

// montgomeryPoint builds a point from a little-endian u-coordinate,
// mapping the all-zero u to the unset point.
func montgomeryPoint(u []byte) *ecdh.Point {
	be := make([]byte, len(u))
	for i, c := range u {
		be[len(u)-1-i] = c
	}
	x := new(big.Int).SetBytes(be)
	if x.Sign() == 0 {
		return &ecdh.Point{}
	}
	return &ecdh.Point{X: x}
}

// littleEndian serializes v as size little-endian bytes.
func littleEndian(v *big.Int, size int) []byte {
	be := make([]byte, size)
	v.FillBytes(be)
	out := make([]byte, size)
	for i, c := range be {
		out[size-1-i] = c
	}
	return out
}

package ecdh

import "math/big"

// CurveID identifies a named curve by its IANA/RFC 8422 registry value.
// The identifier travels on the wire in ServerKeyExchange parameters.
type CurveID uint16

const (
	Secp256k1 CurveID = 22
	Secp256r1 CurveID = 23
	Secp384r1 CurveID = 24
	Secp521r1 CurveID = 25
	X25519    CurveID = 29
	X448      CurveID = 30
)

// PointFormat selects the wire encoding of curve points.
type PointFormat uint8

const (
	// Uncompressed is 0x04 || X || Y with fixed-width coordinates.
	Uncompressed PointFormat = iota

	// Compressed is 0x02/0x03 || X, the type byte carrying Y's parity.
	Compressed

	// Hybrid is 0x06/0x07 || X || Y, both coordinates plus the parity bit.
	Hybrid
)

// Point is an affine curve point. Y is nil on Montgomery curves
// (X25519/X448), which only ever expose the u-coordinate.
// The zero value means "unset".
type Point struct {
	X, Y *big.Int
}

// IsZero reports whether the point is unset.
func (p *Point) IsZero() bool {
	return p == nil || p.X == nil
}

// Group is the elliptic-curve engine the key-agreement protocol runs on.
// Implementations live in internal/crypto/curves. A Group is immutable and
// safe for concurrent use; contexts borrow it read-only.
type Group interface {
	// Name returns the curve's registry name, e.g. "secp256k1".
	Name() string

	// ID returns the named-curve identifier used on the wire.
	ID() CurveID

	// Order returns the order n of the base-point subgroup.
	Order() *big.Int

	// FieldBytes returns the byte length of one field element.
	FieldBytes() int

	// ScalarBaseMult computes k*G. A degenerate product is returned as
	// the zero point, never as an error.
	ScalarBaseMult(k *big.Int) (*Point, error)

	// ScalarMult computes k*P for an arbitrary point P.
	ScalarMult(p *Point, k *big.Int) (*Point, error)

	// IsOnCurve reports whether p is a valid, non-identity point on the
	// curve. Unset points are not on the curve.
	IsOnCurve(p *Point) bool

	// Encode serializes p in the requested format. Curves with a single
	// canonical encoding ignore the format flag.
	Encode(p *Point, format PointFormat) ([]byte, error)

	// Decode parses a point produced by Encode. The decoded point is
	// checked for curve membership.
	Decode(b []byte) (*Point, error)
}

package curves

import (
	"crypto/elliptic"
	"math/big"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

var (
	nistP256 = elliptic.P256()
	nistP384 = elliptic.P384()
	nistP521 = elliptic.P521()
)

// nistGroup adapts a stdlib NIST curve (a = -3 mod p) to ecdh.Group.
type nistGroup struct {
	name  string
	id    ecdh.CurveID
	curve elliptic.Curve
	codec sec1Codec
}

func newNIST(name string, id ecdh.CurveID, curve elliptic.Curve) *nistGroup {
	params := curve.Params()
	a := new(big.Int).Sub(params.P, big.NewInt(3))
	return &nistGroup{
		name:  name,
		id:    id,
		curve: curve,
		codec: sec1Codec{
			p:    params.P,
			a:    a,
			b:    params.B,
			size: (params.BitSize + 7) / 8,
		},
	}
}

func (g *nistGroup) Name() string     { return g.name }
func (g *nistGroup) ID() ecdh.CurveID { return g.id }
func (g *nistGroup) Order() *big.Int  { return g.curve.Params().N }
func (g *nistGroup) FieldBytes() int  { return g.codec.size }

func (g *nistGroup) ScalarBaseMult(k *big.Int) (*ecdh.Point, error) {
	x, y := g.curve.ScalarBaseMult(k.Bytes())
	return affine(x, y), nil
}

func (g *nistGroup) ScalarMult(p *ecdh.Point, k *big.Int) (*ecdh.Point, error) {
	if p.IsZero() || p.Y == nil {
		return nil, ecdh.ErrArithmetic
	}
	x, y := g.curve.ScalarMult(p.X, p.Y, k.Bytes())
	return affine(x, y), nil
}

func (g *nistGroup) IsOnCurve(p *ecdh.Point) bool {
	if p.IsZero() || p.Y == nil {
		return false
	}
	if p.X.Sign() == 0 && p.Y.Sign() == 0 {
		return false
	}
	return g.curve.IsOnCurve(p.X, p.Y)
}

func (g *nistGroup) Encode(p *ecdh.Point, format ecdh.PointFormat) ([]byte, error) {
	return g.codec.encode(p, format)
}

func (g *nistGroup) Decode(b []byte) (*ecdh.Point, error) {
	p, err := g.codec.decode(b)
	if err != nil {
		return nil, err
	}
	if !g.IsOnCurve(p) {
		return nil, ecdh.ErrInvalidPeerPoint
	}
	return p, nil
}

// affine maps the stdlib's (0, 0) point-at-infinity convention to the
// unset point.
func affine(x, y *big.Int) *ecdh.Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &ecdh.Point{}
	}
	return &ecdh.Point{X: x, Y: y}
}

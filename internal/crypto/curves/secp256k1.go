package curves

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// secp256k1Grp runs on the decred implementation, which keeps scalar
// multiplication constant-time. Encoding goes through the shared SEC 1
// codec; decoding through the library's point parser.
type secp256k1Grp struct {
	codec sec1Codec
}

func newSecp256k1() *secp256k1Grp {
	params := secp256k1.S256().Params()
	return &secp256k1Grp{
		codec: sec1Codec{
			p:    params.P,
			a:    new(big.Int),
			b:    params.B,
			size: 32,
		},
	}
}

func (g *secp256k1Grp) Name() string     { return "secp256k1" }
func (g *secp256k1Grp) ID() ecdh.CurveID { return ecdh.Secp256k1 }
func (g *secp256k1Grp) Order() *big.Int  { return secp256k1.S256().N }
func (g *secp256k1Grp) FieldBytes() int  { return 32 }

func (g *secp256k1Grp) ScalarBaseMult(k *big.Int) (*ecdh.Point, error) {
	var ks secp256k1.ModNScalar
	if overflow := ks.SetByteSlice(k.Bytes()); overflow {
		return nil, ecdh.ErrArithmetic
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&ks, &r)
	return jacobianToAffine(&r), nil
}

func (g *secp256k1Grp) ScalarMult(p *ecdh.Point, k *big.Int) (*ecdh.Point, error) {
	var q secp256k1.JacobianPoint
	if err := jacobianFromAffine(p, &q); err != nil {
		return nil, err
	}
	var ks secp256k1.ModNScalar
	if overflow := ks.SetByteSlice(k.Bytes()); overflow {
		return nil, ecdh.ErrArithmetic
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&ks, &q, &r)
	return jacobianToAffine(&r), nil
}

func (g *secp256k1Grp) IsOnCurve(p *ecdh.Point) bool {
	if p.IsZero() || p.Y == nil {
		return false
	}
	if p.X.Sign() == 0 && p.Y.Sign() == 0 {
		return false
	}
	if p.X.Cmp(g.codec.p) >= 0 || p.Y.Cmp(g.codec.p) >= 0 {
		return false
	}
	return secp256k1.S256().IsOnCurve(p.X, p.Y)
}

func (g *secp256k1Grp) Encode(p *ecdh.Point, format ecdh.PointFormat) ([]byte, error) {
	return g.codec.encode(p, format)
}

func (g *secp256k1Grp) Decode(b []byte) (*ecdh.Point, error) {
	// ParsePubKey handles compressed, uncompressed and hybrid forms and
	// rejects off-curve points.
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ecdh.ErrInvalidPeerPoint
	}
	return &ecdh.Point{X: pub.X(), Y: pub.Y()}, nil
}

func jacobianFromAffine(p *ecdh.Point, out *secp256k1.JacobianPoint) error {
	if p.IsZero() || p.Y == nil {
		return ecdh.ErrArithmetic
	}
	if overflow := out.X.SetByteSlice(p.X.Bytes()); overflow {
		return ecdh.ErrArithmetic
	}
	if overflow := out.Y.SetByteSlice(p.Y.Bytes()); overflow {
		return ecdh.ErrArithmetic
	}
	out.Z.SetInt(1)
	return nil
}

func jacobianToAffine(p *secp256k1.JacobianPoint) *ecdh.Point {
	if p.Z.Normalize().IsZero() {
		return &ecdh.Point{}
	}
	p.ToAffine()
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	return &ecdh.Point{
		X: new(big.Int).SetBytes(xb[:]),
		Y: new(big.Int).SetBytes(yb[:]),
	}
}

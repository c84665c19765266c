package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// SEC 1 point type bytes.
const (
	typeCompressedEven = 0x02
	typeCompressedOdd  = 0x03
	typeUncompressed   = 0x04
	typeHybridEven     = 0x06
	typeHybridOdd      = 0x07
)

// sec1Codec encodes and decodes affine points on a short Weierstrass
// curve y^2 = x^3 + a*x + b over GF(p), with fixed-width big-endian
// coordinates of size bytes each.
type sec1Codec struct {
	p, a, b *big.Int
	size    int
}

func (c *sec1Codec) encode(pt *ecdh.Point, format ecdh.PointFormat) ([]byte, error) {
	if pt.IsZero() || pt.Y == nil {
		return nil, ecdh.ErrArithmetic
	}
	parity := byte(pt.Y.Bit(0))
	switch format {
	case ecdh.Compressed:
		out := make([]byte, 1+c.size)
		out[0] = typeCompressedEven | parity
		pt.X.FillBytes(out[1 : 1+c.size])
		return out, nil
	case ecdh.Uncompressed, ecdh.Hybrid:
		out := make([]byte, 1+2*c.size)
		out[0] = typeUncompressed
		if format == ecdh.Hybrid {
			out[0] = typeHybridEven | parity
		}
		pt.X.FillBytes(out[1 : 1+c.size])
		pt.Y.FillBytes(out[1+c.size:])
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown point format %d", ecdh.ErrArithmetic, format)
}

func (c *sec1Codec) decode(b []byte) (*ecdh.Point, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty point", ecdh.ErrInvalidPeerPoint)
	}
	switch b[0] {
	case typeCompressedEven, typeCompressedOdd:
		if len(b) != 1+c.size {
			return nil, fmt.Errorf("%w: compressed point is %d bytes, want %d",
				ecdh.ErrInvalidPeerPoint, len(b), 1+c.size)
		}
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(c.p) >= 0 {
			return nil, fmt.Errorf("%w: x out of field", ecdh.ErrInvalidPeerPoint)
		}
		y, err := c.recoverY(x, b[0]&1)
		if err != nil {
			return nil, err
		}
		return &ecdh.Point{X: x, Y: y}, nil
	case typeUncompressed, typeHybridEven, typeHybridOdd:
		if len(b) != 1+2*c.size {
			return nil, fmt.Errorf("%w: point is %d bytes, want %d",
				ecdh.ErrInvalidPeerPoint, len(b), 1+2*c.size)
		}
		x := new(big.Int).SetBytes(b[1 : 1+c.size])
		y := new(big.Int).SetBytes(b[1+c.size:])
		if x.Cmp(c.p) >= 0 || y.Cmp(c.p) >= 0 {
			return nil, fmt.Errorf("%w: coordinate out of field", ecdh.ErrInvalidPeerPoint)
		}
		if b[0] != typeUncompressed && byte(y.Bit(0)) != b[0]&1 {
			return nil, fmt.Errorf("%w: hybrid parity mismatch", ecdh.ErrInvalidPeerPoint)
		}
		return &ecdh.Point{X: x, Y: y}, nil
	}
	return nil, fmt.Errorf("%w: unknown point type 0x%02x", ecdh.ErrInvalidPeerPoint, b[0])
}

// recoverY solves the curve equation for the y with the requested parity.
func (c *sec1Codec) recoverY(x *big.Int, parity byte) (*big.Int, error) {
	// y^2 = x^3 + a*x + b mod p
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	ax := new(big.Int).Mul(c.a, x)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, c.b)
	rhs.Mod(rhs, c.p)

	y := new(big.Int).ModSqrt(rhs, c.p)
	if y == nil {
		return nil, fmt.Errorf("%w: x has no point on the curve", ecdh.ErrInvalidPeerPoint)
	}
	if byte(y.Bit(0)) != parity {
		if y.Sign() == 0 {
			return nil, fmt.Errorf("%w: no point with requested parity", ecdh.ErrInvalidPeerPoint)
		}
		y.Sub(c.p, y)
	}
	return y, nil
}

package curves

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

func TestRegistry(t *testing.T) {
	for _, g := range All() {
		got, err := ByID(g.ID())
		assert.NoError(t, err)
		assert.Equal(t, g.Name(), got.Name())
	}

	_, err := ByID(ecdh.CurveID(0x4242))
	assert.True(t, errors.Is(err, ecdh.ErrUnknownCurve))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	formats := []ecdh.PointFormat{ecdh.Uncompressed, ecdh.Compressed, ecdh.Hybrid}

	for _, g := range All() {
		q, err := g.ScalarBaseMult(big.NewInt(7))
		assert.NoError(t, err, g.Name())
		assert.True(t, g.IsOnCurve(q), g.Name())

		for _, format := range formats {
			b, err := g.Encode(q, format)
			assert.NoError(t, err, g.Name())

			p, err := g.Decode(b)
			assert.NoError(t, err, g.Name())
			assert.Zero(t, q.X.Cmp(p.X), g.Name())
			if q.Y != nil {
				assert.Zero(t, q.Y.Cmp(p.Y), g.Name())
			}
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, g := range All() {
		_, err := g.Decode(nil)
		assert.Error(t, err, g.Name())

		_, err = g.Decode([]byte{0x01, 0x02})
		assert.Error(t, err, g.Name())

		// Valid length, wrong content: flip a coordinate bit so the
		// point falls off the curve (Montgomery curves accept any u,
		// so only the Weierstrass groups apply).
		q, err := g.ScalarBaseMult(big.NewInt(9))
		assert.NoError(t, err)
		b, err := g.Encode(q, ecdh.Uncompressed)
		assert.NoError(t, err)
		if q.Y != nil {
			b[len(b)-1] ^= 0x01
			_, err = g.Decode(b)
			assert.True(t, errors.Is(err, ecdh.ErrInvalidPeerPoint), g.Name())
		}
	}
}

func TestDecodeRejectsOutOfFieldCoordinate(t *testing.T) {
	g := P256()
	b := make([]byte, 1+2*g.FieldBytes())
	b[0] = 0x04
	for i := 1; i < len(b); i++ {
		b[i] = 0xff // both coordinates >= p
	}
	_, err := g.Decode(b)
	assert.True(t, errors.Is(err, ecdh.ErrInvalidPeerPoint))
}

func TestDecodeRejectsBadTypeByte(t *testing.T) {
	g := Secp256k1()
	q, err := g.ScalarBaseMult(big.NewInt(5))
	assert.NoError(t, err)
	b, err := g.Encode(q, ecdh.Uncompressed)
	assert.NoError(t, err)

	b[0] = 0x05
	_, err = g.Decode(b)
	assert.True(t, errors.Is(err, ecdh.ErrInvalidPeerPoint))
}

func TestHybridParityMismatchRejected(t *testing.T) {
	for _, g := range []ecdh.Group{Secp256k1(), P256(), P384(), P521()} {
		q, err := g.ScalarBaseMult(big.NewInt(11))
		assert.NoError(t, err)
		b, err := g.Encode(q, ecdh.Hybrid)
		assert.NoError(t, err)

		b[0] ^= 0x01 // claim the other parity
		_, err = g.Decode(b)
		assert.True(t, errors.Is(err, ecdh.ErrInvalidPeerPoint), g.Name())
	}
}

func TestDiffieHellmanSymmetry(t *testing.T) {
	a := big.NewInt(7)
	b := big.NewInt(11)

	for _, g := range All() {
		qa, err := g.ScalarBaseMult(a)
		assert.NoError(t, err, g.Name())
		qb, err := g.ScalarBaseMult(b)
		assert.NoError(t, err, g.Name())

		za, err := g.ScalarMult(qb, a)
		assert.NoError(t, err, g.Name())
		zb, err := g.ScalarMult(qa, b)
		assert.NoError(t, err, g.Name())

		assert.False(t, za.IsZero(), g.Name())
		assert.Zero(t, za.X.Cmp(zb.X), g.Name())
	}
}

func TestInfinityNotOnCurve(t *testing.T) {
	for _, g := range All() {
		assert.False(t, g.IsOnCurve(nil), g.Name())
		assert.False(t, g.IsOnCurve(&ecdh.Point{}), g.Name())
	}
}

func TestX25519LowOrderPointDegenerates(t *testing.T) {
	g := Curve25519()
	z, err := g.ScalarMult(&ecdh.Point{X: big.NewInt(1)}, big.NewInt(7))
	assert.NoError(t, err)
	assert.True(t, z.IsZero())
}

func TestOrderScalarDegenerates(t *testing.T) {
	// n*G is the point at infinity; the group must report it as the
	// unset point rather than invent coordinates.
	for _, g := range []ecdh.Group{Secp256k1(), P256()} {
		z, err := g.ScalarBaseMult(new(big.Int).Set(g.Order()))
		if err != nil {
			continue // rejecting the out-of-range scalar outright is fine too
		}
		assert.True(t, z.IsZero(), g.Name())
	}
}

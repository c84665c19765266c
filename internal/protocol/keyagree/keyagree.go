package keyagree

import (
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-ecdh-kex/internal/crypto/secret"
	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// maxScalarAttempts bounds the reject-and-resample loop. After high-bit
// masking a single draw lands outside [1, n-1] with probability below
// 2^-31 for every registered curve, so hitting the bound means the
// random source is defective.
const maxScalarAttempts = 32

// GenerateKeyPair samples a fresh secret scalar d in [1, n-1] and
// computes Q = d*G. Any previous secret held by the context is wiped
// before being overwritten. Requires a configured group.
func (c *Context) GenerateKeyPair(rand io.Reader) error {
	if c.state < StateGroupSet || c.group == nil {
		return ecdh.ErrInvalidState
	}
	d, err := sampleScalar(c.group.Order(), rand)
	if err != nil {
		return err
	}
	q, err := c.group.ScalarBaseMult(d)
	if err != nil {
		return err
	}
	if !c.group.IsOnCurve(q) {
		secret.NewScalar(d).Wipe()
		return ecdh.ErrArithmetic
	}
	c.wipeSecrets()
	c.d = secret.NewScalar(d)
	c.q = q
	c.state = StateKeyed
	return nil
}

// ComputeShared validates the peer's public point and derives the shared
// secret z as the affine x-coordinate of d*Qp. Passing a nil peer reuses
// the point already stored by ReadServerParams/ReadPublic. Re-entry with
// a new peer point overwrites Qp and z.
func (c *Context) ComputeShared(peer *ecdh.Point) error {
	if c.state < StateKeyed || !c.d.IsSet() {
		return ecdh.ErrInvalidState
	}
	if peer == nil {
		peer = c.qp
	}
	if !c.group.IsOnCurve(peer) {
		return ecdh.ErrInvalidPeerPoint
	}
	z, err := c.group.ScalarMult(peer, c.d.BigInt())
	if err != nil {
		return err
	}
	if z.IsZero() {
		return ecdh.ErrDegenerateSecret
	}
	c.qp = peer
	c.z.Wipe()
	c.z = secret.NewScalar(z.X)
	// The y-coordinate of d*Qp is as sensitive as z itself.
	secret.NewScalar(z.Y).Wipe()
	c.state = StateAgreed
	return nil
}

// sampleScalar draws a uniform scalar in [1, n-1]: read order-sized
// random bytes, mask down to n's bit length, reject zero and values
// >= n, resample up to maxScalarAttempts times.
func sampleScalar(n *big.Int, rand io.Reader) (*big.Int, error) {
	byteLen := (n.BitLen() + 7) / 8
	excess := uint(8*byteLen - n.BitLen())
	buf := make([]byte, byteLen)
	defer func() {
		for i := range buf {
			buf[i] = 0
		}
	}()
	for i := 0; i < maxScalarAttempts; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ecdh.ErrRandomSource, err)
		}
		d := new(big.Int).SetBytes(buf)
		d.Rsh(d, excess)
		if d.Sign() != 0 && d.Cmp(n) < 0 {
			return d, nil
		}
		secret.NewScalar(d).Wipe()
	}
	return nil, ecdh.ErrScalarOutOfRange
}

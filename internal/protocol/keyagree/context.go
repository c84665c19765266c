// Package keyagree implements ephemeral ECDH key agreement: key-pair
// generation, peer validation, shared-secret derivation and the
// ServerKeyExchange-style parameter encoding. A Context carries one
// session; it owns its secret material and wipes it on Free.
package keyagree

import (
	"math/big"

	"github.com/smallyu/go-ecdh-kex/internal/crypto/secret"
	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// State tracks a context's progression. Operations called out of order
// fail with ecdh.ErrInvalidState instead of misbehaving.
type State int

const (
	// StateEmpty is a fresh or freed context: no group, no keys.
	StateEmpty State = iota

	// StateGroupSet means a group is configured and keys can be generated.
	StateGroupSet

	// StateKeyed means a key pair exists.
	StateKeyed

	// StateAgreed means a shared secret has been derived.
	StateAgreed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateGroupSet:
		return "group-set"
	case StateKeyed:
		return "keyed"
	case StateAgreed:
		return "agreed"
	}
	return "unknown"
}

// Context holds the per-session key-agreement state: the borrowed group,
// our secret scalar d, our public point Q, the peer's point Qp and the
// derived shared secret z. Not safe for concurrent use.
type Context struct {
	group  ecdh.Group
	format ecdh.PointFormat
	state  State

	d  *secret.Scalar
	q  *ecdh.Point
	qp *ecdh.Point
	z  *secret.Scalar
}

// New returns a context in the empty state.
func New() *Context {
	return &Context{format: ecdh.Uncompressed}
}

// UseGroup configures the curve group for this session. Reconfiguring a
// non-empty context wipes its secrets and restarts the lifecycle.
func (c *Context) UseGroup(g ecdh.Group) error {
	if g == nil {
		return ecdh.ErrInvalidState
	}
	c.wipeSecrets()
	c.q, c.qp = nil, nil
	c.group = g
	c.state = StateGroupSet
	return nil
}

// SetPointFormat selects the wire encoding for our public point.
func (c *Context) SetPointFormat(f ecdh.PointFormat) {
	c.format = f
}

// State returns the lifecycle state tag.
func (c *Context) State() State { return c.state }

// Group returns the configured group, nil while empty.
func (c *Context) Group() ecdh.Group { return c.group }

// PublicPoint returns our public point Q, nil before key generation.
func (c *Context) PublicPoint() *ecdh.Point { return c.q }

// PeerPoint returns the stored peer point Qp, nil until one is set.
func (c *Context) PeerPoint() *ecdh.Point { return c.qp }

// SharedSecret returns the derived secret z. The returned value shares
// the context's backing storage and becomes zero once the context is
// freed; consume it before then.
func (c *Context) SharedSecret() (*big.Int, error) {
	if c.state != StateAgreed {
		return nil, ecdh.ErrInvalidState
	}
	return c.z.BigInt(), nil
}

// SharedSecretBytes returns z left-padded to the field size, the form a
// key-derivation function consumes. The slice is a copy.
func (c *Context) SharedSecretBytes() ([]byte, error) {
	if c.state != StateAgreed {
		return nil, ecdh.ErrInvalidState
	}
	return c.z.Bytes(c.group.FieldBytes()), nil
}

// Free wipes the secret scalar and the shared secret, then drops the
// points and the borrowed group reference, in that order. Safe to call
// in any state and safe to call twice; the context is empty afterwards.
func (c *Context) Free() {
	c.wipeSecrets()
	c.q, c.qp = nil, nil
	c.group = nil
	c.state = StateEmpty
}

func (c *Context) wipeSecrets() {
	c.d.Wipe()
	c.z.Wipe()
	c.d, c.z = nil, nil
}

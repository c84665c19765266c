package keyagree

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/smallyu/go-ecdh-kex/internal/crypto/curves"
	"github.com/smallyu/go-ecdh-kex/pkg/ecdh"
)

// ECParameters wire layout (RFC 4492 §5.4):
//
//	curve_type     1 byte, always named_curve
//	named_curve    2 bytes, big-endian registry id
//	point_length   1 byte
//	point          point_length bytes, per the context's point format
const (
	curveTypeNamed = 3
	paramsOverhead = 4
)

// MaxServerParamsBytes is the largest MakeServerParams output across the
// registered curves (uncompressed P-521 point).
const MaxServerParamsBytes = paramsOverhead + 1 + 2*66

// MaxPublicBytes is the largest MakePublic output.
const MaxPublicBytes = 1 + 1 + 2*66

// MakeServerParams regenerates the key pair and writes the named curve
// plus our encoded public point into buf, returning the byte count. A
// destination too small for the whole message fails with
// ecdh.ErrBufferTooSmall and writes nothing.
func (c *Context) MakeServerParams(buf []byte, rand io.Reader) (int, error) {
	if err := c.GenerateKeyPair(rand); err != nil {
		return 0, err
	}
	pt, err := c.group.Encode(c.q, c.format)
	if err != nil {
		return 0, err
	}
	total := paramsOverhead + len(pt)
	if len(buf) < total {
		return 0, ecdh.ErrBufferTooSmall
	}
	buf[0] = curveTypeNamed
	binary.BigEndian.PutUint16(buf[1:3], uint16(c.group.ID()))
	buf[3] = byte(len(pt))
	copy(buf[paramsOverhead:total], pt)
	return total, nil
}

// ReadServerParams parses a server's key-exchange parameters, resolves
// the named curve, validates the peer point and configures the context
// onto that group with the peer point stored. Returns bytes consumed.
func (c *Context) ReadServerParams(data []byte) (int, error) {
	if len(data) < paramsOverhead {
		return 0, fmt.Errorf("%w: truncated header", ecdh.ErrBadParams)
	}
	if data[0] != curveTypeNamed {
		return 0, fmt.Errorf("%w: curve type 0x%02x", ecdh.ErrBadParams, data[0])
	}
	id := ecdh.CurveID(binary.BigEndian.Uint16(data[1:3]))
	ptLen := int(data[3])
	if len(data) < paramsOverhead+ptLen {
		return 0, fmt.Errorf("%w: truncated point", ecdh.ErrBadParams)
	}
	g, err := curves.ByID(id)
	if err != nil {
		return 0, err
	}
	p, err := g.Decode(data[paramsOverhead : paramsOverhead+ptLen])
	if err != nil {
		return 0, err
	}
	if err := c.UseGroup(g); err != nil {
		return 0, err
	}
	c.qp = p
	return paramsOverhead + ptLen, nil
}

// MakePublic generates our key pair and writes the length-prefixed
// public point (the ClientKeyExchange ECPoint), returning the byte
// count. Too-small destinations fail without partial writes.
func (c *Context) MakePublic(buf []byte, rand io.Reader) (int, error) {
	if err := c.GenerateKeyPair(rand); err != nil {
		return 0, err
	}
	pt, err := c.group.Encode(c.q, c.format)
	if err != nil {
		return 0, err
	}
	total := 1 + len(pt)
	if len(buf) < total {
		return 0, ecdh.ErrBufferTooSmall
	}
	buf[0] = byte(len(pt))
	copy(buf[1:total], pt)
	return total, nil
}

// ReadPublic parses a length-prefixed peer point on the context's
// configured group and stores it. Returns bytes consumed.
func (c *Context) ReadPublic(data []byte) (int, error) {
	if c.state < StateGroupSet || c.group == nil {
		return 0, ecdh.ErrInvalidState
	}
	if len(data) < 1 {
		return 0, fmt.Errorf("%w: missing length", ecdh.ErrBadParams)
	}
	ptLen := int(data[0])
	if len(data) < 1+ptLen {
		return 0, fmt.Errorf("%w: truncated point", ecdh.ErrBadParams)
	}
	p, err := c.group.Decode(data[1 : 1+ptLen])
	if err != nil {
		return 0, err
	}
	c.qp = p
	return 1 + ptLen, nil
}

// Package secret wraps sensitive big integers so that their backing
// storage can be reliably erased. The secret scalar and the derived
// shared secret of a key-agreement session both live behind this type;
// nothing else in the module holds a raw reference to them.
package secret

import "math/big"

// Scalar is a big integer classified as sensitive. Wipe overwrites the
// words it occupies; the zero value is unset and safe to wipe.
type Scalar struct {
	v *big.Int
}

// NewScalar takes ownership of v. The caller must not retain v.
func NewScalar(v *big.Int) *Scalar {
	return &Scalar{v: v}
}

// IsSet reports whether the scalar holds a value.
func (s *Scalar) IsSet() bool {
	return s != nil && s.v != nil
}

// BigInt exposes the underlying value. The returned pointer shares the
// backing storage: it becomes zero once Wipe runs.
func (s *Scalar) BigInt() *big.Int {
	if !s.IsSet() {
		return nil
	}
	return s.v
}

// Bytes returns the big-endian representation, left-padded to size.
// The returned slice is a copy; callers handling it as key material are
// responsible for discarding it.
func (s *Scalar) Bytes(size int) []byte {
	if !s.IsSet() {
		return nil
	}
	out := make([]byte, size)
	s.v.FillBytes(out)
	return out
}

// Wipe overwrites the words backing the value with zeros and resets the
// value to 0. Safe to call on an unset scalar and safe to call twice.
func (s *Scalar) Wipe() {
	if !s.IsSet() {
		return
	}
	words := s.v.Bits()
	for i := range words {
		words[i] = 0
	}
	s.v.SetInt64(0)
	s.v = nil
}

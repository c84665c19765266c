package secret

import (
	"math/big"
	"testing"
)

func TestWipeZeroesBackingWords(t *testing.T) {
	v, _ := new(big.Int).SetString("deadbeefcafebabe1234567890abcdef", 16)
	words := v.Bits()

	s := NewScalar(v)
	if !s.IsSet() {
		t.Fatal("scalar should be set")
	}
	s.Wipe()

	for i, w := range words {
		if w != 0 {
			t.Fatalf("word %d not wiped: %x", i, w)
		}
	}
	if s.IsSet() {
		t.Fatal("scalar still set after wipe")
	}
	if s.BigInt() != nil {
		t.Fatal("BigInt should be nil after wipe")
	}
}

func TestWipeIsIdempotentAndNilSafe(t *testing.T) {
	var s *Scalar
	s.Wipe() // must not panic

	s = NewScalar(big.NewInt(42))
	s.Wipe()
	s.Wipe()
}

func TestBytesPadsToSize(t *testing.T) {
	s := NewScalar(big.NewInt(0x01ff))
	b := s.Bytes(32)
	if len(b) != 32 {
		t.Fatalf("got %d bytes, want 32", len(b))
	}
	if b[30] != 0x01 || b[31] != 0xff {
		t.Fatalf("unexpected low bytes: %x", b[28:])
	}
	for i := 0; i < 30; i++ {
		if b[i] != 0 {
			t.Fatalf("padding byte %d not zero", i)
		}
	}
}

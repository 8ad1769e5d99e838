package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	const n = 32
	a, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two random strings are equal, randomness source is broken")
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 32
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected %d bytes, got %d", n, len(buf))
	}
	other := GenerateRandByteArray(n)
	same := true
	for i := range buf {
		if buf[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two random buffers are equal")
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
	WipeByteArray(nil) // must not panic
}

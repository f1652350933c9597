package flate

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("Deflate late"))
	f.Add(bytes.Repeat([]byte{0xBE}, 400))
	f.Add([]byte("                    GNU GENERAL PUBLIC LICENSE"))
	f.Add(bytes.Repeat([]byte{0x20}, 40000))

	f.Fuzz(func(t *testing.T, src []byte) {
		compressed := Deflate(src)
		got, err := decodeAll(compressed)
		if err != nil {
			t.Fatalf("decodeAll: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("round trip mismatch for %d-byte input", len(src))
		}
	})
}

// TestRandomSampling exercises the matcher against randomly generated
// inputs of up to 100000 bytes (so nearly all take the dynamic-Huffman
// path), using a for-range-N random-sampling loop.
func TestRandomSampling(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		n := rng.IntN(100000)
		src := make([]byte, n)
		// Bias toward repetition so the matcher's back-reference path
		// gets real exercise instead of emitting all literals.
		alphabet := byte(1 + rng.IntN(6))
		for i := range src {
			src[i] = byte(rng.IntN(int(alphabet)))
		}
		compressed := Deflate(src)
		got, err := decodeAll(compressed)
		if err != nil {
			t.Fatalf("n=%d: decodeAll: %v", n, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

package flate

import (
	"bytes"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, src []byte) []byte {
	t.Helper()
	compressed := Deflate(src)
	got, err := decodeAll(compressed)
	if err != nil {
		t.Fatalf("decodeAll: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(src))
	}
	return compressed
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSizes(t *testing.T) {
	sizes := []int{1, 5, 19, 20, 69, 70, 71, 1000, 32768, 32768 + 5, 65535, 65536, 70000}
	for _, n := range sizes {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i * 7 % 251)
		}
		t.Run("", func(t *testing.T) {
			roundTrip(t, src)
		})
	}
}

func TestDeterminism(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)
	a := Deflate(src)
	b := Deflate(src)
	if !bytes.Equal(a, b) {
		t.Fatal("Deflate is not deterministic across calls")
	}
}

func TestCompressesRepetitiveInput(t *testing.T) {
	src := bytes.Repeat([]byte{0xBE}, 400)
	out := Deflate(src)
	if len(out) >= len(src) {
		t.Fatalf("expected compression on a 400-byte run, got %d bytes out of %d in", len(out), len(src))
	}
	roundTrip(t, src)
}

func TestGNUGeneralPublicLicense(t *testing.T) {
	src := []byte("                    GNU GENERAL PUBLIC LICENSE")
	out := Deflate(src)
	if len(out) >= len(src) {
		t.Fatalf("expected len(out) < len(src), got %d >= %d", len(out), len(src))
	}
	roundTrip(t, src)
}

// deflateFixed compresses src as a single BTYPE=01 fixed-Huffman block,
// bypassing encode's size-based block-type selector. It exists so tests
// can pin down the fixed-Huffman path's exact output on inputs too short
// for Deflate to ever choose it on its own.
func deflateFixed(src []byte) []byte {
	e := newBlockWriter()
	sink := newFreqSink()
	m := newMatcher(src)
	m.fillSegment(sink, len(src))
	e.writeFixedBlock(sink, true)
	e.flush()
	return e.bytes()
}

// TestMarkAdlerExample checks Mark Adler's canonical fixed-Huffman
// encoding of "Deflate late" byte for byte. At 12 bytes the input is
// below Deflate's stored-block threshold, so the fixed-Huffman path is
// exercised directly via deflateFixed rather than through Deflate.
func TestMarkAdlerExample(t *testing.T) {
	src := []byte("Deflate late")
	want := []byte{0x73, 0x49, 0x4d, 0xcb, 0x49, 0x2c, 0x49, 0x55, 0x00, 0x11, 0x00}
	got := deflateFixed(src)
	if !bytes.Equal(got, want) {
		t.Fatalf("deflateFixed(%q) = % x, want % x", src, got, want)
	}

	out, err := decodeAll(got)
	if err != nil {
		t.Fatalf("decodeAll: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round trip mismatch: got %q, want %q", out, src)
	}
}

func TestStoredSmall(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	roundTrip(t, src)
}

// TestStoredLarge round-trips a 40000-byte input through Deflate and
// through writeStoredBlocks. At 40000 bytes it fits in a single
// 65535-byte stored block; TestStoredFraming covers inputs that span
// several blocks.
func TestStoredLarge(t *testing.T) {
	src := bytes.Repeat([]byte{0x20}, 40000)
	compressed := roundTrip(t, src)

	// The stored path only triggers below 20 bytes, so this scenario is
	// really exercising writeStoredBlocks directly.
	e := newBlockWriter()
	e.writeStoredBlocks(src)
	e.flush()
	out, err := decodeAll(e.bytes())
	if err != nil {
		t.Fatalf("decodeAll: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatal("stored-only round trip mismatch")
	}
	_ = compressed
}

func TestZlibAcrossWindowBoundary(t *testing.T) {
	src := append(bytes.Repeat([]byte{22}, 32768), 5, 2, 55, 11, 12)
	compressed := DeflateZlib(src)

	if len(compressed) < 6 {
		t.Fatalf("zlib stream too short: %d bytes", len(compressed))
	}
	b0, b1 := compressed[0], compressed[1]
	if (int(b0)*256+int(b1))%31 != 0 {
		t.Fatalf("zlib header %02x%02x not divisible by 31", b0, b1)
	}

	raw := compressed[2 : len(compressed)-4]
	got, err := decodeAll(raw)
	if err != nil {
		t.Fatalf("decodeAll: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("zlib-wrapped round trip mismatch")
	}

	trailer := compressed[len(compressed)-4:]
	sum := newChecksum(true)
	sum.update(src)
	want := sum.sum()
	got32 := uint32(trailer[0])<<24 | uint32(trailer[1])<<16 | uint32(trailer[2])<<8 | uint32(trailer[3])
	if got32 != want {
		t.Fatalf("adler32 trailer = %08x, want %08x", got32, want)
	}
}

func TestZlibFraming(t *testing.T) {
	src := []byte("any old input works for framing checks")
	out := DeflateZlib(src)
	if (int(out[0])*256+int(out[1]))%31 != 0 {
		t.Fatalf("zlib header not divisible by 31: %02x %02x", out[0], out[1])
	}
	if out[0] != 0x78 {
		t.Fatalf("CMF = %02x, want 0x78", out[0])
	}
}

func TestBlockBoundary(t *testing.T) {
	for _, k := range []int{0, 1, 5, 100} {
		src := make([]byte, 32768+k)
		for i := range src {
			src[i] = byte(i)
		}
		t.Run("", func(t *testing.T) {
			roundTrip(t, src)
		})
	}
}

func TestStoredFraming(t *testing.T) {
	for _, n := range []int{0, 1, 65535, 65536, 131072} {
		src := bytes.Repeat([]byte{0x42}, n)
		e := newBlockWriter()
		e.writeStoredBlocks(src)
		e.flush()
		out, err := decodeAll(e.bytes())
		if err != nil {
			t.Fatalf("n=%d: decodeAll: %v", n, err)
		}
		if !bytes.Equal(out, src) {
			t.Fatalf("n=%d: stored round trip mismatch", n)
		}
	}
}

func TestRepetitiveTextCompresses(t *testing.T) {
	src := []byte(strings.Repeat("mississippi river ", 200))
	out := Deflate(src)
	if len(out) >= len(src) {
		t.Fatalf("got %d bytes out of %d in, expected compression", len(out), len(src))
	}
	roundTrip(t, src)
}

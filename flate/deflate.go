package flate

// Deflate compresses src into a raw DEFLATE stream (RFC 1951), with no
// surrounding envelope. It is a pure function of src: the same input
// always produces the same output bytes.
func Deflate(src []byte) []byte {
	e := newBlockWriter()
	encode(e, src)
	return e.bytes()
}

// DeflateZlib compresses src into a zlib-wrapped DEFLATE stream (RFC
// 1950): a 2-byte header, the raw DEFLATE payload, and a trailing
// big-endian Adler-32 of src.
func DeflateZlib(src []byte) []byte {
	raw := Deflate(src)
	return wrapZlib(raw, src)
}

// encode picks a block-type policy by input size: tiny inputs get a
// single stored block (cheaper than paying for a Huffman header on a
// handful of bytes), small inputs a single fixed-Huffman block (still not
// worth deriving custom tables for), and everything else one or more
// dynamic-Huffman blocks, each covering maxFlateBlockTokens input bytes
// (a final match may carry it slightly past) before its tables are
// flushed and a fresh segment begins.
func encode(e *blockWriter, src []byte) {
	switch {
	case len(src) < 20:
		e.writeStoredBlocks(src)

	case len(src) < 70:
		sink := newFreqSink()
		m := newMatcher(src)
		m.fillSegment(sink, len(src))
		e.writeFixedBlock(sink, true)

	default:
		m := newMatcher(src)
		sink := newFreqSink()
		for {
			exhausted := m.fillSegment(sink, maxFlateBlockTokens)
			e.writeDynamicBlock(sink, exhausted)
			if exhausted {
				break
			}
			sink.reset()
		}
	}
	e.flush()
}

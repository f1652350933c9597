package flate

// Block type codes, transmitted as the 2-bit BTYPE field directly after
// BFINAL (RFC 1951 section 3.2.3).
const (
	btypeStored  = 0
	btypeFixed   = 1
	btypeDynamic = 2
)

// blockWriter owns the bit writer and whichever literal/length and
// distance Huffman tables are currently installed, and knows how to
// emit each of the three block shapes RFC 1951 section 3.2.3 defines.
type blockWriter struct {
	bw        *bitWriter
	litCodes  []huffmanCode
	distCodes []huffmanCode
}

func newBlockWriter() *blockWriter {
	return &blockWriter{bw: newBitWriter()}
}

func (e *blockWriter) writeStartOfBlock(btype int, isLast bool) {
	var bfinal uint32
	if isLast {
		bfinal = 1
	}
	e.bw.writeBits(bfinal, 1)
	e.bw.writeBits(uint32(btype), 2)
}

// updateHuffmanTable rebuilds the installed code tables from code
// lengths. checkKraft panics if the lengths don't form a valid code.
func (e *blockWriter) updateHuffmanTable(litLengths, distLengths []int) {
	checkKraft(litLengths)
	checkKraft(distLengths)
	e.litCodes = buildHuffmanCodes(litLengths)
	e.distCodes = buildHuffmanCodes(distLengths)
}

func (e *blockWriter) useFixedTables() {
	e.litCodes = fixedLiteralCodes
	e.distCodes = fixedDistanceCodes
}

func (e *blockWriter) writeLiteral(b byte) {
	c := e.litCodes[b]
	e.bw.writeCode(c.code, c.len)
}

func (e *blockWriter) writeMatch(length, dist int) {
	lsym, lextra, lbits := lengthSymbol(length)
	lc := e.litCodes[lsym]
	e.bw.writeCode(lc.code, lc.len)
	if lbits > 0 {
		e.bw.writeBits(uint32(lextra), uint(lbits))
	}

	dsym, dextra, dbits := distSymbol(dist)
	dc := e.distCodes[dsym]
	e.bw.writeCode(dc.code, dc.len)
	if dbits > 0 {
		e.bw.writeBits(uint32(dextra), uint(dbits))
	}
}

func (e *blockWriter) writeEndOfBlock() {
	c := e.litCodes[endBlockMarker]
	e.bw.writeCode(c.code, c.len)
}

func (e *blockWriter) writeTokens(tokens []token) {
	for _, t := range tokens {
		if t.kind == literalToken {
			e.writeLiteral(t.lit)
		} else {
			e.writeMatch(t.len, t.dist)
		}
	}
}

// writeFixedBlock emits one BTYPE=01 block from a buffered token segment,
// using RFC 1951's fixed tables rather than deriving any.
func (e *blockWriter) writeFixedBlock(sink *freqSink, isLast bool) {
	e.writeStartOfBlock(btypeFixed, isLast)
	e.useFixedTables()
	e.writeTokens(sink.tokens)
	e.writeEndOfBlock()
}

// deriveLengths turns a segment's observed frequencies into length-limited
// code lengths for both alphabets, forcing in the end-of-block marker and
// handling RFC 1951 section 3.2.7's degenerate distance-alphabet case: a
// distance alphabet with fewer than two used symbols is padded with one
// dummy entry (two when none is used) so assignLengths's general case (not its single-symbol
// special case) produces the required two-symbol, both length-1 code.
func deriveLengths(sink *freqSink) (litLengths, distLengths []int) {
	litFreq := sink.litFreq
	litFreq[endBlockMarker]++

	distFreq := sink.distFreq
	nonZero := 0
	firstNonZero := -1
	for i, f := range distFreq {
		if f > 0 {
			nonZero++
			if firstNonZero == -1 {
				firstNonZero = i
			}
		}
	}
	switch nonZero {
	case 0:
		distFreq[0] = 1
		distFreq[1] = 1
	case 1:
		dummy := 0
		if firstNonZero == 0 {
			dummy = 1
		}
		distFreq[dummy] = 1
	}

	litLengths = assignLengths(litFreq[:], 15)
	distLengths = assignLengths(distFreq[:], 15)
	return litLengths, distLengths
}

func trimTrailingZeros(lengths []int, minLen int) []int {
	end := len(lengths)
	for end > minLen && lengths[end-1] == 0 {
		end--
	}
	return lengths[:end]
}

// rleSym is one code-length-alphabet symbol produced by rleCodeLengths:
// sym is the 0..18 alphabet symbol, extra/bits the value and width of any
// extra bits that follow it (symbols 16-18 only).
type rleSym struct {
	sym, extra, bits int
}

// rleCodeLengths run-length-encodes a code length sequence using RFC
// 1951 section 3.2.7's 19-symbol code-length alphabet: symbol 16 repeats
// the previous length 3-6 times, 17 is a zero-run of 3-10, 18 a zero-run
// of 11-138. A literal length always precedes any run of 16s that
// repeats it, since 16 has no meaning at the start of a sequence.
func rleCodeLengths(lengths []int) []rleSym {
	var out []rleSym
	n := len(lengths)
	for i := 0; i < n; {
		value := lengths[i]
		j := i + 1
		for j < n && lengths[j] == value {
			j++
		}
		total := j - i

		if value == 0 {
			for total > 0 {
				switch {
				case total < 3:
					out = append(out, rleSym{0, 0, 0})
					total--
				case total <= 10:
					out = append(out, rleSym{17, total - 3, 3})
					total = 0
				default:
					take := total
					if take > 138 {
						take = 138
					}
					out = append(out, rleSym{18, take - 11, 7})
					total -= take
				}
			}
		} else {
			out = append(out, rleSym{value, 0, 0})
			total--
			for total > 0 {
				if total < 3 {
					out = append(out, rleSym{value, 0, 0})
					total--
					continue
				}
				take := total
				if take > 6 {
					take = 6
				}
				out = append(out, rleSym{16, take - 3, 2})
				total -= take
			}
		}
		i = j
	}
	return out
}

// writeDynamicHeader emits HLIT/HDIST/HCLEN and the RLE-encoded code
// length stream (RFC 1951 section 3.2.7). It does not install litLengths
// and distLengths as the active code tables; the caller does that
// separately via updateHuffmanTable, since the header must be fully
// written with the code-length alphabet's own (unrelated) Huffman code
// before the main tables come into use.
func (e *blockWriter) writeDynamicHeader(litLengths, distLengths []int) {
	ll := trimTrailingZeros(litLengths, 257)
	dd := trimTrailingZeros(distLengths, 1)

	combined := make([]int, 0, len(ll)+len(dd))
	combined = append(combined, ll...)
	combined = append(combined, dd...)
	rle := rleCodeLengths(combined)

	var clFreq [codegenCodeCount]int
	for _, r := range rle {
		clFreq[r.sym]++
	}
	clLengths := assignLengths(clFreq[:], 7)
	checkKraft(clLengths)
	clCodes := buildHuffmanCodes(clLengths)

	ordered := make([]int, codegenCodeCount)
	for i, sym := range codeOrder {
		ordered[i] = clLengths[sym]
	}
	hclenCount := codegenCodeCount
	for hclenCount > 4 && ordered[hclenCount-1] == 0 {
		hclenCount--
	}

	e.bw.writeBits(uint32(len(ll)-257), 5)
	e.bw.writeBits(uint32(len(dd)-1), 5)
	e.bw.writeBits(uint32(hclenCount-4), 4)
	for i := 0; i < hclenCount; i++ {
		e.bw.writeBits(uint32(ordered[i]), 3)
	}
	for _, r := range rle {
		c := clCodes[r.sym]
		e.bw.writeCode(c.code, c.len)
		if r.bits > 0 {
			e.bw.writeBits(uint32(r.extra), uint(r.bits))
		}
	}
}

// writeDynamicBlock derives code lengths from a segment's frequencies,
// writes the header, installs the resulting tables, and emits the
// buffered tokens: the full BTYPE=10 path of RFC 1951 section 3.2.7.
func (e *blockWriter) writeDynamicBlock(sink *freqSink, isLast bool) {
	litLengths, distLengths := deriveLengths(sink)
	e.writeStartOfBlock(btypeDynamic, isLast)
	e.writeDynamicHeader(litLengths, distLengths)
	e.updateHuffmanTable(litLengths, distLengths)
	e.writeTokens(sink.tokens)
	e.writeEndOfBlock()
}

// writeStoredBlocks emits src uncompressed (RFC 1951 section 3.2.4),
// split into chunks no larger than maxStoreBlockSize (65535 bytes) since
// LEN is a 16-bit field. Empty input still produces exactly one block (a
// zero-length chunk), so every input produces at least one BFINAL=1
// block.
func (e *blockWriter) writeStoredBlocks(src []byte) {
	if len(src) == 0 {
		e.writeStoredChunk(nil, true)
		return
	}
	for off := 0; off < len(src); {
		end := off + maxStoreBlockSize
		if end > len(src) {
			end = len(src)
		}
		e.writeStoredChunk(src[off:end], end == len(src))
		off = end
	}
}

func (e *blockWriter) writeStoredChunk(chunk []byte, isLast bool) {
	e.writeStartOfBlock(btypeStored, isLast)
	e.bw.flush()
	length := len(chunk)
	nlen := uint16(length) ^ 0xFFFF
	e.bw.writeBytes([]byte{
		byte(length), byte(length >> 8),
		byte(nlen), byte(nlen >> 8),
	})
	e.bw.writeBytes(chunk)
}

func (e *blockWriter) flush() {
	e.bw.flush()
}

func (e *blockWriter) bytes() []byte {
	return e.bw.bytes()
}

// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flate implements a from-scratch DEFLATE encoder, as described in
// RFC 1951: an LZ77 match finder over a 32 KiB sliding window feeding a
// canonical, length-limited Huffman coder. The zlib envelope (RFC 1950) is
// implemented alongside it in zlib.go.
//
// Deflate and DeflateZlib are pure functions of their input: the same bytes
// in always produce the same bytes out, across calls and across processes.
// There is no decoder in this package's exported surface — the unexported
// decodeAll in inflate.go is used only by the package's own tests, as a
// correctness oracle.
package flate

const (
	// endBlockMarker is the special literal/length symbol marking the end
	// of a block's token stream.
	endBlockMarker = 256

	// lengthCodesStart is the first length symbol (length 3 maps here).
	lengthCodesStart = 257

	// codegenCodeCount is the size of the code-length alphabet used to
	// transmit the literal/length and distance code lengths themselves.
	codegenCodeCount = 19

	maxCodeLen = 16 // one more than the longest code DEFLATE allows (15)

	// maxNumLit and maxNumDist come from RFC 1951 section 3.2.7: 286
	// literal/length symbols (two more, 286-287, are never used) and
	// 30 distance symbols (two more, 30-31, never occur in valid data).
	maxNumLit  = 286
	maxNumDist = 30
	numCodes   = 19 // codegenCodeCount, named to match the decoder's usage

	// logWindowSize, windowSize, windowMask describe the sliding window
	// (RFC 1951 section 2's 32K sliding window). A position never
	// back-references further than windowSize bytes behind the cursor.
	logWindowSize = 15
	windowSize    = 1 << logWindowSize
	windowMask    = windowSize - 1

	// baseMatchLength is the smallest LZ77 match this encoder looks for
	// (RFC 1951 section 3.2.5's MIN_MATCH). Unlike the standard library's
	// compress/flate, which raises this to 4 to enable word-at-a-time
	// match extension, this encoder works byte-at-a-time and keeps the
	// RFC's own minimum.
	baseMatchLength = 3
	maxMatchLength  = 258
	baseMatchOffset = 1
	maxMatchOffset  = windowSize

	// maxFlateBlockTokens is the segment size for dynamic blocks,
	// counted in input bytes: fillSegment stops starting new tokens once
	// this many bytes have been consumed, so a segment can run past it by
	// at most one match, and it never holds more LZ77 records than this.
	// It is the same constant and value the standard library's
	// compress/flate uses for the same reason: keep the token buffer, and
	// the Huffman tables built from it, from growing unboundedly on large
	// inputs.
	maxFlateBlockTokens = 1 << 14

	maxStoreBlockSize = 65535

	// hashBits/hashSize/hashMask size the chained hash table at HSIZE =
	// WSIZE = 32768 slots (one hash bit per window bit), rather than the
	// standard library's wider 17-bit table tuned for larger compression
	// levels.
	hashBits = logWindowSize
	hashSize = 1 << hashBits
	hashMask = hashSize - 1

	// maxChain bounds how many positions a single match search walks
	// down a hash chain before giving up on finding something longer.
	// RFC 1951 leaves this implementation-chosen; 128 favors ratio over
	// raw throughput, appropriate for an encoder that isn't chasing
	// C-library speed.
	maxChain = 128
)

package flate

import "encoding/binary"

const zlibCMF = 0x78 // CM=8 (deflate), CINFO=7 (32K window)

// zlibHeader returns the 2 header bytes RFC 1950 section 2.2 prescribes:
// CMF fixed at deflate/32K-window, FLG's FLEVEL bits recording a nominal
// "default" compression level (binary 10), FDICT always clear since this
// encoder never uses a preset dictionary, and FCHECK chosen so the
// header is divisible by 31.
func zlibHeader() [2]byte {
	const flevel = 2 << 6
	check := (zlibCMF*256 + flevel) % 31
	fcheck := 0
	if check != 0 {
		fcheck = 31 - check
	}
	return [2]byte{zlibCMF, byte(flevel | fcheck)}
}

// wrapZlib prepends the zlib header to a raw DEFLATE stream and appends
// the big-endian Adler-32 trailer computed over the original, uncompressed
// input.
func wrapZlib(raw, src []byte) []byte {
	hdr := zlibHeader()

	sum := newChecksum(true)
	sum.update(src)

	out := make([]byte, 0, 2+len(raw)+4)
	out = append(out, hdr[:]...)
	out = append(out, raw...)
	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], sum.sum())
	return append(out, trailer[:]...)
}

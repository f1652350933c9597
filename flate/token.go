package flate

// token is the LZ77 record the matcher produces: a literal byte or a
// length/distance back-reference. No polymorphic inheritance is needed
// for two fixed shapes, so this is a plain struct with a kind tag rather
// than an interface.
type tokenKind uint8

const (
	literalToken tokenKind = iota
	matchToken
)

type token struct {
	kind tokenKind
	lit  byte // valid when kind == literalToken
	len  int  // valid when kind == matchToken: match length, 3..258
	dist int  // valid when kind == matchToken: match distance, 1..32768
}

func literal(b byte) token         { return token{kind: literalToken, lit: b} }
func match(length, dist int) token { return token{kind: matchToken, len: length, dist: dist} }

// lengthCode and distCode describe one entry of RFC 1951's length and
// distance symbol tables (section 3.2.5): base is the smallest value the
// symbol represents, extraBits how many additional bits follow the
// Huffman code to select an exact value within the symbol's range.
type lengthCode struct {
	base      int
	extraBits uint8
}

// lengthTable is RFC 1951's length table: symbols 257..285 (index 0 here
// is symbol 257) cover match lengths 3..258. The irregular last entry
// (symbol 285, base 258, 0 extra bits) exists so the maximum match length
// is reachable with a single symbol, at the cost of symbol 284 covering
// one value short of a full doubling (227..257, 31 values not 32).
var lengthTable = [...]lengthCode{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distTable is RFC 1951's distance table: symbols 0..29 cover distances
// 1..32768.
var distTable = [...]lengthCode{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// lengthSymbol returns the literal/length alphabet symbol for a match
// length (3..258), plus the extra bits value and width to emit after it.
func lengthSymbol(length int) (sym int, extra, extraBits int) {
	sym = searchCode(lengthTable[:], length)
	entry := lengthTable[sym]
	return sym + lengthCodesStart, length - entry.base, int(entry.extraBits)
}

// distSymbol returns the distance alphabet symbol for a match distance
// (1..32768), plus its extra bits value and width.
func distSymbol(dist int) (sym int, extra, extraBits int) {
	sym = searchCode(distTable[:], dist)
	entry := distTable[sym]
	return sym, dist - entry.base, int(entry.extraBits)
}

// searchCode finds the highest index i such that table[i].base <= v,
// for a table sorted ascending by base — i.e. the symbol whose range
// contains v.
func searchCode(table []lengthCode, v int) int {
	lo, hi := 0, len(table)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if table[mid].base <= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// freqSink accumulates literal/length and distance symbol frequencies as
// tokens are buffered, and holds the buffered tokens themselves. Every
// accepted token is both kept for later emission and counted for
// Huffman code-length derivation.
type freqSink struct {
	tokens   []token
	litFreq  [maxNumLit + 2]int
	distFreq [maxNumDist]int
}

func newFreqSink() *freqSink {
	return &freqSink{}
}

func (s *freqSink) addLiteral(b byte) {
	s.tokens = append(s.tokens, literal(b))
	s.litFreq[b]++
}

func (s *freqSink) addMatch(length, dist int) {
	s.tokens = append(s.tokens, match(length, dist))
	lsym, _, _ := lengthSymbol(length)
	dsym, _, _ := distSymbol(dist)
	s.litFreq[lsym]++
	s.distFreq[dsym]++
}

func (s *freqSink) reset() {
	s.tokens = s.tokens[:0]
	for i := range s.litFreq {
		s.litFreq[i] = 0
	}
	for i := range s.distFreq {
		s.distFreq[i] = 0
	}
}

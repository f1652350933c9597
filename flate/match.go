package flate

// matcher is the LZ77 back-reference finder: a chained hash table over
// src, searched greedily from a logical cursor that only ever moves
// forward. head[h] holds the most recent position whose 3-byte prefix
// hashes to h; prev[p mod windowSize] chains back to the previous
// position with the same hash. NIL is represented as -1 throughout,
// since 0 is itself a legal position.
type matcher struct {
	src  []byte
	pos  int
	head [hashSize]int
	prev [windowSize]int
}

func newMatcher(src []byte) *matcher {
	m := &matcher{src: src}
	for i := range m.head {
		m.head[i] = -1
	}
	for i := range m.prev {
		m.prev[i] = -1
	}
	return m
}

func (m *matcher) hash(p int) int {
	h := uint32(m.src[p])<<10 ^ uint32(m.src[p+1])<<5 ^ uint32(m.src[p+2])
	return int(h) & hashMask
}

func (m *matcher) insert(p int) {
	h := m.hash(p)
	m.prev[p&windowMask] = m.head[h]
	m.head[h] = p
}

// matchLength extends a candidate match at q against the lookahead at p
// as far as it agrees, capped at maxMatchLength and the end of input.
func (m *matcher) matchLength(p, q int) int {
	n := len(m.src)
	limit := maxMatchLength
	if n-p < limit {
		limit = n - p
	}
	k := 0
	for k < limit && m.src[p+k] == m.src[q+k] {
		k++
	}
	return k
}

// findMatch looks for the longest back-reference available at p, walking
// the hash chain for p's 3-byte prefix up to maxChain candidates, all
// within the sliding window.
func (m *matcher) findMatch(p int) (length, dist int, ok bool) {
	n := len(m.src)
	if p+baseMatchLength > n {
		return 0, 0, false
	}
	limit := p - windowSize
	cand := m.head[m.hash(p)]
	bestLen := 0
	bestDist := 0
	for chain := 0; cand >= limit && cand >= 0 && chain < maxChain; chain++ {
		l := m.matchLength(p, cand)
		if l > bestLen {
			bestLen = l
			bestDist = p - cand
			if l >= maxMatchLength {
				break
			}
		}
		cand = m.prev[cand&windowMask]
	}
	if bestLen < baseMatchLength {
		return 0, 0, false
	}
	return bestLen, bestDist, true
}

// fillSegment scans forward from the matcher's cursor, buffering literal
// and match tokens into sink, until either chunkLimit input bytes have
// been consumed in this call or the input is exhausted. It reports
// whether the input was exhausted, telling the driver this was the
// final segment.
//
// Every visited position is hashed and inserted before the cursor moves
// past it: findMatch always searches a chain that does not yet include
// the position being searched from, then insert records it for future
// searches. A found match additionally backfills the hash chain for the
// positions it jumps over (P+1..P+L-1), so a later match search can still
// find candidates that would otherwise have been skipped entirely.
func (m *matcher) fillSegment(sink *freqSink, chunkLimit int) (exhausted bool) {
	n := len(m.src)
	start := m.pos
	for m.pos < n {
		if m.pos-start >= chunkLimit {
			return false
		}

		length, dist, ok := m.findMatch(m.pos)
		if m.pos+baseMatchLength <= n {
			m.insert(m.pos)
		}
		if ok {
			sink.addMatch(length, dist)
			end := m.pos + length
			for k := m.pos + 1; k < end; k++ {
				if k+baseMatchLength <= n {
					m.insert(k)
				}
			}
			m.pos = end
			continue
		}

		sink.addLiteral(m.src[m.pos])
		m.pos++
	}
	return true
}

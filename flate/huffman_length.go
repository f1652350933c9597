package flate

import (
	"container/heap"
	"sort"
)

// symFreq pairs a symbol with its observed frequency, used while building a
// Huffman tree from a token stream's frequency counts.
type symFreq struct {
	symbol int
	freq   int
}

// heapItem is a node waiting in the Huffman-tree minheap. seq breaks ties
// between equal-frequency nodes so that two calls on identical input
// produce byte-identical output: leaves tie-break on symbol index, internal
// (synthesized) nodes tie-break on creation order, offset above every
// possible symbol index so the two numberings never collide.
type heapItem struct {
	freq int
	seq  int
	node int
}

type huffHeap []heapItem

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// assignLengths computes a length-limited canonical Huffman code-length
// assignment from a frequency table, bounding every code to maxBits as
// RFC 1951 section 3.2.7 requires (15 bits for the literal/length and
// distance alphabets, 7 for the code-length alphabet). freq[s] is symbol
// s's occurrence count; a zero entry means the symbol gets length 0
// (absent from the code).
//
// The unconstrained lengths come from a standard minheap-driven Huffman
// tree build, the same shape as chronos-tachyon/huffman's firstPass:
// repeatedly combine the two lowest-frequency nodes into a synthetic
// parent and push it back, until one node remains. Real alphabets here are
// narrow (30 distance symbols, 19 code-length symbols) and a
// Fibonacci-weighted frequency table can drive such a tree deeper than the
// format allows (15 bits for the literal/length and distance alphabets, 7
// for the code-length alphabet); demoteOverlong then brings any such
// lengths back within maxBits.
func assignLengths(freq []int, maxBits int) []int {
	lengths := make([]int, len(freq))

	var present []symFreq
	for s, f := range freq {
		if f > 0 {
			present = append(present, symFreq{s, f})
		}
	}

	switch len(present) {
	case 0:
		return lengths
	case 1:
		// RFC 1951 has no zero-length code; a lone symbol still gets a
		// real, one-bit code (always 0, per buildHuffmanCodes).
		lengths[present[0].symbol] = 1
		return lengths
	}

	type node struct {
		left, right int // indices into nodes; -1 marks a leaf
		symbol      int // valid when left == -1
	}
	nodes := make([]node, 0, 2*len(present))
	h := &huffHeap{}
	for _, sf := range present {
		idx := len(nodes)
		nodes = append(nodes, node{left: -1, right: -1, symbol: sf.symbol})
		*h = append(*h, heapItem{freq: sf.freq, seq: sf.symbol, node: idx})
	}
	heap.Init(h)

	seq := len(freq) // above any possible leaf seq, so internal nodes never tie-collide with a leaf
	for h.Len() > 1 {
		a := heap.Pop(h).(heapItem)
		b := heap.Pop(h).(heapItem)
		idx := len(nodes)
		nodes = append(nodes, node{left: a.node, right: b.node})
		heap.Push(h, heapItem{freq: a.freq + b.freq, seq: seq, node: idx})
		seq++
	}
	root := heap.Pop(h).(heapItem).node

	type frame struct{ node, depth int }
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := nodes[top.node]
		if n.left == -1 {
			lengths[n.symbol] = top.depth
			continue
		}
		stack = append(stack, frame{n.left, top.depth + 1}, frame{n.right, top.depth + 1})
	}

	demoteOverlong(lengths, present, maxBits)
	return lengths
}

// demoteOverlong brings lengths within maxBits, preserving Kraft's
// inequality. It first clamps any length over the limit down to it (which
// can only increase the Kraft sum, since a shorter code costs more of the
// budget), then pays down whatever excess that introduced by lengthening
// the codes of the least-frequent symbols one bit at a time — the
// cheapest codes to make longer. The process always terminates: once every
// symbol sits at maxBits, the Kraft sum equals the symbol count, and every
// alphabet in this package is far smaller than 2^maxBits.
func demoteOverlong(lengths []int, present []symFreq, maxBits int) {
	for _, sf := range present {
		if lengths[sf.symbol] > maxBits {
			lengths[sf.symbol] = maxBits
		}
	}

	byFreq := append([]symFreq(nil), present...)
	sort.Slice(byFreq, func(i, j int) bool {
		if byFreq[i].freq != byFreq[j].freq {
			return byFreq[i].freq < byFreq[j].freq
		}
		return byFreq[i].symbol < byFreq[j].symbol
	})

	kraftSum := func() int {
		sum := 0
		for _, sf := range present {
			sum += 1 << uint(maxBits-lengths[sf.symbol])
		}
		return sum
	}

	budget := 1 << uint(maxBits)
	for kraftSum() > budget {
		progressed := false
		for _, sf := range byFreq {
			if lengths[sf.symbol] < maxBits {
				lengths[sf.symbol]++
				progressed = true
				break
			}
		}
		if !progressed {
			panic(InternalError("huffman length limiting failed to converge"))
		}
	}
}

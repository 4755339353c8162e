package kycmock

import "strings"

// Similarity scores how close two strings are, 0-100. Case and surrounding
// whitespace are ignored. The score is the classic Ratcliff/Obershelp
// ratio: twice the number of matched characters over the total length.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	m := newSequenceMatcher(ra, rb)
	matched := 0
	for _, block := range m.matchingBlocks() {
		matched += block.size
	}
	return float64(2*matched) / float64(len(ra)+len(rb)) * 100
}

type match struct {
	a, b, size int
}

type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newSequenceMatcher(a, b []rune) *sequenceMatcher {
	m := &sequenceMatcher{a: a, b: b, b2j: make(map[rune][]int)}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	return m
}

// findLongestMatch locates the longest block of runes matching in
// a[alo:ahi] and b[blo:bhi], preferring the leftmost in a, then in b.
func (m *sequenceMatcher) findLongestMatch(alo, ahi, blo, bhi int) match {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return match{a: besti, b: bestj, size: bestsize}
}

func (m *sequenceMatcher) matchingBlocks() []match {
	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var blocks []match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		blk := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if blk.size == 0 {
			continue
		}
		blocks = append(blocks, blk)
		if s.alo < blk.a && s.blo < blk.b {
			queue = append(queue, span{s.alo, blk.a, s.blo, blk.b})
		}
		if blk.a+blk.size < s.ahi && blk.b+blk.size < s.bhi {
			queue = append(queue, span{blk.a + blk.size, s.ahi, blk.b + blk.size, s.bhi})
		}
	}
	return blocks
}

// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "slices"

// pairKey is a canonical (unordered) key for a pair of interned item
// indices, always stored with the smaller index first.
type pairKey struct{ a, b int32 }

func newPairKey(a, b int32) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// SCM is the sparse co-occurrence pruning table: a symmetric map from
// an unordered pair of interned items to their joint co-occurrence
// support in the sequence database, computed once in the first scan
// and consulted as an anti-monotone pruning oracle during
// equivalence-class expansion.
type SCM struct {
	data map[pairKey]float64
}

func newSCM() *SCM {
	return &SCM{data: make(map[pairKey]float64)}
}

// Get returns the co-occurrence support for the unordered pair
// {a,b}, or 0 if the pair was never observed together in any
// sequence. A pair of an item with itself trivially co-occurs.
func (s *SCM) Get(a, b int32) float64 {
	if a == b {
		return 1
	}
	return s.data[newPairKey(a, b)]
}

// Len reports the number of distinct pairs recorded.
func (s *SCM) Len() int {
	return len(s.data)
}

// buildSCM computes the sparse co-occurrence table: for every
// sequence, every unordered pair of distinct items present anywhere
// in it (positions ignored, a pure set test) increments that pair's
// count; counts are then normalized by the sequence database size.
func buildSCM(seqs [][]int32, n int) *SCM {
	counts := make(map[pairKey]int)
	for _, seq := range seqs {
		present := distinctSorted(seq)
		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				counts[newPairKey(present[i], present[j])]++
			}
		}
	}
	scm := newSCM()
	if n == 0 {
		return scm
	}
	for k, c := range counts {
		scm.data[k] = float64(c) / float64(n)
	}
	return scm
}

func distinctSorted(seq []int32) []int32 {
	seen := make(map[int32]struct{}, len(seq))
	out := make([]int32, 0, len(seq))
	for _, it := range seq {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	slices.Sort(out)
	return out
}

// Postings is an item→sequence-ids index: for every interned item,
// the sorted list of sequence indices containing it anywhere. Rather
// than rescanning every sequence to test whether a candidate rule's
// items co-occur at all, the search first intersects postings lists
// to narrow the candidate sequence set, then runs the occurs() oracle
// only against that narrowed set. Narrowing via postings is always
// sound (co-occurrence is a necessary condition for occurs()) so this
// never trades correctness for speed.
type Postings struct {
	data map[int32][]int32
}

func buildPostings(seqs [][]int32) *Postings {
	data := make(map[int32][]int32)
	for sid, seq := range seqs {
		for _, it := range distinctSorted(seq) {
			list := data[it]
			if len(list) > 0 && list[len(list)-1] == int32(sid) {
				continue
			}
			data[it] = append(list, int32(sid))
		}
	}
	return &Postings{data: data}
}

// SequencesContaining returns the sorted sequence ids in which item
// occurs at least once.
func (p *Postings) SequencesContaining(item int32) []int32 {
	return p.data[item]
}

// Candidates returns the sorted sequence ids that contain every item
// given, computed by intersecting each item's postings list. An empty
// items slice returns nil (callers guard against that; Fit never
// calls Candidates with an empty combined antecedent+consequent).
func (p *Postings) Candidates(items []int32) []int32 {
	if len(items) == 0 {
		return nil
	}
	result := p.data[items[0]]
	for _, it := range items[1:] {
		if len(result) == 0 {
			return nil
		}
		result = intersectSorted(result, p.data[it])
	}
	return result
}

func intersectSorted(a, b []int32) []int32 {
	out := make([]int32, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

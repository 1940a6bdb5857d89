// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"fmt"
	"slices"
	"strings"
)

// Itemset is an unordered, duplicate-free collection of items.
// Equality and hash depend only on the element set, never on
// insertion order; the zero value is the empty set. The underlying
// slice is always kept sorted so iteration yields a canonical order
// and Key is cheap to compute.
//
// K is any Item. The equivalence-class search in erminer.go does not
// use Itemset; it works on sorted []int32 slices of interned indices,
// and shares with this type only the generic span and occurs helpers
// below, which it instantiates at int32.
type Itemset[K Item] struct {
	items []K // sorted, deduplicated
}

// NewItemset builds a canonical itemset from a (possibly unsorted,
// possibly duplicate-laden) slice of items.
func NewItemset[K Item](items ...K) Itemset[K] {
	cp := slices.Clone(items)
	slices.Sort(cp)
	cp = slices.Compact(cp)
	return Itemset[K]{items: cp}
}

// fromSorted wraps an already-sorted, already-deduplicated slice
// without copying or re-validating it. Internal callers that build
// the slice themselves (e.g. set union during expansion) use this to
// avoid a redundant sort.
func fromSorted[K Item](sorted []K) Itemset[K] {
	return Itemset[K]{items: sorted}
}

// Items returns a copy of the itemset's elements in sorted order.
func (s Itemset[K]) Items() []K {
	return slices.Clone(s.items)
}

// Len returns the number of elements.
func (s Itemset[K]) Len() int {
	return len(s.items)
}

// Contains reports whether it is a member of the set.
func (s Itemset[K]) Contains(it K) bool {
	_, ok := slices.BinarySearch(s.items, it)
	return ok
}

// Last returns the greatest element under the total order, and false
// if the set is empty.
func (s Itemset[K]) Last() (K, bool) {
	var zero K
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Equal reports whether two itemsets contain exactly the same
// elements.
func (s Itemset[K]) Equal(other Itemset[K]) bool {
	return slices.Equal(s.items, other.items)
}

// SubsetOf reports whether every item of s is a member of superset,
// as an unordered set test.
func (s Itemset[K]) SubsetOf(superset map[K]struct{}) bool {
	for _, it := range s.items {
		if _, ok := superset[it]; !ok {
			return false
		}
	}
	return true
}

// WithAppended returns a new itemset with it inserted, re-sorted. it
// must not already be a member; callers that build expansions already
// know this from the equivalence-class construction.
func (s Itemset[K]) WithAppended(it K) Itemset[K] {
	out := make([]K, 0, len(s.items)+1)
	inserted := false
	for _, existing := range s.items {
		if !inserted && it < existing {
			out = append(out, it)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, it)
	}
	return fromSorted(out)
}

// Key returns a canonical string identity for use as a map key (Go
// generic slices cannot themselves be comparable). Equal itemsets
// always produce the same key. The key joins each item's fmt.Sprint
// form with commas, so two distinct itemsets produce the same key when
// an item's textual form contains a comma.
func (s Itemset[K]) Key() string {
	var b strings.Builder
	for i, it := range s.items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(fmt.Sprint(it))
	}
	return b.String()
}

func (s Itemset[K]) String() string {
	return "{" + s.Key() + "}"
}

// itemSpan records, for one item within one sequence, the position of
// its first and last occurrence (0-indexed).
type itemSpan struct {
	first int
	last  int
}

// buildItemSpans scans a sequence once and records, per distinct
// item, its first and last occurrence position. Reused across every
// occurs() check against that sequence.
func buildItemSpans[K Item](seq []K) map[K]itemSpan {
	spans := make(map[K]itemSpan, len(seq))
	for pos, it := range seq {
		if sp, ok := spans[it]; ok {
			sp.last = pos
			spans[it] = sp
		} else {
			spans[it] = itemSpan{first: pos, last: pos}
		}
	}
	return spans
}

// Occurrences is the canonical per-itemset presence map: for every
// sequence in which all of the itemset's items appear, sid maps to
// (first, last) where first is the max over per-item first occurrence
// positions and last is the min over per-item last occurrence
// positions.
type Occurrences map[int]Span

// Span is the (first, last) position pair for one sequence.
type Span struct {
	First int
	Last  int
}

// ComputeOccurrences builds the canonical occurrence map for an
// itemset against a set of sequences, given their precomputed spans.
func ComputeOccurrences[K Item](items []K, perSeqSpans []map[K]itemSpan) Occurrences {
	occ := make(Occurrences)
	for sid, spans := range perSeqSpans {
		first, last, ok := itemsetSpan(items, spans)
		if ok {
			occ[sid] = Span{First: first, Last: last}
		}
	}
	return occ
}

func itemsetSpan[K Item](items []K, spans map[K]itemSpan) (first, last int, ok bool) {
	maxFirst := -1
	minLast := int(^uint(0) >> 1) // max int
	for _, it := range items {
		sp, present := spans[it]
		if !present {
			return 0, 0, false
		}
		if sp.first > maxFirst {
			maxFirst = sp.first
		}
		if sp.last < minLast {
			minLast = sp.last
		}
	}
	return maxFirst, minLast, true
}

// occurs reports whether rule A→C occurs in a sequence: there exists
// a split index i such that every item of A appears in s[:i] and
// every item of C appears in s[i:]. Given the sequence's precomputed
// per-item spans this reduces to a single inequality: the earliest
// point by which A is complete (the max of A's per-item first
// occurrences) must precede the latest point from which C is still
// fully ahead (the min of C's per-item last occurrences).
//
// This is the authoritative correctness path; support and confidence
// are always computed against it. See Occurrences and
// occursViaOccurrenceMap for an alternative occurrence-map-based fast
// path, kept for interoperability but not used to decide rule
// validity.
func occurs[K Item](ante, cons []K, spans map[K]itemSpan) bool {
	maxFirstA := -1
	for _, a := range ante {
		sp, ok := spans[a]
		if !ok {
			return false
		}
		if sp.first > maxFirstA {
			maxFirstA = sp.first
		}
	}
	minLastC := int(^uint(0) >> 1)
	for _, c := range cons {
		sp, ok := spans[c]
		if !ok {
			return false
		}
		if sp.last < minLastC {
			minLastC = sp.last
		}
	}
	return maxFirstA < minLastC
}

// occursViaOccurrenceMap implements the presence test "A.last <
// C.first" using the canonical (max-first, min-last) Occurrences map
// for A and for C independently. It is kept here for interoperability
// and inspection. It is not equivalent to occurs in general (it can
// disagree when an item recurs after the antecedent has already
// completed), so callers that need a correct answer use occurs; this
// function is never called from Fit, Enrich, or Predict.
func occursViaOccurrenceMap[K Item](anteOcc, consOcc Occurrences, sid int) (bool, bool) {
	a, ok := anteOcc[sid]
	if !ok {
		return false, false
	}
	c, ok := consOcc[sid]
	if !ok {
		return false, false
	}
	return a.Last < c.First, true
}

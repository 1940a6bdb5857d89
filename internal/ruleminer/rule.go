// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

// Rule is a directed antecedent→consequent pair with the invariant
// that the two itemsets are disjoint. Equality and hash
// depend only on (Antecedent, Consequent); the numeric fields are
// lazily-computed caches populated by Fit and Enrich and read-only
// thereafter, except Score which is transient and recomputed on every
// Predict call.
type Rule[T Item] struct {
	Antecedent Itemset[T]
	Consequent Itemset[T]

	// Support is the fraction of sequences in which the rule occurs.
	Support float64
	// Confidence is support * |SDB| / |sequences containing Antecedent|.
	Confidence float64
	// DeltaT is the configured percentile of elapsed time between
	// antecedent completion and consequent, across matching sequences.
	// Populated by Enrich; zero until then.
	DeltaT float64
	// DayProbability and HourProbability map a context value to
	// P(rule | context = v), normalized across the whole rule set.
	// Populated by Enrich; nil until then.
	DayProbability  map[int]float64
	HourProbability map[int]float64
	// Score is the last score computed for this rule by Predict. It is
	// not part of the rule's identity and is not populated by Fit or
	// Enrich.
	Score float64
}

// Key returns a canonical string identity for this rule, suitable as
// a map key and for the deterministic tie-break ordering used during
// selection and export (lexicographic by (antecedent, consequent)).
func (r *Rule[T]) Key() string {
	return r.Antecedent.Key() + "=>" + r.Consequent.Key()
}

// Occurs reports whether this rule occurs in seq: there exists a
// split index such that every antecedent item appears before it and
// every consequent item appears at or after it.
func (r *Rule[T]) Occurs(seq []T) bool {
	spans := buildItemSpans(seq)
	return occurs(r.Antecedent.Items(), r.Consequent.Items(), spans)
}

// less provides the deterministic lexicographic tie-break used during
// selection and export: first by antecedent key, then by consequent
// key.
func (r *Rule[T]) less(other *Rule[T]) bool {
	ak, bk := r.Antecedent.Key(), other.Antecedent.Key()
	if ak != bk {
		return ak < bk
	}
	return r.Consequent.Key() < other.Consequent.Key()
}

// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "sort"

// RulesDatabase is the set of valid rules produced by Fit (or read
// back by ImportCSV): membership, insertion, and two indexed
// equivalence-class views for inspection. Fit's own expansion keeps
// its classes in internal structures and does not use these views.
// Enrich fills in each rule's DeltaT and context maps in place, and
// Predict writes each candidate rule's transient Score field.
type RulesDatabase[T Item] struct {
	rules map[string]*Rule[T]
}

// NewRulesDatabase returns an empty rule database.
func NewRulesDatabase[T Item]() *RulesDatabase[T] {
	return &RulesDatabase[T]{rules: make(map[string]*Rule[T])}
}

// Add inserts r, keyed by its (antecedent, consequent) identity.
// Reports whether this was a new insertion (false if a rule with the
// same key was already present, in which case the existing rule is
// left untouched).
func (db *RulesDatabase[T]) Add(r *Rule[T]) bool {
	key := r.Key()
	if _, exists := db.rules[key]; exists {
		return false
	}
	db.rules[key] = r
	return true
}

// Contains reports whether a rule with the given antecedent and
// consequent already belongs to the database.
func (db *RulesDatabase[T]) Contains(antecedent, consequent Itemset[T]) bool {
	_, ok := db.rules[antecedent.Key()+"=>"+consequent.Key()]
	return ok
}

// Len returns the number of rules.
func (db *RulesDatabase[T]) Len() int {
	return len(db.rules)
}

// Rules returns every rule, sorted by the deterministic tie-break
// order (antecedent key, then consequent key) so callers that iterate
// the result get reproducible output.
func (db *RulesDatabase[T]) Rules() []*Rule[T] {
	out := make([]*Rule[T], 0, len(db.rules))
	for _, r := range db.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// LeftClasses groups rules by antecedent key, restricted to rules
// whose consequent has exactly the given cardinality.
func (db *RulesDatabase[T]) LeftClasses(consequentCard int) map[string][]*Rule[T] {
	classes := make(map[string][]*Rule[T])
	for _, r := range db.rules {
		if r.Consequent.Len() != consequentCard {
			continue
		}
		key := r.Antecedent.Key()
		classes[key] = append(classes[key], r)
	}
	return classes
}

// RightClasses groups rules by consequent key, restricted to rules
// whose antecedent has exactly the given cardinality.
func (db *RulesDatabase[T]) RightClasses(antecedentCard int) map[string][]*Rule[T] {
	classes := make(map[string][]*Rule[T])
	for _, r := range db.rules {
		if r.Antecedent.Len() != antecedentCard {
			continue
		}
		key := r.Consequent.Key()
		classes[key] = append(classes[key], r)
	}
	return classes
}

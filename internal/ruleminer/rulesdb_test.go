// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "testing"

func TestRulesDatabaseAddIsIdempotent(t *testing.T) {
	db := NewRulesDatabase[string]()
	r1 := ruleWith([]string{"a"}, []string{"b"}, 0.5, 0.5, 1)
	r2 := ruleWith([]string{"a"}, []string{"b"}, 0.9, 0.9, 2)

	if !db.Add(r1) {
		t.Fatal("Add(r1) = false, want true (first insertion)")
	}
	if db.Add(r2) {
		t.Error("Add(r2) = true, want false (same key already present)")
	}
	if db.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", db.Len())
	}
	if got, _ := ruleIn(db, []string{"a"}, []string{"b"}); got.Support != 0.5 {
		t.Errorf("stored rule Support = %v, want 0.5 (first insertion wins)", got.Support)
	}
}

func TestRulesDatabaseClasses(t *testing.T) {
	db := NewRulesDatabase[string]()
	db.Add(ruleWith([]string{"a"}, []string{"b"}, 0.5, 0.5, 1))
	db.Add(ruleWith([]string{"a"}, []string{"c"}, 0.5, 0.5, 1))
	db.Add(ruleWith([]string{"a", "x"}, []string{"b", "c"}, 0.5, 0.5, 1))

	left := db.LeftClasses(1)
	key := NewItemset("a").Key()
	if len(left[key]) != 2 {
		t.Errorf("LeftClasses(1)[%s] has %d members, want 2", key, len(left[key]))
	}

	right := db.RightClasses(1)
	rkey := NewItemset("b").Key()
	if len(right[rkey]) != 1 {
		t.Errorf("RightClasses(1)[%s] has %d members, want 1", rkey, len(right[rkey]))
	}
}

func TestRulesDatabaseRulesSortedDeterministically(t *testing.T) {
	db := NewRulesDatabase[string]()
	db.Add(ruleWith([]string{"b"}, []string{"z"}, 0.5, 0.5, 1))
	db.Add(ruleWith([]string{"a"}, []string{"z"}, 0.5, 0.5, 1))

	rules := db.Rules()
	if len(rules) != 2 {
		t.Fatalf("Rules() returned %d rules, want 2", len(rules))
	}
	if rules[0].Antecedent.Key() != NewItemset("a").Key() {
		t.Errorf("Rules()[0] antecedent = %s, want {a} first lexicographically", rules[0].Antecedent.Key())
	}
}

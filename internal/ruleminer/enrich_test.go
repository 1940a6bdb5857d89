// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"context"
	"testing"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	// Two samples 10 and 30, quantile 25 -> 15.
	got := percentile([]float64{10, 30}, 25)
	if approxNot(got, 15) {
		t.Errorf("percentile([10,30], 25) = %v, want 15", got)
	}
}

func TestPercentileSingleSample(t *testing.T) {
	if got := percentile([]float64{7}, 50); got != 7 {
		t.Errorf("percentile([7], 50) = %v, want 7", got)
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := percentile(nil, 25); got != 0 {
		t.Errorf("percentile(nil, 25) = %v, want 0", got)
	}
}

// TestEnrichDeltaT builds a rule set whose {a}->{b} rule occurs in two
// sequences with elapsed times 10 and 30, and checks the default
// 25th-percentile deltaT.
func TestEnrichDeltaT(t *testing.T) {
	sdb := SequenceDB[string]{
		Sequences: [][]string{
			{"a", "b"},
			{"a", "b"},
		},
		Timestamps: [][]int64{
			{0, 10},
			{0, 30},
		},
	}
	cfg := Config{MinSup: 0.5, MinConf: 0.5, Quantile: 25}
	db := mustFit(t, sdb, cfg)
	if err := Enrich(context.Background(), db, sdb, cfg); err != nil {
		t.Fatalf("Enrich: unexpected error: %v", err)
	}
	ab, ok := ruleIn(db, []string{"a"}, []string{"b"})
	if !ok {
		t.Fatal("expected rule {a}->{b}")
	}
	if approxNot(ab.DeltaT, 15) {
		t.Errorf("DeltaT = %v, want 15", ab.DeltaT)
	}
}

// TestEnrichContextNormalization checks the context normalization
// invariant. The rule's within-rule conditional probability is
// multiplied by support to form the "joint" weight (the first
// normalization stage); the stored DayProbability is that joint
// divided by the sum of every rule's joint for the same context value
// (the second stage). By construction that division makes the stored
// values themselves a probability distribution over rules for a fixed
// context value, so they sum to 1 directly — the support weighting is
// already folded into the joint before normalization, not reapplied
// afterward.
func TestEnrichContextNormalization(t *testing.T) {
	sdb := SequenceDB[string]{
		Sequences: [][]string{
			{"a", "b"},
			{"a", "c"},
			{"a", "b"},
		},
		Contexts: [][]ContextValue{
			{{Day: 1, Hour: NoHour}, {Day: 1, Hour: NoHour}},
			{{Day: 2, Hour: NoHour}, {Day: 2, Hour: NoHour}},
			{{Day: 1, Hour: NoHour}, {Day: 1, Hour: NoHour}},
		},
	}
	cfg := Config{MinSup: 0.1, MinConf: 0.1, Quantile: 25}
	db := mustFit(t, sdb, cfg)
	if err := Enrich(context.Background(), db, sdb, cfg); err != nil {
		t.Fatalf("Enrich: unexpected error: %v", err)
	}

	totals := make(map[int]float64)
	for _, r := range db.Rules() {
		for v, p := range r.DayProbability {
			totals[v] += p
		}
	}
	for v, sum := range totals {
		if approxNot(sum, 1.0) {
			t.Errorf("day context %d: sum of DayProbability across rules = %v, want 1.0", v, sum)
		}
	}
}

func TestEnrichSkipsZeroContextTotal(t *testing.T) {
	// A rule occurring in a sequence with no context data for a
	// dimension contributes no entry, never a NaN.
	sdb := SequenceDB[string]{
		Sequences: [][]string{{"a", "b"}},
	}
	cfg := Config{MinSup: 0.1, MinConf: 0.1, Quantile: 25}
	db := mustFit(t, sdb, cfg)
	if err := Enrich(context.Background(), db, sdb, cfg); err != nil {
		t.Fatalf("Enrich: unexpected error: %v", err)
	}
	ab, ok := ruleIn(db, []string{"a"}, []string{"b"})
	if !ok {
		t.Fatal("expected rule {a}->{b}")
	}
	if ab.DayProbability != nil {
		t.Errorf("DayProbability = %v, want nil (no context data supplied)", ab.DayProbability)
	}
}

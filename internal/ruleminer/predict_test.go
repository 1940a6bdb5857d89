// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"context"
	"testing"
)

func ruleWith(ante, cons []string, support, confidence, deltaT float64) *Rule[string] {
	return &Rule[string]{
		Antecedent: NewItemset(ante...),
		Consequent: NewItemset(cons...),
		Support:    support,
		Confidence: confidence,
		DeltaT:     deltaT,
	}
}

// TestPredictMinThreshold checks two candidates with
// (score, deltaT) = (0.9, 20) and (0.7, 5). With min_threshold=0.6,
// both qualify and the smallest-deltaT rule wins. Without a threshold,
// the largest-score rule wins.
func TestPredictMinThreshold(t *testing.T) {
	db := NewRulesDatabase[string]()
	// Confidence/support/weights are chosen so Score works out to
	// exactly 0.9 and 0.7 with length factor 2 (one-item antecedent,
	// one-item consequent) and c1=1, others 0.
	high := ruleWith([]string{"x"}, []string{"y"}, 0.45, 0.45, 20)
	low := ruleWith([]string{"x"}, []string{"z"}, 0.35, 0.35, 5)
	db.Add(high)
	db.Add(low)

	weights := Weights{C1: 1}
	req := PredictRequest[string]{Window: []string{"x"}, Weights: weights}

	threshold := 0.6
	req.MinThreshold = &threshold
	got := Predict(context.Background(), db, req)
	if got.Action == nil || *got.Action != "z" {
		t.Fatalf("with min_threshold=0.6: Action = %v, want z", got.Action)
	}
	if got.Delta == nil || approxNot(*got.Delta, 5) {
		t.Fatalf("with min_threshold=0.6: Delta = %v, want 5", got.Delta)
	}

	req.MinThreshold = nil
	got = Predict(context.Background(), db, req)
	if got.Action == nil || *got.Action != "y" {
		t.Fatalf("without min_threshold: Action = %v, want y", got.Action)
	}
	if got.Delta == nil || approxNot(*got.Delta, 20) {
		t.Fatalf("without min_threshold: Delta = %v, want 20", got.Delta)
	}
}

// TestPredictHiddenItemFilter checks that a candidate rule whose
// consequent contains a hidden item is filtered out of selection.
func TestPredictHiddenItemFilter(t *testing.T) {
	db := NewRulesDatabase[string]()
	db.Add(ruleWith([]string{"y"}, []string{"z"}, 0.5, 0.5, 1))

	req := PredictRequest[string]{
		Window: []string{"x", "y"},
		Hidden: map[string]struct{}{"z": {}},
		Weights: Weights{C1: 1},
	}
	got := Predict(context.Background(), db, req)
	if got.Action != nil {
		t.Errorf("Action = %v, want nil (consequent is hidden)", *got.Action)
	}
	if got.Delta != nil {
		t.Errorf("Delta = %v, want nil", *got.Delta)
	}
}

func TestPredictRequiresLastWindowItemActivatesRule(t *testing.T) {
	db := NewRulesDatabase[string]()
	db.Add(ruleWith([]string{"x"}, []string{"z"}, 0.5, 0.5, 1))

	// "x" is in the window but is not the last item, so the rule should
	// not be activated.
	req := PredictRequest[string]{
		Window:  []string{"x", "y"},
		Weights: Weights{C1: 1},
	}
	got := Predict(context.Background(), db, req)
	if got.Action != nil {
		t.Errorf("Action = %v, want nil (last window item does not activate any rule)", *got.Action)
	}
}

// TestPredictEmptyDatabase checks that prediction against an empty
// or nil database is best-effort, never an error.
func TestPredictEmptyDatabase(t *testing.T) {
	got := Predict(context.Background(), nil, PredictRequest[string]{Window: []string{"a"}})
	if got.Action != nil || got.Delta != nil {
		t.Errorf("Predict(nil db) = %+v, want empty Prediction", got)
	}

	empty := NewRulesDatabase[string]()
	got = Predict(context.Background(), empty, PredictRequest[string]{Window: []string{"a"}})
	if got.Action != nil || got.Delta != nil {
		t.Errorf("Predict(empty db) = %+v, want empty Prediction", got)
	}
}

func TestPredictContextContribution(t *testing.T) {
	db := NewRulesDatabase[string]()
	r := ruleWith([]string{"x"}, []string{"y"}, 0.5, 0.5, 1)
	r.DayProbability = map[int]float64{3: 0.8}
	db.Add(r)

	day := 3
	req := PredictRequest[string]{
		Window:  []string{"x"},
		Weights: Weights{C3: 1},
		Day:     &day,
	}
	got := Predict(context.Background(), db, req)
	if got.Action == nil || *got.Action != "y" {
		t.Fatalf("Action = %v, want y", got.Action)
	}
}

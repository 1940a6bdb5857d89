// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestExportImportRoundTrip checks that exporting a rule set to CSV and
// importing it back yields a rule set equal to the original as sets,
// with numerics agreeing to 1e-9 relative tolerance.
func TestExportImportRoundTrip(t *testing.T) {
	sdb := SequenceDB[string]{
		Sequences: [][]string{
			{"a", "b", "c"},
			{"a", "b", "c"},
			{"a", "c"},
		},
		Timestamps: [][]int64{
			{0, 5, 15},
			{0, 10, 30},
			{0, 20},
		},
	}
	cfg := Config{MinSup: 0.5, MinConf: 0.5, Quantile: 25}
	db := mustFit(t, sdb, cfg)
	if err := Enrich(context.Background(), db, sdb, cfg); err != nil {
		t.Fatalf("Enrich: unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, db, MarshalString); err != nil {
		t.Fatalf("ExportCSV: unexpected error: %v", err)
	}

	imported, err := ImportCSV(&buf, UnmarshalString)
	if err != nil {
		t.Fatalf("ImportCSV: unexpected error: %v", err)
	}

	if imported.Len() != db.Len() {
		t.Fatalf("imported.Len() = %d, want %d", imported.Len(), db.Len())
	}
	for _, want := range db.Rules() {
		got, ok := ruleIn(imported, want.Antecedent.Items(), want.Consequent.Items())
		if !ok {
			t.Fatalf("rule %s missing after round-trip", want.Key())
		}
		if approxNot(got.Support, want.Support) {
			t.Errorf("rule %s: Support = %v, want %v", want.Key(), got.Support, want.Support)
		}
		if approxNot(got.Confidence, want.Confidence) {
			t.Errorf("rule %s: Confidence = %v, want %v", want.Key(), got.Confidence, want.Confidence)
		}
		if approxNot(got.DeltaT, want.DeltaT) {
			t.Errorf("rule %s: DeltaT = %v, want %v", want.Key(), got.DeltaT, want.DeltaT)
		}
	}
}

func TestExportSortOrder(t *testing.T) {
	db := NewRulesDatabase[string]()
	db.Add(ruleWith([]string{"a"}, []string{"b"}, 0.5, 0.6, 1))
	db.Add(ruleWith([]string{"a"}, []string{"c"}, 0.9, 0.9, 1))
	db.Add(ruleWith([]string{"a"}, []string{"d"}, 0.9, 0.6, 1))

	var buf bytes.Buffer
	if err := ExportCSV(&buf, db, MarshalString); err != nil {
		t.Fatalf("ExportCSV: unexpected error: %v", err)
	}

	// Confidence descending, then support descending: {a}->{c} (0.9),
	// then {a}->{d} (0.6, support 0.9), then {a}->{b} (0.6, support 0.5).
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantPrefixes := []string{"[a],[c],", "[a],[d],", "[a],[b],"}
	if len(lines) != 1+len(wantPrefixes) {
		t.Fatalf("exported %d lines, want %d", len(lines), 1+len(wantPrefixes))
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i+1], prefix) {
			t.Errorf("row %d = %q, want prefix %q", i, lines[i+1], prefix)
		}
	}

	imported, err := ImportCSV(&buf, UnmarshalString)
	if err != nil {
		t.Fatalf("ImportCSV: unexpected error: %v", err)
	}
	if imported.Len() != 3 {
		t.Fatalf("imported.Len() = %d, want 3", imported.Len())
	}
}

func TestImportRejectsMalformedTable(t *testing.T) {
	bad := bytes.NewBufferString("antecedent,consequent\n\"[a]\",\"[b]\"\n")
	if _, err := ImportCSV(bad, UnmarshalString); err == nil {
		t.Fatal("ImportCSV: expected error for a table with the wrong column count, got nil")
	}
}

func TestMarshalUnmarshalInt(t *testing.T) {
	s := MarshalInt(42)
	v, err := UnmarshalInt(s)
	if err != nil {
		t.Fatalf("UnmarshalInt: unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("UnmarshalInt(%q) = %d, want 42", s, v)
	}
	if _, err := UnmarshalInt("not-a-number"); err == nil {
		t.Error("UnmarshalInt: expected error for non-numeric input, got nil")
	}
}

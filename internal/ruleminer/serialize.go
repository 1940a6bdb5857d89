// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// csvColumns is the canonical rule table header.
var csvColumns = []string{"antecedent", "consequent", "support", "confidence", "deltaT", "score", "day", "hour"}

// ExportCSV writes db's rules in the canonical tabular form, sorted
// by confidence descending then support descending. marshal renders
// one item as its canonical textual form; MarshalString and
// MarshalInt are provided for string- and int-valued items.
func ExportCSV[T Item](w io.Writer, db *RulesDatabase[T], marshal func(T) string) error {
	rules := db.Rules()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		return rules[i].Support > rules[j].Support
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("writing csv header: %w", errors.Join(err, ErrSerialization))
	}
	for _, r := range rules {
		record := []string{
			marshalList(r.Antecedent.Items(), marshal),
			marshalList(r.Consequent.Items(), marshal),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.DeltaT),
			formatFloat(r.Score),
			marshalContextMap(r.DayProbability),
			marshalContextMap(r.HourProbability),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing rule %s: %w", r.Key(), errors.Join(err, ErrSerialization))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv writer: %w", errors.Join(err, ErrSerialization))
	}
	return nil
}

// ImportCSV parses a rule table written by ExportCSV. unmarshal
// parses one item from its canonical textual form; UnmarshalString
// and UnmarshalInt are provided for string- and int-valued items.
func ImportCSV[T Item](r io.Reader, unmarshal func(string) (T, error)) (*RulesDatabase[T], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", errors.Join(err, ErrSerialization))
	}
	if len(header) != len(csvColumns) {
		return nil, fmt.Errorf("expected %d columns, got %d: %w", len(csvColumns), len(header), ErrSerialization)
	}

	db := NewRulesDatabase[T]()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rule row: %w", errors.Join(err, ErrSerialization))
		}

		ante, err := unmarshalList(record[0], unmarshal)
		if err != nil {
			return nil, fmt.Errorf("parsing antecedent %q: %w", record[0], err)
		}
		cons, err := unmarshalList(record[1], unmarshal)
		if err != nil {
			return nil, fmt.Errorf("parsing consequent %q: %w", record[1], err)
		}
		support, err := parseFloatColumn(record[2])
		if err != nil {
			return nil, fmt.Errorf("parsing support %q: %w", record[2], err)
		}
		confidence, err := parseFloatColumn(record[3])
		if err != nil {
			return nil, fmt.Errorf("parsing confidence %q: %w", record[3], err)
		}
		deltaT, err := parseFloatColumn(record[4])
		if err != nil {
			return nil, fmt.Errorf("parsing deltaT %q: %w", record[4], err)
		}
		scoreVal, err := parseFloatColumn(record[5])
		if err != nil {
			return nil, fmt.Errorf("parsing score %q: %w", record[5], err)
		}
		dayMap, err := unmarshalContextMap(record[6])
		if err != nil {
			return nil, fmt.Errorf("parsing day map %q: %w", record[6], err)
		}
		hourMap, err := unmarshalContextMap(record[7])
		if err != nil {
			return nil, fmt.Errorf("parsing hour map %q: %w", record[7], err)
		}

		rule := &Rule[T]{
			Antecedent:      NewItemset(ante...),
			Consequent:      NewItemset(cons...),
			Support:         support,
			Confidence:      confidence,
			DeltaT:          deltaT,
			Score:           scoreVal,
			DayProbability:  dayMap,
			HourProbability: hourMap,
		}
		db.Add(rule)
	}
	return db, nil
}

// MarshalString and UnmarshalString are the identity codec for
// string-valued items.
func MarshalString(s string) string { return s }

func UnmarshalString(s string) (string, error) { return s, nil }

// MarshalInt and UnmarshalInt are the decimal codec for int-valued
// items.
func MarshalInt(i int) string { return strconv.Itoa(i) }

func UnmarshalInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer: %w", s, errors.Join(err, ErrSerialization))
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloatColumn(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Join(err, ErrSerialization)
	}
	return v, nil
}

func marshalList[T Item](items []T, marshal func(T) string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = marshal(it)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func unmarshalList[T Item](s string, unmarshal func(string) (T, error)) ([]T, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	items := make([]T, len(parts))
	for i, p := range parts {
		v, err := unmarshal(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Join(err, ErrSerialization)
		}
		items[i] = v
	}
	return items, nil
}

func marshalContextMap(m map[int]float64) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k) + ":" + formatFloat(m[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func unmarshalContextMap(s string) (map[int]float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return nil, nil
	}
	m := make(map[int]float64)
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed context entry %q: %w", pair, ErrSerialization)
		}
		k, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("parsing context key %q: %w", kv[0], errors.Join(err, ErrSerialization))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing context value %q: %w", kv[1], errors.Join(err, ErrSerialization))
		}
		m[k] = v
	}
	return m, nil
}

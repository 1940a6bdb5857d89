// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/nextaction/ruleminer/internal/logging"
)

// EnrichOption configures an optional dependency of Enrich.
type EnrichOption func(*enrichOptions)

type enrichOptions struct {
	logger zerolog.Logger
}

// WithEnrichLogger overrides the logger Enrich derives its component
// logger from.
func WithEnrichLogger(l zerolog.Logger) EnrichOption {
	return func(o *enrichOptions) { o.logger = l }
}

// Enrich walks sdb once per rule to attach a deltaT percentile
// estimate and per-context (day, hour) probability distributions
// normalized across the whole rule set. It mutates the rules already
// present in db in place; db must have been produced by Fit (or
// otherwise contain rules over the same item space as sdb).
func Enrich[T Item](ctx context.Context, db *RulesDatabase[T], sdb SequenceDB[T], cfg Config, opts ...EnrichOption) error {
	options := enrichOptions{logger: logging.Logger()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger.With().Str("component", "enrich").Logger()
	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		logger = logger.With().Str("correlation_id", correlationID).Logger()
	}

	if err := sdb.validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	positions := make([]map[T][]int, len(sdb.Sequences))
	spans := make([]map[T]itemSpan, len(sdb.Sequences))
	for i, seq := range sdb.Sequences {
		positions[i] = buildItemPositions(seq)
		spans[i] = buildItemSpans(seq)
	}

	rules := db.Rules()
	dayWeights := make(map[int]map[string]float64)
	hourWeights := make(map[int]map[string]float64)

	for _, rule := range rules {
		ante := rule.Antecedent.Items()
		cons := rule.Consequent.Items()

		var deltaSamples []float64
		dayCounts := make(map[int]int)
		hourCounts := make(map[int]int)
		dayTotal, hourTotal := 0, 0

		for sid := range sdb.Sequences {
			if !occurs(ante, cons, spans[sid]) {
				continue
			}
			lastAntePos := maxFirstPosition(ante, spans[sid])

			if sdb.Timestamps != nil {
				if consPos, ok := firstAfter(cons, positions[sid], lastAntePos); ok {
					ts := sdb.Timestamps[sid]
					deltaSamples = append(deltaSamples, float64(ts[consPos]-ts[lastAntePos]))
				}
			}

			if sdb.Contexts != nil {
				cv := sdb.Contexts[sid][lastAntePos]
				if cv.Day != NoDay {
					dayCounts[cv.Day]++
					dayTotal++
				}
				if cv.Hour != NoHour {
					hourCounts[cv.Hour]++
					hourTotal++
				}
			}
		}

		rule.DeltaT = percentile(deltaSamples, cfg.Quantile)

		accumulateContextWeights(dayWeights, dayCounts, dayTotal, rule)
		accumulateContextWeights(hourWeights, hourCounts, hourTotal, rule)
	}

	normalizeContextWeights(rules, dayWeights, func(r *Rule[T]) *map[int]float64 { return &r.DayProbability })
	normalizeContextWeights(rules, hourWeights, func(r *Rule[T]) *map[int]float64 { return &r.HourProbability })

	logger.Debug().Int("rules_enriched", len(rules)).Msg("enrichment complete")
	return nil
}

func buildItemPositions[T Item](seq []T) map[T][]int {
	positions := make(map[T][]int, len(seq))
	for pos, it := range seq {
		positions[it] = append(positions[it], pos)
	}
	return positions
}

// maxFirstPosition returns the max over items of each item's first
// occurrence position in spans — the position at which the antecedent
// completes.
func maxFirstPosition[T Item](items []T, spans map[T]itemSpan) int {
	maxFirst := -1
	for _, it := range items {
		if sp, ok := spans[it]; ok && sp.first > maxFirst {
			maxFirst = sp.first
		}
	}
	return maxFirst
}

// firstAfter finds, over every item in items, the earliest occurrence
// position strictly after after, and returns the minimum such
// position across items (the earliest point at which the whole
// consequent has begun). occurs() having already been verified true
// for this sequence guarantees every item has at least one
// occurrence after after.
func firstAfter[T Item](items []T, positions map[T][]int, after int) (int, bool) {
	best := -1
	found := false
	for _, it := range items {
		list := positions[it]
		idx := sort.Search(len(list), func(i int) bool { return list[i] > after })
		if idx == len(list) {
			continue
		}
		pos := list[idx]
		if !found || pos < best {
			best = pos
			found = true
		}
	}
	return best, found
}

// percentile computes the quantile-th percentile (0-100) of samples
// by linear interpolation between order statistics. Returns 0 for an
// empty sample set.
func percentile(samples []float64, quantile int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := float64(quantile) / 100 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// accumulateContextWeights computes, for one rule and one context
// dimension, the within-rule probability per context value and
// multiplies by the rule's support to get the joint weight fed into
// the cross-rule-set normalization pass. A zero total (no occurring
// sequence carried a value for this dimension) contributes nothing,
// rather than dividing by zero.
func accumulateContextWeights[T Item](weights map[int]map[string]float64, counts map[int]int, total int, rule *Rule[T]) {
	if total == 0 {
		return
	}
	key := rule.Key()
	for value, count := range counts {
		prob := float64(count) / float64(total)
		joint := prob * rule.Support
		if weights[value] == nil {
			weights[value] = make(map[string]float64)
		}
		weights[value][key] = joint
	}
}

// normalizeContextWeights performs the final cross-rule-set
// normalization: for each context value, every rule's joint weight is
// divided by the sum of joint weights over all rules carrying that
// value, so that for each context value the stored probabilities
// sum to 1 across rules.
func normalizeContextWeights[T Item](rules []*Rule[T], weights map[int]map[string]float64, field func(*Rule[T]) *map[int]float64) {
	sums := make(map[int]float64, len(weights))
	for value, byRule := range weights {
		var sum float64
		for _, w := range byRule {
			sum += w
		}
		sums[value] = sum
	}

	byKey := make(map[string]*Rule[T], len(rules))
	for _, r := range rules {
		byKey[r.Key()] = r
	}

	for value, byRule := range weights {
		sum := sums[value]
		if sum == 0 {
			continue
		}
		for key, w := range byRule {
			r := byKey[key]
			target := field(r)
			if *target == nil {
				*target = make(map[int]float64)
			}
			(*target)[value] = w / sum
		}
	}
}

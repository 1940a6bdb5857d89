// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextaction/ruleminer/internal/logging"
	"github.com/nextaction/ruleminer/internal/metrics"
)

// FitOption configures an optional dependency of Fit without
// widening its positional signature.
type FitOption func(*fitOptions)

type fitOptions struct {
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// WithLogger overrides the logger Fit derives its component logger
// from. Defaults to the package-level logging.Logger().
func WithLogger(l zerolog.Logger) FitOption {
	return func(o *fitOptions) { o.logger = l }
}

// WithMetrics attaches a metrics collector. A nil collector (the
// default) disables metrics entirely.
func WithMetrics(m *metrics.Collector) FitOption {
	return func(o *fitOptions) { o.metrics = m }
}

// searchRule is the internal, interned-index representation of a
// candidate or valid rule during equivalence-class expansion. It is
// never exposed outside this file; Fit translates the final valid set
// into Rule[T] via the interner before returning.
type searchRule struct {
	ante []int32 // sorted
	cons []int32 // sorted

	support    float64
	confidence float64
}

func searchRuleKey(ante, cons []int32) string {
	return int32SliceKey(ante) + "|" + int32SliceKey(cons)
}

func int32SliceKey(items []int32) string {
	// Each int32 fits in at most 11 decimal digits plus separator;
	// preallocate generously to avoid reallocation in the hot path.
	buf := make([]byte, 0, len(items)*12)
	for i, it := range items {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendInt32(buf, it)
	}
	return string(buf)
}

func appendInt32(buf []byte, v int32) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	slices.Reverse(buf[start:])
	return buf
}

// miningState owns every structure built and consulted during a
// single Fit invocation: the interned sequences, their precomputed
// per-item spans, the SCM pruning table, the postings index, the
// configured thresholds, and the growing valid-rule / left-store
// sets. All of this is owned exclusively by one Fit call; nothing
// here is shared across invocations.
type miningState struct {
	cfg   Config
	seqs  [][]int32
	spans []map[int32]itemSpan
	scm   *SCM
	posts *Postings

	// generated de-duplicates candidate rules across the whole
	// expansion so the same (ante,cons) pair is never recomputed twice
	// even if reached from two different recursion branches.
	generated map[string]bool
	valid     map[string]*searchRule
	// leftStore accumulates right-expansion results keyed by their
	// (possibly multi-item) antecedent, feeding the final left-search
	// pass over multi-antecedent classes.
	leftStore map[string][]*searchRule

	logger zerolog.Logger
}

// Fit mines a validated sequential rule set from sdb: a first scan of
// singleton→singleton candidates pruned by the SCM table, then left
// and right equivalence-class expansion, then a final left-expansion
// pass over the right expansion's left-store (skipped entirely when
// cfg.SingleConsequent is set).
func Fit[T Item](ctx context.Context, sdb SequenceDB[T], cfg Config, opts ...FitOption) (*RulesDatabase[T], error) {
	options := fitOptions{logger: logging.Logger()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger.With().Str("component", "erminer").Logger()

	if err := sdb.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		logger = logger.With().Str("correlation_id", correlationID).Logger()
	}
	logger.Info().Int("sequences", len(sdb.Sequences)).Msg("fit starting")

	interner := NewInterner[T]()
	seqs := make([][]int32, len(sdb.Sequences))
	for i, seq := range sdb.Sequences {
		interned := make([]int32, len(seq))
		for p, it := range seq {
			interned[p] = interner.Intern(it)
		}
		seqs[i] = interned
	}

	spans := make([]map[int32]itemSpan, len(seqs))
	for i, seq := range seqs {
		spans[i] = buildItemSpans(seq)
	}

	ms := &miningState{
		cfg:       cfg,
		seqs:      seqs,
		spans:     spans,
		scm:       buildSCM(seqs, len(seqs)),
		posts:     buildPostings(seqs),
		generated: make(map[string]bool),
		valid:     make(map[string]*searchRule),
		leftStore: make(map[string][]*searchRule),
		logger:    logger,
	}

	leftClasses, rightClasses, frequent1x1 := ms.firstScan(interner.Len())
	logger.Debug().
		Int("universe", interner.Len()).
		Int("frequent_1x1", len(frequent1x1)).
		Int("valid_1x1", len(ms.valid)).
		Msg("first scan complete")

	if !cfg.SingleConsequent {
		for _, class := range leftClasses {
			ms.leftSearch(class)
		}
	}
	for _, class := range rightClasses {
		ms.rightSearch(class)
	}
	if !cfg.SingleConsequent {
		for _, class := range ms.leftStore {
			ms.leftSearch(class)
		}
	}

	db := NewRulesDatabase[T]()
	for _, sr := range ms.valid {
		rule := &Rule[T]{
			Antecedent: translateItemset(sr.ante, interner),
			Consequent: translateItemset(sr.cons, interner),
			Support:    sr.support,
			Confidence: sr.confidence,
		}
		db.Add(rule)
	}

	if options.metrics != nil {
		options.metrics.ObserveFitDuration(time.Since(start).Seconds())
		options.metrics.SetRulesMined("frequent_1x1", len(frequent1x1))
		options.metrics.SetRulesMined("valid", db.Len())
	}

	logger.Info().
		Int("valid_rules", db.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("fit complete")

	return db, nil
}

func translateItemset[T Item](indices []int32, interner *Interner[T]) Itemset[T] {
	items := make([]T, len(indices))
	for i, idx := range indices {
		items[i] = interner.Lookup(idx)
	}
	return fromSorted(sortedItems(items))
}

func sortedItems[T Item](items []T) []T {
	slices.Sort(items)
	return items
}

// firstScan walks the item universe (via the already-interned index
// space), forms the singleton→singleton candidates, pruning them with
// the SCM that Fit built beforehand, and builds the seed left/right
// equivalence classes.
func (ms *miningState) firstScan(universeSize int) (leftClasses, rightClasses map[string][]*searchRule, frequent1x1 []*searchRule) {
	leftClasses = make(map[string][]*searchRule)
	rightClasses = make(map[string][]*searchRule)

	for a := int32(0); a < int32(universeSize); a++ {
		for c := int32(0); c < int32(universeSize); c++ {
			if a == c {
				continue
			}
			if ms.scm.Get(a, c) < ms.cfg.MinSup {
				continue
			}
			ante := []int32{a}
			cons := []int32{c}
			support := ms.computeSupport(ante, cons)
			if support < ms.cfg.MinSup {
				continue
			}
			sr := &searchRule{ante: ante, cons: cons, support: support}
			sr.confidence = ms.computeConfidence(ante, support)
			frequent1x1 = append(frequent1x1, sr)

			key := searchRuleKey(ante, cons)
			ms.generated[key] = true
			if sr.confidence >= ms.cfg.MinConf {
				ms.valid[key] = sr
			}

			leftClasses[int32SliceKey(ante)] = append(leftClasses[int32SliceKey(ante)], sr)
			rightClasses[int32SliceKey(cons)] = append(rightClasses[int32SliceKey(cons)], sr)
		}
	}
	return leftClasses, rightClasses, frequent1x1
}

// leftSearch expands a class of rules sharing an antecedent: it pairs
// up members whose consequents share a prefix and differ only in the
// last element, and tries extending the consequent with the
// sibling's differing element.
func (ms *miningState) leftSearch(class []*searchRule) {
	if len(class) < 2 {
		return
	}
	var next []*searchRule
	for i := 0; i < len(class); i++ {
		for j := i + 1; j < len(class); j++ {
			r, s := class[i], class[j]
			if !equalPrefix(r.cons, s.cons) {
				continue
			}
			c, d := r.cons[len(r.cons)-1], s.cons[len(s.cons)-1]
			if c == d {
				continue
			}
			if ms.scm.Get(c, d) < ms.cfg.MinSup {
				continue
			}
			newCons := unionSorted(r.cons, d)
			key := searchRuleKey(r.ante, newCons)
			if ms.generated[key] {
				continue
			}
			ms.generated[key] = true

			support := ms.computeSupport(r.ante, newCons)
			if support < ms.cfg.MinSup {
				continue
			}
			nr := &searchRule{ante: r.ante, cons: newCons, support: support}
			nr.confidence = ms.computeConfidence(r.ante, support)
			if nr.confidence >= ms.cfg.MinConf {
				ms.valid[key] = nr
			}
			next = append(next, nr)
		}
	}
	if len(next) > 0 {
		ms.leftSearch(next)
	}
}

// rightSearch is symmetric to leftSearch but expands the antecedent,
// additionally recording every frequent expansion into leftStore
// keyed by the new antecedent.
func (ms *miningState) rightSearch(class []*searchRule) {
	if len(class) < 2 {
		return
	}
	var next []*searchRule
	for i := 0; i < len(class); i++ {
		for j := i + 1; j < len(class); j++ {
			r, s := class[i], class[j]
			if !equalPrefix(r.ante, s.ante) {
				continue
			}
			c, d := r.ante[len(r.ante)-1], s.ante[len(s.ante)-1]
			if c == d {
				continue
			}
			if ms.scm.Get(c, d) < ms.cfg.MinSup {
				continue
			}
			newAnte := unionSorted(r.ante, d)
			key := searchRuleKey(newAnte, r.cons)
			if ms.generated[key] {
				continue
			}
			ms.generated[key] = true

			support := ms.computeSupport(newAnte, r.cons)
			if support < ms.cfg.MinSup {
				continue
			}
			nr := &searchRule{ante: newAnte, cons: r.cons, support: support}
			nr.confidence = ms.computeConfidence(newAnte, support)
			if nr.confidence >= ms.cfg.MinConf {
				ms.valid[key] = nr
			}
			next = append(next, nr)
			if !ms.cfg.SingleConsequent {
				storeKey := int32SliceKey(newAnte)
				ms.leftStore[storeKey] = append(ms.leftStore[storeKey], nr)
			}
		}
	}
	if len(next) > 0 {
		ms.rightSearch(next)
	}
}

// equalPrefix reports whether a and b have equal length and are equal
// in every position but the last.
func equalPrefix(a, b []int32) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// unionSorted inserts d into the sorted slice base, which is assumed
// not to already contain d (guaranteed by the equivalence-class
// construction in leftSearch/rightSearch: d is the sibling's
// differing last element, and the two consequents/antecedents share
// every other element).
func unionSorted(base []int32, d int32) []int32 {
	out := make([]int32, 0, len(base)+1)
	inserted := false
	for _, v := range base {
		if !inserted && d < v {
			out = append(out, d)
			inserted = true
		}
		out = append(out, v)
	}
	if !inserted {
		out = append(out, d)
	}
	return out
}

// computeSupport computes support(ante→cons): the fraction of
// sequences in which the rule occurs, using the occurs oracle.
// Postings narrows the candidate sequence set before running the
// oracle; this is always sound since co-occurrence is necessary for
// occurrence.
func (ms *miningState) computeSupport(ante, cons []int32) float64 {
	combined := make([]int32, 0, len(ante)+len(cons))
	combined = append(combined, ante...)
	combined = append(combined, cons...)
	candidates := ms.posts.Candidates(combined)

	matches := 0
	for _, sid := range candidates {
		if occurs(ante, cons, ms.spans[sid]) {
			matches++
		}
	}
	return float64(matches) / float64(len(ms.seqs))
}

// computeConfidence computes confidence as
// support * |SDB| / |sequences containing ante as a set|. Division by
// zero (no sequence contains the antecedent) yields confidence 0.
func (ms *miningState) computeConfidence(ante []int32, support float64) float64 {
	containing := ms.posts.Candidates(ante)
	if len(containing) == 0 {
		return 0
	}
	return support * float64(len(ms.seqs)) / float64(len(containing))
}

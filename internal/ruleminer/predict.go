// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nextaction/ruleminer/internal/logging"
	"github.com/nextaction/ruleminer/internal/metrics"
)

// Weights are the four non-negative score weights blending
// confidence, support, and the two context priors. They are not
// required to sum to 1.
type Weights struct {
	C1, C2, C3, C4 float64
}

// PredictRequest bundles every input to Predict: the live window, the
// items forbidden as consequents, the score weights, the current
// context, and the optional selection threshold.
type PredictRequest[T Item] struct {
	// Window is the tail of recent items; Window[len(Window)-1] is the
	// most recent event and must belong to a rule's antecedent for that
	// rule to be a candidate.
	Window []T
	// Hidden lists items forbidden as consequents.
	Hidden map[T]struct{}
	Weights
	// Day and Hour are the current context; nil means "unknown" and
	// contributes 0 to the corresponding score term.
	Day  *int
	Hour *int
	// MinThreshold, if set, switches selection to "smallest deltaT among
	// the rules scoring at or above this threshold"; if nil, selection
	// is simply "largest score".
	MinThreshold *float64
}

// Prediction is the predicted next action and its estimated elapsed
// time, or both nil if no rule qualified.
type Prediction[T Item] struct {
	Action *T
	Delta  *float64
}

// PredictOption configures an optional dependency of Predict,
// mirroring FitOption.
type PredictOption func(*predictOptions)

type predictOptions struct {
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// WithPredictLogger overrides the logger Predict derives its
// component logger from.
func WithPredictLogger(l zerolog.Logger) PredictOption {
	return func(o *predictOptions) { o.logger = l }
}

// WithPredictMetrics attaches a metrics collector to Predict.
func WithPredictMetrics(m *metrics.Collector) PredictOption {
	return func(o *predictOptions) { o.metrics = m }
}

// Predict filters db's rules against req and returns the single best
// candidate. Prediction is best-effort: an unfitted or empty
// database, an empty window, or no qualifying candidate all yield an
// empty Prediction rather than an error.
func Predict[T Item](ctx context.Context, db *RulesDatabase[T], req PredictRequest[T], opts ...PredictOption) Prediction[T] {
	options := predictOptions{logger: logging.Logger()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger.With().Str("component", "predict").Logger()
	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		logger = logger.With().Str("correlation_id", correlationID).Logger()
	}

	empty := Prediction[T]{}
	if db == nil || len(req.Window) == 0 {
		options.metrics.ObservePrediction(metrics.OutcomeNoCandidates, 0)
		return empty
	}

	windowSet := make(map[T]struct{}, len(req.Window))
	for _, it := range req.Window {
		windowSet[it] = struct{}{}
	}
	lastItem := req.Window[len(req.Window)-1]

	candidates := make([]*Rule[T], 0)
	for _, r := range db.Rules() {
		if !r.Antecedent.SubsetOf(windowSet) {
			continue
		}
		if !r.Antecedent.Contains(lastItem) {
			continue
		}
		if hiddenConsequent(r, req.Hidden) {
			continue
		}
		candidates = append(candidates, r)
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no candidate rules")
		options.metrics.ObservePrediction(metrics.OutcomeNoCandidates, 0)
		return empty
	}

	var day, hour int
	hasDay, hasHour := req.Day != nil, req.Hour != nil
	if hasDay {
		day = *req.Day
	}
	if hasHour {
		hour = *req.Hour
	}
	for _, r := range candidates {
		r.Score = score(r, req.Weights, day, hasDay, hour, hasHour)
	}

	chosen := selectRule(candidates, req.MinThreshold)
	if chosen == nil {
		logger.Debug().Msg("no candidate met min_threshold")
		options.metrics.ObservePrediction(metrics.OutcomeBelowThreshold, 0)
		return empty
	}

	consItems := chosen.Consequent.Items()
	if len(consItems) == 0 {
		return empty
	}
	action := consItems[0]
	delta := chosen.DeltaT

	options.metrics.ObservePrediction(metrics.OutcomeMatched, chosen.Score)
	return Prediction[T]{Action: &action, Delta: &delta}
}

func hiddenConsequent[T Item](r *Rule[T], hidden map[T]struct{}) bool {
	if len(hidden) == 0 {
		return false
	}
	for _, it := range r.Consequent.Items() {
		if _, ok := hidden[it]; ok {
			return true
		}
	}
	return false
}

func score[T Item](r *Rule[T], w Weights, day int, hasDay bool, hour int, hasHour bool) float64 {
	var dayTerm, hourTerm float64
	if hasDay {
		dayTerm = r.DayProbability[day]
	}
	if hasHour {
		hourTerm = r.HourProbability[hour]
	}
	base := w.C1*r.Confidence + w.C2*r.Support + w.C3*dayTerm + w.C4*hourTerm
	length := float64(r.Antecedent.Len() + r.Consequent.Len())
	return base * length
}

// selectRule picks the winning candidate: with a threshold set, the
// smallest-deltaT rule among those meeting it; without one, the
// largest-score rule. Ties are broken by the deterministic
// lexicographic order of Rule.less.
func selectRule[T Item](candidates []*Rule[T], minThreshold *float64) *Rule[T] {
	if minThreshold != nil {
		var qualifying []*Rule[T]
		for _, r := range candidates {
			if r.Score >= *minThreshold {
				qualifying = append(qualifying, r)
			}
		}
		if len(qualifying) == 0 {
			return nil
		}
		best := qualifying[0]
		for _, r := range qualifying[1:] {
			if r.DeltaT < best.DeltaT || (r.DeltaT == best.DeltaT && r.less(best)) {
				best = r
			}
		}
		return best
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if r.Score > best.Score || (r.Score == best.Score && r.less(best)) {
			best = r
		}
	}
	return best
}

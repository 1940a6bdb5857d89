// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

// Package metrics registers the Prometheus instruments for the
// mining and prediction pipeline: promauto-registered histograms/
// gauges/counters grouped into a Collector that Fit and Predict
// accept as an optional (nilable) dependency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector bundles every rule-mining instrument. The zero value is
// not usable; construct with NewCollector. A nil *Collector is valid
// everywhere it is accepted as a parameter — every method on a nil
// receiver is a no-op, so callers that do not want metrics simply
// pass nil instead of threading a boolean through Fit/Predict.
type Collector struct {
	fitDuration     prometheus.Histogram
	rulesMined      *prometheus.GaugeVec
	predictions     *prometheus.CounterVec
	predictionScore prometheus.Histogram
}

// NewCollector registers all instruments against reg and returns a
// Collector. Pass prometheus.DefaultRegisterer for the global
// registry, or a fresh prometheus.NewRegistry() in tests to avoid
// duplicate-registration panics across test runs.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		fitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ruleminer_fit_duration_seconds",
			Help:    "Duration of a Fit call, in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		rulesMined: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ruleminer_rules_mined_total",
			Help: "Number of rules produced by the most recent Fit, by phase.",
		}, []string{"phase"}),
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ruleminer_predictions_total",
			Help: "Number of Predict calls, by outcome.",
		}, []string{"outcome"}),
		predictionScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ruleminer_prediction_score",
			Help:    "Score of the winning rule on a successful Predict call.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
}

// Outcome labels for ObservePrediction.
const (
	OutcomeMatched        = "matched"
	OutcomeNoCandidates   = "no_candidates"
	OutcomeBelowThreshold = "below_threshold"
)

// ObserveFitDuration records how long a Fit call took.
func (c *Collector) ObserveFitDuration(seconds float64) {
	if c == nil {
		return
	}
	c.fitDuration.Observe(seconds)
}

// SetRulesMined records the number of rules in a given phase of
// mining (e.g. "frequent_1x1", "valid").
func (c *Collector) SetRulesMined(phase string, n int) {
	if c == nil {
		return
	}
	c.rulesMined.WithLabelValues(phase).Set(float64(n))
}

// ObservePrediction records a Predict call's outcome and, for a
// matched outcome, the winning rule's score.
func (c *Collector) ObservePrediction(outcome string, score float64) {
	if c == nil {
		return
	}
	c.predictions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeMatched {
		c.predictionScore.Observe(score)
	}
}

// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "errors"

// Sentinel error kinds. Callers match with errors.Is; call sites wrap
// these with a specific detail message via fmt.Errorf("%s: %w", ...).
var (
	// ErrInvalidInput covers empty sequence databases, malformed
	// thresholds, mismatched timestamps/contexts shape, and non-monotone
	// timestamps. Predict does not return it: a context value the
	// rule's maps do not contain contributes 0 to the score.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFitted marks a RulesDatabase that has not been produced by
	// Fit. Predict never returns it (prediction is best-effort and
	// answers with an empty Prediction instead); it exists for callers
	// that want to distinguish "no rules yet" elsewhere in their API.
	ErrNotFitted = errors.New("rule set not fitted")

	// ErrSerialization covers malformed rule tables on import.
	ErrSerialization = errors.New("serialization error")
)

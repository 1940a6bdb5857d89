// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "fmt"

// SequenceDB is the sequence-database ingress: a finite ordered list
// of sequences (each an ordered list of items, duplicates allowed),
// with optional parallel Timestamps and Contexts of the same shape.
// The history preprocessing that produces Sequences (window slicing)
// is an external collaborator; SequenceDB is the boundary.
type SequenceDB[T Item] struct {
	Sequences [][]T
	// Timestamps, if non-nil, must have the same shape as Sequences: a
	// monotonically non-decreasing integer (minutes) per position.
	Timestamps [][]int64
	// Contexts, if non-nil, must have the same shape as Sequences: a
	// categorical context value per position.
	Contexts [][]ContextValue
}

// ContextValue is the per-position categorical context tuple (day of
// week, hour of day). A field equal to NoDay or NoHour (-1) means "not
// supplied" for that dimension at that position.
type ContextValue struct {
	Day  int
	Hour int
}

// NoDay and NoHour are the sentinel values for an absent context
// dimension at a given position.
const (
	NoDay  = -1
	NoHour = -1
)

// validate checks the invalid-input conditions: an empty database,
// and mismatched or non-monotone parallel slices.
func (sdb SequenceDB[T]) validate() error {
	if len(sdb.Sequences) == 0 {
		return fmt.Errorf("sequence database is empty: %w", ErrInvalidInput)
	}
	if sdb.Timestamps != nil {
		if len(sdb.Timestamps) != len(sdb.Sequences) {
			return fmt.Errorf("timestamps has %d sequences, sequences has %d: %w",
				len(sdb.Timestamps), len(sdb.Sequences), ErrInvalidInput)
		}
		for i, ts := range sdb.Timestamps {
			if len(ts) != len(sdb.Sequences[i]) {
				return fmt.Errorf("timestamps[%d] has length %d, sequence has length %d: %w",
					i, len(ts), len(sdb.Sequences[i]), ErrInvalidInput)
			}
			for p := 1; p < len(ts); p++ {
				if ts[p] < ts[p-1] {
					return fmt.Errorf("timestamps[%d] is not monotonically non-decreasing at position %d: %w",
						i, p, ErrInvalidInput)
				}
			}
		}
	}
	if sdb.Contexts != nil {
		if len(sdb.Contexts) != len(sdb.Sequences) {
			return fmt.Errorf("contexts has %d sequences, sequences has %d: %w",
				len(sdb.Contexts), len(sdb.Sequences), ErrInvalidInput)
		}
		for i, ctx := range sdb.Contexts {
			if len(ctx) != len(sdb.Sequences[i]) {
				return fmt.Errorf("contexts[%d] has length %d, sequence has length %d: %w",
					i, len(ctx), len(sdb.Sequences[i]), ErrInvalidInput)
			}
		}
	}
	return nil
}

// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

// Package ruleminer implements ERMiner-style sequential rule mining,
// rule enrichment, and context-aware next-action prediction over
// sequences of opaque, totally-ordered item identifiers.
//
// # Pipeline
//
// Fit mines a validated rule set from a sequence database:
//
//	db, err := ruleminer.Fit(ctx, sdb, cfg)
//
// Enrich walks the same database once per rule to attach a deltaT
// estimate and per-context probability distributions to every rule:
//
//	err = ruleminer.Enrich(ctx, db, sdb, cfg)
//
// Predict filters the enriched rule set against a live window of
// recent activity and scores the survivors:
//
//	pred := ruleminer.Predict(ctx, db, req)
//
// # Thread safety
//
// Fit is synchronous and single-threaded: it owns its working state
// exclusively and may be invoked concurrently across independent
// inputs. Enrich mutates the rules of the RulesDatabase it is given,
// and Predict writes the transient Score field of every candidate
// rule, so neither Enrich nor Predict is safe to run concurrently with
// another Enrich or Predict call against the same RulesDatabase.
package ruleminer

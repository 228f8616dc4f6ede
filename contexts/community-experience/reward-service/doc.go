// Package rewardservice maintains the user points ledger inside the
// community-experience context.
//
// The module consumes reward.granted events produced by the validation
// engine, applies each grant to the author's running total exactly once per
// report (the bus contract is at-least-once, so redeliveries are expected),
// and serves point totals for profile and leaderboard reads.
package rewardservice

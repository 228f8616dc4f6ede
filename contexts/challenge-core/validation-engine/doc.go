// Package validationengine implements the validation aggregation engine
// inside the challenge-core context.
//
// The module owns progress-report vote lifecycle orchestration (submit,
// overwrite, moderator reopen), consensus status aggregation over validator
// votes, approval reward derivation, and transition event production through
// outbox-backed workers. It keeps business rules in application/domain layers
// and isolates infrastructure concerns behind ports and adapters.
package validationengine

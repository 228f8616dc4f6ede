// Package capabilityservice implements per-challenge capability resolution
// inside the identity-access context.
//
// The module answers exactly one question: given a principal and a challenge
// snapshot, which operations may that principal perform. The answer is a
// derived value object regenerated on every request, never persisted, and
// resolution never fails for a well-formed pair; callers inspect the
// returned set instead of catching a permission error.
package capabilityservice

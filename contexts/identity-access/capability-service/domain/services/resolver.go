package services

import "impulse/contexts/identity-access/capability-service/domain/entities"

// Resolve computes the capability set for one principal against one
// challenge snapshot. Pure and total: every input yields a set, and a
// principal with no matching rule gets the all-false set rather than an
// error. Capabilities are granted independently, so a principal can match
// several rules at once.
func Resolve(principal entities.Principal, challenge entities.ChallengeSnapshot) entities.PermissionSet {
	var set entities.PermissionSet

	if principal.Staff() {
		set.Moderate = true
		set.Read = true
		set.Update = true
		set.Delete = true
		set.Validate = true
		set.Comment = true
		set.Report = true
		// SubmitEvidence stays owner-gated: staff never submit evidence on
		// behalf of users.
	}

	owner := principal.Authenticated() && principal.UserID == challenge.OwnerID
	if owner {
		set.Read = true
		set.Update = true
		set.Delete = true
		if challenge.State == entities.ChallengeStateActive {
			set.SubmitEvidence = true
		}
	}

	if challenge.HasValidator(principal.UserID) {
		set.Validate = true
		set.Comment = true
		set.Read = true
	}

	// The audience rule covers spectators only. Owners interact with their
	// challenge through the owner capabilities above and never get the
	// comment/report pair on their own challenge.
	if !owner && visibilityPermits(principal, challenge) {
		set.Read = true
		set.Comment = true
		set.Report = true
	}

	return set
}

// visibilityPermits decides whether the challenge is open to the general
// audience. Owner and staff access come from their own rules, so this
// expresses only the spectator policy: public challenges are viewable by
// anyone, including unauthenticated visitors; validators_only admits
// snapshot members; private admits nobody.
func visibilityPermits(principal entities.Principal, challenge entities.ChallengeSnapshot) bool {
	switch challenge.Visibility {
	case entities.VisibilityPublic:
		return true
	case entities.VisibilityValidatorsOnly:
		return challenge.HasValidator(principal.UserID)
	default:
		return false
	}
}

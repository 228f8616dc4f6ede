package entities

type ChallengeState string

const (
	ChallengeStateActive    ChallengeState = "ACTIVO"
	ChallengeStateCompleted ChallengeState = "COMPLETADO"
	ChallengeStateFailed    ChallengeState = "FALLIDO"
	ChallengeStatePaused    ChallengeState = "PAUSADO"
)

type Visibility string

const (
	VisibilityPublic         Visibility = "public"
	VisibilityPrivate        Visibility = "private"
	VisibilityValidatorsOnly Visibility = "validators_only"
)

// ChallengeSnapshot is the read model the resolver evaluates against. It may
// lag the write side slightly; the staleness window is bounded by the
// caller's challenge-read cache policy.
type ChallengeSnapshot struct {
	ChallengeID  string
	OwnerID      string
	State        ChallengeState
	Visibility   Visibility
	ValidatorIDs []string
}

func (c ChallengeSnapshot) HasValidator(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range c.ValidatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

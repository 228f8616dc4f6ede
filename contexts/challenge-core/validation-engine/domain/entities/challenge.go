package entities

import "time"

type ChallengeState string

const (
	ChallengeStateActive    ChallengeState = "ACTIVO"
	ChallengeStateCompleted ChallengeState = "COMPLETADO"
	ChallengeStateFailed    ChallengeState = "FALLIDO"
	ChallengeStatePaused    ChallengeState = "PAUSADO"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "FACIL"
	DifficultyMedium  Difficulty = "MEDIO"
	DifficultyHard    Difficulty = "DIFICIL"
	DifficultyExtreme Difficulty = "EXTREMO"
)

type Visibility string

const (
	VisibilityPublic         Visibility = "public"
	VisibilityPrivate        Visibility = "private"
	VisibilityValidatorsOnly Visibility = "validators_only"
)

type Challenge struct {
	ChallengeID  string
	OwnerID      string
	Title        string
	State        ChallengeState
	Difficulty   Difficulty
	Visibility   Visibility
	ValidatorIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c Challenge) HasValidator(userID string) bool {
	for _, id := range c.ValidatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

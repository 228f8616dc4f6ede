package validationengine

import (
	"log/slog"

	httpadapter "impulse/contexts/challenge-core/validation-engine/adapters/http"
	"impulse/contexts/challenge-core/validation-engine/adapters/memory"
	"impulse/contexts/challenge-core/validation-engine/application/commands"
	"impulse/contexts/challenge-core/validation-engine/application/queries"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Votes   commands.VoteUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Challenges  ports.ChallengeRepository
	Reports     ports.ReportRepository
	Roles       ports.UserRoleProvider
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		Challenges:  deps.Challenges,
		Reports:     deps.Reports,
		Roles:       deps.Roles,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		MaxAttempts: deps.MaxAttempts,
		Logger:      deps.Logger,
	}
	reportUseCase := queries.ReportUseCase{
		Challenges: deps.Challenges,
		Reports:    deps.Reports,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:   voteUseCase,
			Reports: reportUseCase,
			Logger:  deps.Logger,
		},
		Votes: voteUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Challenges: store,
		Reports:    store,
		Roles:      store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

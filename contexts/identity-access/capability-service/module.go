package capabilityservice

import (
	"log/slog"
	"time"

	httpadapter "impulse/contexts/identity-access/capability-service/adapters/http"
	"impulse/contexts/identity-access/capability-service/adapters/memory"
	"impulse/contexts/identity-access/capability-service/application/queries"
	"impulse/contexts/identity-access/capability-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Permissions queries.ResolvePermissionsUseCase
	Store       *memory.Store
}

type Dependencies struct {
	Challenges ports.ChallengeReader
	Roles      ports.RoleProvider
	Cache      ports.PermissionCache
	Clock      ports.Clock
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	useCase := queries.ResolvePermissionsUseCase{
		Challenges: deps.Challenges,
		Roles:      deps.Roles,
		Cache:      deps.Cache,
		Clock:      deps.Clock,
		CacheTTL:   deps.CacheTTL,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Permissions: useCase,
			Logger:      deps.Logger,
		},
		Permissions: useCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Challenges: store,
		Roles:      store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

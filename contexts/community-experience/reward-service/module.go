package rewardservice

import (
	"log/slog"

	httpadapter "impulse/contexts/community-experience/reward-service/adapters/http"
	"impulse/contexts/community-experience/reward-service/adapters/memory"
	"impulse/contexts/community-experience/reward-service/application"
	"impulse/contexts/community-experience/reward-service/application/workers"
	"impulse/contexts/community-experience/reward-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Consumer workers.RewardGrantedConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Rewards: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Consumer: workers.RewardGrantedConsumer{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}

// NewStore exposes the memory adapter for test wiring.
func NewStore() *memory.Store {
	return memory.NewStore()
}

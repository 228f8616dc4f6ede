package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	validationengine "impulse/contexts/challenge-core/validation-engine"
	capabilityservice "impulse/contexts/identity-access/capability-service"
	rewardservice "impulse/contexts/community-experience/reward-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "impulse/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	validation   validationengine.Module
	capabilities capabilityservice.Module
	rewards      rewardservice.Module
}

func New(
	validation validationengine.Module,
	capabilities capabilityservice.Module,
	rewards rewardservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		validation:   validation,
		capabilities: capabilities,
		rewards:      rewards,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/validation/v1/reports", s.handleSubmitReport)
	s.mux.HandleFunc("GET /api/validation/v1/reports/{report_id}", s.handleGetReport)
	s.mux.HandleFunc("GET /api/validation/v1/reports/{report_id}/progress", s.handleReportProgress)
	s.mux.HandleFunc("POST /api/validation/v1/reports/{report_id}/votes", s.handleSubmitVote)
	s.mux.HandleFunc("POST /api/validation/v1/reports/{report_id}/reopen", s.handleReopenReport)

	s.mux.HandleFunc("POST /api/capabilities/v1/resolve", s.handleResolvePermissions)

	s.mux.HandleFunc("GET /api/rewards/v1/users/{user_id}/points", s.handleUserPoints)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"net/http"

	"github.com/aristide1997/version-vault/internal/api/middleware"
	"github.com/aristide1997/version-vault/internal/core"
	"github.com/aristide1997/version-vault/internal/service"
	"github.com/aristide1997/version-vault/internal/token"
)

type Server struct {
	apps  *service.AppService
	guard *service.Guard
}

func NewServer(store core.AppStore, tokens *token.Service) *Server {
	return &Server{
		apps:  service.NewAppService(store, tokens),
		guard: service.NewGuard(store, tokens),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// registry routes
	mux.HandleFunc("POST "+CreateAppRoute, s.handleCreate)
	mux.HandleFunc("GET "+VersionRoute, s.handleGetVersion)
	mux.HandleFunc("POST "+BumpRoute, s.handleBump)
	mux.HandleFunc("POST "+SetRoute, s.handleSet)

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}

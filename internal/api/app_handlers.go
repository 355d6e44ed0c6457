package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aristide1997/version-vault/internal/api/presenter"
	"github.com/aristide1997/version-vault/internal/service"
)

// CreateResponse is the body of a successful registration. Token is only
// present for secure apps and is the one and only time the raw token is
// handed out.
type CreateResponse struct {
	AppName string `json:"app_name"`
	Version string `json:"version"`
	Token   string `json:"token,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type NewVersionResponse struct {
	NewVersion string `json:"new_version"`
}

// bearerToken extracts the credential from the Authorization header. The
// header may hold the raw token or the usual "Bearer " form.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer"))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	q := r.URL.Query()
	name := q.Get("app_name")

	opts := service.CreateOptions{}
	if v := q.Get("secure"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			presenter.Error(w, r, "invalid secure parameter", http.StatusBadRequest)
			return
		}
		opts.Secure = secure
	}
	if v := q.Get("expiry_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			presenter.Error(w, r, "expiry_days must be a positive integer", http.StatusBadRequest)
			return
		}
		opts.ExpiryDays = days
	}

	result, err := s.apps.Create(ctx, name, opts)
	if err != nil {
		logger.Warn().Err(err).Str("app", name).Msg("create rejected")
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, CreateResponse{
		AppName: result.Name,
		Version: result.Version,
		Token:   result.Token,
	}, http.StatusCreated)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("app_name")

	if err := s.guard.Authorize(ctx, name, bearerToken(r)); err != nil {
		presenter.Err(w, r, err)
		return
	}

	version, err := s.apps.GetVersion(ctx, name)
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, VersionResponse{Version: version}, http.StatusOK)
}

func (s *Server) handleBump(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("app_name")

	if err := s.guard.Authorize(ctx, name, bearerToken(r)); err != nil {
		presenter.Err(w, r, err)
		return
	}

	version, err := s.apps.Bump(ctx, name, r.URL.Query().Get("type"))
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, NewVersionResponse{NewVersion: version}, http.StatusOK)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("app_name")

	if err := s.guard.Authorize(ctx, name, bearerToken(r)); err != nil {
		presenter.Err(w, r, err)
		return
	}

	version, err := s.apps.Set(ctx, name, r.URL.Query().Get("new_version"))
	if err != nil {
		presenter.Err(w, r, err)
		return
	}

	presenter.JSON(w, r, NewVersionResponse{NewVersion: version}, http.StatusOK)
}

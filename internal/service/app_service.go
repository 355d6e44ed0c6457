package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aristide1997/version-vault/internal/core"
	"github.com/aristide1997/version-vault/internal/token"
	"github.com/aristide1997/version-vault/internal/validation"
)

// AppService owns the version state machine: registration and the
// get/bump/set transitions. All app state lives in the store; the service
// keeps nothing across calls. Version strings are persisted exactly as
// supplied so that a set round-trips byte-identical.
type AppService struct {
	store  core.AppStore
	tokens *token.Service
}

func NewAppService(store core.AppStore, tokens *token.Service) *AppService {
	return &AppService{store: store, tokens: tokens}
}

// CreateOptions carries the optional parameters of a registration.
type CreateOptions struct {
	// Secure requests bearer-token gating for every later operation.
	Secure bool

	// ExpiryDays is the token expiry horizon for secure apps.
	// Zero selects the default.
	ExpiryDays int

	// InitialVersion overrides the default starting version when non-empty.
	InitialVersion string
}

// CreateResult is returned from a successful registration. Token is the raw
// bearer token for secure apps and is handed out exactly once; it cannot be
// retrieved again.
type CreateResult struct {
	Name    string
	Version string
	Token   string
}

// Create registers a new app. Fails with a conflict if the name is taken.
// Note the check-then-insert pair is not atomic: two concurrent creates for
// the same name can both pass the check, with the last write winning.
func (s *AppService) Create(ctx context.Context, name string, opts CreateOptions) (*CreateResult, error) {
	if err := validation.AppName(name); err != nil {
		return nil, validationError(err)
	}
	if opts.ExpiryDays < 0 {
		return nil, validationError(token.ErrInvalidExpiry)
	}

	if _, err := s.store.Get(ctx, name); err == nil {
		return nil, conflictError(fmt.Errorf("app %q already exists", name))
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, storageError(fmt.Errorf("checking existing app: %w", err))
	}

	version := core.InitialVersion.String()
	if opts.InitialVersion != "" {
		if _, err := core.ParseVersion(opts.InitialVersion); err != nil {
			return nil, validationError(err)
		}
		version = opts.InitialVersion
	}

	app := core.App{
		Name:    name,
		Version: version,
		Secure:  opts.Secure,
	}

	var raw string
	if opts.Secure {
		expiryDays := opts.ExpiryDays
		if expiryDays == 0 {
			expiryDays = token.DefaultExpiryDays
		}
		var err error
		if raw, err = s.tokens.Issue(name, expiryDays); err != nil {
			if errors.Is(err, token.ErrInvalidExpiry) {
				return nil, validationError(err)
			}
			return nil, internalError(fmt.Errorf("issuing token: %w", err))
		}
		app.TokenHash = s.tokens.Fingerprint(raw)
		app.TokenExpiryDays = expiryDays
	}

	// If this write fails after a token was issued, the token can never
	// verify (its fingerprint was never persisted). That is fail-closed,
	// so we just report the storage error.
	if err := s.store.Create(ctx, app); err != nil {
		return nil, storageError(fmt.Errorf("creating app: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("app", name).
		Str("version", version).
		Bool("secure", opts.Secure).
		Msg("app registered")

	return &CreateResult{Name: name, Version: version, Token: raw}, nil
}

// GetVersion returns the current version of an app, exactly as stored.
func (s *AppService) GetVersion(ctx context.Context, name string) (string, error) {
	app, err := s.load(ctx, name)
	if err != nil {
		return "", err
	}
	return app.Version, nil
}

// Bump applies the transition rule for the given part to the app's current
// version and persists the result. The read-modify-write pair is not
// atomic; concurrent bumps on one app can lose an update.
func (s *AppService) Bump(ctx context.Context, name, partStr string) (string, error) {
	part, err := core.ParsePart(partStr)
	if err != nil {
		return "", validationError(err)
	}

	app, err := s.load(ctx, name)
	if err != nil {
		return "", err
	}

	current, err := core.ParseVersion(app.Version)
	if err != nil {
		return "", internalError(fmt.Errorf("stored version for %q is corrupt: %w", name, err))
	}

	next := current.Bump(part).String()
	if err := s.store.UpdateVersion(ctx, name, next); err != nil {
		return "", storageError(fmt.Errorf("updating version: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("app", name).
		Str("from", app.Version).
		Str("to", next).
		Msg("version bumped")

	return next, nil
}

// Set overwrites the app's version verbatim. It is an explicit override,
// not a bump: moving the version backwards is allowed, and the supplied
// string is stored byte-for-byte (leading zeros included).
func (s *AppService) Set(ctx context.Context, name, newVersion string) (string, error) {
	if newVersion == "" {
		return "", validationError(errors.New("missing new_version"))
	}
	if _, err := core.ParseVersion(newVersion); err != nil {
		return "", validationError(err)
	}

	// set requires the app to exist; a blind update on a missing key would
	// leave a partial record behind.
	if _, err := s.load(ctx, name); err != nil {
		return "", err
	}

	if err := s.store.UpdateVersion(ctx, name, newVersion); err != nil {
		return "", storageError(fmt.Errorf("updating version: %w", err))
	}

	log.Ctx(ctx).Info().
		Str("app", name).
		Str("version", newVersion).
		Msg("version set")

	return newVersion, nil
}

func (s *AppService) load(ctx context.Context, name string) (*core.App, error) {
	if err := validation.AppName(name); err != nil {
		return nil, validationError(err)
	}
	app, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, notFoundError(fmt.Errorf("app %q not found", name))
		}
		return nil, storageError(fmt.Errorf("loading app: %w", err))
	}
	return app, nil
}

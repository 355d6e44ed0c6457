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

// Guard decides per request whether an app requires authentication and
// verifies the presented bearer token when it does. Registration is never
// gated (an app cannot be secured before it exists); every other operation
// on a secure app is.
type Guard struct {
	store  core.AppStore
	tokens *token.Service
}

func NewGuard(store core.AppStore, tokens *token.Service) *Guard {
	return &Guard{store: store, tokens: tokens}
}

// Authorize loads the app record and, for secure apps, verifies the bearer
// token against it. All verification failures collapse to a single 401;
// the distinguishing reason only reaches the log sink.
func (g *Guard) Authorize(ctx context.Context, appName, bearer string) error {
	if err := validation.AppName(appName); err != nil {
		return validationError(err)
	}

	app, err := g.store.Get(ctx, appName)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return notFoundError(fmt.Errorf("app %q not found", appName))
		}
		return storageError(fmt.Errorf("loading app: %w", err))
	}

	if !app.Secure {
		return nil
	}

	if bearer == "" {
		log.Ctx(ctx).Debug().Str("app", appName).Msg("auth rejected: missing bearer token")
		return authError(errors.New("Unauthorized"))
	}

	ok, reason := g.tokens.Verify(bearer, appName, app.TokenHash)
	if !ok {
		log.Ctx(ctx).Debug().
			Str("app", appName).
			Str("reason", reason.String()).
			Msg("auth rejected")
		return authError(errors.New("Unauthorized"))
	}

	return nil
}

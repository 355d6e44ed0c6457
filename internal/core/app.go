package core

// App is the persisted record for a registered application.
type App struct {
	// Name is the unique identifier, immutable after registration.
	Name string

	// Version is the current semantic version of the app, stored as the
	// exact string a client supplied (or a bump produced). Writers
	// validate it against the strict pattern; it is never re-serialized,
	// so a set round-trips byte-identical.
	Version string

	// Secure marks the app as requiring a bearer token on every
	// operation except registration. Set once at creation.
	Secure bool

	// TokenHash is the one-way fingerprint of the most recently issued
	// token. Only set for secure apps; the raw token is never persisted.
	TokenHash string

	// TokenExpiryDays records the expiry horizon the current token was
	// issued with. Only set for secure apps.
	TokenExpiryDays int
}

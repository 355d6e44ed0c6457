package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryDays is the expiry horizon used when a client does not
// request one explicitly.
const DefaultExpiryDays = 365

// MaxExpiryDays caps the horizon at 100 years. Anything larger is a client
// mistake, and absurd values would overflow the duration arithmetic into an
// already-expired token.
const MaxExpiryDays = 36500

// ErrInvalidExpiry is returned by Issue for an out-of-range expiry horizon.
var ErrInvalidExpiry = errors.New("expiry_days must be a positive integer of at most 36500")

// Claims is the payload embedded in every issued token.
type Claims struct {
	AppName string `json:"app_name"`
	jwt.RegisteredClaims
}

// Service signs and verifies app-bound bearer tokens. The signing secret is
// loaded once at process start and never rotated at runtime; a restart with
// a new secret invalidates every outstanding token.
type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret []byte) *Service {
	return &Service{secret: secret, now: time.Now}
}

// Issue creates a signed token for appName expiring expiryDays from now.
// expiryDays == 0 selects DefaultExpiryDays; values outside
// [0, MaxExpiryDays] are rejected.
// The returned string is the only copy of the token; callers must hand it
// to the requester immediately, only its fingerprint gets persisted.
func (s *Service) Issue(appName string, expiryDays int) (string, error) {
	if expiryDays < 0 || expiryDays > MaxExpiryDays {
		return "", ErrInvalidExpiry
	}
	if expiryDays == 0 {
		expiryDays = DefaultExpiryDays
	}

	claims := Claims{
		AppName: appName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(time.Duration(expiryDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return raw, nil
}

// Fingerprint returns the hex-encoded sha256 digest of a raw token. The
// digest is what gets persisted; possession of a record never yields a
// usable token.
func (s *Service) Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Verify checks a presented token against the app it claims to belong to
// and the fingerprint stored in that app's record. It never returns an
// error: any failure collapses to ok == false with a Reason for the logs.
func (s *Service) Verify(raw, appName, storedHash string) (bool, Reason) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return false, ReasonExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return false, ReasonBadSignature
		default:
			return false, ReasonMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return false, ReasonMalformed
	}
	if claims.AppName != appName {
		return false, ReasonWrongApp
	}
	if !hmac.Equal([]byte(s.Fingerprint(raw)), []byte(storedHash)) {
		return false, ReasonSuperseded
	}
	return true, ReasonNone
}

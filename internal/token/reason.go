package token

// Reason classifies why a verification failed. Clients only ever see a
// uniform 401; the reason exists for the internal log sink.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonMalformed    Reason = "malformed"
	ReasonExpired      Reason = "expired"
	ReasonBadSignature Reason = "bad_signature"
	ReasonWrongApp     Reason = "wrong_app"

	// ReasonSuperseded means the token verified cryptographically but its
	// fingerprint no longer matches the stored one, i.e. a newer token has
	// been issued for the app.
	ReasonSuperseded Reason = "fingerprint_mismatch"
)

func (r Reason) String() string {
	if r == ReasonNone {
		return "ok"
	}
	return string(r)
}

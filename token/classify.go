// Package token judges bearer token freshness from the embedded expiry
// claim, without contacting the network.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status is the local judgement of a raw bearer token.
type Status int

const (
	// StatusAbsent means no token is held at all.
	StatusAbsent Status = iota
	// StatusValid means the token carries an expiry in the future.
	StatusValid
	// StatusExpired covers expired, malformed, and expiry-less tokens.
	// Never grant access on a credential that can't be read.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusValid:
		return "valid"
	default:
		return "expired"
	}
}

// Classifier classifies tokens against an injectable clock.
// The zero value uses the system clock.
type Classifier struct {
	Now func() time.Time
}

var parser = jwt.NewParser()

// Classify decodes the exp claim of raw without verifying the signature;
// signature verification belongs to the API, the console only needs to
// know whether the credential is worth presenting.
func (c Classifier) Classify(raw string) Status {
	if raw == "" {
		return StatusAbsent
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return StatusExpired
	}
	if claims.ExpiresAt == nil {
		return StatusExpired
	}
	if !now().Before(claims.ExpiresAt.Time) {
		return StatusExpired
	}
	return StatusValid
}

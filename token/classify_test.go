package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/clocklear/pirelayconsole/token"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	return signedToken(t, jwt.RegisteredClaims{
		Subject:   "auth0|operator",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
}

func TestClassifyAbsent(t *testing.T) {
	c := token.Classifier{Now: func() time.Time { return testNow }}
	require.Equal(t, token.StatusAbsent, c.Classify(""))
}

func TestClassifyValid(t *testing.T) {
	c := token.Classifier{Now: func() time.Time { return testNow }}
	raw := tokenExpiringAt(t, testNow.Add(1*time.Hour))
	require.Equal(t, token.StatusValid, c.Classify(raw))
}

func TestClassifyExpired(t *testing.T) {
	c := token.Classifier{Now: func() time.Time { return testNow }}
	raw := tokenExpiringAt(t, testNow.Add(-1000*time.Second))
	require.Equal(t, token.StatusExpired, c.Classify(raw))
}

func TestClassifyExpiryBoundary(t *testing.T) {
	// now >= exp reads as expired, so a token expiring exactly now is dead.
	c := token.Classifier{Now: func() time.Time { return testNow }}
	raw := tokenExpiringAt(t, testNow)
	require.Equal(t, token.StatusExpired, c.Classify(raw))
}

func TestClassifyMalformedFailsClosed(t *testing.T) {
	c := token.Classifier{Now: func() time.Time { return testNow }}
	for _, raw := range []string{"not-a-jwt", "a.b", "a.b.c", "  "} {
		require.Equal(t, token.StatusExpired, c.Classify(raw), "token %q", raw)
	}
}

func TestClassifyMissingExpiry(t *testing.T) {
	c := token.Classifier{Now: func() time.Time { return testNow }}
	raw := signedToken(t, jwt.RegisteredClaims{Subject: "auth0|operator"})
	require.Equal(t, token.StatusExpired, c.Classify(raw))
}

func TestClassifySystemClockDefault(t *testing.T) {
	var c token.Classifier
	raw := tokenExpiringAt(t, time.Now().Add(1*time.Hour))
	require.Equal(t, token.StatusValid, c.Classify(raw))
}

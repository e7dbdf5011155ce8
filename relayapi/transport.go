package relayapi

import (
	"net/http"

	"github.com/clocklear/pirelayconsole/notify"
)

// TokenSource supplies the current bearer token; empty means no session.
type TokenSource func() string

// UnauthorizedFunc is invoked when the API rejects the session outright
// (401). It is how the wrapper reaches the session state machine without
// owning it.
type UnauthorizedFunc func()

// transport attaches the session token to every outgoing request and
// reacts to rejection. A 401 marks the session invalid and raises the
// collapsed access-denied notification; a 403 only notifies; neither is
// retried. Network failures pass through to the caller unchanged.
type transport struct {
	base           http.RoundTripper
	token          TokenSource
	notifier       *notify.Notifier
	onUnauthorized UnauthorizedFunc
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if tok := t.token(); tok != "" {
		out.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		if t.notifier != nil {
			t.notifier.HTTPStatus(res.StatusCode)
		}
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	case http.StatusForbidden, http.StatusBadRequest:
		if t.notifier != nil {
			t.notifier.HTTPStatus(res.StatusCode)
		}
	}
	return res, nil
}

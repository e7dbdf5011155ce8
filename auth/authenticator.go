// Package auth drives the redirect-based identity handoff: building the
// authorize URL, exchanging the returned code for a session token through
// the relay API, and fetching the caller's permissions.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/clocklear/pirelayconsole/internal/errors"
	"github.com/clocklear/pirelayconsole/internal/utils"
)

type Config struct {
	// APIRoot is the base URL of the relay API, which performs the actual
	// exchange against the identity provider.
	APIRoot string

	IdentityDomain  string
	ClientID        string
	RedirectURI     string
	Audience        string
	LogoutReturnURI string
	Scopes          []string

	// AuthorizeURL and TokenURL override endpoint discovery when set.
	AuthorizeURL string
	TokenURL     string

	// HTTPClient overrides the client used for API calls. Nil uses a
	// default with a sane timeout.
	HTTPClient *http.Client
}

type Authenticator struct {
	cfg      Config
	client   *http.Client
	endpoint oauth2.Endpoint
}

// ExchangeResult is the relay API's answer to a code exchange.
type ExchangeResult struct {
	AccessToken string         `json:"accessToken"`
	IDToken     string         `json:"idToken"`
	Profile     map[string]any `json:"profile"`
}

// New builds an Authenticator. The authorize endpoint is discovered from
// the identity domain's OIDC metadata; when discovery fails (offline
// start, non-OIDC provider) the conventional Auth0 endpoints are used.
func New(ctx context.Context, cfg Config) *Authenticator {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"openid", "profile", "email"}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	endpoint := oauth2.Endpoint{
		AuthURL:  fmt.Sprintf("https://%s/authorize", cfg.IdentityDomain),
		TokenURL: fmt.Sprintf("https://%s/oauth/token", cfg.IdentityDomain),
	}
	if cfg.AuthorizeURL != "" {
		endpoint = oauth2.Endpoint{AuthURL: cfg.AuthorizeURL, TokenURL: cfg.TokenURL}
	} else if cfg.IdentityDomain != "" {
		ctx = oidc.ClientContext(ctx, client)
		issuer := fmt.Sprintf("https://%s/", cfg.IdentityDomain)
		if provider, err := oidc.NewProvider(ctx, issuer); err != nil {
			log.Debug().Err(err).Str("issuer", issuer).Msg("OIDC discovery failed, using conventional endpoints")
		} else {
			endpoint = provider.Endpoint()
		}
	}

	return &Authenticator{cfg: cfg, client: client, endpoint: endpoint}
}

// LoginURL is the outbound redirect to the identity provider.
func (a *Authenticator) LoginURL(state string) string {
	oc := oauth2.Config{
		ClientID:    a.cfg.ClientID,
		RedirectURL: a.cfg.RedirectURI,
		Scopes:      a.cfg.Scopes,
		Endpoint:    a.endpoint,
	}
	return oc.AuthCodeURL(state, oauth2.SetAuthURLParam("audience", a.cfg.Audience))
}

// LogoutURL is the provider-side logout, returning the operator to the
// configured return URI afterwards.
func (a *Authenticator) LogoutURL() string {
	q := url.Values{
		"client_id": {a.cfg.ClientID},
		"returnTo":  {a.cfg.LogoutReturnURI},
	}
	return fmt.Sprintf("https://%s/v2/logout?%s", a.cfg.IdentityDomain, q.Encode())
}

// Exchange converts a one-time authorization code into a session token
// and profile by way of the relay API.
func (a *Authenticator) Exchange(ctx context.Context, code string) (ExchangeResult, error) {
	var result ExchangeResult

	u := fmt.Sprintf("%s/oauth/exchange?%s", a.cfg.APIRoot, url.Values{"code": {code}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return result, fmt.Errorf("[Authenticator Exchange] build request: %w", err)
	}

	res, err := a.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("[Authenticator Exchange] %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return result, errors.Wrapf(errors.ErrExchangeFailed, "[Authenticator Exchange] status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return result, errors.Wrapf(errors.ErrExchangeFailed, "[Authenticator Exchange] decode response")
	}
	if result.AccessToken == "" {
		return result, errors.Wrapf(errors.ErrExchangeFailed, "[Authenticator Exchange] empty access token")
	}
	return result, nil
}

// Permissions fetches the scopes granted to the token from the API's /me
// endpoint. Any failure yields an empty set; permissions gate affordances
// in the UI, the API enforces them regardless.
func (a *Authenticator) Permissions(ctx context.Context, accessToken string) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.APIRoot+"/me", nil)
	if err != nil {
		return []string{}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := a.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("permissions fetch failed")
		return []string{}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		log.Debug().Int("status", res.StatusCode).Msg("permissions fetch rejected")
		return []string{}
	}

	var claims map[string]any
	if err := json.NewDecoder(res.Body).Decode(&claims); err != nil {
		return []string{}
	}
	raw, ok := claims["permissions"].([]any)
	if !ok {
		return []string{}
	}
	return utils.ToStringSlice(raw)
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/nearme-publisher/internal/config"
	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"golang.org/x/oauth2"
)

const maxProfileBytes = 1 << 20

// Provider runs the authorization-code flow against the hosting provider and
// turns the result into a Session.
type Provider struct {
	oauth      *oauth2.Config
	profileURL string
	httpClient *http.Client
}

type ProviderOption func(*Provider)

func WithHTTPClient(hc *http.Client) ProviderOption {
	return func(p *Provider) {
		p.httpClient = hc
	}
}

func NewProvider(c config.OAuthConfig, opts ...ProviderOption) *Provider {
	p := &Provider{
		oauth: &oauth2.Config{
			ClientID:     c.GetClientID(),
			ClientSecret: c.GetClientSecret(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   c.GetAuthorizeURL(),
				TokenURL:  c.GetTokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: c.GetProfileURL(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthCodeURL is where the browser is sent to grant access.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Login exchanges an authorization code for an access token and loads the
// user's profile with it.
func (p *Provider) Login(ctx context.Context, code string) (sessions.Session, error) {
	if code == "" {
		return sessions.Session{}, errors.ErrMissingCode
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return sessions.Session{}, errors.Wrapf(err, "[auth Login] code exchange failed")
	}

	profile, err := p.fetchProfile(ctx, token)
	if err != nil {
		return sessions.Session{}, err
	}

	return sessions.Session{AccessToken: token.AccessToken, Profile: profile}, nil
}

type profileResponse struct {
	User *sessions.Profile `json:"user"`
}

func (p *Provider) fetchProfile(ctx context.Context, token *oauth2.Token) (sessions.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return sessions.Profile{}, errors.Wrapf(err, "[auth fetchProfile] build request")
	}

	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return sessions.Profile{}, errors.Wrapf(err, "[auth fetchProfile] request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return sessions.Profile{}, errors.Wrapf(err, "[auth fetchProfile] read response")
	}
	if resp.StatusCode != http.StatusOK {
		return sessions.Profile{}, fmt.Errorf("[auth fetchProfile] status %d: %s", resp.StatusCode, body)
	}

	var pr profileResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return sessions.Profile{}, errors.Wrapf(err, "[auth fetchProfile] decode response")
	}
	if pr.User == nil {
		return sessions.Profile{}, errors.ErrProfileMissing
	}
	return *pr.User, nil
}

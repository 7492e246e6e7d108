package config

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetProfileURL() string
}

// OAuth holds the credentials of this application at the hosting provider's
// OAuth server. The exchange itself lives in the auth package.
type OAuth struct {
	ClientID     string `env:"CLIENT_ID,notEmpty"`
	ClientSecret string `env:"CLIENT_SECRET,notEmpty"`
	AuthorizeURL string `env:"OAUTH_AUTHORIZE_URL" envDefault:"https://zeit.co/oauth/authorize"`
	TokenURL     string `env:"OAUTH_TOKEN_URL"     envDefault:"https://api.zeit.co/oauth/access_token"`
	ProfileURL   string `env:"OAUTH_PROFILE_URL"   envDefault:"https://api.zeit.co/www/user"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetAuthorizeURL() string {
	return o.AuthorizeURL
}

func (o OAuth) GetTokenURL() string {
	return o.TokenURL
}

func (o OAuth) GetProfileURL() string {
	return o.ProfileURL
}

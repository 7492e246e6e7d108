package sessions

// Profile is the subset of the hosting provider's user record kept in the
// session cookie.
type Profile struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
}

// Session is the authenticated state held by the client between requests.
// There is no server-side store: the signed cookie is the only copy.
type Session struct {
	AccessToken string  `json:"access_token"`
	Profile     Profile `json:"profile"`
}

// IsAnonymous reports whether the session carries no credential.
func (s Session) IsAnonymous() bool {
	return s.AccessToken == ""
}

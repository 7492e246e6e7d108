package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const stateLength = 32

// NewState returns a random value to bind an authorization redirect to the
// browser that started it.
func NewState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidState compares the state returned by the provider with the one stored
// in the browser.
func ValidState(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

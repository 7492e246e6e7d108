package config

import "time"

type SecurityConfig interface {
	GetCookieSecret() string
	GetMaxSessionAge() time.Duration
}

type Security struct {
	CookieSecret  string        `env:"COOKIE_SECRET,notEmpty"`
	MaxSessionAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
}

var _ SecurityConfig = Security{}

func (s Security) GetCookieSecret() string {
	return s.CookieSecret
}

func (s Security) GetMaxSessionAge() time.Duration {
	return s.MaxSessionAge
}

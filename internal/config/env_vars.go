package config

import (
	"strings"
)

const devEnv = "DEV"

type EnvVars struct {
	Port     string `env:"PORT"      envDefault:"8011"`
	AppName  string `env:"APP_NAME"  envDefault:"Near Me"`
	Env      string `env:"ENV"       envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.Port, ":") {
		return e.Port
	}
	return ":" + e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return devEnv
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// IsDev reports whether the process runs in the development environment.
func IsDev(c EnvConfig) bool {
	return c.GetEnv() == devEnv
}

package config

import "time"

type HostingConfig interface {
	GetHostingAPIURL() string
	GetAliasDomainSuffix() string
	GetHostingCallTimeout() time.Duration
}

type Hosting struct {
	APIURL            string        `env:"HOSTING_API_URL"      envDefault:"https://api.zeit.co/v3/now"`
	AliasDomainSuffix string        `env:"ALIAS_DOMAIN_SUFFIX"  envDefault:"now.sh"`
	CallTimeout       time.Duration `env:"HOSTING_CALL_TIMEOUT" envDefault:"30s"`
}

var _ HostingConfig = Hosting{}

func (h Hosting) GetHostingAPIURL() string {
	return h.APIURL
}

func (h Hosting) GetAliasDomainSuffix() string {
	return h.AliasDomainSuffix
}

// GetHostingCallTimeout bounds each individual call to the hosting API.
func (h Hosting) GetHostingCallTimeout() time.Duration {
	return h.CallTimeout
}

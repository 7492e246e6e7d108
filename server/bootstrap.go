package server

import (
	"fmt"

	"github.com/jrsteele09/nearme-publisher/auth"
	"github.com/jrsteele09/nearme-publisher/hosting"
	"github.com/jrsteele09/nearme-publisher/internal/config"
	"github.com/jrsteele09/nearme-publisher/publish"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

// Bootstrap wires the production collaborators from configuration and
// returns a ready server. Metrics are served from a private registry.
func Bootstrap(c config.Config) (*Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	codec, err := sessions.NewCodec(c.GetCookieSecret(), c.GetMaxSessionAge())
	if err != nil {
		return nil, fmt.Errorf("[Server Bootstrap] session codec: %w", err)
	}

	client := hosting.NewClient(c.GetHostingAPIURL(), hosting.WithCallTimeout(c.GetHostingCallTimeout())).
		RegisterMetrics(registry)

	publisher := publish.NewService(client, c.GetAliasDomainSuffix(), publish.WithMetrics(publish.NewMetrics(registry)))

	log.Info().
		Str("hosting_api", c.GetHostingAPIURL()).
		Str("alias_suffix", c.GetAliasDomainSuffix()).
		Dur("session_max_age", c.GetMaxSessionAge()).
		Msg("Bootstrap: publisher configured")

	return New(c, Dependencies{
		Codec:     codec,
		Provider:  auth.NewProvider(c),
		Publisher: publisher,
		Gatherer:  registry,
	})
}

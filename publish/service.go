package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/nearme-publisher/hosting"
	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/jrsteele09/nearme-publisher/site"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service runs the publish pipeline:
//
//	validate -> build -> upload -> deploy -> alias
//
// The first four steps are fatal on failure. Aliasing is best effort: a
// deployment that cannot be aliased is still reported as published at its
// canonical URL.
type Service struct {
	validator   *Validator
	builder     *site.Builder
	deployer    hosting.Deployer
	aliasSuffix string
	metrics     *Metrics
}

type Option func(*Service)

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithBuilder(b *site.Builder) Option {
	return func(s *Service) {
		s.builder = b
	}
}

// NewService creates a publisher deploying through deployer. Aliases are
// "<hostname>.<aliasSuffix>".
func NewService(deployer hosting.Deployer, aliasSuffix string, opts ...Option) *Service {
	s := &Service{
		validator:   NewValidator(),
		builder:     site.NewBuilder(),
		deployer:    deployer,
		aliasSuffix: aliasSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AliasFor returns the alias a hostname is published under.
func (s *Service) AliasFor(hostname string) string {
	return hostname + "." + s.aliasSuffix
}

// run carries the values each step hands to the next.
type run struct {
	session    sessions.Session
	body       []byte
	request    Request
	artifact   site.Artifact
	file       hosting.FileRef
	deployment hosting.Deployment
}

type step struct {
	stage Stage
	do    func(ctx context.Context, r *run) error
}

// Publish runs the pipeline for one request body on behalf of session. All
// outcomes, including failures, are returned as a Result. Cancelling ctx does
// not abort the pipeline: calls already issued to the hosting API run to
// completion or to their own timeout.
func (s *Service) Publish(ctx context.Context, session sessions.Session, body []byte) Result {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	logger := log.With().
		Str("publish_id", uuid.NewString()).
		Str("username", session.Profile.Username).
		Logger()

	res := s.publish(ctx, logger, session, body)
	s.metrics.observe(res, time.Since(start))
	return res
}

func (s *Service) publish(ctx context.Context, logger zerolog.Logger, session sessions.Session, body []byte) Result {
	if session.IsAnonymous() {
		return Failure(StageAuthenticate, errors.ErrUnauthenticated.Error(), errors.ErrUnauthenticated)
	}

	r := &run{session: session, body: body}
	for _, st := range s.steps() {
		if err := st.do(ctx, r); err != nil {
			res := Failure(st.stage, failureMessage(err), err)
			event := logger.Warn()
			if st.stage == StageBuild {
				event = logger.Error()
			}
			event.Err(err).
				Str("event", "publish_error").
				Str("stage", string(st.stage)).
				Str("hostname", r.request.Hostname).
				Msg("publish failed")
			return res
		}
	}

	res := s.alias(ctx, r)
	logger.Info().
		Str("event", "publish_success").
		Str("stage", string(res.Stage)).
		Str("hostname", res.Hostname).
		Str("deploy_id", res.DeployID).
		Str("deploy_url", res.DeployURL).
		Msg("published")
	if res.AliasErr != nil {
		logger.Warn().Err(res.AliasErr).Str("alias", s.AliasFor(res.Hostname)).Msg(res.DeployMessage)
	}
	return res
}

func (s *Service) steps() []step {
	return []step{
		{StageValidate, func(_ context.Context, r *run) (err error) {
			r.request, err = s.validator.Validate(r.body)
			return err
		}},
		{StageBuild, func(_ context.Context, r *run) (err error) {
			r.artifact, err = s.builder.Build(r.request.TaxonID, r.request.TaxonPlural)
			return err
		}},
		{StageUpload, func(ctx context.Context, r *run) (err error) {
			r.file, err = s.deployer.Upload(ctx, r.session.AccessToken, r.artifact)
			return err
		}},
		{StageDeploy, func(ctx context.Context, r *run) (err error) {
			r.deployment, err = s.deployer.CreateDeployment(ctx, r.session.AccessToken, r.request.Hostname, []hosting.FileRef{r.file})
			return err
		}},
	}
}

// alias attaches the friendly hostname. Failure leaves the canonical URL as
// the published address.
func (s *Service) alias(ctx context.Context, r *run) Result {
	alias := s.AliasFor(r.request.Hostname)
	res := Result{
		OK:           true,
		Stage:        StageAliased,
		DeployID:     r.deployment.ID,
		DeployURL:    alias,
		CanonicalURL: r.deployment.URL,
		Hostname:     r.request.Hostname,
		AliasURL:     alias,
	}

	if err := s.deployer.CreateAlias(ctx, r.session.AccessToken, r.deployment.ID, alias); err != nil {
		res.Stage = StageAliasFailed
		res.DeployURL = r.deployment.URL
		res.AliasURL = ""
		res.AliasErr = err
		res.DeployMessage = fmt.Sprintf("Could not alias to %s", alias)
	}
	return res
}

// failureMessage is the caller-facing detail of a fatal step error. Backend
// rejections pass the response body through verbatim.
func failureMessage(err error) string {
	var (
		ve *ValidationError
		ue *hosting.UploadError
		de *hosting.DeployError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Reason
	case errors.As(err, &ue):
		return ue.Detail
	case errors.As(err, &de):
		return de.Detail
	default:
		return errors.ErrInternal.Error()
	}
}

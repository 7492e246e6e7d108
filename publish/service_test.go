package publish_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/nearme-publisher/hosting"
	"github.com/jrsteele09/nearme-publisher/hosting/hostingfake"
	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/publish"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/jrsteele09/nearme-publisher/site"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	aliasSuffix = "now.sh"
	owlsBody    = `{"taxon_id": 42, "taxon_plural": "Owls", "hostname": "owls-near-me"}`
)

var testSession = sessions.Session{
	AccessToken: "tok_1",
	Profile:     sessions.Profile{UID: "u1", Username: "owlfan", Email: "owl@example.com"},
}

func newService(t *testing.T) (*publish.Service, *hostingfake.FakeDeployer) {
	t.Helper()
	fake := hostingfake.NewFakeDeployer()
	return publish.NewService(fake, aliasSuffix), fake
}

func toJSON(t *testing.T, r publish.Result) map[string]any {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestService_Publish(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		svc, fake := newService(t)

		res := svc.Publish(context.Background(), testSession, []byte(owlsBody))

		require.True(t, res.OK)
		require.Equal(t, publish.StageAliased, res.Stage)
		require.Equal(t, map[string]any{
			"ok":             true,
			"deploy_id":      "dep_1",
			"deploy_url":     "owls-near-me.now.sh",
			"deploy_message": "",
		}, toJSON(t, res))

		require.Len(t, fake.Uploads, 1)
		uploaded := fake.Uploads[0]
		expected, err := site.NewBuilder().Build(42, "Owls")
		require.NoError(t, err)
		require.Equal(t, expected, uploaded)

		require.Equal(t, []hostingfake.DeployCall{{
			Name:  "owls-near-me",
			Files: []hosting.FileRef{{File: "index.html", Size: expected.Size, SHA: expected.Digest}},
		}}, fake.Deployments)
		require.Equal(t, []hostingfake.AliasCall{{DeploymentID: "dep_1", Alias: "owls-near-me.now.sh"}}, fake.Aliases)
		require.Equal(t, []string{"tok_1", "tok_1", "tok_1"}, fake.Tokens)
	})

	t.Run("alias failure keeps the canonical url", func(t *testing.T) {
		svc, fake := newService(t)
		fake.AliasErr = &hosting.AliasError{Alias: "owls-near-me.now.sh", StatusCode: 409, Detail: "alias_in_use"}

		res := svc.Publish(context.Background(), testSession, []byte(owlsBody))

		require.True(t, res.OK)
		require.Equal(t, publish.StageAliasFailed, res.Stage)
		require.Equal(t, "dep_1.host", res.DeployURL)
		require.Equal(t, "dep_1.host", res.CanonicalURL)
		require.Empty(t, res.AliasURL)
		require.NotEmpty(t, res.DeployMessage)
		require.Contains(t, res.DeployMessage, "owls-near-me.now.sh")
		require.Error(t, res.AliasErr)

		body := toJSON(t, res)
		require.Equal(t, true, body["ok"])
		require.Equal(t, "dep_1.host", body["deploy_url"])
		require.Equal(t, "dep_1", body["deploy_id"])
	})

	t.Run("upload failure stops the pipeline", func(t *testing.T) {
		svc, fake := newService(t)
		fake.UploadErr = &hosting.UploadError{StatusCode: 500, Detail: `{"error":"storage unavailable"}`}

		res := svc.Publish(context.Background(), testSession, []byte(owlsBody))

		require.False(t, res.OK)
		require.Equal(t, publish.StageUpload, res.Stage)
		require.Equal(t, `{"error":"storage unavailable"}`, res.Msg)
		require.Equal(t, map[string]any{"ok": false, "msg": `{"error":"storage unavailable"}`}, toJSON(t, res))
		require.Len(t, fake.Uploads, 1)
		require.Empty(t, fake.Deployments)
		require.Empty(t, fake.Aliases)
	})

	t.Run("deploy failure returns backend body verbatim", func(t *testing.T) {
		svc, fake := newService(t)
		fake.DeployErr = &hosting.DeployError{StatusCode: 402, Detail: `{"error":{"code":"payment_required"}}`}

		res := svc.Publish(context.Background(), testSession, []byte(owlsBody))

		require.False(t, res.OK)
		require.Equal(t, publish.StageDeploy, res.Stage)
		require.Equal(t, `{"error":{"code":"payment_required"}}`, res.Msg)
		require.Empty(t, fake.Aliases)
	})

	t.Run("invalid taxon id makes no remote call", func(t *testing.T) {
		svc, fake := newService(t)

		for _, body := range []string{
			`{"taxon_id": "42", "taxon_plural": "Owls", "hostname": "owls"}`,
			`{"taxon_id": 4.2, "taxon_plural": "Owls", "hostname": "owls"}`,
			`{"taxon_plural": "Owls", "hostname": "owls"}`,
		} {
			res := svc.Publish(context.Background(), testSession, []byte(body))
			require.False(t, res.OK)
			require.Equal(t, publish.StageValidate, res.Stage)
			require.Contains(t, res.Msg, "taxon_id")
		}
		require.Zero(t, fake.Calls())
	})

	t.Run("invalid hostname makes no remote call", func(t *testing.T) {
		svc, fake := newService(t)

		res := svc.Publish(context.Background(), testSession, []byte(`{"taxon_id": 1, "taxon_plural": "Owls", "hostname": "Owls_Near"}`))
		require.False(t, res.OK)
		require.Equal(t, "hostname is required and must be a valid string", res.Msg)
		require.Zero(t, fake.Calls())
	})

	t.Run("anonymous session is rejected", func(t *testing.T) {
		svc, fake := newService(t)

		res := svc.Publish(context.Background(), sessions.Session{}, []byte(owlsBody))
		require.False(t, res.OK)
		require.Equal(t, publish.StageAuthenticate, res.Stage)
		require.ErrorIs(t, res.Err, errors.ErrUnauthenticated)
		require.Zero(t, fake.Calls())
	})

	t.Run("transport failure without backend body", func(t *testing.T) {
		svc, fake := newService(t)
		fake.UploadErr = context.DeadlineExceeded

		res := svc.Publish(context.Background(), testSession, []byte(owlsBody))
		require.False(t, res.OK)
		require.Equal(t, publish.StageUpload, res.Stage)
		require.Equal(t, "internal error", res.Msg)
	})

	t.Run("cancelled caller does not abort", func(t *testing.T) {
		svc, fake := newService(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := svc.Publish(ctx, testSession, []byte(owlsBody))
		require.True(t, res.OK)
		require.Equal(t, 3, fake.Calls())
	})
}

func TestService_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	fake := hostingfake.NewFakeDeployer()
	svc := publish.NewService(fake, aliasSuffix, publish.WithMetrics(publish.NewMetrics(registry)))

	svc.Publish(context.Background(), testSession, []byte(owlsBody))
	svc.Publish(context.Background(), testSession, []byte(`{}`))

	count, err := testutil.GatherAndCount(registry, "nearme_publish_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

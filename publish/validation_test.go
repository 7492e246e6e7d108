package publish_test

import (
	"testing"

	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/publish"
	"github.com/stretchr/testify/require"
)

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	var ve *publish.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	require.Equal(t, field, ve.Field)
	require.Contains(t, ve.Error(), field)
}

func TestValidator_Validate(t *testing.T) {
	v := publish.NewValidator()

	t.Run("valid", func(t *testing.T) {
		req, err := v.Validate([]byte(`{"taxon_id": 42, "taxon_plural": "Owls", "hostname": "owls-near-me"}`))
		require.NoError(t, err)
		require.Equal(t, publish.Request{TaxonID: 42, TaxonPlural: "Owls", Hostname: "owls-near-me"}, req)
	})

	t.Run("not an object", func(t *testing.T) {
		for _, body := range []string{``, `null`, `[]`, `"owls"`, `{"taxon_id":`} {
			_, err := v.Validate([]byte(body))
			requireInvalid(t, err, "body")
		}
	})

	t.Run("taxon_id must be an integer", func(t *testing.T) {
		for _, id := range []string{`"42"`, `42.5`, `42.0`, `1e3`, `true`, `null`, `-1`, `[42]`, `{}`} {
			_, err := v.Validate([]byte(`{"taxon_id": ` + id + `, "taxon_plural": "Owls", "hostname": "owls"}`))
			requireInvalid(t, err, "taxon_id")
		}
	})

	t.Run("taxon_id missing", func(t *testing.T) {
		_, err := v.Validate([]byte(`{"taxon_plural": "Owls", "hostname": "owls"}`))
		requireInvalid(t, err, "taxon_id")
	})

	t.Run("taxon_id checked first", func(t *testing.T) {
		_, err := v.Validate([]byte(`{"taxon_id": "x", "taxon_plural": 3, "hostname": "BAD"}`))
		requireInvalid(t, err, "taxon_id")
	})

	t.Run("taxon_plural must be a string", func(t *testing.T) {
		for _, plural := range []string{`3`, `null`, `""`, `["Owls"]`, `false`} {
			_, err := v.Validate([]byte(`{"taxon_id": 1, "taxon_plural": ` + plural + `, "hostname": "owls"}`))
			requireInvalid(t, err, "taxon_plural")
		}
	})

	t.Run("hostname checked last", func(t *testing.T) {
		_, err := v.Validate([]byte(`{"taxon_id": 1, "taxon_plural": "Owls"}`))
		requireInvalid(t, err, "hostname")

		_, err = v.Validate([]byte(`{"taxon_id": 1, "taxon_plural": "Owls", "hostname": 5}`))
		requireInvalid(t, err, "hostname")
	})

	t.Run("zero taxon id", func(t *testing.T) {
		req, err := v.Validate([]byte(`{"taxon_id": 0, "taxon_plural": "Life", "hostname": "life"}`))
		require.NoError(t, err)
		require.Equal(t, int64(0), req.TaxonID)
	})
}

func TestValidHostname(t *testing.T) {
	for _, h := range []string{"Foo", "1abc", "a", "a_b", "", "-ab", "owls.near", "owls near", "öwls"} {
		require.False(t, publish.ValidHostname(h), h)
	}
	for _, h := range []string{"owls-near-me", "a1", "ab", "a-", "frogs2024"} {
		require.True(t, publish.ValidHostname(h), h)
	}
}

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/stretchr/testify/require"
)

type stageErr struct{ stage string }

func (e *stageErr) Error() string { return e.stage }

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, errors.Wrapf(nil, "context %d", 1))
	})

	t.Run("wraps with context", func(t *testing.T) {
		err := errors.Wrapf(errors.ErrInvalidSignature, "verify %s", "cookie")
		require.EqualError(t, err, "verify cookie: invalid signature")
		require.True(t, errors.Is(err, errors.ErrInvalidSignature))
	})

	t.Run("as finds typed error", func(t *testing.T) {
		err := errors.Wrapf(&stageErr{stage: "upload"}, "publish")
		var se *stageErr
		require.True(t, errors.As(err, &se))
		require.Equal(t, "upload", se.stage)
		require.False(t, errors.As(stderrors.New("plain"), &se))
	})
}

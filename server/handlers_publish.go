package server

import (
	"io"
	"net/http"

	"github.com/jrsteele09/nearme-publisher/internal/errors"
	"github.com/jrsteele09/nearme-publisher/publish"
)

const maxPublishBodyBytes = 64 << 10

// PublishHandler runs the publish pipeline for the session user. Every
// outcome is a JSON result; pipeline failures are reported with ok=false.
func (s *Server) PublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, publish.Failure(publish.StageAuthenticate, errors.ErrUnauthenticated.Error(), errors.ErrUnauthenticated))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPublishBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, publish.Failure(publish.StageValidate, "request body could not be read", err))
			return
		}

		res := s.publisher.Publish(r.Context(), session, body)
		writeJSON(w, statusFor(res), res)
	}
}

func statusFor(res publish.Result) int {
	if !res.OK && res.Stage == publish.StageAuthenticate {
		return http.StatusUnauthorized
	}
	return http.StatusOK
}

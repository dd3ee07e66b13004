package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/formrelay/internal/relay"
)

// Forwarder relays form submissions to the report API.
type Forwarder interface {
	Forward(ctx context.Context, sub relay.Submission) (relay.Result, error)
	Preview(sub relay.Submission) (relay.Envelope, string)
}

// SubmitResponse is returned once the report API accepted a submission.
type SubmitResponse struct {
	Method         string `json:"method"`
	UpstreamStatus int    `json:"upstreamStatus"`
}

// PreviewResponse shows what would be sent for a submission.
type PreviewResponse struct {
	Method   string         `json:"method"`
	Envelope relay.Envelope `json:"envelope"`
}

func handleSubmit(logger *slog.Logger, fwd Forwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub relay.Submission
		if err := readJSON(w, r, &sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := fwd.Forward(r.Context(), sub)
		if err != nil {
			attrs := []any{
				"submission_id", sub.ID,
				"method", res.Method,
				"request_id", middleware.GetReqID(r.Context()),
				"error", err,
			}
			// The error carries the report API URL and response body; those
			// stay in the log.
			msg := "forwarding failed"
			var se *relay.StatusError
			if errors.As(err, &se) {
				attrs = append(attrs, "upstream_status", se.StatusCode)
				msg = fmt.Sprintf("forwarding failed: upstream returned status %d", se.StatusCode)
			}
			logger.Error("forwarding submission failed", attrs...)
			writeError(w, http.StatusBadGateway, msg)
			return
		}

		logger.Debug("submission forwarded",
			"submission_id", sub.ID,
			"method", res.Method,
			"players", len(res.Envelope.Data.Players),
			"upstream_status", res.StatusCode,
		)
		writeJSON(w, http.StatusOK, SubmitResponse{
			Method:         res.Method,
			UpstreamStatus: res.StatusCode,
		})
	}
}

func handlePreview(fwd Forwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub relay.Submission
		if err := readJSON(w, r, &sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		env, method := fwd.Preview(sub)
		writeJSON(w, http.StatusOK, PreviewResponse{Method: method, Envelope: env})
	}
}

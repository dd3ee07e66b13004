package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/formrelay/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse map[string]health.Result

// SubmissionRequest documents the trigger payload. Answers are decoded by
// schema.Answers, which the reflector cannot see through.
type SubmissionRequest struct {
	ID        string `json:"id" description:"Form response identifier."`
	Timestamp string `json:"timestamp" description:"Submission time, passed through unchanged."`
	Answers   []any  `json:"answers" description:"Raw answers in question order. Each is a string, a list of strings or null."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Form Relay API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Receives report form submissions and forwards them to the report API.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether the report API endpoint is reachable.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/submissions
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/submissions")
	postSubmit.SetSummary("Relay submission")
	postSubmit.SetDescription("Maps the answers onto a report and sends it to the report API. " +
		"Edits are sent with PUT, new reports with POST.")
	postSubmit.AddReqStructure(SubmissionRequest{})
	postSubmit.AddRespStructure(SubmitResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusTooManyRequests))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postSubmit)

	// POST /api/submissions/preview
	postPreview, _ := r.NewOperationContext(http.MethodPost, "/api/submissions/preview")
	postPreview.SetSummary("Preview submission")
	postPreview.SetDescription("Returns the report and method that would be sent, without sending.")
	postPreview.AddReqStructure(SubmissionRequest{})
	postPreview.AddRespStructure(PreviewResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postPreview.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postPreview)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

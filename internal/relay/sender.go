package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBody = 512

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the report API answers with a non-2xx status.
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s submission: unexpected status %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("%s submission: unexpected status %d: %s", e.Method, e.StatusCode, e.Body)
}

// Sender delivers envelopes to a fixed endpoint.
type Sender struct {
	endpoint string
	client   Doer
}

// NewSender returns a Sender for endpoint. A nil client falls back to
// NewHTTPClient(0).
func NewSender(endpoint string, client Doer) *Sender {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &Sender{endpoint: endpoint, client: client}
}

// NewHTTPClient returns the outbound client. A zero timeout means none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (s *Sender) Endpoint() string { return s.endpoint }

// Send issues exactly one request and returns the response status code.
// There is no retry.
func (s *Sender) Send(ctx context.Context, method string, env Envelope) (int, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("encoding envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending %s %s: %w", method, s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &StatusError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(msg)),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

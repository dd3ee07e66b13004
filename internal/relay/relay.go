package relay

import "context"

// Result describes one forwarded submission.
type Result struct {
	Method     string
	StatusCode int
	Envelope   Envelope
}

// Relay transforms a submission and forwards it.
type Relay struct {
	transformer *Transformer
	sender      *Sender
}

func New(t *Transformer, s *Sender) *Relay {
	return &Relay{transformer: t, sender: s}
}

// Forward sends sub to the report API. Send failures are returned as is.
func (r *Relay) Forward(ctx context.Context, sub Submission) (Result, error) {
	env, method := r.transformer.Transform(sub)

	status, err := r.sender.Send(ctx, method, env)
	return Result{Method: method, StatusCode: status, Envelope: env}, err
}

// Preview transforms sub without sending it.
func (r *Relay) Preview(sub Submission) (Envelope, string) {
	return r.transformer.Transform(sub)
}

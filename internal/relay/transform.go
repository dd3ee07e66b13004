// Package relay turns form submissions into report payloads and forwards
// them to the report API.
package relay

import (
	"net/http"

	"github.com/playperu/formrelay/internal/schema"
)

// Submission is one form response as handed over by the form trigger.
type Submission struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"`
	Answers   schema.Answers `json:"answers"`
}

// Player is a reported player in the outbound payload. BMRconURL is null
// when the reporter left it blank.
type Player struct {
	Name      string  `json:"name"`
	ID        string  `json:"id"`
	BMRconURL *string `json:"bmRconUrl"`
}

type Report struct {
	Token          string   `json:"token"`
	Players        []Player `json:"players"`
	Reasons        []string `json:"reasons"`
	Body           string   `json:"body"`
	AttachmentURLs []string `json:"attachmentUrls"`
}

// Envelope is the request body sent to the report API.
type Envelope struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Data      Report `json:"data"`
}

// Transformer maps raw answers onto an Envelope. A nil schema means the
// layout is detected per submission.
type Transformer struct {
	schema *schema.Schema
}

func NewTransformer(s *schema.Schema) *Transformer {
	return &Transformer{schema: s}
}

// Transform builds the envelope and picks the HTTP method: PUT for edits,
// POST otherwise. It does not validate anything.
func (t *Transformer) Transform(sub Submission) (Envelope, string) {
	s := t.schema
	if s == nil {
		s = schema.Detect(sub.Answers)
	}

	f := s.Extract(sub.Answers)

	players := make([]Player, 0, len(f.Players))
	for _, p := range f.Players {
		players = append(players, Player{
			Name:      p.Name,
			ID:        p.ID,
			BMRconURL: optional(p.RconURL),
		})
	}

	env := Envelope{
		ID:        sub.ID,
		Timestamp: sub.Timestamp,
		Data: Report{
			Token:   f.Token,
			Players: players,
			Reasons: f.Reasons,
			Body:    f.Body,
			// Attachment uploads are disabled on the form.
			AttachmentURLs: []string{},
		},
	}

	method := http.MethodPost
	if f.Edit {
		method = http.MethodPut
	}
	return env, method
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

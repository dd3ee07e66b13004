package relay

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/playperu/formrelay/internal/schema"
)

const (
	token   = "tok123tok123tok123tok1" // 22 chars
	include = "I want to include another player in the report"
)

func exampleAnswers(flag string) schema.Answers {
	return schema.Texts(token, "Alice", "1001", "", "CheatingX;GriefingY", "saw them noclip",
		"", "", "", "", "", "", "", "", "", "", flag)
}

func TestTransformExample(t *testing.T) {
	sub := Submission{ID: "resp-1", Timestamp: "2024-05-01T12:00:00Z", Answers: exampleAnswers("0")}

	env, method := NewTransformer(nil).Transform(sub)

	want := Envelope{
		ID:        "resp-1",
		Timestamp: "2024-05-01T12:00:00Z",
		Data: Report{
			Token:          token,
			Players:        []Player{{Name: "Alice", ID: "1001"}},
			Reasons:        []string{"CheatingX", "GriefingY"},
			Body:           "saw them noclip",
			AttachmentURLs: []string{},
		},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}
	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
}

func TestTransformEditExample(t *testing.T) {
	create, _ := NewTransformer(nil).Transform(Submission{ID: "r", Answers: exampleAnswers("0")})
	edit, method := NewTransformer(nil).Transform(Submission{ID: "r", Answers: exampleAnswers("1")})

	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if diff := cmp.Diff(create, edit); diff != "" {
		t.Errorf("edit payload differs from create (-create +edit):\n%s", diff)
	}
}

func TestTransformMethod(t *testing.T) {
	tests := []struct {
		name    string
		schema  *schema.Schema
		answers schema.Answers
		want    string
	}{
		{"trailing edit", schema.Trailing, exampleAnswers("1"), http.MethodPut},
		{"trailing create", schema.Trailing, exampleAnswers("0"), http.MethodPost},
		{"trailing absent", schema.Trailing, schema.Texts(token, "A", "1", "", "r", "b"), http.MethodPost},
		{"packed edit", schema.Packed, schema.Texts(token+"1", "A", "1", "", "r", "b"), http.MethodPut},
		{"packed create", schema.Packed, schema.Texts(token+"0", "A", "1", "", "r", "b"), http.MethodPost},
		{"detected packed edit", nil, schema.Texts(token+"1", "A", "1", "", "r", "b"), http.MethodPut},
		{"detected trailing edit", nil, exampleAnswers("1"), http.MethodPut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, got := NewTransformer(tt.schema).Transform(Submission{Answers: tt.answers})
			if got != tt.want {
				t.Errorf("method = %s, want %s", got, tt.want)
			}
			if env.Data.Token != token {
				t.Errorf("token = %q, want %q", env.Data.Token, token)
			}
		})
	}
}

func TestTransformAttachmentsAlwaysEmpty(t *testing.T) {
	answers := schema.Texts(token, "A", "1", "", "r", "b", "", "", "", "https://cdn.example/a.png", "0")

	env, _ := NewTransformer(nil).Transform(Submission{Answers: answers})

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Data struct {
			AttachmentURLs json.RawMessage `json:"attachmentUrls"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := string(decoded.Data.AttachmentURLs); got != "[]" {
		t.Errorf("attachmentUrls = %s, want []", got)
	}
}

func TestTransformRconURL(t *testing.T) {
	answers := schema.Texts(token, "Alice", "1001", "https://bm.example/rcon/1", "r", "b",
		include, "Bob", "1002", "", "0")

	env, _ := NewTransformer(schema.Trailing).Transform(Submission{Answers: answers})

	if len(env.Data.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(env.Data.Players))
	}
	if p := env.Data.Players[0]; p.BMRconURL == nil || *p.BMRconURL != "https://bm.example/rcon/1" {
		t.Errorf("primary bmRconUrl = %v, want url", p.BMRconURL)
	}
	if p := env.Data.Players[1]; p.BMRconURL != nil {
		t.Errorf("second bmRconUrl = %q, want nil", *p.BMRconURL)
	}
}

func strPtr(s string) *string { return &s }

func TestTransformCompleteForm(t *testing.T) {
	answers := schema.Texts(
		token, "Alice", "1001", "", "CheatingX", "saw them noclip",
		include, "Bob", "1002", "https://bm.example/rcon/2",
		"", "", "", "",
		"", "", "", "",
		"", "", "", "",
		"1",
	)
	sub := Submission{ID: "resp-2", Timestamp: "ts", Answers: answers}

	for _, s := range []*schema.Schema{nil, schema.Trailing} {
		env, method := NewTransformer(s).Transform(sub)

		want := []Player{
			{Name: "Alice", ID: "1001"},
			{Name: "Bob", ID: "1002", BMRconURL: strPtr("https://bm.example/rcon/2")},
		}
		if diff := cmp.Diff(want, env.Data.Players); diff != "" {
			t.Errorf("players mismatch (-want +got):\n%s", diff)
		}
		if method != http.MethodPut {
			t.Errorf("method = %s, want PUT", method)
		}
	}
}

func TestTransformPackedCompleteFormWithoutFlag(t *testing.T) {
	var answers []string
	answers = append(answers, token, "Alice", "1001", "", "r", "b")
	for _, d := range []string{"2", "3", "4", "5"} {
		answers = append(answers, include, "P"+d, "100"+d, "https://bm.example/rcon/"+d)
	}

	env, method := NewTransformer(nil).Transform(Submission{Answers: schema.Texts(answers...)})

	if len(env.Data.Players) != 5 {
		t.Fatalf("players = %d, want 5", len(env.Data.Players))
	}
	want := Player{Name: "P5", ID: "1005", BMRconURL: strPtr("https://bm.example/rcon/5")}
	if diff := cmp.Diff(want, env.Data.Players[4]); diff != "" {
		t.Errorf("last player mismatch (-want +got):\n%s", diff)
	}
	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
}

func TestEnvelopeJSONFieldNames(t *testing.T) {
	env, _ := NewTransformer(nil).Transform(Submission{ID: "r1", Timestamp: "ts", Answers: exampleAnswers("0")})

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":"r1","timestamp":"ts","data":{"token":"` + token + `",` +
		`"players":[{"name":"Alice","id":"1001","bmRconUrl":null}],` +
		`"reasons":["CheatingX","GriefingY"],"body":"saw them noclip","attachmentUrls":[]}}`
	if got := string(data); got != want {
		t.Errorf("json =\n%s\nwant\n%s", got, want)
	}
}

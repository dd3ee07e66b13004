package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnswersUnmarshal(t *testing.T) {
	var got Answers
	raw := `["tok", null, ["a", "b"], "", []]`
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].String() != "tok" {
		t.Errorf("answer 0 = %q, want tok", got[0].String())
	}
	if !got[1].Absent() {
		t.Errorf("answer 1 should be absent")
	}
	if diff := cmp.Diff([]string{"a", "b"}, got[2].Values()); diff != "" {
		t.Errorf("answer 2 mismatch (-want +got):\n%s", diff)
	}
	if got[3].Absent() || !got[3].Empty() {
		t.Errorf("answer 3 should be present and empty")
	}
	if got[4].Absent() || !got[4].Empty() {
		t.Errorf("answer 4 should be present and empty")
	}
}

func TestAnswerUnmarshalRejectsObjects(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`{"x": 1}`), &a); err == nil {
		t.Fatal("expected error for object answer")
	}
}

func TestAnswerMarshal(t *testing.T) {
	in := Answers{Text("x"), {}, List("a", "b")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(data), `["x",null,["a","b"]]`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestAnswerString(t *testing.T) {
	if got := List("a", "b").String(); got != "a;b" {
		t.Errorf("list string = %q, want a;b", got)
	}
	if got := (Answer{}).String(); got != "" {
		t.Errorf("absent string = %q, want empty", got)
	}
}

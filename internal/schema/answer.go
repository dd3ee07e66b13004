package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is one raw form answer. Text questions carry a single string,
// checkbox questions a list. The zero value is an absent answer.
type Answer struct {
	values []string
	list   bool
}

// Text returns a single-string answer.
func Text(s string) Answer {
	return Answer{values: []string{s}}
}

// List returns a multi-value answer.
func List(values ...string) Answer {
	if values == nil {
		values = []string{}
	}
	return Answer{values: values, list: true}
}

// Absent reports whether the question was not answered at all.
func (a Answer) Absent() bool {
	return a.values == nil
}

// Empty reports whether the answer is absent or carries no non-empty text.
func (a Answer) Empty() bool {
	return a.String() == ""
}

// String flattens the answer to text. Lists are joined with ";" so a
// checkbox answer read as text splits back into the same values.
func (a Answer) String() string {
	return strings.Join(a.values, reasonSep)
}

// Values normalizes the answer to a list: lists are copied, a single string
// is split on ";" and an absent answer yields an empty list.
func (a Answer) Values() []string {
	switch {
	case a.values == nil:
		return []string{}
	case a.list:
		return append([]string{}, a.values...)
	default:
		return strings.Split(a.values[0], reasonSep)
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.values == nil:
		return []byte("null"), nil
	case a.list:
		return json.Marshal(a.values)
	default:
		return json.Marshal(a.values[0])
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty answer")
	}

	switch data[0] {
	case 'n':
		*a = Answer{}
		return nil
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("decoding list answer: %w", err)
		}
		*a = List(vs...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding text answer: %w", err)
		}
		*a = Text(s)
		return nil
	}
}

// Answers is the ordered answer list of one submission.
type Answers []Answer

// Texts builds Answers from plain strings.
func Texts(ss ...string) Answers {
	as := make(Answers, len(ss))
	for i, s := range ss {
		as[i] = Text(s)
	}
	return as
}

// At returns the answer at i, or an absent answer when i is out of range.
func (as Answers) At(i int) Answer {
	if i < 0 || i >= len(as) {
		return Answer{}
	}
	return as[i]
}

// Last returns the final answer, or an absent answer for an empty list.
func (as Answers) Last() Answer {
	return as.At(len(as) - 1)
}

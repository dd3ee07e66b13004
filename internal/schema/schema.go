// Package schema describes the positional layout of the report form and
// extracts report fields from a submission's raw answers.
package schema

import (
	"fmt"
	"strings"
)

const (
	reasonSep = ";"

	// TokenLength is the length of a report token. Under the packed layout
	// the edit flag follows it on the same answer.
	TokenLength = 22

	editFlag = "1"
)

// Role names what a form question holds.
type Role int

const (
	RoleSkip Role = iota
	RoleToken
	RolePlayerName
	RolePlayerID
	RolePlayerRconURL
	RoleReasons
	RoleBody
	// RoleInclude is the "include another player" checkbox that opens a
	// player block. Its value is only used as the block gate.
	RoleInclude
)

func (r Role) String() string {
	switch r {
	case RoleToken:
		return "token"
	case RolePlayerName:
		return "playerName"
	case RolePlayerID:
		return "playerId"
	case RolePlayerRconURL:
		return "playerRconUrl"
	case RoleReasons:
		return "reasons"
	case RoleBody:
		return "body"
	case RoleInclude:
		return "include"
	default:
		return "skip"
	}
}

// FlagSource says where the edit flag lives.
type FlagSource int

const (
	// FlagPacked: the flag is appended to the token answer.
	FlagPacked FlagSource = iota
	// FlagTrailing: the flag is the final answer of the submission.
	FlagTrailing
)

// Schema is an ordered description of the form questions.
type Schema struct {
	Name string
	// Head lists the fixed leading questions. The primary player is read
	// from here.
	Head []Role
	// Stride lists one repeating block of an additional player. Its first
	// role gates the block: an empty answer ends the scan.
	Stride     []Role
	MaxStrides int
	Flag       FlagSource
}

var head = []Role{
	RoleToken,
	RolePlayerName,
	RolePlayerID,
	RolePlayerRconURL,
	RoleReasons,
	RoleBody,
}

var stride = []Role{
	RoleInclude,
	RolePlayerName,
	RolePlayerID,
	RolePlayerRconURL,
}

var (
	// Packed is the form revision that appends the edit flag to the token.
	Packed = &Schema{
		Name:       "packed",
		Head:       head,
		Stride:     stride,
		MaxStrides: 4,
		Flag:       FlagPacked,
	}

	// Trailing is the form revision that sends the edit flag as its own,
	// final answer.
	Trailing = &Schema{
		Name:       "trailing",
		Head:       head,
		Stride:     stride,
		MaxStrides: 4,
		Flag:       FlagTrailing,
	}
)

// Auto is the configuration name that selects Detect per submission.
const Auto = "auto"

// Lookup resolves a configured schema name. Auto returns a nil schema.
func Lookup(name string) (*Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Packed.Name:
		return Packed, nil
	case Trailing.Name:
		return Trailing, nil
	case Auto, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown schema %q", name)
	}
}

// Detect picks the layout a submission was produced with. A token answer
// longer than TokenLength can only come from the packed revision. A complete
// packed form without a flag suffix is recognised by its answer count: it has
// every player block but no trailing flag slot.
func Detect(answers Answers) *Schema {
	if len(answers.At(0).String()) > TokenLength {
		return Packed
	}
	if len(answers) == Packed.Size() {
		return Packed
	}
	return Trailing
}

// Size is the number of answers in a complete submission of the form.
func (s *Schema) Size() int {
	n := len(s.Head) + s.MaxStrides*len(s.Stride)
	if s.Flag == FlagTrailing {
		n++
	}
	return n
}

// Player holds one reported player as read from the form.
type Player struct {
	Name    string
	ID      string
	RconURL string
}

// Fields is the result of extraction.
type Fields struct {
	Token   string
	Players []Player
	Reasons []string
	Body    string
	Edit    bool
}

// Extract reads the report fields out of answers. It never fails: missing
// answers read as empty.
func (s *Schema) Extract(answers Answers) Fields {
	f := Fields{Reasons: []string{}, Edit: s.IsEdit(answers)}

	// The trailing flag slot is never part of the player scan.
	if s.Flag == FlagTrailing && len(answers) > len(s.Head) {
		answers = answers[:len(answers)-1]
	}

	var primary Player
	for i, role := range s.Head {
		s.apply(&f, &primary, role, answers.At(i))
	}
	f.Players = append(f.Players, primary)

	idx := len(s.Head)
	for n := 0; n < s.MaxStrides && len(s.Stride) > 0; n++ {
		if answers.At(idx).Empty() {
			break
		}
		var p Player
		for j, role := range s.Stride {
			s.apply(&f, &p, role, answers.At(idx+j))
		}
		f.Players = append(f.Players, p)
		idx += len(s.Stride)
	}

	return f
}

// EditFlag returns the raw edit flag value, "" when there is none.
func (s *Schema) EditFlag(answers Answers) string {
	if s.Flag == FlagTrailing {
		if len(answers) <= len(s.Head) {
			return ""
		}
		return answers.Last().String()
	}
	tok := answers.At(s.index(RoleToken)).String()
	if len(tok) <= TokenLength {
		return ""
	}
	return tok[TokenLength:]
}

// IsEdit reports whether answers are an edit of an earlier report.
func (s *Schema) IsEdit(answers Answers) bool {
	return s.EditFlag(answers) == editFlag
}

func (s *Schema) apply(f *Fields, p *Player, role Role, a Answer) {
	switch role {
	case RoleToken:
		f.Token = a.String()
		if s.Flag == FlagPacked && len(f.Token) > TokenLength {
			f.Token = f.Token[:TokenLength]
		}
	case RolePlayerName:
		p.Name = a.String()
	case RolePlayerID:
		p.ID = a.String()
	case RolePlayerRconURL:
		p.RconURL = a.String()
	case RoleReasons:
		f.Reasons = a.Values()
	case RoleBody:
		f.Body = a.String()
	}
}

func (s *Schema) index(role Role) int {
	for i, r := range s.Head {
		if r == role {
			return i
		}
	}
	return -1
}

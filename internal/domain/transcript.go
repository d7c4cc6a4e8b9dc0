package domain

import (
	"strings"
	"time"
)

// Role identifies the speaker of a transcript turn.
type Role string

const (
	RoleCaller Role = "caller"
	RoleAgent  Role = "agent"
)

// Turn is one utterance in a conversation.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transcript is the ordered record of a conversation phase. It is a value
// type: Append returns a new transcript and never mutates its receiver, so
// a handler can build turns without touching the live call state.
type Transcript []Turn

// Append returns a new transcript with the given turns added at the end.
func (t Transcript) Append(turns ...Turn) Transcript {
	out := make(Transcript, 0, len(t)+len(turns))
	out = append(out, t...)
	out = append(out, turns...)
	return out
}

// Render formats the transcript as role-prefixed lines for use as
// conversational context in an NLU request.
func (t Transcript) Render() string {
	if len(t) == 0 {
		return ""
	}
	var b strings.Builder
	for i, turn := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
	}
	return b.String()
}

// CallerTurn builds a caller turn stamped now.
func CallerTurn(text string, at time.Time) Turn {
	return Turn{Role: RoleCaller, Text: text, At: at}
}

// AgentTurn builds an agent turn stamped now.
func AgentTurn(text string, at time.Time) Turn {
	return Turn{Role: RoleAgent, Text: text, At: at}
}

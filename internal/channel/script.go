package channel

import (
	"context"
	"io"
)

// ScriptedLine replays a fixed sequence of caller utterances and records
// everything the agent said. It backs the engine tests; a call that asks
// for more turns than the script holds gets io.EOF, the same as a caller
// hanging up.
type ScriptedLine struct {
	Replies []string

	// Prompts records the text of every Prompt call, including empty
	// listens. Said records every Say.
	Prompts []string
	Said    []string

	next   int
	closed bool
}

// NewScriptedLine creates a line that answers each prompt in order.
func NewScriptedLine(replies ...string) *ScriptedLine {
	return &ScriptedLine{Replies: replies}
}

// Prompt records text and returns the next scripted reply.
func (s *ScriptedLine) Prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Prompts = append(s.Prompts, text)
	if s.next >= len(s.Replies) {
		return "", io.EOF
	}
	reply := s.Replies[s.next]
	s.next++
	return reply, nil
}

// Say records the statement.
func (s *ScriptedLine) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Said = append(s.Said, text)
	return nil
}

// Close marks the line released.
func (s *ScriptedLine) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *ScriptedLine) Closed() bool { return s.closed }

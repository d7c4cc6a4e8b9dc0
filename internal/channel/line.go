// Package channel provides the caller I/O line the dialogue engine speaks
// through. How a caller actually reaches the engine (console, the call
// gateway, a test script) is a line implementation detail; the engine only
// ever holds the interface.
package channel

import "context"

// CallerLine is one caller's synchronous line for the duration of a call.
// A line is acquired once per call and closed when the call ends.
type CallerLine interface {
	// Prompt says text to the caller and blocks for their reply. An empty
	// text means listen without asking anything.
	Prompt(ctx context.Context, text string) (string, error)

	// Say speaks a statement that takes no reply.
	Say(ctx context.Context, text string) error

	// Close releases the line.
	Close() error
}

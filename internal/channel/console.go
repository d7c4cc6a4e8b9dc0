package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// ConsoleLine runs a call on a terminal: agent lines are printed, caller
// lines are read one per turn. Used by `tavola call` for local testing of
// a dialogue configuration.
type ConsoleLine struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsoleLine creates a console line over the given reader and writer.
func NewConsoleLine(in io.Reader, out io.Writer) *ConsoleLine {
	return &ConsoleLine{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Prompt prints text (when non-empty) and reads one line from the caller.
func (c *ConsoleLine) Prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if text != "" {
		fmt.Fprintf(c.out, "\n%s\n", text)
	}
	fmt.Fprint(c.out, "\n> ")
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// Say prints a statement without waiting for input.
func (c *ConsoleLine) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\n%s\n", text)
	return nil
}

// Close is a no-op for the console.
func (c *ConsoleLine) Close() error { return nil }

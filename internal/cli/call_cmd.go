package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tavolahq/tavola/internal/channel"
	"github.com/tavolahq/tavola/internal/dialog"
)

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call",
		Short: "Take one call on the terminal",
		Long:  "Runs a full call on stdin/stdout, useful for trying out prompts and config without a telephony bridge.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCfg

			port, err := newPort(cfg)
			if err != nil {
				return err
			}
			history, err := openHistory(cfg)
			if err != nil {
				return err
			}
			if history != nil {
				defer history.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loc := cfg.Engine.Location()
			line := channel.NewConsoleLine(os.Stdin, os.Stdout)
			engine, err := dialog.NewEngine(port, line, cfg.Restaurant, log,
				dialog.WithClock(func() time.Time { return time.Now().In(loc) }))
			if err != nil {
				return err
			}

			rec, runErr := engine.Run(ctx)
			if history != nil {
				if err := history.Save(rec); err != nil {
					log.Error().Err(err).Msg("saving call record failed")
				}
			}

			fmt.Printf("\ncall %s ended: %s (%d turns)\n", rec.ID, rec.Outcome, len(rec.Turns))
			if runErr != nil && !errors.Is(runErr, io.EOF) && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded calls",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistorySearchCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent calls, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(appCfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("call history recording is disabled")
			}
			defer history.Close()

			calls, err := history.List(limit)
			if err != nil {
				return err
			}
			if len(calls) == 0 {
				fmt.Println("no calls recorded")
				return nil
			}
			for _, rec := range calls {
				fmt.Printf("%s  %s  %-12s  %s\n",
					rec.ID,
					rec.StartedAt.Local().Format(time.DateTime),
					rec.Outcome,
					rec.EndedAt.Sub(rec.StartedAt).Round(time.Second),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of calls to list")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <call-id>",
		Short: "Print a call transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(appCfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("call history recording is disabled")
			}
			defer history.Close()

			rec, err := history.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("call %s  %s  %s\n\n", rec.ID, rec.StartedAt.Local().Format(time.DateTime), rec.Outcome)
			for _, turn := range rec.Turns {
				fmt.Printf("%-6s  %s\n", turn.Role, turn.Text)
			}
			return nil
		},
	}
}

func newHistorySearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := openHistory(appCfg)
			if err != nil {
				return err
			}
			if history == nil {
				return fmt.Errorf("call history recording is disabled")
			}
			defer history.Close()

			matches, err := history.Search(args[0], limit)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("no matches")
				return nil
			}
			for _, m := range matches {
				fmt.Printf("%s  %-6s  %s\n", m.CallID, m.Role, m.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of matches")
	return cmd
}

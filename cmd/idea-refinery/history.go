// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-refinery/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently processed ideas",
	Long: `History prints the run ledger: one line per processed idea with its
timestamp, slug, voice style, output folder, and whether the email went out.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	historyCmd.Flags().String("history-dir", "agent/history", "directory holding the run-history database")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	dir, _ := cmd.Flags().GetString("history-dir")

	store, err := history.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No processed ideas recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSLUG\tSTYLE\tEMAIL\tOUTPUT")
	for _, e := range entries {
		email := "no"
		if e.EmailSent {
			email = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Slug, e.VoiceStyle, email, e.OutputDir)
	}
	return tw.Flush()
}

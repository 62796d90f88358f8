package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nao1215/uniscout/internal/config"
	"github.com/nao1215/uniscout/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [university]",
		Short: "Show the results of previous runs",
		Long: `History lists the comparison rows stored by previous runs, newest first.

Examples:
  # Show the latest results of every institution
  uniscout history

  # Show how one institution scored over time
  uniscout history "Universidad Politecnica de Madrid" --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", database.DefaultHistoryLimit,
		"Maximum number of rows to show")
	cmd.Flags().String("cache-dir", config.XDGCacheDir(),
		"Directory holding the results database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}
	var university string
	if len(args) == 1 {
		university = args[0]
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(filepath.Join(dir, database.FileName)); os.IsNotExist(err) {
		fmt.Fprintln(out, "No results yet. Run \"uniscout run\" first.")
		return nil
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dir, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.GetResultHistory(cmd.Context(), university, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"When", "Run", "Mission", "University", "Match %", "Final"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			shortRunID(r.RunID),
			r.MissionID,
			r.Row.University,
			fmt.Sprintf("%.2f", r.Row.MatchPct),
			fmt.Sprintf("%.2f", r.Row.FinalScore),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
	return nil
}

// shortRunID keeps the first block of a UUID.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

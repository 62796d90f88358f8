package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/uniscout/internal/config"
	"github.com/nao1215/uniscout/internal/database"
)

// defaultPurgeAge is the age of cached content removed by purge.
const defaultPurgeAge = 30 * 24 * time.Hour

// NewPurgeCmd creates the purge command.
func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove old downloaded pages and documents",
		Long: `Purge deletes cached page markup and document bytes older than --older-than.

Stage artifacts and result history are kept. The next run downloads the
purged sources again.`,
		Args: cobra.NoArgs,
		RunE: runPurgeCmd,
	}

	cmd.Flags().Duration("older-than", defaultPurgeAge,
		"Remove content fetched before this age")
	cmd.Flags().String("cache-dir", config.XDGCacheDir(),
		"Directory holding the content database")

	return cmd
}

// runPurgeCmd executes the purge command.
func runPurgeCmd(cmd *cobra.Command, _ []string) error {
	age, err := cmd.Flags().GetDuration("older-than")
	if err != nil {
		return err
	}
	if age <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", age)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(filepath.Join(dir, database.FileName)); os.IsNotExist(err) {
		fmt.Fprintln(out, "Nothing to purge.")
		return nil
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dir, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.PurgeContent(cmd.Context(), time.Now().Add(-age))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d cached source(s).\n", n)
	return nil
}

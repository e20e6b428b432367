// ABOUTME: Dbstatus command reporting on the configured database
// ABOUTME: Shows path, entry and keyword counts, file details and backups
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/backup"
	"github.com/spf13/cobra"
)

var dbstatusCmd = &cobra.Command{
	Use:     "dbstatus",
	Aliases: []string{"status"},
	Short:   "Show database status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Database:  %s\n", cfg.DatabaseFilename)
		info, err := os.Stat(cfg.DatabaseFilename)
		if errors.Is(err, fs.ErrNotExist) {
			color.New(color.FgYellow).Fprintln(out, "Status:    not created yet")
			fmt.Fprintln(out, "\nRun 'kaomoji add <kaomoji>' to create it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stat database: %w", err)
		}

		database, err := openDatabase(cfg, false)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "Status:    unreadable (%v)\n", err)
			return err
		}

		fmt.Fprintf(out, "Entries:   %d\n", database.Len())
		fmt.Fprintf(out, "Keywords:  %d distinct\n", len(database.KeywordCounts()))
		fmt.Fprintf(out, "Size:      %d bytes\n", info.Size())
		fmt.Fprintf(out, "Modified:  %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

		backups, err := backup.List(cfg.DatabaseFilename)
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if len(backups) > 0 {
			fmt.Fprintf(out, "Backups:   %d (latest %s)\n", len(backups), backups[0].Time.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintln(out, "Backups:   none")
		}
		if !cfg.Backup {
			color.New(color.FgYellow).Fprintln(out, "Backups are disabled")
		}
		color.New(color.FgGreen).Fprintln(out, "Status:    OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbstatusCmd)
}

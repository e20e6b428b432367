// ABOUTME: Backups subcommand for listing and restoring database snapshots
// ABOUTME: Filters by --since/--until dates in any common format
package cli

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/backup"
	"github.com/spf13/cobra"
)

var (
	backupsSince string
	backupsUntil string
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List and restore database backups",
	Long: `Every command that changes the database first copies the current file to
<database>.<unix-timestamp>.bkp, adding -N for further backups in the same
second.

Examples:
  kaomoji backups list --since 2024-06-01
  kaomoji backups restore latest`,
}

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date: %w", flag, err)
	}
	return &t, nil
}

var backupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		since, err := parseDate("since", backupsSince)
		if err != nil {
			return err
		}
		until, err := parseDate("until", backupsUntil)
		if err != nil {
			return err
		}

		backups, err := backup.List(configFrom(cmd).DatabaseFilename)
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		backups = backup.Filter(backups, since, until)

		out := cmd.OutOrStdout()
		if len(backups) == 0 {
			fmt.Fprintln(out, "No backups")
			return nil
		}
		fmt.Fprintln(out, "Timestamp\tTaken\t\t\tPath")
		fmt.Fprintln(out, "---------\t-----\t\t\t----")
		for _, b := range backups {
			fmt.Fprintf(out, "%s\t%s\t%s\n", b.Stamp(), b.Time.Format("2006-01-02 15:04:05"), b.Path)
		}
		return nil
	},
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <timestamp|latest>",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)

		backups, err := backup.List(cfg.DatabaseFilename)
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		chosen, err := backup.Find(backups, args[0])
		if err != nil {
			return err
		}

		restored, err := backup.Restore(chosen, cfg.DatabaseFilename, cfg.Backup, time.Now())
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", chosen.Path, err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Restored %d entries from %s\n", restored.Len(), chosen.Path)
		return nil
	},
}

func init() {
	backupsListCmd.Flags().StringVar(&backupsSince, "since", "", "Only backups taken at or after this date (any common date format)")
	backupsListCmd.Flags().StringVar(&backupsUntil, "until", "", "Only backups taken at or before this date (any common date format)")

	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	rootCmd.AddCommand(backupsCmd)
}

// ABOUTME: Rm command for deleting kaomoji entries
// ABOUTME: Fails when the kaomoji is not in the database
package cli

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <kaomoji|->",
	Aliases: []string{"remove"},
	Short:   "Remove a kaomoji",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)

		code, err := readCode(cmd, args[0])
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg, false)
		if err != nil {
			return err
		}
		if !database.Exists(code) {
			return fmt.Errorf("%w: kaomoji %q", db.ErrNotFound, code)
		}

		if err := commit(cfg, database, func() error {
			database.Remove(code)
			return nil
		}); err != nil {
			return err
		}
		slog.Info("removed kaomoji", "code", code)

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "Removed %s\n", code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

// ABOUTME: Diff and merge commands comparing the database with another file
// ABOUTME: Diff prints a delta; merge applies the additions
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var (
	diffMode   string
	diffFormat string
)

func diffModeNames() string {
	names := make([]string, len(db.DiffModes))
	for i, m := range db.DiffModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

var diffCmd = &cobra.Command{
	Use:   "diff <other-database>",
	Short: "Compare the database with another database file",
	Long: `Compare the database with another database file.

Modes:
  additions     kaomoji and keywords the other file would add (default)
  exclusive     kaomoji and keywords only this database has
  intersection  kaomoji both have, with their shared keywords
  symmetric     additions and exclusive together`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := db.ParseDiffMode(diffMode)
		if err != nil {
			return err
		}
		database, err := openDatabase(configFrom(cmd), true)
		if err != nil {
			return err
		}
		other, err := db.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}

		delta, err := db.Diff(database, other, mode)
		if err != nil {
			return err
		}
		slog.Debug("computed diff", "mode", mode, "entries", len(delta))

		out := cmd.OutOrStdout()
		if len(delta) == 0 && (diffFormat == formatTable || diffFormat == "") {
			color.New(color.FgGreen).Fprintln(out, "No differences")
			return nil
		}
		return printRecords(out, diffFormat, db.SortedRecords(delta))
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <other-database>",
	Short: "Add the kaomoji and keywords another database file has",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		database, err := openDatabase(cfg, true)
		if err != nil {
			return err
		}
		other, err := db.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}

		delta, err := database.Compare(other)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(delta) == 0 {
			color.New(color.FgGreen).Fprintln(out, "Nothing to merge")
			return nil
		}

		err = commit(cfg, database, func() error {
			for _, add := range db.SortedRecords(delta) {
				if existing, err := database.Get(add.Code()); err == nil {
					if err := existing.AddKeywords(add.Keywords()...); err != nil {
						return err
					}
					continue
				}
				database.Insert(add)
			}
			return nil
		})
		if err != nil {
			return err
		}
		slog.Info("merged database", "from", args[0], "entries", len(delta))

		color.New(color.FgGreen).Fprintf(out, "Merged %d entries from %s\n", len(delta), args[0])
		return printRecords(out, formatTable, db.SortedRecords(delta))
	},
}

func init() {
	diffCmd.Flags().StringVarP(&diffMode, "mode", "m", string(db.DiffAdditions), "Diff mode ("+diffModeNames()+")")
	diffCmd.Flags().StringVarP(&diffFormat, "format", "o", formatTable, "Output format (table, json, yaml)")
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(mergeCmd)
}

// ABOUTME: Keyword editing commands: kwadd, kwrm and edit
// ABOUTME: Mutate the stored record's keyword set and write the database
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var (
	kwaddKeywords string
	kwrmKeywords  string
	editAdd       string
	editRemove    string
)

// editKeywords applies additions and removals to code, creating the record
// when it does not exist.
func editKeywords(cmd *cobra.Command, arg string, add, remove []string) error {
	cfg := configFrom(cmd)

	code, err := readCode(cmd, arg)
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg, true)
	if err != nil {
		return err
	}

	record, err := database.Get(code)
	switch {
	case errors.Is(err, db.ErrNotFound):
		record, err = db.NewRecord(code, nil)
		if err != nil {
			return err
		}
		slog.Info("creating kaomoji", "code", record.Code())
	case err != nil:
		return err
	}

	err = commit(cfg, database, func() error {
		if err := record.AddKeywords(add...); err != nil {
			return err
		}
		record.RemoveKeywords(remove...)
		database.Update(record)
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("updated keywords", "code", record.Code(), "added", len(add), "removed", len(remove))

	out := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(out, "Updated %s\n", record.Code())
	_, err = fmt.Fprint(out, record.Serialize())
	return err
}

func requireKeywords(flag, csv string) ([]string, error) {
	kws := db.ParseKeywords(csv)
	if len(kws) == 0 {
		return nil, fmt.Errorf("%w: --%s needs at least one keyword", db.ErrInvalidArgument, flag)
	}
	return kws, nil
}

var kwaddCmd = &cobra.Command{
	Use:   "kwadd <kaomoji|-> -w <keywords>",
	Short: "Add keywords to a kaomoji, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kws, err := requireKeywords("keywords", kwaddKeywords)
		if err != nil {
			return err
		}
		return editKeywords(cmd, args[0], kws, nil)
	},
}

var kwrmCmd = &cobra.Command{
	Use:   "kwrm <kaomoji|-> -w <keywords>",
	Short: "Remove keywords from a kaomoji, creating it if needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kws, err := requireKeywords("keywords", kwrmKeywords)
		if err != nil {
			return err
		}
		return editKeywords(cmd, args[0], nil, kws)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <kaomoji|-> [--add <keywords>] [--rm <keywords>]",
	Short: "Add and remove keywords in one step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		add := db.ParseKeywords(editAdd)
		remove := db.ParseKeywords(editRemove)
		if len(add) == 0 && len(remove) == 0 {
			return fmt.Errorf("%w: nothing to edit, pass --add or --rm", db.ErrInvalidArgument)
		}
		return editKeywords(cmd, args[0], add, remove)
	},
}

func init() {
	kwaddCmd.Flags().StringVarP(&kwaddKeywords, "keywords", "w", "", "Comma-separated keywords to add")
	kwrmCmd.Flags().StringVarP(&kwrmKeywords, "keywords", "w", "", "Comma-separated keywords to remove")
	editCmd.Flags().StringVar(&editAdd, "add", "", "Comma-separated keywords to add")
	editCmd.Flags().StringVar(&editRemove, "rm", "", "Comma-separated keywords to remove")

	rootCmd.AddCommand(kwaddCmd)
	rootCmd.AddCommand(kwrmCmd)
	rootCmd.AddCommand(editCmd)
}

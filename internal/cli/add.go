// ABOUTME: Add command for creating new kaomoji entries
// ABOUTME: Takes one kaomoji or database lines from stdin; refuses overwrites unless forced
package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var (
	addKeywords string
	addForce    bool
)

var addCmd = &cobra.Command{
	Use:     "add <kaomoji|->",
	Aliases: []string{"a"},
	Short:   "Add a kaomoji",
	Long: `Add a kaomoji with an optional comma-separated keyword list.

Use - to read database lines (kaomoji, tab, keywords) from stdin, one kaomoji
per line. Keywords given with -w are added to every kaomoji. An existing
kaomoji is only replaced with --force; use kwadd to extend its keywords instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)

		records, err := recordsToAdd(cmd, args[0])
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg, true)
		if err != nil {
			return err
		}
		for _, r := range records {
			if database.Exists(r.Code()) && !addForce {
				return fmt.Errorf("%w: %s (use --force to replace it)", db.ErrAlreadyExists, r.Code())
			}
		}

		err = commit(cfg, database, func() error {
			for _, r := range records {
				database.Insert(r)
			}
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range records {
			slog.Info("added kaomoji", "code", r.Code(), "keywords", len(r.Keywords()))
			color.New(color.FgGreen).Fprintf(out, "Added %s\n", r.Code())
			if _, err := fmt.Fprint(out, r.Serialize()); err != nil {
				return err
			}
		}
		return nil
	},
}

// recordsToAdd builds the records named by arg, reading database lines from
// stdin when arg is "-".
func recordsToAdd(cmd *cobra.Command, arg string) ([]*db.Record, error) {
	keywords := db.ParseKeywords(addKeywords)
	if arg != "-" {
		r, err := db.NewRecord(arg, keywords)
		if err != nil {
			return nil, err
		}
		return []*db.Record{r}, nil
	}

	var records []*db.Record
	scanner := bufio.NewScanner(cmd.InOrStdin())
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		r, err := db.ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("stdin:%d: %w", lineNo, err)
		}
		if err := r.AddKeywords(keywords...); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no kaomoji on stdin", db.ErrInvalidArgument)
	}
	return records, nil
}

func init() {
	addCmd.Flags().StringVarP(&addKeywords, "keywords", "w", "", "Comma-separated keywords")
	addCmd.Flags().BoolVar(&addForce, "force", false, "Replace the kaomoji if it already exists")
	rootCmd.AddCommand(addCmd)
}

// ABOUTME: Show command for a single kaomoji with its identity
// ABOUTME: Looks up by code or by decimal/0x identity
package cli

import (
	"fmt"
	"strings"

	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var (
	showID     string
	showFormat string
)

var showCmd = &cobra.Command{
	Use:   "show [kaomoji|-] [--id <identity>]",
	Short: "Show a kaomoji, its identity and reference id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(args) == 0) == (showID == "") {
			return fmt.Errorf("%w: pass either a kaomoji or --id", db.ErrInvalidArgument)
		}
		database, err := openDatabase(configFrom(cmd), false)
		if err != nil {
			return err
		}

		var record *db.Record
		if showID != "" {
			id, err := db.ParseIdentity(showID)
			if err != nil {
				return err
			}
			record, err = database.GetByIdentity(id)
			if err != nil {
				return err
			}
		} else {
			code, err := readCode(cmd, args[0])
			if err != nil {
				return err
			}
			record, err = database.Get(code)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if showFormat != formatTable && showFormat != "" {
			return encode(out, showFormat, viewOf(record, true))
		}
		fmt.Fprintf(out, "Kaomoji:   %s\n", record.Code())
		fmt.Fprintf(out, "Keywords:  %s\n", strings.Join(record.Keywords(), ", "))
		fmt.Fprintf(out, "Identity:  %s\n", record.Identity())
		fmt.Fprintf(out, "SHA-256:   %s\n", record.Identity().Hex())
		fmt.Fprintf(out, "Ref:       %s\n", record.Ref())
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showID, "id", "", "Look up by identity (decimal, or hex with 0x)")
	showCmd.Flags().StringVarP(&showFormat, "format", "o", formatTable, "Output format (table, json, yaml)")
	rootCmd.AddCommand(showCmd)
}

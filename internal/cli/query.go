// ABOUTME: Query command for searching kaomoji by keyword
// ABOUTME: Also the implicit command for `kaomoji <term>`
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var queryFormat string

var queryCmd = &cobra.Command{
	Use:     "query <term>",
	Aliases: []string{"q", "search"},
	Short:   "Search kaomoji by keyword substring",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(configFrom(cmd), false)
		if err != nil {
			return err
		}
		matches := database.Search(strings.Join(args, " "))
		return printRecords(cmd.OutOrStdout(), queryFormat, matches)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "o", formatTable, "Output format (table, json, yaml)")
	rootCmd.AddCommand(queryCmd)
}

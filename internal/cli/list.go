// ABOUTME: List command for displaying every kaomoji
// ABOUTME: Supports table, JSON and YAML output formats
package cli

import (
	"github.com/spf13/cobra"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all kaomoji",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(configFrom(cmd), false)
		if err != nil {
			return err
		}
		return printRecords(cmd.OutOrStdout(), listFormat, database.Records())
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "o", formatTable, "Output format (table, json, yaml)")
	rootCmd.AddCommand(listCmd)
}

// ABOUTME: Config subcommand for inspecting and creating the config file
// ABOUTME: Prints the resolved configuration as TOML
package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/harper/kaomoji/internal/config"
	"github.com/harper/kaomoji/internal/db"
	"github.com/spf13/cobra"
)

var configInitForce bool

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the kaomoji config file",
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationConfigOptional: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath())
		return err
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(configFrom(cmd))
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the default settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationConfigOptional: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%w: %s (use --force to overwrite)", db.ErrAlreadyExists, path)
		}
		if err := config.Save(path, config.Default()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

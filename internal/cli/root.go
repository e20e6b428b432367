// ABOUTME: Root command definition and CLI setup
// ABOUTME: Resolves configuration and logging before any subcommand runs
package cli

import (
	"log/slog"
	"os"
	"slices"

	"github.com/harper/kaomoji/internal/config"
	"github.com/harper/kaomoji/internal/logging"
	"github.com/spf13/cobra"
)

var (
	databasePath string
	configPath   string
	logLevel     string
	noBackup     bool
)

// annotationConfigOptional marks commands that accept a --config file that
// does not exist yet.
const annotationConfigOptional = "kaomoji/config-optional"

var rootCmd = &cobra.Command{
	Use:   "kaomoji",
	Short: "Kaomoji keyword database tool",
	Long: `Kaomoji manages a tab-separated database of kaomoji and their keywords.

Running kaomoji with a term that is not a command searches the keywords:
  kaomoji happy`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		required := path != "" && cmd.Annotations[annotationConfigOptional] == ""
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Resolve(path, required, config.Overrides{
			DatabaseFilename: databasePath,
			NoBackup:         noBackup,
			LogLevel:         logLevel,
		})
		if err != nil {
			return err
		}

		logger, err := newLogger(cmd, cfg.LogLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

// builtinCommands are added by cobra at execution time, so they are not in
// rootCmd.Commands() yet when Execute inspects the arguments.
var builtinCommands = []string{"help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd}

func Execute() error {
	if args := withDefaultCommand(os.Args[1:]); len(args) != len(os.Args)-1 {
		os.Args = append([]string{os.Args[0]}, args...)
	}
	return rootCmd.Execute()
}

// withDefaultCommand turns `kaomoji <term>` into `kaomoji query <term>` when
// the first argument is neither a flag nor a known command.
func withDefaultCommand(args []string) []string {
	if len(args) == 0 {
		return args
	}
	arg := args[0]
	if arg == "" || arg[0] == '-' || slices.Contains(builtinCommands, arg) {
		return args
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == arg || cmd.HasAlias(arg) {
			return args
		}
	}
	return append([]string{"query"}, args...)
}

func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && f == os.Stderr {
		return logging.NewStderr(level)
	}
	return logging.New(cmd.ErrOrStderr(), level, false)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&databasePath, "database", "f", "", "Kaomoji database file (overrides config and $"+config.EnvDatabase+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/kaomoji/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noBackup, "no-backup", false, "Skip the backup taken before changing the database")
}

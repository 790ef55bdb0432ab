// Package cli provides the command-line interface for dbtoolbox.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dbtoolbox/dbtoolbox/internal/config"
	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/gui"
	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
	"github.com/dbtoolbox/dbtoolbox/internal/version"
)

var (
	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command. Without a subcommand it opens the
// GUI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbtoolbox",
		Short: "DB Toolbox - utilities for DesignBuilder simulation output",
		Long: `DB Toolbox ` + version.Version + ` - Built: ` + version.BuildTime + `
Utilities for post-processing DesignBuilder and EnergyPlus output.

GUI Mode (default):
  One tab per tool. Pick a report, extract, inspect and export.

CLI Mode (extract):
  Headless extraction with the result printed as a table.

Every flag can also be set through the environment, e.g.
DBTOOLBOX_OUTPUT_DIR=/tmp/out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			verbose, _ := cmd.Flags().GetBool("verbose")
			mode := "cli"
			if cmd == cmd.Root() {
				mode = "gui"
			}
			logging.SetGlobalLevel(logging.ParseLevel(mode, verbose))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate shell completion scripts for dbtoolbox.

QUICK TEST (temporary, current session only):
  source <(dbtoolbox completion bash)`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			default:
				return rootCmd.GenPowerShellCompletion(out)
			}
		},
	}
	rootCmd.AddCommand(completionCmd)

	// Disable default completion command (we're adding our own above)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// addConfigFlags declares the flags read by config.Load. Only flags the user
// sets override the environment, so the defaults shown here are for help
// output.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("report", config.DefaultReportPath(), "EnergyPlus tabular report (eplustbl.htm)")
	flags.String("output-dir", config.EnergyPlusDir(), "Directory exports are written to")
	flags.String("severity", guard.DefaultSeverity.String(), "Notification style for failures (information, warning, error)")
	flags.Int("columns", resulttree.DefaultColumns, "Minimum number of result columns")
	flags.Bool("summary", true, "Keep only the summary row of each temperature band (--summary=false keeps every period)")
	flags.BoolP("verbose", "v", false, "Verbose output (shows debug messages)")
	flags.Bool("notify", false, "Also send desktop notifications")
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())
	defer cancelFunc()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
// This context will be cancelled when the user presses Ctrl+C.
func GetContext() context.Context {
	if rootContext == nil {
		// Fallback to background context if called before Execute()
		return context.Background()
	}
	return rootContext
}

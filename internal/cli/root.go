// Package cli provides the command-line interface for modshift.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/modshift/modshift/internal/logging"
	"github.com/modshift/modshift/internal/version"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// NewRootCmd creates the root command for CLI mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modshift",
		Short: "ModShift - migrate mod collections between manager instances",
		Long: `ModShift ` + version.Version + ` - Built: ` + version.BuildTime + `
Tool for migrating game-mod collections between mod-manager instances.

CLI Mode (default):
  Command-line interface for scanning instances and running
  migrations with console progress bars.

GUI Mode (--gui flag):
  Graphical interface with a live progress dialog.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newCheckUpdateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI with Ctrl-C cancelling the root context.
func Execute() error {
	rootContext, cancelFunc = signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancelFunc()

	return NewRootCmd().ExecuteContext(rootContext)
}

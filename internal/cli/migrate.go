package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/modshift/modshift/internal/events"
	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/migrate"
	"github.com/modshift/modshift/internal/notify"
	"github.com/modshift/modshift/internal/progress"
)

func newMigrateCmd() *cobra.Command {
	var notifyFlag bool

	cmd := &cobra.Command{
		Use:   "migrate <source-dir> <destination-dir>",
		Short: "Copy every mod from one instance into another",
		Long: `Migrate copies all mods from the source instance into the
destination instance, creating it if needed. Progress is rendered as
console bars when stdout is a terminal, and as plain log lines otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := migrate.OpenInstance(args[0])
			if err != nil {
				return err
			}
			dest := &migrate.Instance{Name: "destination", Root: args[1]}

			ui := progress.NewConsoleUI()
			engine := migrate.NewEngine(logger)

			// Print engine log events above the progress bars
			logCh := engine.Events().Subscribe(events.EventLog)
			logDone := make(chan struct{})
			go func() {
				defer close(logDone)
				for ev := range logCh {
					if le, ok := ev.(*events.LogEvent); ok {
						fmt.Fprintln(ui.Writer(), le.Message)
					}
				}
			}()

			summary, err := engine.Migrate(cmd.Context(), source, dest, ui)
			engine.Events().Close()
			<-logDone
			ui.Finish()

			notifier := notify.NewNotifier(notifyFlag, logger)
			if err != nil {
				notifier.MigrationFailed(err.Error())
				return err
			}

			printSummary(summary)
			notifier.MigrationComplete(summary.Mods, summary.Bytes,
				format.Clock(summary.Elapsed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&notifyFlag, "notify", false, "Send a desktop notification when done")

	return cmd
}

// printSummary writes the post-migration report. Color output degrades
// to plain text automatically when stdout is not a terminal.
func printSummary(s *migrate.Summary) {
	green := color.New(color.FgGreen, color.Bold)
	bold := color.New(color.Bold)

	green.Println("Migration complete")
	fmt.Printf("  Mods:    %s\n", bold.Sprintf("%d", s.Mods))
	fmt.Printf("  Files:   %s\n", bold.Sprintf("%d", s.Files))
	fmt.Printf("  Size:    %s\n", bold.Sprint(format.Bytes(s.Bytes)))
	fmt.Printf("  Elapsed: %s\n", bold.Sprint(format.Clock(s.Elapsed)))
}

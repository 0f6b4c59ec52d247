package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/modshift/modshift/internal/update"
	"github.com/modshift/modshift/internal/version"
)

func newCheckUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-update",
		Short: "Check whether a newer release is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			release, available, err := update.Check(cmd.Context(), version.Version)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}

			if !available {
				fmt.Printf("modshift %s is up to date.\n", version.Version)
				return nil
			}

			color.New(color.FgYellow, color.Bold).Printf("Update available: %s\n", release.Version)
			fmt.Printf("You are running %s.\nDownload: %s\n", version.Version, release.URL)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("modshift %s (built %s)\n", version.Version, version.BuildTime)
		},
	}
}

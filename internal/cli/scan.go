package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modshift/modshift/internal/format"
	"github.com/modshift/modshift/internal/migrate"
	"github.com/modshift/modshift/internal/progress"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <instance-dir>",
		Short: "List the mods of an instance with file counts and sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, err := migrate.OpenInstance(args[0])
			if err != nil {
				return err
			}

			bar := progress.NewCLIProgress()
			bar.Start(-1, "Scanning "+instance.Name)
			mods, err := instance.Mods()
			bar.Finish()
			if err != nil {
				return err
			}

			if len(mods) == 0 {
				fmt.Println("No mods found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MOD\tFILES\tSIZE")
			for _, mod := range mods {
				fmt.Fprintf(w, "%s\t%d\t%s\n", mod.Name, mod.FileCount, format.Bytes(mod.Size))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d %s, %s total\n", len(mods),
				format.Pluralize("mod", int64(len(mods))),
				format.Bytes(migrate.TotalSize(mods)))
			return nil
		},
	}
}

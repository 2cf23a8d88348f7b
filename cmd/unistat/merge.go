package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"unistat/internal/statsdir"
)

var mergeHeaderColor = color.New(color.FgCyan, color.Bold)

var mergeCmd = &cobra.Command{
	Use:   "merge [dir]",
	Short: "Sum the counter snapshots in a stats directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := statsDirArg(cmd, args)
		if err != nil {
			return err
		}
		arts, err := statsdir.Scan(dir)
		if err != nil {
			return err
		}
		merged, err := statsdir.MergeStats(arts)
		if err != nil {
			return err
		}
		if merged.Runs == 0 {
			return fmt.Errorf("no stats artifacts in %s", dir)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d runs)\n", mergeHeaderColor.Sprint("counters"), merged.Runs)
		for _, name := range merged.CounterNames() {
			fmt.Fprintf(out, "  %-44s %12d\n", name, merged.Counters[name])
		}
		if len(merged.Timers) > 0 {
			fmt.Fprintf(out, "%s (mean seconds)\n", mergeHeaderColor.Sprint("timers"))
			for _, name := range merged.TimerNames() {
				fmt.Fprintf(out, "  %-44s %12.6f\n", name, merged.Timers[name])
			}
		}
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"unistat/internal/statsdir"
)

var eventsHeaderColor = color.New(color.FgGreen, color.Bold)

var eventsCmd = &cobra.Command{
	Use:   "events [dir]",
	Short: "Summarize the event traces in a stats directory",
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

		out := cmd.OutOrStdout()
		found := false
		for _, a := range arts {
			if a.Kind != statsdir.KindTrace {
				continue
			}
			found = true
			rows, err := statsdir.ReadTrace(a.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s (%d rows)\n", eventsHeaderColor.Sprint("trace"), a.Path, len(rows))
			for _, s := range statsdir.SummarizeTrace(rows) {
				fmt.Fprintf(out, "  %-24s %4d rows (%d entry, %d exit)\n",
					s.EventName, s.Rows, s.Entries, s.Exits)
				for _, counter := range s.Counters() {
					fmt.Fprintf(out, "    %-42s %+12d\n", counter, s.NetDelta[counter])
				}
			}
		}
		if !found {
			return fmt.Errorf("no trace artifacts in %s", dir)
		}
		return nil
	},
}

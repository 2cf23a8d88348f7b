package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"unistat/internal/prof"
	"unistat/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "unistat",
	Short: "Compiler statistics reporter and stats-directory tools",
	Long:  `unistat collects per-run compiler counters and trace events, and post-processes the stats directories they are written to`,
}

var profSession *prof.Session

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(selfcheckCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "config file (default unistat.toml if present)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to the given file")

	rootCmd.PersistentPreRunE = setupRun
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		profSession.Stop()
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := rootCmd.Execute(); err != nil {
		profSession.Stop()
		os.Exit(1)
	}
}

// setupRun applies the persistent flags shared by every command: color
// handling and the optional profilers.
func setupRun(cmd *cobra.Command, args []string) error {
	setupColor(cmd)
	return setupProfiling(cmd)
}

func setupColor(cmd *cobra.Command) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

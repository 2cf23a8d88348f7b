package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"unistat/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested profilers, storing the session for PersistentPostRun to stop.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(prof.Options{
		CPUPath:   cpuProfile,
		MemPath:   memProfile,
		TracePath: tracePath,
	})
	if err != nil {
		return err
	}
	profSession = session
	return nil
}

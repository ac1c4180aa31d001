package main

import (
	"github.com/spf13/cobra"

	"lamb/internal/prof"
)

var activeProfile *prof.Profile

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	opts := prof.Options{}
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("exec-trace")
	if !opts.Enabled() {
		return nil
	}
	p, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = p
	return nil
}

func stopProfiling() error {
	if activeProfile == nil {
		return nil
	}
	p := activeProfile
	activeProfile = nil
	return p.Stop()
}

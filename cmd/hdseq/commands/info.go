package commands

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/Amansingh-afk/hdseq/internal/version"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print version, CPU and effective configuration",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			s := a.settings()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", version.AppName, version.Current)
			fmt.Fprintf(out, "cpu:      %s (%d logical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores)
			fmt.Fprintf(out, "popcnt:   %t\n", cpuid.CPU.Supports(cpuid.POPCNT))
			fmt.Fprintf(out, "dims:     %d\n", s.Dims)
			fmt.Fprintf(out, "ngram:    %d\n", s.NGram)
			fmt.Fprintf(out, "symbols:  %d\n", s.Symbols)
			fmt.Fprintf(out, "k:        %d\n", s.K)
			fmt.Fprintf(out, "seed:     %d\n", s.Seed)
			fmt.Fprintf(out, "workers:  %d\n", s.Workers)
			if a.cfgRead {
				fmt.Fprintf(out, "config:   %s\n", a.v.ConfigFileUsed())
			}
			return nil
		}),
	}
}

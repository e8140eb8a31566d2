package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyforge/polyforge/internal/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Inspect the compilation target catalog",
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s %-10s %-16s %-12s %s\n",
			"ID", "PLATFORM", "FRAMEWORK", "LANGUAGE", "MATURITY")
		for _, tgt := range target.Builtin().List() {
			fmt.Fprintf(out, "%-20s %-10s %-16s %-12s %s\n",
				tgt.ID, tgt.Platform, tgt.Framework, tgt.Language, tgt.Maturity)
		}
		return nil
	},
}

var targetsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one target's baseline, capabilities, and optimizations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, err := target.Builtin().Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s/%s, %s, %s)\n",
			tgt.ID, tgt.Platform, tgt.Framework, tgt.Language, tgt.Maturity)
		fmt.Fprintf(out, "\nBaseline:\n")
		fmt.Fprintf(out, "  compile time   %.0f ms\n", tgt.Baseline.CompileTimeMS)
		fmt.Fprintf(out, "  bundle size    %.0f KB\n", tgt.Baseline.BundleSizeKB)
		fmt.Fprintf(out, "  execution      %.1f ops/ms\n", tgt.Baseline.ExecOpsPerMS)
		fmt.Fprintf(out, "  memory         %.0f MB\n", tgt.Baseline.MemoryMB)
		fmt.Fprintf(out, "  startup        %.0f ms\n", tgt.Baseline.StartupMS)

		if len(tgt.Capabilities) > 0 {
			fmt.Fprintf(out, "\nCapabilities:\n")
			for _, c := range tgt.Capabilities {
				fmt.Fprintf(out, "  %-24s latency %.1f ms, throughput %.0f\n",
					c.Name, c.Profile.LatencyMS, c.Profile.Throughput)
			}
		}
		if len(tgt.Optimizations) > 0 {
			fmt.Fprintf(out, "\nOptimizations:\n")
			for _, o := range tgt.Optimizations {
				fmt.Fprintf(out, "  %-12s %-8s %s\n", o.Category, o.Impact, o.Technique)
			}
		}
		return nil
	},
}

func init() {
	targetsCmd.AddCommand(targetsListCmd)
	targetsCmd.AddCommand(targetsShowCmd)
	rootCmd.AddCommand(targetsCmd)
}

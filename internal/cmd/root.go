package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polyforge",
	Short: "Cross-target specification compiler",
	Long: `polyforge compiles one platform-agnostic application specification into
multiple target-specific projects (web, mobile, backend) and produces an
evidence report proving that business logic, data models, and contracts
stay consistent across every generated output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command under the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

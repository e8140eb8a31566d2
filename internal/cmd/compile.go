package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyforge/polyforge/internal/errors"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/report"
	"github.com/polyforge/polyforge/internal/run"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

var compileFlags struct {
	targets       []string
	out           string
	format        string
	concurrency   int
	targetTimeout time.Duration
	runTimeout    time.Duration
	verbose       bool
}

var compileCmd = &cobra.Command{
	Use:   "compile <spec-file>",
	Short: "Compile a specification against the target catalog",
	Long: `Compile reads a specification document, generates one project per
enabled target, validates and cross-analyzes the outputs, and renders
the evidence report. By default every catalog target is enabled; use
--target to restrict the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(compileFlags.format)
		if err != nil {
			return err
		}

		logger := log.Production()
		if compileFlags.verbose {
			logger = log.Development()
		}
		log.SetDefaultLogger(logger)

		s, err := spec.Load(args[0])
		if err != nil {
			return err
		}

		opts := run.DefaultOptions()
		if compileFlags.concurrency > 0 {
			opts.Concurrency = compileFlags.concurrency
		}
		if compileFlags.targetTimeout > 0 {
			opts.TargetTimeout = compileFlags.targetTimeout
		}
		opts.RunTimeout = compileFlags.runTimeout

		orchestrator := run.New(logger, target.Builtin(), opts)
		res, runErr := orchestrator.Run(cmd.Context(), s, compileFlags.targets)
		if res == nil {
			// Failed run: no usable report, only the terminal error.
			return runErr
		}

		r := report.Build(res)
		if err := report.Write(cmd.OutOrStdout(), r, format); err != nil {
			return err
		}
		if compileFlags.out != "" {
			if err := writeReportFile(r, compileFlags.out); err != nil {
				return err
			}
		}

		if runErr != nil {
			return runErr
		}
		if failed := res.FailedTargets(); len(failed) > 0 {
			return errors.New(errors.ErrCodeTargetsFailed,
				fmt.Sprintf("%d of %d targets failed", len(failed), len(res.Targets))).
				WithSuggestion("Inspect the per-target findings in the evidence report")
		}
		return nil
	},
}

// writeReportFile persists the report next to the terminal rendering,
// picking the format from the file extension.
func writeReportFile(r *report.EvidenceReport, path string) error {
	format := report.FormatYAML
	if len(path) > 5 && path[len(path)-5:] == ".json" {
		format = report.FormatJSON
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed,
			fmt.Sprintf("failed to write report to %s", path), err)
	}
	defer f.Close()
	return report.Write(f, r, format)
}

func init() {
	compileCmd.Flags().StringArrayVarP(&compileFlags.targets, "target", "t", nil,
		"target id to compile (repeatable; default: all catalog targets)")
	compileCmd.Flags().StringVarP(&compileFlags.out, "out", "o", "",
		"write the evidence report to a file (.json or .yaml)")
	compileCmd.Flags().StringVar(&compileFlags.format, "format", "text",
		"report format on stdout: text, json, or yaml")
	compileCmd.Flags().IntVar(&compileFlags.concurrency, "concurrency", 0,
		"maximum concurrent target tasks (default: CPU-friendly bound)")
	compileCmd.Flags().DurationVar(&compileFlags.targetTimeout, "target-timeout", 0,
		"time budget for a single target task")
	compileCmd.Flags().DurationVar(&compileFlags.runTimeout, "run-timeout", 0,
		"time budget for the whole run (0 = unbounded)")
	compileCmd.Flags().BoolVarP(&compileFlags.verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(compileCmd)
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"field-comparator/core/compare"
	"field-comparator/core/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare [rule...]",
	Short: "Run comparison rules",
	Long: `Runs the named rules, or every enabled rule when no names are given, and
prints the run report as JSON. Exits with an error when any rule failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		export, _ := cmd.Flags().GetBool("export")
		if all && len(args) > 0 {
			return errors.New("--all cannot be combined with rule names")
		}

		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.close()

		startTime := time.Now()
		var results []*compare.Result
		if len(args) == 0 {
			results = app.runner.RunAll(cmd.Context())
		} else {
			results, err = app.runner.RunNamed(cmd.Context(), args)
			if err != nil {
				return err
			}
		}

		r := report.New(uuid.New().String(), results)
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))

		if export {
			exp, err := app.exporter()
			if err != nil {
				return err
			}
			if exp == nil {
				return errors.New("report export is disabled (set report.enabled)")
			}
			if _, err := exp.Export(cmd.Context(), r); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}
		}

		app.logger.Info("Comparison finished",
			zap.String("run_id", r.RunID),
			zap.Int("rules", r.Summary.Rules),
			zap.Int("failed", r.Summary.Failed),
			zap.Int("differences", r.Summary.Differences),
			zap.Duration("execution_time", time.Since(startTime)))

		if r.Summary.Failed > 0 {
			return fmt.Errorf("%d of %d rules failed", r.Summary.Failed, r.Summary.Rules)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Bool("all", false, "Run every enabled rule")
	compareCmd.Flags().Bool("export", false, "Upload the report to object storage")
}

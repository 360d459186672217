// Command panelsolve loads a scheduling configuration, prechecks it,
// solves it at a chosen refinement level, and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/campusflow/panelsched/internal/logging"
	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/precheck"
	"github.com/campusflow/panelsched/pkg/schedule"
)

// exitCode maps a solve outcome onto a process exit status: 0 for a usable
// schedule, 2 for INFEASIBLE/MODEL_INVALID/UNKNOWN. Exit 1 is reserved for
// configuration/precheck errors, handled before solve ever runs.
func exitCode(status string) int {
	switch status {
	case "OPTIMAL", "FEASIBLE":
		return 0
	default: // INFEASIBLE, MODEL_INVALID, UNKNOWN
		return 2
	}
}

func main() {
	var (
		level    string
		logMode  string
		logLevel string
		skipWarn bool
		status   int
	)

	root := &cobra.Command{
		Use:   "panelsolve [config.json]",
		Short: "Solve a final-year-project panel assessment schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Mode(logMode), logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open config: %w", err)
			}
			defer f.Close()

			cfg, err := config.Load(f)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			report := precheck.Run(cfg)
			logPrecheck(logger, report)
			if report.HasErrors() && !skipWarn {
				var combined error
				for _, finding := range report.Findings {
					if finding.Severity == precheck.SeverityError {
						combined = multierr.Append(combined, errors.New(finding.Message))
					}
				}
				return fmt.Errorf("config failed precheck: %w", combined)
			}

			res, err := schedule.Solve(cmd.Context(), cfg, level)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}

			status = exitCode(string(res.Status))
			return nil
		},
	}

	root.Flags().StringVar(&level, "level", "slice3", "refinement level: slice1, slice2 or slice3")
	root.Flags().StringVar(&logMode, "log-mode", "production", "logging mode: production or development")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&skipWarn, "ignore-precheck-errors", false, "solve even if precheck reports errors")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(status)
}

func logPrecheck(logger *zap.Logger, report precheck.Report) {
	for _, f := range report.Findings {
		fields := []zap.Field{zap.String("code", f.Code)}
		if f.Severity == precheck.SeverityError {
			logger.Error(f.Message, fields...)
		} else {
			logger.Warn(f.Message, fields...)
		}
	}
}

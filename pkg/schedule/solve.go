// Package schedule is the public entry point: given a validated
// config.Config and a refinement level, Solve builds and solves the
// constraint model and returns a result.SolveResult.
package schedule

import (
	"context"
	"fmt"

	"github.com/campusflow/panelsched/internal/solver"
	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/result"
)

// ErrUnknownLevel is returned by Solve when level does not name one of the
// three recognised refinement stages.
var ErrUnknownLevel = fmt.Errorf("schedule: level must be one of slice1, slice2, slice3")

// Solve is the single public entry point: it resolves level, builds
// the model for cfg at that level, runs the search (bounded by
// cfg.Constraints.Solver.MaxTimeInSeconds) and extracts a SolveResult. It
// does not run precheck.Run itself — callers that want readable diagnoses
// of a bad config should call that first.
func Solve(ctx context.Context, cfg *config.Config, level string) (result.SolveResult, error) {
	lvl, err := solver.ParseLevel(level)
	if err != nil {
		return result.SolveResult{}, ErrUnknownLevel
	}

	outcome, err := solver.Run(ctx, cfg, lvl)
	if err != nil {
		return result.SolveResult{}, err
	}

	return solver.Extract(outcome, cfg, lvl), nil
}

package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/campusflow/panelsched/internal/cpsat"
	"github.com/campusflow/panelsched/pkg/config"
)

// Level selects which stage of the model the staged refinement builds:
// slice1 checks placement feasibility alone, slice2 adds the
// panel-assignment constraints, slice3 adds the full soft objective. Each
// level is a strict superset of the one before it, so a model infeasible
// at slice1 is infeasible at every later level too.
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
)

// ParseLevel maps the configured level name onto Level, accepting both the
// sliceN spelling and the numeric/"full" aliases.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "slice1", "1":
		return Level1, nil
	case "slice2", "2":
		return Level2, nil
	case "slice3", "3", "full":
		return Level3, nil
	default:
		return 0, fmt.Errorf("solver: unknown level %q", s)
	}
}

func (l Level) String() string {
	switch l {
	case Level1:
		return "slice1"
	case Level2:
		return "slice2"
	case Level3:
		return "slice3"
	default:
		return "unknown"
	}
}

// Outcome bundles everything the extractor (extract.go) needs to turn a
// solve into a result.SolveResult.
type Outcome struct {
	Index *Index
	Vars  *Vars
	Model *cpsat.Model
	cpsat.Result
}

// Run builds the model for level and solves it. It applies fast paths for
// degenerate configurations (empty project set, no timeslots, insufficient
// capacity, an oversized panel) before falling back to full search, since
// those are decidable in closed form without ever invoking the
// backtracking solver.
func Run(ctx context.Context, cfg *config.Config, level Level) (*Outcome, error) {
	idx, err := BuildIndex(
		idsOf(cfg.TimeSlots, func(t config.TimeSlot) string { return t.ID }),
		idsOf(cfg.Lecturers, func(l config.Lecturer) string { return l.ID }),
		idsOf(cfg.Students, func(s config.Student) string { return s.ID }),
		idsOf(cfg.Projects, func(p config.Project) string { return p.ID }),
	)
	if err != nil {
		return nil, err
	}

	P, T, R, L := len(idx.ProjectIDs), len(idx.SlotIDs), cfg.Constraints.Rooms, len(idx.LecturerIDs)

	if P == 0 {
		m := cpsat.NewModel()
		return &Outcome{Index: idx, Vars: &Vars{}, Model: m, Result: cpsat.Result{
			Status: cpsat.StatusOptimal, Assignment: []bool{}, ObjectiveValid: true,
		}}, nil
	}
	if T == 0 || R*T < P {
		m := cpsat.NewModel()
		return &Outcome{Index: idx, Vars: &Vars{}, Model: m, Result: cpsat.Result{
			Status: cpsat.StatusInfeasible,
		}}, nil
	}
	if cfg.Constraints.PanelSize > L {
		m := cpsat.NewModel()
		return &Outcome{Index: idx, Vars: &Vars{}, Model: m, Result: cpsat.Result{
			Status: cpsat.StatusModelInvalid,
		}}, nil
	}

	m := cpsat.NewModel()
	v := DeclareVariables(m, idx, R, cfg.Constraints.PanelSize, level)
	EmitHardConstraints(m, cfg, idx, v, level)

	var eval cpsat.EvalFunc
	switch level {
	case Level1, Level2:
		eval = EvalCompactnessOnly(v)
	case Level3:
		eval = EvalWeighted(v, idx, cfg)
	}

	params := cpsat.Params{
		MaxTime:    time.Duration(cfg.Constraints.Solver.MaxTimeInSeconds * float64(time.Second)),
		NumWorkers: cfg.Constraints.Solver.NumWorkers,
	}
	res := m.Solve(ctx, params, eval, true)
	return &Outcome{Index: idx, Vars: v, Model: m, Result: res}, nil
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

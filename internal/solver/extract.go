package solver

import (
	"fmt"

	"github.com/campusflow/panelsched/internal/cpsat"
	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/result"
)

func statusFrom(s cpsat.Status) result.Status {
	switch s {
	case cpsat.StatusOptimal:
		return result.StatusOptimal
	case cpsat.StatusFeasible:
		return result.StatusFeasible
	case cpsat.StatusInfeasible:
		return result.StatusInfeasible
	case cpsat.StatusModelInvalid:
		return result.StatusModelInvalid
	default:
		return result.StatusUnknown
	}
}

// Extract turns a solved Outcome into the public result.SolveResult,
// resolving every boolean variable back into ids through idx. A schedule
// and diagnostics are only populated for Optimal/Feasible outcomes; any
// other outcome carries an explanatory Message instead.
func Extract(o *Outcome, cfg *config.Config, level Level) result.SolveResult {
	out := result.SolveResult{
		Status:         statusFrom(o.Result.Status),
		Level:          level.String(),
		NumConflicts:   o.Result.NumConflicts,
		WallTimeMillis: o.Result.WallTime.Milliseconds(),
	}

	if o.Result.Status != cpsat.StatusOptimal && o.Result.Status != cpsat.StatusFeasible {
		out.Message = fmt.Sprintf("No feasible schedule (%s).", level)
		return out
	}

	if o.Result.ObjectiveValid {
		out.ObjectiveValue = o.Result.ObjectiveValue
	}

	assignment := o.Result.Assignment
	v := o.Vars
	idx := o.Index

	entries := make([]result.ScheduleEntry, 0, v.NumProjects)
	for p := 0; p < v.NumProjects; p++ {
		t, r := resolvedSlot(v, assignment, p)
		entry := result.ScheduleEntry{
			ProjectID:  idx.ProjectIDs[p],
			TimeSlotID: idx.SlotIDs[t],
			RoomIndex:  r,
		}
		for l := 0; l < v.NumLecturers; l++ {
			if p < len(v.Y) && assignment[v.Y[p][l]] {
				entry.PanelistIDs = append(entry.PanelistIDs, idx.LecturerIDs[l])
			}
		}
		entries = append(entries, entry)
	}
	out.Schedule = entries
	out.Diagnostics = BuildDiagnostics(v, idx, cfg, assignment)

	return out
}

func resolvedSlot(v *Vars, assignment []bool, p int) (t, r int) {
	for t := 0; t < v.NumSlots; t++ {
		for r := 0; r < v.NumRooms; r++ {
			if assignment[v.X[p][t][r]] {
				return t, r
			}
		}
	}
	return 0, 0
}

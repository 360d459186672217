package solver

import (
	"github.com/campusflow/panelsched/internal/cpsat"
	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/result"
)

// assignedSlot returns the timeslot index project p is assigned to in a
// complete, hard-feasible assignment. Exactly one (t,r) pair is true for p.
func assignedSlot(v *Vars, assignment []bool, p int) int {
	for t := 0; t < v.NumSlots; t++ {
		for r := 0; r < v.NumRooms; r++ {
			if assignment[v.X[p][t][r]] {
				return t
			}
		}
	}
	return 0
}

// lastT is the compactness term: the index of the latest timeslot any
// project uses.
func lastT(v *Vars, assignment []bool) int {
	last := 0
	for p := 0; p < v.NumProjects; p++ {
		if t := assignedSlot(v, assignment, p); t > last {
			last = t
		}
	}
	return last
}

// lunchPenalty counts projects scheduled in a lunch timeslot.
func lunchPenalty(v *Vars, idx *Index, cfg *config.Config, assignment []bool) int {
	lunch := make(map[int]bool, len(cfg.Constraints.LunchSlotIDs))
	for _, slotID := range cfg.Constraints.LunchSlotIDs {
		if t, ok := idx.SlotIDToIdx[slotID]; ok {
			lunch[t] = true
		}
	}
	count := 0
	for p := 0; p < v.NumProjects; p++ {
		if lunch[assignedSlot(v, assignment, p)] {
			count++
		}
	}
	return count
}

// lecturerLoads counts, per lecturer, how many panels they sit on.
func lecturerLoads(v *Vars, assignment []bool) []int {
	loads := make([]int, v.NumLecturers)
	for l := 0; l < v.NumLecturers; l++ {
		for p := 0; p < v.NumProjects; p++ {
			for t := 0; t < v.NumSlots; t++ {
				for r := 0; r < v.NumRooms; r++ {
					if assignment[v.Z[p][l][t][r]] {
						loads[l]++
					}
				}
			}
		}
	}
	return loads
}

// workloadImbalance is max(count_l) - min(count_l) over every lecturer,
// including those who sit on no panel at all.
func workloadImbalance(loads []int) int {
	if len(loads) == 0 {
		return 0
	}
	min, max := loads[0], loads[0]
	for _, c := range loads[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return max - min
}

// EvalCompactnessOnly is the slice1/slice2 objective: minimise last_t alone,
// with no weighting applied. This mirrors the reference solver, which calls
// model.minimize(last_t) unconditionally at those levels regardless of the
// configured weights (see DESIGN.md).
func EvalCompactnessOnly(v *Vars) cpsat.EvalFunc {
	return func(assignment []bool) int64 {
		return int64(lastT(v, assignment))
	}
}

// EvalWeighted is the slice3 objective: the weighted sum of compactness,
// lunch penalty and workload imbalance, skipping any term whose configured
// weight is zero.
func EvalWeighted(v *Vars, idx *Index, cfg *config.Config) cpsat.EvalFunc {
	w := cfg.Constraints.Weights
	return func(assignment []bool) int64 {
		var total int64
		if w.Span != 0 {
			total += int64(w.Span) * int64(lastT(v, assignment))
		}
		if w.Lunch != 0 {
			total += int64(w.Lunch) * int64(lunchPenalty(v, idx, cfg, assignment))
		}
		if w.WorkloadBalance != 0 {
			total += int64(w.WorkloadBalance) * int64(workloadImbalance(lecturerLoads(v, assignment)))
		}
		return total
	}
}

// BuildDiagnostics computes the full soft-objective breakdown for a
// complete assignment, regardless of which Eval* function drove the search.
func BuildDiagnostics(v *Vars, idx *Index, cfg *config.Config, assignment []bool) *result.Diagnostics {
	loads := lecturerLoads(v, assignment)
	byLecturer := make(map[string]int, len(loads))
	for l, count := range loads {
		byLecturer[idx.LecturerIDs[l]] = count
	}
	return &result.Diagnostics{
		Span:              lastT(v, assignment),
		LunchPenalty:      lunchPenalty(v, idx, cfg, assignment),
		WorkloadImbalance: workloadImbalance(loads),
		LoadByLecturer:    byLecturer,
	}
}

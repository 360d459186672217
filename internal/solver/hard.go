package solver

import (
	"github.com/campusflow/panelsched/internal/cpsat"
	"github.com/campusflow/panelsched/pkg/config"
)

// dateOfSlot maps each timeslot index to its calendar date, used by the
// per-day panel cap below.
func dateOfSlot(cfg *config.Config) []string {
	dates := make([]string, len(cfg.TimeSlots))
	for i, t := range cfg.TimeSlots {
		dates[i] = t.Date
	}
	return dates
}

// EmitHardConstraints posts every hard constraint onto m using the
// variables in v. panelSize and mustIncludeSupervisor come from
// cfg.Constraints; idx resolves every id referenced by cfg into the
// positions v is indexed by. At Level1 only the placement constraints are
// posted; panel-assignment constraints are added from Level2 up.
func EmitHardConstraints(m *cpsat.Model, cfg *config.Config, idx *Index, v *Vars, level Level) {
	P, T, R, L := v.NumProjects, v.NumSlots, v.NumRooms, v.NumLecturers

	// Every project is assigned exactly one (timeslot, room).
	for p := 0; p < P; p++ {
		var all []cpsat.BoolVar
		for t := 0; t < T; t++ {
			all = append(all, v.X[p][t]...)
		}
		m.AddExactlyOne(all)
	}

	// A room holds at most one project per timeslot.
	for t := 0; t < T; t++ {
		for r := 0; r < R; r++ {
			var col []cpsat.BoolVar
			for p := 0; p < P; p++ {
				col = append(col, v.X[p][t][r])
			}
			m.AddAtMostOne(col)
		}
	}

	// A project cannot run in a timeslot any of its students can't attend.
	for p, proj := range cfg.Projects {
		for _, sid := range proj.StudentIDs {
			student, ok := lookupStudent(cfg, sid)
			if !ok {
				continue
			}
			for _, slotID := range student.UnavailableSlotIDs {
				t, ok := idx.SlotIDToIdx[slotID]
				if !ok {
					continue
				}
				for r := 0; r < R; r++ {
					m.Fix(v.X[p][t][r], false)
				}
			}
		}
	}

	if level == Level1 {
		return
	}

	// Panel size is exactly constraints.panel_size.
	for p := 0; p < P; p++ {
		m.AddExactlyK(v.Y[p], cfg.Constraints.PanelSize)
	}

	// z[p][l][t][r] is true exactly when project p is placed at (t,r) and
	// lecturer l sits on its panel.
	for p := 0; p < P; p++ {
		for l := 0; l < L; l++ {
			for t := 0; t < T; t++ {
				for r := 0; r < R; r++ {
					m.AddBoolAnd(v.Z[p][l][t][r], v.X[p][t][r], v.Y[p][l])
				}
			}
		}
	}

	// The supervisor sits on their own project's panel.
	if cfg.Constraints.MustIncludeSupervisor {
		for p, proj := range cfg.Projects {
			l, ok := idx.LecturerIDToIdx[proj.SupervisorLecturerID]
			if !ok {
				continue // precheck.Run already flags this as an error
			}
			m.Fix(v.Y[p][l], true)
		}
	}

	// A lecturer can only sit on a panel in a timeslot they are available
	// for. An empty AvailableSlotIDs means available everywhere.
	for l, lecturer := range cfg.Lecturers {
		if len(lecturer.AvailableSlotIDs) == 0 {
			continue
		}
		available := make(map[int]bool, len(lecturer.AvailableSlotIDs))
		for _, slotID := range lecturer.AvailableSlotIDs {
			if t, ok := idx.SlotIDToIdx[slotID]; ok {
				available[t] = true
			}
		}
		for t := 0; t < T; t++ {
			if available[t] {
				continue
			}
			for p := 0; p < P; p++ {
				for r := 0; r < R; r++ {
					m.Fix(v.Z[p][l][t][r], false)
				}
			}
		}
	}

	// A lecturer sits on at most one panel per timeslot.
	for l := 0; l < L; l++ {
		for t := 0; t < T; t++ {
			var cell []cpsat.BoolVar
			for p := 0; p < P; p++ {
				cell = append(cell, v.Z[p][l][t]...)
			}
			m.AddAtMostOne(cell)
		}
	}

	// A lecturer sits on at most max_per_day panels on any single date,
	// and at most max_total panels overall (see DESIGN.md's Open Question
	// resolution for max_total).
	dates := dateOfSlot(cfg)
	for l, lecturer := range cfg.Lecturers {
		if lecturer.MaxPerDay != nil {
			byDate := make(map[string][]cpsat.BoolVar)
			for t := 0; t < T; t++ {
				for p := 0; p < P; p++ {
					byDate[dates[t]] = append(byDate[dates[t]], v.Z[p][l][t]...)
				}
			}
			for _, vars := range byDate {
				m.AddSumLessOrEqual(vars, *lecturer.MaxPerDay)
			}
		}
		if lecturer.MaxTotal != nil {
			var all []cpsat.BoolVar
			for p := 0; p < P; p++ {
				for t := 0; t < T; t++ {
					all = append(all, v.Z[p][l][t]...)
				}
			}
			m.AddSumLessOrEqual(all, *lecturer.MaxTotal)
		}
	}
}

func lookupStudent(cfg *config.Config, id string) (*config.Student, bool) {
	for i := range cfg.Students {
		if cfg.Students[i].ID == id {
			return &cfg.Students[i], true
		}
	}
	return nil, false
}

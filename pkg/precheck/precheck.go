// Package precheck inspects a config.Config for structural problems before
// it reaches the core, so callers get a readable diagnosis instead of an
// opaque MODEL_INVALID or INFEASIBLE. It is grounded on the reference
// solver's precheck pass, which runs the same inspections ahead of model
// construction rather than folding them into the constraint model itself.
package precheck

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/campusflow/panelsched/pkg/config"
)

// Severity classifies a single finding.
type Severity string

const (
	SeverityError   Severity = "error"   // would make the model infeasible or invalid
	SeverityWarning Severity = "warning" // structurally sound but likely to produce a poor schedule
)

// Finding is one precheck observation.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report collects every Finding produced by Run.
type Report struct {
	Findings []Finding `json:"findings"`
}

// HasErrors reports whether any Finding is SeverityError.
func (r Report) HasErrors() bool {
	return lo.SomeBy(r.Findings, func(f Finding) bool { return f.Severity == SeverityError })
}

func (r *Report) errorf(code, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(code, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Run performs every structural sanity check ahead of model construction
// and returns the accumulated Report. It never mutates cfg.
func Run(cfg *config.Config) Report {
	var r Report

	slotIDs := idSet(lo.Map(cfg.TimeSlots, func(t config.TimeSlot, _ int) string { return t.ID }))
	lecturerIDs := idSet(lo.Map(cfg.Lecturers, func(l config.Lecturer, _ int) string { return l.ID }))
	studentIDs := idSet(lo.Map(cfg.Students, func(s config.Student, _ int) string { return s.ID }))
	projectIDs := idSet(lo.Map(cfg.Projects, func(p config.Project, _ int) string { return p.ID }))

	checkDuplicates(&r, "timeslot", lo.Map(cfg.TimeSlots, func(t config.TimeSlot, _ int) string { return t.ID }))
	checkDuplicates(&r, "lecturer", lo.Map(cfg.Lecturers, func(l config.Lecturer, _ int) string { return l.ID }))
	checkDuplicates(&r, "student", lo.Map(cfg.Students, func(s config.Student, _ int) string { return s.ID }))
	checkDuplicates(&r, "project", lo.Map(cfg.Projects, func(p config.Project, _ int) string { return p.ID }))

	if len(cfg.TimeSlots) == 0 {
		r.errorf("no_timeslots", "no timeslots defined")
	}
	if len(cfg.Projects) == 0 {
		r.warnf("no_projects", "no projects to schedule")
	}

	for _, p := range cfg.Projects {
		if p.SupervisorLecturerID == "" {
			r.errorf("missing_supervisor", "project %q has no supervisor_lecturer_id", p.ID)
		} else if !lecturerIDs[p.SupervisorLecturerID] {
			r.errorf("unknown_supervisor", "project %q references unknown lecturer %q", p.ID, p.SupervisorLecturerID)
		}
		if len(p.StudentIDs) == 0 {
			r.warnf("project_no_students", "project %q has no students", p.ID)
		}
		for _, sid := range p.StudentIDs {
			if !studentIDs[sid] {
				r.errorf("unknown_student", "project %q references unknown student %q", p.ID, sid)
			}
		}
	}

	for _, l := range cfg.Lecturers {
		for _, sid := range l.AvailableSlotIDs {
			if !slotIDs[sid] {
				r.errorf("unknown_slot_ref", "lecturer %q references unknown timeslot %q", l.ID, sid)
			}
		}
	}
	for _, s := range cfg.Students {
		for _, sid := range s.UnavailableSlotIDs {
			if !slotIDs[sid] {
				r.errorf("unknown_slot_ref", "student %q references unknown timeslot %q", s.ID, sid)
			}
		}
	}
	for _, sid := range cfg.Constraints.LunchSlotIDs {
		if !slotIDs[sid] {
			r.errorf("unknown_slot_ref", "lunch_slot_ids references unknown timeslot %q", sid)
		}
	}
	_ = projectIDs

	if cfg.Constraints.PanelSize > len(cfg.Lecturers) {
		r.errorf("panel_size_too_large", "panel_size %d exceeds the number of lecturers (%d)", cfg.Constraints.PanelSize, len(cfg.Lecturers))
	}

	capacity := cfg.Constraints.Rooms * len(cfg.TimeSlots)
	if len(cfg.Projects) > capacity {
		r.errorf("insufficient_capacity", "%d projects but only %d room-timeslot combinations (%d rooms x %d timeslots)",
			len(cfg.Projects), capacity, cfg.Constraints.Rooms, len(cfg.TimeSlots))
	}

	for _, l := range cfg.Lecturers {
		if len(l.AvailableSlotIDs) > 0 && len(l.AvailableSlotIDs) < cfg.Constraints.PanelSize {
			r.warnf("lecturer_thin_availability", "lecturer %q is available for only %d timeslot(s), less than panel_size %d",
				l.ID, len(l.AvailableSlotIDs), cfg.Constraints.PanelSize)
		}
	}

	return r
}

func idSet(ids []string) map[string]bool {
	return lo.SliceToMap(ids, func(id string) (string, bool) { return id, true })
}

func checkDuplicates(r *Report, kind string, ids []string) {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	for id, count := range seen {
		if count > 1 {
			r.errorf("duplicate_id", "duplicate %s id %q appears %d times", kind, id, count)
		}
	}
}

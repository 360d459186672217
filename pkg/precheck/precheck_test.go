package precheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/precheck"
)

func sampleConfig() *config.Config {
	return &config.Config{
		TimeSlots: []config.TimeSlot{{ID: "t1", Date: "2026-06-01", Start: "09:00", End: "09:30"}},
		Lecturers: []config.Lecturer{{ID: "lec1"}},
		Students:  []config.Student{{ID: "s1"}},
		Projects: []config.Project{
			{ID: "p1", StudentIDs: []string{"s1"}, SupervisorLecturerID: "lec1"},
		},
		Constraints: config.Constraints{Rooms: 1, PanelSize: 1, MustIncludeSupervisor: true},
	}
}

func hasCode(r precheck.Report, code string) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestRunCleanConfigHasNoErrors(t *testing.T) {
	r := precheck.Run(sampleConfig())
	assert.False(t, r.HasErrors())
}

func TestRunFlagsDuplicateIDs(t *testing.T) {
	cfg := sampleConfig()
	cfg.Lecturers = append(cfg.Lecturers, config.Lecturer{ID: "lec1"})
	r := precheck.Run(cfg)
	assert.True(t, r.HasErrors())
	assert.True(t, hasCode(r, "duplicate_id"))
}

func TestRunFlagsUnknownSupervisor(t *testing.T) {
	cfg := sampleConfig()
	cfg.Projects[0].SupervisorLecturerID = "ghost"
	r := precheck.Run(cfg)
	assert.True(t, hasCode(r, "unknown_supervisor"))
}

func TestRunFlagsMissingSupervisor(t *testing.T) {
	cfg := sampleConfig()
	cfg.Projects[0].SupervisorLecturerID = ""
	r := precheck.Run(cfg)
	assert.True(t, hasCode(r, "missing_supervisor"))
}

func TestRunFlagsInsufficientCapacity(t *testing.T) {
	cfg := sampleConfig()
	cfg.Projects = append(cfg.Projects, config.Project{ID: "p2", SupervisorLecturerID: "lec1"})
	r := precheck.Run(cfg)
	assert.True(t, hasCode(r, "insufficient_capacity"))
}

func TestRunFlagsPanelSizeTooLarge(t *testing.T) {
	cfg := sampleConfig()
	cfg.Constraints.PanelSize = 5
	r := precheck.Run(cfg)
	assert.True(t, hasCode(r, "panel_size_too_large"))
}

func TestRunWarnsOnProjectWithNoStudents(t *testing.T) {
	cfg := sampleConfig()
	cfg.Projects[0].StudentIDs = nil
	r := precheck.Run(cfg)
	assert.True(t, hasCode(r, "project_no_students"))
	assert.False(t, r.HasErrors())
}

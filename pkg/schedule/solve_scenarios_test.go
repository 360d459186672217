package schedule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/panelsched/pkg/config"
	"github.com/campusflow/panelsched/pkg/result"
	"github.com/campusflow/panelsched/pkg/schedule"
)

// The scenarios below exercise the end-to-end solve path: trivial
// placement, a student blocking a slot, mandatory supervisor membership,
// lecturer-availability shaping a panel, lunch-slot avoidance under a
// weighted objective, and capacity infeasibility.

func scenarioATimeslots() []config.TimeSlot {
	return []config.TimeSlot{
		{ID: "TS1", Date: "2026-01-01", Start: "09:00", End: "09:30"},
		{ID: "TS2", Date: "2026-01-01", Start: "09:30", End: "10:00"},
	}
}

func scenarioALecturers() []config.Lecturer {
	return []config.Lecturer{
		{ID: "L1", AvailableSlotIDs: []string{"TS1", "TS2"}},
		{ID: "L2", AvailableSlotIDs: []string{"TS1", "TS2"}},
	}
}

func scenarioAConfig() *config.Config {
	return &config.Config{
		TimeSlots: scenarioATimeslots(),
		Lecturers: scenarioALecturers(),
		Students:  []config.Student{{ID: "S1"}},
		Projects: []config.Project{
			{ID: "P1", SupervisorLecturerID: "L1", StudentIDs: []string{"S1"}},
			{ID: "P2", SupervisorLecturerID: "L2"},
		},
		Constraints: config.Constraints{
			Rooms: 1, PanelSize: 2, MustIncludeSupervisor: true,
			Solver: config.SolverParams{MaxTimeInSeconds: 5},
		},
	}
}

func TestScenarioATriviallyFeasibleSlice1(t *testing.T) {
	cfg := scenarioAConfig()
	res, err := schedule.Solve(context.Background(), cfg, "slice1")
	require.NoError(t, err)
	require.Contains(t, []result.Status{result.StatusOptimal, result.StatusFeasible}, res.Status)
	require.Len(t, res.Schedule, 2)

	seen := map[string]bool{}
	lastIdx := -1
	slotIdx := map[string]int{"TS1": 0, "TS2": 1}
	for _, e := range res.Schedule {
		key := e.TimeSlotID + "|" + string(rune('0'+e.RoomIndex))
		assert.False(t, seen[key], "room/timeslot pair reused: %s", key)
		seen[key] = true
		if idx := slotIdx[e.TimeSlotID]; idx > lastIdx {
			lastIdx = idx
		}
	}
	assert.Equal(t, 1, lastIdx, "last_t should be TS2's index")
}

func TestScenarioBStudentBlocksASlot(t *testing.T) {
	cfg := scenarioAConfig()
	cfg.Students[0].UnavailableSlotIDs = []string{"TS1"}

	res, err := schedule.Solve(context.Background(), cfg, "slice1")
	require.NoError(t, err)
	require.Contains(t, []result.Status{result.StatusOptimal, result.StatusFeasible}, res.Status)

	for _, e := range res.Schedule {
		if e.ProjectID == "P1" {
			assert.Equal(t, "TS2", e.TimeSlotID)
		}
	}
}

func TestScenarioCSupervisorMustBeOnPanel(t *testing.T) {
	cfg := scenarioAConfig()
	res, err := schedule.Solve(context.Background(), cfg, "slice2")
	require.NoError(t, err)
	require.Contains(t, []result.Status{result.StatusOptimal, result.StatusFeasible}, res.Status)

	supervisorOf := map[string]string{"P1": "L1", "P2": "L2"}
	for _, e := range res.Schedule {
		assert.Contains(t, e.PanelistIDs, supervisorOf[e.ProjectID])
	}
}

func TestScenarioDLecturerAvailabilityShapesPanel(t *testing.T) {
	cfg := scenarioAConfig()
	cfg.Lecturers = append(cfg.Lecturers, config.Lecturer{ID: "L3", AvailableSlotIDs: []string{"TS2"}})

	res, err := schedule.Solve(context.Background(), cfg, "slice2")
	require.NoError(t, err)
	require.Contains(t, []result.Status{result.StatusOptimal, result.StatusFeasible}, res.Status)

	for _, e := range res.Schedule {
		if e.TimeSlotID == "TS1" {
			assert.NotContains(t, e.PanelistIDs, "L3")
		}
	}
}

func TestScenarioELunchAvoidance(t *testing.T) {
	cfg := &config.Config{
		TimeSlots: []config.TimeSlot{
			{ID: "TS1", Date: "2026-01-01", Start: "09:00", End: "09:30"},
			{ID: "TS2", Date: "2026-01-01", Start: "12:00", End: "12:30"},
			{ID: "TS3", Date: "2026-01-01", Start: "13:00", End: "13:30"},
		},
		Lecturers: []config.Lecturer{
			{ID: "L1", AvailableSlotIDs: []string{"TS1", "TS2", "TS3"}},
			{ID: "L2", AvailableSlotIDs: []string{"TS1", "TS2", "TS3"}},
			{ID: "L3", AvailableSlotIDs: []string{"TS1", "TS2", "TS3"}},
		},
		Projects: []config.Project{
			{ID: "P1", SupervisorLecturerID: "L1"},
			{ID: "P2", SupervisorLecturerID: "L2"},
		},
		Constraints: config.Constraints{
			Rooms: 2, PanelSize: 2, MustIncludeSupervisor: true,
			LunchSlotIDs: []string{"TS2"},
			Weights:      config.Weights{Span: 0, WorkloadBalance: 0, Lunch: 50},
			Solver:       config.SolverParams{MaxTimeInSeconds: 5},
		},
	}

	res, err := schedule.Solve(context.Background(), cfg, "slice3")
	require.NoError(t, err)
	require.Equal(t, result.StatusOptimal, res.Status)
	require.NotNil(t, res.Diagnostics)
	assert.Equal(t, 0, res.Diagnostics.LunchPenalty)
	for _, e := range res.Schedule {
		assert.NotEqual(t, "TS2", e.TimeSlotID)
	}
}

func TestScenarioFInfeasibleByCapacity(t *testing.T) {
	cfg := &config.Config{
		TimeSlots: []config.TimeSlot{{ID: "TS1", Date: "2026-01-01", Start: "09:00", End: "09:30"}},
		Lecturers: []config.Lecturer{{ID: "L1"}},
		Projects: []config.Project{
			{ID: "P1", SupervisorLecturerID: "L1"},
			{ID: "P2", SupervisorLecturerID: "L1"},
		},
		Constraints: config.Constraints{Rooms: 1, PanelSize: 1, MustIncludeSupervisor: true},
	}
	res, err := schedule.Solve(context.Background(), cfg, "slice3")
	require.NoError(t, err)
	assert.Equal(t, result.StatusInfeasible, res.Status)
}

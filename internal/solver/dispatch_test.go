package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/panelsched/internal/cpsat"
	"github.com/campusflow/panelsched/internal/solver"
	"github.com/campusflow/panelsched/pkg/config"
)

func twoSlotTwoProjectConfig() *config.Config {
	maxPerDay := 1
	return &config.Config{
		TimeSlots: []config.TimeSlot{
			{ID: "t1", Date: "2026-06-01", Start: "09:00", End: "09:30"},
			{ID: "t2", Date: "2026-06-02", Start: "09:00", End: "09:30"},
		},
		Lecturers: []config.Lecturer{{ID: "lec1", MaxPerDay: &maxPerDay}},
		Projects: []config.Project{
			{ID: "p1", SupervisorLecturerID: "lec1"},
			{ID: "p2", SupervisorLecturerID: "lec1"},
		},
		Constraints: config.Constraints{
			Rooms: 2, PanelSize: 1, MustIncludeSupervisor: true,
			Solver: config.SolverParams{MaxTimeInSeconds: 5},
		},
	}
}

// A single lecturer supervising (and therefore panelling) two projects,
// capped at one panel per day, forces the two projects onto the two
// distinct dates the timeslots span: H9 rules out both landing on the
// same date even though each date has spare room capacity.
func TestH9PerDayCapIsEnforced(t *testing.T) {
	cfg := twoSlotTwoProjectConfig()

	outcome, err := solver.Run(context.Background(), cfg, solver.Level2)
	require.NoError(t, err)
	require.Equal(t, cpsat.StatusOptimal, outcome.Result.Status)

	res := solver.Extract(outcome, cfg, solver.Level2)
	require.Len(t, res.Schedule, 2)
	assert.NotEqual(t, res.Schedule[0].TimeSlotID, res.Schedule[1].TimeSlotID)
}

func TestLevel1StripsDownToPlacementOnly(t *testing.T) {
	cfg := twoSlotTwoProjectConfig()
	outcome, err := solver.Run(context.Background(), cfg, solver.Level1)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Vars.NumLecturers)
	assert.Equal(t, cpsat.StatusOptimal, outcome.Result.Status)
}

func TestParseLevelRoundTrips(t *testing.T) {
	for _, s := range []string{"slice1", "slice2", "slice3"} {
		lvl, err := solver.ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, lvl.String())
	}
	_, err := solver.ParseLevel("slice4")
	assert.Error(t, err)
}

// Package config decodes the scheduling configuration document consumed by
// the core. The core uses its types but never calls Load: it operates on an
// already-validated *Config that it only reads.
package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// TimeSlot is one bookable examination slot. Identity is ID; the order of
// Config.TimeSlots is the canonical chronological order used by compactness
// scoring and by callers presenting results.
type TimeSlot struct {
	ID    string `json:"id" validate:"required"`
	Date  string `json:"date" validate:"required"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
	Label string `json:"label,omitempty"`
}

// Lecturer is a panel-eligible examiner.
type Lecturer struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name"`
	AvailableSlotIDs []string `json:"available_slot_ids,omitempty"`
	MaxPerDay        *int     `json:"max_per_day,omitempty" validate:"omitempty,gt=0"`
	MaxTotal         *int     `json:"max_total,omitempty" validate:"omitempty,gt=0"`
}

// Student is linked to Project by id only, never embedded.
type Student struct {
	ID                 string   `json:"id" validate:"required"`
	Name               string   `json:"name"`
	UnavailableSlotIDs []string `json:"unavailable_slot_ids,omitempty"`
}

// Project is the unit that must be scheduled exactly once.
type Project struct {
	ID                   string   `json:"id" validate:"required"`
	Title                string   `json:"title"`
	StudentIDs           []string `json:"student_ids,omitempty"`
	SupervisorLecturerID string   `json:"supervisor_lecturer_id,omitempty"`
}

// Weights are the non-negative soft-objective coefficients.
type Weights struct {
	Span            int `json:"span" validate:"gte=0"`
	WorkloadBalance int `json:"workload_balance" validate:"gte=0"`
	Lunch           int `json:"lunch" validate:"gte=0"`
}

// SolverParams configures the backend's time and worker budget.
type SolverParams struct {
	MaxTimeInSeconds float64 `json:"max_time_in_seconds" validate:"gte=0"`
	NumWorkers       int     `json:"num_workers" validate:"gte=0"`
}

// defaultWeights and defaultSolverParams hold the baseline defaults applied
// when a document omits these sections.
func defaultWeights() Weights {
	return Weights{Span: 1, WorkloadBalance: 10, Lunch: 3}
}

func defaultSolverParams() SolverParams {
	return SolverParams{MaxTimeInSeconds: 10.0, NumWorkers: 0}
}

// Constraints holds the rooms/panel/objective configuration.
type Constraints struct {
	Rooms                 int          `json:"rooms" validate:"gte=1"`
	PanelSize             int          `json:"panel_size" validate:"gte=1"`
	MustIncludeSupervisor bool         `json:"must_include_supervisor"`
	LunchSlotIDs          []string     `json:"lunch_slot_ids,omitempty"`
	Weights               Weights      `json:"weights"`
	Solver                SolverParams `json:"solver"`
}

// Config is the validated scheduling configuration record, read-only by the
// core. It is produced by Load and handed to schedule.Solve as a pointer
// that the core only reads.
type Config struct {
	Meta        map[string]any `json:"meta,omitempty"`
	TimeSlots   []TimeSlot     `json:"timeslots" validate:"dive"`
	Lecturers   []Lecturer     `json:"lecturers" validate:"dive"`
	Students    []Student      `json:"students" validate:"dive"`
	Projects    []Project      `json:"projects" validate:"dive"`
	Constraints Constraints    `json:"constraints"`
}

// document mirrors Config but with every constraints field optional, so
// Load can tell "absent" apart from "zero value" before applying defaults.
type document struct {
	Meta      map[string]any `json:"meta"`
	TimeSlots []TimeSlot     `json:"timeslots"`
	Lecturers []Lecturer     `json:"lecturers"`
	Students  []Student      `json:"students"`
	Projects  []Project      `json:"projects"`

	Constraints *struct {
		Rooms                 *int     `json:"rooms"`
		PanelSize             *int     `json:"panel_size"`
		MustIncludeSupervisor *bool    `json:"must_include_supervisor"`
		LunchSlotIDs          []string `json:"lunch_slot_ids"`
		Weights               *struct {
			Span            *int `json:"span"`
			WorkloadBalance *int `json:"workload_balance"`
			Lunch           *int `json:"lunch"`
		} `json:"weights"`
		Solver *struct {
			MaxTimeInSeconds *float64 `json:"max_time_in_seconds"`
			NumWorkers       *int     `json:"num_workers"`
			// NumSearchWorkers is the legacy field name: honoured only
			// when NumWorkers is absent, for backward compatibility.
			NumSearchWorkers *int `json:"num_search_workers"`
		} `json:"solver"`
	} `json:"constraints"`
}

var validate = validator.New()

// Load decodes a configuration document from r, applies the defaults
// above, and validates its shape. It does not run the domain-level
// Precheck (pkg/precheck) — callers should run that separately before
// invoking the core.
func Load(r io.Reader) (*Config, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg := &Config{
		Meta:      doc.Meta,
		TimeSlots: doc.TimeSlots,
		Lecturers: doc.Lecturers,
		Students:  doc.Students,
		Projects:  doc.Projects,
		Constraints: Constraints{
			Rooms:                 1,
			PanelSize:             2,
			MustIncludeSupervisor: true,
			Weights:               defaultWeights(),
			Solver:                defaultSolverParams(),
		},
	}

	if doc.Constraints != nil {
		c := doc.Constraints
		if c.Rooms != nil {
			cfg.Constraints.Rooms = *c.Rooms
		}
		if c.PanelSize != nil {
			cfg.Constraints.PanelSize = *c.PanelSize
		}
		if c.MustIncludeSupervisor != nil {
			cfg.Constraints.MustIncludeSupervisor = *c.MustIncludeSupervisor
		}
		cfg.Constraints.LunchSlotIDs = c.LunchSlotIDs

		if c.Weights != nil {
			if c.Weights.Span != nil {
				cfg.Constraints.Weights.Span = *c.Weights.Span
			}
			if c.Weights.WorkloadBalance != nil {
				cfg.Constraints.Weights.WorkloadBalance = *c.Weights.WorkloadBalance
			}
			if c.Weights.Lunch != nil {
				cfg.Constraints.Weights.Lunch = *c.Weights.Lunch
			}
		}

		if c.Solver != nil {
			if c.Solver.MaxTimeInSeconds != nil {
				cfg.Constraints.Solver.MaxTimeInSeconds = *c.Solver.MaxTimeInSeconds
			}
			switch {
			case c.Solver.NumWorkers != nil:
				cfg.Constraints.Solver.NumWorkers = *c.Solver.NumWorkers
			case c.Solver.NumSearchWorkers != nil:
				cfg.Constraints.Solver.NumWorkers = *c.Solver.NumSearchWorkers
			}
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

// Lecturer looks up a lecturer by id, returning (nil, false) if unknown.
func (c *Config) Lecturer(id string) (*Lecturer, bool) {
	for i := range c.Lecturers {
		if c.Lecturers[i].ID == id {
			return &c.Lecturers[i], true
		}
	}
	return nil, false
}

// Package solver builds and solves the boolean constraint model behind a
// single schedule.Solve call: it maps config.Config into index bijections
// and cpsat.BoolVar handles, emits the hard placement/panel constraints and
// the soft objective, and extracts a result.SolveResult from the
// cpsat.Result that comes back.
package solver

import "fmt"

// Index holds the four id<->position bijections every other component in
// this package addresses variables through, so that "project 3" always
// means the same project for the lifetime of a single solve.
type Index struct {
	SlotIDToIdx     map[string]int
	LecturerIDToIdx map[string]int
	StudentIDToIdx  map[string]int
	ProjectIDToIdx  map[string]int

	SlotIDs     []string
	LecturerIDs []string
	StudentIDs  []string
	ProjectIDs  []string
}

// DuplicateIDError reports that two entities of the same kind share an id.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("solver: duplicate %s id %q", e.Kind, e.ID)
}

func buildBijection(kind string, ids []string) (map[string]int, error) {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, exists := m[id]; exists {
			return nil, &DuplicateIDError{Kind: kind, ID: id}
		}
		m[id] = i
	}
	return m, nil
}

// BuildIndex constructs the four bijections in declaration order. It
// returns a *DuplicateIDError if any id is repeated within its own kind;
// cross-kind collisions (e.g. a lecturer and a student sharing an id) are
// not an error since they are never compared against each other.
func BuildIndex(slotIDs, lecturerIDs, studentIDs, projectIDs []string) (*Index, error) {
	slots, err := buildBijection("timeslot", slotIDs)
	if err != nil {
		return nil, err
	}
	lecturers, err := buildBijection("lecturer", lecturerIDs)
	if err != nil {
		return nil, err
	}
	students, err := buildBijection("student", studentIDs)
	if err != nil {
		return nil, err
	}
	projects, err := buildBijection("project", projectIDs)
	if err != nil {
		return nil, err
	}
	return &Index{
		SlotIDToIdx:     slots,
		LecturerIDToIdx: lecturers,
		StudentIDToIdx:  students,
		ProjectIDToIdx:  projects,
		SlotIDs:         slotIDs,
		LecturerIDs:     lecturerIDs,
		StudentIDs:      studentIDs,
		ProjectIDs:      projectIDs,
	}, nil
}

package solver

import (
	"fmt"

	"github.com/campusflow/panelsched/internal/cpsat"
)

// Vars holds every decision variable declared on a model: x[p][t][r]
// (assignment), y[p][l] (panel membership), z[p][l][t][r] (the linearised
// x-AND-y conjunction).
type Vars struct {
	NumProjects  int
	NumSlots     int
	NumRooms     int
	NumLecturers int

	X [][][]cpsat.BoolVar // [p][t][r]
	Y [][]cpsat.BoolVar   // [p][l]
	Z [][][][]cpsat.BoolVar // [p][l][t][r]
}

// DeclareVariables declares the x/y/z booleans on m in deterministic order
// (p, then t, then r for x; p, then l for y; p, l, t, r for z), which is
// also the branching order the search uses, and the auxiliary integer
// variables the soft objective computes from them. At Level1 only x is
// declared: y and z exist solely to carry panel assignment, which Level1
// does not model at all, and leaving them undeclared keeps the search
// from wastefully branching over bits nothing constrains.
func DeclareVariables(m *cpsat.Model, idx *Index, numRooms, panelSize int, level Level) *Vars {
	P, T, L := len(idx.ProjectIDs), len(idx.SlotIDs), len(idx.LecturerIDs)
	v := &Vars{NumProjects: P, NumSlots: T, NumRooms: numRooms, NumLecturers: L}

	v.X = make([][][]cpsat.BoolVar, P)
	for p := 0; p < P; p++ {
		v.X[p] = make([][]cpsat.BoolVar, T)
		for t := 0; t < T; t++ {
			v.X[p][t] = make([]cpsat.BoolVar, numRooms)
			for r := 0; r < numRooms; r++ {
				name := fmt.Sprintf("x_p%d_t%d_r%d", p, t, r)
				v.X[p][t][r] = m.NewBoolVar(name)
			}
		}
	}

	m.DeclareIntVar("last_t", 0, max(0, T-1))

	if level == Level1 {
		v.NumLecturers = 0 // y/z not declared; keep loops over them trivially empty
		return v
	}

	v.Y = make([][]cpsat.BoolVar, P)
	for p := 0; p < P; p++ {
		v.Y[p] = make([]cpsat.BoolVar, L)
		for l := 0; l < L; l++ {
			name := fmt.Sprintf("y_p%d_l%d", p, l)
			v.Y[p][l] = m.NewBoolVar(name)
		}
	}

	v.Z = make([][][][]cpsat.BoolVar, P)
	for p := 0; p < P; p++ {
		v.Z[p] = make([][][]cpsat.BoolVar, L)
		for l := 0; l < L; l++ {
			v.Z[p][l] = make([][]cpsat.BoolVar, T)
			for t := 0; t < T; t++ {
				v.Z[p][l][t] = make([]cpsat.BoolVar, numRooms)
				for r := 0; r < numRooms; r++ {
					name := fmt.Sprintf("z_p%d_l%d_t%d_r%d", p, l, t, r)
					v.Z[p][l][t][r] = m.NewBoolVar(name)
				}
			}
		}
	}

	m.DeclareIntVar("lunch_penalty", 0, P)
	m.DeclareIntVar("workload_imbalance", 0, P)
	for l := 0; l < L; l++ {
		m.DeclareIntVar(fmt.Sprintf("count_l%d", l), 0, P)
	}

	return v
}

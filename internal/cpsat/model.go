// Package cpsat is a small, in-process stand-in for an external CP-SAT
// style constraint backend. It declares boolean decision variables and a
// handful of linear/logical propagators (fix, exactly-k, at-most-sum,
// boolean AND), and solves the resulting model by propagation-to-fixpoint
// combined with chronological backtracking.
//
// It is deliberately narrow: it only implements the primitives the
// scheduling core in internal/solver actually emits. It is not a general
// SAT or MIP solver.
package cpsat

import "fmt"

// BoolVar is a handle to a boolean decision variable declared on a Model.
// Handles are dense indices starting at 0, in declaration order.
type BoolVar int

// Status classifies the terminal state of a solve, mirroring the five
// outcomes a real CP-SAT backend reports.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusModelInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

type groupConstraint struct {
	vars []BoolVar
	k    int // exactly k (eq=true) or sum <= k (eq=false)
	eq   bool
}

type andConstraint struct {
	z, x, y BoolVar
}

type intVarInfo struct {
	name   string
	lo, hi int
}

// Model accumulates boolean variables and constraints for a single solve.
// It is built once by the Variable Factory and Hard/Soft Constraint
// Emitters (internal/solver) and then handed to Solve. A Model is not safe
// for concurrent emission from multiple goroutines.
type Model struct {
	names   []string
	fixed   map[BoolVar]bool
	groups  []groupConstraint
	ands    []andConstraint
	intVars []intVarInfo

	invalid bool // set when a degenerate constraint is posted (e.g. k > len(vars))
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{fixed: make(map[BoolVar]bool)}
}

// NewBoolVar declares a new boolean variable with the given deterministic
// name and returns its handle. Names are for introspection/diagnostics
// only; they do not affect solving.
func (m *Model) NewBoolVar(name string) BoolVar {
	m.names = append(m.names, name)
	return BoolVar(len(m.names) - 1)
}

// NumBoolVars reports how many boolean variables have been declared.
func (m *Model) NumBoolVars() int { return len(m.names) }

// VarName returns the declared name of a boolean variable.
func (m *Model) VarName(v BoolVar) string {
	if int(v) < 0 || int(v) >= len(m.names) {
		return fmt.Sprintf("<invalid var %d>", v)
	}
	return m.names[v]
}

// DeclareIntVar records an auxiliary integer variable for introspection.
// The constraint engine never branches on these directly: every auxiliary
// the scheduling core declares (last_t, lunch_penalty, workload_imbalance,
// count_l) is defined by an equality over already-declared boolean
// variables, so its value is computed from a complete assignment instead
// of being searched over (see internal/solver/soft.go).
func (m *Model) DeclareIntVar(name string, lo, hi int) {
	m.intVars = append(m.intVars, intVarInfo{name: name, lo: lo, hi: hi})
}

// IntVarNames returns the names of all declared auxiliary integer
// variables, in declaration order.
func (m *Model) IntVarNames() []string {
	names := make([]string, len(m.intVars))
	for i, iv := range m.intVars {
		names[i] = iv.name
	}
	return names
}

// Fix pins a boolean variable to a constant value. Used for H3 (student
// unavailability), H6 (supervisor membership) and H7 (lecturer
// availability, expressed over z).
func (m *Model) Fix(v BoolVar, val bool) {
	if existing, ok := m.fixed[v]; ok && existing != val {
		m.invalid = true
		return
	}
	m.fixed[v] = val
}

// AddExactlyOne posts Σvars == 1.
func (m *Model) AddExactlyOne(vars []BoolVar) {
	m.AddExactlyK(vars, 1)
}

// AddExactlyK posts Σvars == k. Used for H4 (panel size). A k outside
// [0, len(vars)] makes the model degenerate (e.g. panel_size > number of
// lecturers) and is reported as StatusModelInvalid rather than explored.
func (m *Model) AddExactlyK(vars []BoolVar, k int) {
	if k < 0 || k > len(vars) {
		m.invalid = true
	}
	cp := append([]BoolVar(nil), vars...)
	m.groups = append(m.groups, groupConstraint{vars: cp, k: k, eq: true})
}

// AddAtMostOne posts Σvars <= 1. Used for H2 (room capacity) and H8 (no
// lecturer double-booking, over z).
func (m *Model) AddAtMostOne(vars []BoolVar) {
	m.AddSumLessOrEqual(vars, 1)
}

// AddSumLessOrEqual posts Σvars <= k. Used for H9 (per-day cap, over z).
func (m *Model) AddSumLessOrEqual(vars []BoolVar, k int) {
	if k < 0 {
		m.invalid = true
	}
	cp := append([]BoolVar(nil), vars...)
	m.groups = append(m.groups, groupConstraint{vars: cp, k: k, eq: false})
}

// AddBoolAnd posts z == x AND y. Used for H5, the linearised conjunction
// that H7-H9 are then expressed over.
func (m *Model) AddBoolAnd(z, x, y BoolVar) {
	m.ands = append(m.ands, andConstraint{z: z, x: x, y: y})
}

// Invalid reports whether a degenerate constraint has been posted.
func (m *Model) Invalid() bool { return m.invalid }

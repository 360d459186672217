package cpsat

import (
	"context"
	"time"
)

// Params configures a single Solve invocation: a time budget and a worker
// count, mirroring the two knobs a CP-SAT-style backend exposes.
// NumWorkers is accepted for interface parity with that solver-parameter
// block but does not fan out OS threads for the search tree — see
// DESIGN.md for why that keeps determinism trivially true for every
// NumWorkers value.
type Params struct {
	MaxTime    time.Duration
	NumWorkers int
}

// EvalFunc computes the objective cost of a complete, hard-feasible boolean
// assignment. It is only invoked when hasObjective is true; assignment is
// indexed by BoolVar.
type EvalFunc func(assignment []bool) int64

// Result is the outcome of a single Solve call.
type Result struct {
	Status         Status
	Assignment     []bool // valid iff Status is Optimal or Feasible
	ObjectiveValue int64
	ObjectiveValid bool
	NumConflicts   int64
	WallTime       time.Duration
}

type incumbent struct {
	found      bool
	cost       int64
	assignment []bool
}

type searcher struct {
	model       *Model
	val         []int8
	varGroups   [][]int
	varAnds     [][]int
	hasObjective bool
	eval        EvalFunc
	ctx         context.Context

	best         incumbent
	numConflicts int64
	stopAll      bool
	aborted      bool
}

func (s *searcher) buildIndex() {
	n := len(s.val)
	s.varGroups = make([][]int, n)
	s.varAnds = make([][]int, n)
	for gi, g := range s.model.groups {
		seen := make(map[BoolVar]bool, len(g.vars))
		for _, v := range g.vars {
			if seen[v] {
				continue
			}
			seen[v] = true
			s.varGroups[v] = append(s.varGroups[v], gi)
		}
	}
	for ai, a := range s.model.ands {
		for _, v := range []BoolVar{a.x, a.y, a.z} {
			s.varAnds[v] = append(s.varAnds[v], ai)
		}
	}
}

func (s *searcher) tryAssign(v BoolVar, val int8, queue *[]BoolVar) bool {
	cur := s.val[v]
	if cur != -1 {
		return cur == val
	}
	s.val[v] = val
	*queue = append(*queue, v)
	return true
}

func (s *searcher) propagateGroup(gi int, queue *[]BoolVar) bool {
	g := s.model.groups[gi]
	trueCount, falseCount := 0, 0
	var unassigned []BoolVar
	for _, v := range g.vars {
		switch s.val[v] {
		case 1:
			trueCount++
		case 0:
			falseCount++
		default:
			unassigned = append(unassigned, v)
		}
	}
	_ = falseCount
	if g.eq {
		if trueCount > g.k {
			return false
		}
		remaining := g.k - trueCount
		if remaining > len(unassigned) {
			return false
		}
		if remaining == 0 {
			for _, u := range unassigned {
				if !s.tryAssign(u, 0, queue) {
					return false
				}
			}
		} else if remaining == len(unassigned) {
			for _, u := range unassigned {
				if !s.tryAssign(u, 1, queue) {
					return false
				}
			}
		}
		return true
	}
	if trueCount > g.k {
		return false
	}
	if trueCount == g.k {
		for _, u := range unassigned {
			if !s.tryAssign(u, 0, queue) {
				return false
			}
		}
	}
	return true
}

func (s *searcher) propagateAnd(ai int, queue *[]BoolVar) bool {
	a := s.model.ands[ai]
	xv, yv := s.val[a.x], s.val[a.y]
	if xv == 0 || yv == 0 {
		if !s.tryAssign(a.z, 0, queue) {
			return false
		}
	}
	if xv == 1 && yv == 1 {
		if !s.tryAssign(a.z, 1, queue) {
			return false
		}
	}
	zv := s.val[a.z]
	if zv == 1 {
		if !s.tryAssign(a.x, 1, queue) {
			return false
		}
		if !s.tryAssign(a.y, 1, queue) {
			return false
		}
	} else if zv == 0 {
		if xv == 1 {
			if !s.tryAssign(a.y, 0, queue) {
				return false
			}
		}
		if yv == 1 {
			if !s.tryAssign(a.x, 0, queue) {
				return false
			}
		}
	}
	return true
}

// propagate runs the fixed-point loop seeded by queue, which must already
// contain the just-assigned variables. It returns false on conflict.
func (s *searcher) propagate(queue []BoolVar) bool {
	head := 0
	for head < len(queue) {
		v := queue[head]
		head++
		for _, gi := range s.varGroups[v] {
			if !s.propagateGroup(gi, &queue) {
				return false
			}
		}
		for _, ai := range s.varAnds[v] {
			if !s.propagateAnd(ai, &queue) {
				return false
			}
		}
	}
	return true
}

func (s *searcher) nextUnassigned() int {
	for i, v := range s.val {
		if v == -1 {
			return i
		}
	}
	return -1
}

func (s *searcher) recordComplete() {
	assignment := make([]bool, len(s.val))
	for i, v := range s.val {
		assignment[i] = v == 1
	}
	var cost int64
	if s.hasObjective {
		cost = s.eval(assignment)
	}
	if !s.best.found || cost < s.best.cost {
		s.best = incumbent{found: true, cost: cost, assignment: assignment}
	}
	if !s.hasObjective {
		s.stopAll = true
	}
}

func (s *searcher) search() {
	if s.stopAll || s.aborted {
		return
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.aborted = true
		return
	}

	idx := s.nextUnassigned()
	if idx < 0 {
		s.recordComplete()
		return
	}

	snapshot := append([]int8(nil), s.val...)
	for _, branchVal := range [2]int8{0, 1} {
		if s.stopAll || s.aborted {
			break
		}
		queue := []BoolVar{BoolVar(idx)}
		s.val[idx] = branchVal
		if s.propagate(queue) {
			s.search()
		} else {
			s.numConflicts++
		}
		copy(s.val, snapshot)
	}
}

// Solve runs propagation-to-fixpoint plus chronological backtracking over
// the model's boolean variables, invoking eval on every complete,
// hard-feasible assignment when hasObjective is true. With hasObjective
// false the first complete assignment found is returned as optimal (there
// is no objective to compare against, so every feasible solution ties).
func (m *Model) Solve(ctx context.Context, params Params, eval EvalFunc, hasObjective bool) Result {
	start := time.Now()
	if m.invalid {
		return Result{Status: StatusModelInvalid}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if params.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.MaxTime)
		defer cancel()
	}

	n := len(m.names)
	s := &searcher{model: m, val: make([]int8, n), hasObjective: hasObjective, eval: eval, ctx: ctx}
	for i := range s.val {
		s.val[i] = -1
	}
	s.buildIndex()

	var initQueue []BoolVar
	for v, val := range m.fixed {
		iv := int8(0)
		if val {
			iv = 1
		}
		s.val[v] = iv
		initQueue = append(initQueue, v)
	}
	if !s.propagate(initQueue) {
		return Result{Status: StatusInfeasible, NumConflicts: 1, WallTime: time.Since(start)}
	}

	if n == 0 {
		var cost int64
		if hasObjective {
			cost = eval(nil)
		}
		return Result{
			Status:         StatusOptimal,
			Assignment:     []bool{},
			ObjectiveValue: cost,
			ObjectiveValid: hasObjective,
			WallTime:       time.Since(start),
		}
	}

	s.search()
	wall := time.Since(start)

	if !s.best.found {
		if s.aborted {
			return Result{Status: StatusUnknown, NumConflicts: s.numConflicts, WallTime: wall}
		}
		return Result{Status: StatusInfeasible, NumConflicts: s.numConflicts, WallTime: wall}
	}

	status := StatusOptimal
	if s.aborted {
		status = StatusFeasible
	}
	return Result{
		Status:         status,
		Assignment:     s.best.assignment,
		ObjectiveValue: s.best.cost,
		ObjectiveValid: hasObjective,
		NumConflicts:   s.numConflicts,
		WallTime:       wall,
	}
}

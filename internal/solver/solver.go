package solver

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Status reports how far an engine got within its time limit.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Problem is a fully resolved distribution instance: normalized atoms only, no
// raw input left. Rank[s][c] holds the preference rank student s gave course c,
// 0 meaning unranked.
type Problem struct {
	Students []string
	Courses  []string
	Rank     [][]int

	CoursesPerStudent int
	MinPerCourse      int
	MaxPerCourse      int

	Penalty         int
	HardPreferences bool
	TimeLimit       time.Duration
}

// Ranked reports whether student s ranked course c.
func (problem Problem) Ranked(s, c int) bool {
	return problem.Rank[s][c] > 0
}

// Weight is the objective contribution of granting course c to student s.
func (problem Problem) Weight(s, c int) int {
	if problem.Ranked(s, c) {
		return problem.Rank[s][c]
	}
	return problem.Penalty
}

// Result carries an engine outcome. Assigned[s] lists the course indexes
// granted to student s in ascending order; it is nil unless Status is
// StatusOptimal or StatusFeasible.
type Result struct {
	Status    Status
	Assigned  [][]int
	Objective int64
	Runtime   time.Duration
}

type Solver interface {
	Name() string
	Solve(problem Problem) (*Result, error)
}

var solvers = map[string]func() Solver{
	"cpsat":  NewCpsatSolver,
	"glpk":   NewGlpkSolver,
	"gini":   NewGiniSolver,
	"clingo": NewClingoSolver,
}

// New instantiates the engine registered under name.
func New(name string) (Solver, error) {
	factory, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("\"%v\" is not a valid solver: allowed values are %v", name, Names())
	}
	return factory(), nil
}

// Names lists the registered engines in stable order.
func Names() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// buildResult derives the assignment matrix and the objective from the chosen
// predicate. Every engine reports through it, so an identical model always
// yields an identical objective regardless of the backend.
func buildResult(problem Problem, status Status, runtime time.Duration, chosen func(s, c int) bool) *Result {
	assigned := make([][]int, len(problem.Students))
	var objective int64
	for s := range problem.Students {
		assigned[s] = make([]int, 0, problem.CoursesPerStudent)
		for c := range problem.Courses {
			if !chosen(s, c) {
				continue
			}
			assigned[s] = append(assigned[s], c)
			objective += int64(problem.Weight(s, c))
		}
	}

	return &Result{
		Status:    status,
		Assigned:  assigned,
		Objective: objective,
		Runtime:   runtime,
	}
}

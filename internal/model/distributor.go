package model

import (
	"time"

	"github.com/limaJavier/distributing/internal/solver"
)

// Assignment pairs a student with one course they were assigned. Rank echoes
// the student's rank for the course; Ranked is false on out-of-preference
// picks, where Rank is zero.
type Assignment struct {
	Student string
	Course  string
	Rank    int
	Ranked  bool
}

// Outcome is the result of one distribution run. Assignments is populated only
// when Solved reports true; Reason carries the diagnostic on infeasible
// outcomes detected before the engine ran.
type Outcome struct {
	Status      solver.Status
	Assignments []Assignment
	Objective   int64
	Runtime     time.Duration
	Reason      string
}

// Solved reports whether the outcome carries a usable distribution.
func (outcome *Outcome) Solved() bool {
	return outcome.Status == solver.StatusOptimal || outcome.Status == solver.StatusFeasible
}

type Distributor interface {
	Distribute(input Input, config Config) (*Outcome, error)

	Verify(outcome *Outcome, input Input, config Config) bool
}

func NewDistributor(engine solver.Solver) Distributor {
	return newSolverDistributor(engine)
}

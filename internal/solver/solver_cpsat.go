package solver

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

type cpsatSolver struct{}

// NewCpsatSolver returns the CP-SAT backed engine: one boolean per
// (student, course) pair plus one open indicator per course, with the rank
// objective handed to the solver directly.
func NewCpsatSolver() Solver {
	return &cpsatSolver{}
}

func (solver *cpsatSolver) Name() string {
	return "cpsat"
}

func (solver *cpsatSolver) Solve(problem Problem) (*Result, error) {
	start := time.Now()
	builder := cpmodel.NewCpModelBuilder()

	//** Decision variables
	assign := make([][]cpmodel.BoolVar, len(problem.Students))
	for s := range problem.Students {
		assign[s] = make([]cpmodel.BoolVar, len(problem.Courses))
		for c := range problem.Courses {
			assign[s][c] = builder.NewBoolVar()
		}
	}

	//** Every student takes exactly CoursesPerStudent courses
	for s := range problem.Students {
		courses := cpmodel.NewLinearExpr()
		for c := range problem.Courses {
			courses.Add(assign[s][c])
		}
		builder.AddEquality(courses, cpmodel.NewConstant(int64(problem.CoursesPerStudent)))
	}

	//** Per-course load: at most Max, and either empty or at least Min
	for c := range problem.Courses {
		load := cpmodel.NewLinearExpr()
		for s := range problem.Students {
			load.Add(assign[s][c])
		}
		builder.AddLessOrEqual(load, cpmodel.NewConstant(int64(problem.MaxPerCourse)))

		open := builder.NewBoolVar()
		builder.AddGreaterOrEqual(load, cpmodel.NewConstant(1)).OnlyEnforceIf(open)
		builder.AddEquality(load, cpmodel.NewConstant(0)).OnlyEnforceIf(open.Not())
		builder.AddGreaterOrEqual(load, cpmodel.NewConstant(int64(problem.MinPerCourse))).OnlyEnforceIf(open)
	}

	//** Objective: ranked pairs cost their rank; unranked pairs cost the penalty
	// unless preferences are hard, in which case they are forbidden outright
	objective := cpmodel.NewLinearExpr()
	hasObjective := false
	for s := range problem.Students {
		for c := range problem.Courses {
			switch {
			case problem.Ranked(s, c):
				objective.AddTerm(assign[s][c], int64(problem.Rank[s][c]))
				hasObjective = true
			case problem.HardPreferences:
				builder.AddEquality(assign[s][c], cpmodel.NewConstant(0))
			default:
				objective.AddTerm(assign[s][c], int64(problem.Penalty))
				hasObjective = true
			}
		}
	}
	if hasObjective {
		builder.Minimize(objective)
	}

	model, err := builder.Model()
	if err != nil {
		return nil, fmt.Errorf("cannot instantiate cp-sat model: %v", err)
	}
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(problem.TimeLimit.Seconds()),
	}
	response, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return nil, fmt.Errorf("an error occurred during cp-sat execution: %v", err)
	}
	runtime := time.Since(start)

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		status := StatusOptimal
		if response.GetStatus() == cmpb.CpSolverStatus_FEASIBLE {
			status = StatusFeasible
		}
		return buildResult(problem, status, runtime, func(s, c int) bool {
			return cpmodel.SolutionBooleanValue(response, assign[s][c])
		}), nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return &Result{Status: StatusInfeasible, Runtime: runtime}, nil
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return nil, fmt.Errorf("cp-sat rejected the model as invalid")
	default:
		return &Result{Status: StatusUnknown, Runtime: runtime}, nil
	}
}

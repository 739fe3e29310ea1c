package solver

import (
	"fmt"
	"log"
	"time"

	"github.com/lukpank/go-glpk/glpk"
)

type glpkSolver struct{}

// NewGlpkSolver returns the GLPK backed engine. The empty-or-at-least-Min
// disjunction is linearized against an open indicator column, with Max acting
// as the big-M coefficient.
func NewGlpkSolver() Solver {
	return &glpkSolver{}
}

func (solver *glpkSolver) Name() string {
	return "glpk"
}

func (solver *glpkSolver) Solve(problem Problem) (*Result, error) {
	start := time.Now()
	if problem.TimeLimit > 0 {
		log.Printf("glpk bindings expose no time limit: solving %v students to completion", len(problem.Students))
	}

	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName("distribution")
	lp.SetObjName("penalty")
	lp.SetObjDir(glpk.MIN)

	//** Assignment columns: one binary per (student, course) pair
	pairCol := make([][]int, len(problem.Students))
	for s := range problem.Students {
		pairCol[s] = make([]int, len(problem.Courses))
		for c := range problem.Courses {
			col := lp.AddCols(1)
			pairCol[s][c] = col
			lp.SetColName(col, fmt.Sprintf("x_%v_%v", problem.Students[s], problem.Courses[c]))
			lp.SetColKind(col, glpk.BV)
			if problem.HardPreferences && !problem.Ranked(s, c) {
				lp.SetColBnds(col, glpk.FX, 0, 0)
			} else {
				lp.SetObjCoef(col, float64(problem.Weight(s, c)))
			}
		}
	}

	//** Open indicator columns: one binary per course
	openCol := make([]int, len(problem.Courses))
	for c := range problem.Courses {
		col := lp.AddCols(1)
		openCol[c] = col
		lp.SetColName(col, fmt.Sprintf("open_%v", problem.Courses[c]))
		lp.SetColKind(col, glpk.BV)
	}

	//** One row per student: its pair columns sum to CoursesPerStudent
	for s := range problem.Students {
		row := lp.AddRows(1)
		lp.SetRowName(row, fmt.Sprintf("take_%v", problem.Students[s]))
		lp.SetRowBnds(row, glpk.FX, float64(problem.CoursesPerStudent), float64(problem.CoursesPerStudent))

		// The leading zero entries are ignored by SetMatRow
		ind := []int32{0}
		val := []float64{0}
		for c := range problem.Courses {
			ind = append(ind, int32(pairCol[s][c]))
			val = append(val, 1)
		}
		lp.SetMatRow(row, ind, val)
	}

	//** Two rows per course: load - Max*open <= 0 and load - Min*open >= 0
	for c := range problem.Courses {
		ind := []int32{0}
		val := []float64{0}
		for s := range problem.Students {
			ind = append(ind, int32(pairCol[s][c]))
			val = append(val, 1)
		}
		ind = append(ind, int32(openCol[c]))
		val = append(val, float64(-problem.MaxPerCourse))

		upper := lp.AddRows(1)
		lp.SetRowName(upper, fmt.Sprintf("cap_%v", problem.Courses[c]))
		lp.SetRowBnds(upper, glpk.UP, 0, 0)
		lp.SetMatRow(upper, ind, val)

		val[len(val)-1] = float64(-problem.MinPerCourse)
		lower := lp.AddRows(1)
		lp.SetRowName(lower, fmt.Sprintf("min_%v", problem.Courses[c]))
		lp.SetRowBnds(lower, glpk.LO, 0, 0)
		lp.SetMatRow(lower, ind, val)
	}

	//** Solve the relaxation first, then branch-and-cut on its basis
	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_ERR)
	if err := lp.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("an error occurred during glpk simplex execution: %v", err)
	}
	if lp.Status() == glpk.NOFEAS || lp.Status() == glpk.INFEAS {
		return &Result{Status: StatusInfeasible, Runtime: time.Since(start)}, nil
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(glpk.MSG_ERR)
	if err := lp.Intopt(iocp); err != nil {
		if lp.MipStatus() == glpk.NOFEAS {
			return &Result{Status: StatusInfeasible, Runtime: time.Since(start)}, nil
		}
		return nil, fmt.Errorf("an error occurred during glpk intopt execution: %v", err)
	}
	runtime := time.Since(start)

	chosen := func(s, c int) bool {
		return lp.MipColVal(pairCol[s][c]) > 0.5
	}
	switch lp.MipStatus() {
	case glpk.OPT:
		return buildResult(problem, StatusOptimal, runtime, chosen), nil
	case glpk.FEAS:
		return buildResult(problem, StatusFeasible, runtime, chosen), nil
	case glpk.NOFEAS:
		return &Result{Status: StatusInfeasible, Runtime: runtime}, nil
	default:
		return &Result{Status: StatusUnknown, Runtime: runtime}, nil
	}
}

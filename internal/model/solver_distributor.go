package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/distributing/internal/solver"
	"github.com/samber/lo"
)

type solverDistributor struct {
	//** Dependencies
	engine solver.Solver
}

func newSolverDistributor(engine solver.Solver) *solverDistributor {
	return &solverDistributor{
		engine: engine,
	}
}

func (distributor *solverDistributor) Distribute(input Input, config Config) (*Outcome, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	//** Screen for provable infeasibility before paying for a solve
	if err := Precheck(input, config); err != nil {
		return &Outcome{Status: solver.StatusInfeasible, Reason: err.Error()}, nil
	}

	result, err := distributor.engine.Solve(buildProblem(input, config))
	if err != nil {
		return nil, fmt.Errorf("cannot distribute students: %w", err)
	}

	outcome := &Outcome{
		Status:    result.Status,
		Objective: result.Objective,
		Runtime:   result.Runtime,
	}
	if !outcome.Solved() {
		return outcome, nil
	}

	//** Map engine indexes back onto atoms
	for s, student := range input.Students {
		for _, c := range result.Assigned[s] {
			course := input.Courses[c]
			rank, ranked := student.Prefs[course]
			outcome.Assignments = append(outcome.Assignments, Assignment{
				Student: student.Name,
				Course:  course,
				Rank:    rank,
				Ranked:  ranked,
			})
		}
	}
	slices.SortFunc(outcome.Assignments, func(a, b Assignment) int {
		if compared := strings.Compare(a.Student, b.Student); compared != 0 {
			return compared
		}
		return strings.Compare(a.Course, b.Course)
	})
	return outcome, nil
}

func (distributor *solverDistributor) Verify(outcome *Outcome, input Input, config Config) bool {
	if outcome == nil || !outcome.Solved() {
		return false
	}

	//** Index the instance
	students := make(map[string]bool)
	ranks := make(map[[2]string]int)
	for _, student := range input.Students {
		students[student.Name] = true
		for course, rank := range student.Prefs {
			ranks[[2]string{student.Name, course}] = rank
		}
	}
	courses := make(map[string]bool)
	for _, course := range input.Courses {
		courses[course] = true
	}

	held := make(map[string]int)
	load := make(map[string]int)
	taken := make(map[[2]string]bool)
	var objective int64

	for _, assignment := range outcome.Assignments {
		pair := [2]string{assignment.Student, assignment.Course}
		rank, ranked := ranks[pair]

		// Check that:
		// - Student and course belong to the instance
		// - No pair is assigned twice
		// - Rank and Ranked echo the input preferences
		// - Hard preferences never admit an unranked pair
		if !students[assignment.Student] ||
			!courses[assignment.Course] ||
			taken[pair] ||
			assignment.Ranked != ranked ||
			assignment.Rank != rank ||
			(config.HardPreferences && !ranked) {
			return false
		}

		taken[pair] = true              // Store assigned pair
		held[assignment.Student]++      // Store student load
		load[assignment.Course]++       // Store course load
		objective += int64(lo.Ternary(ranked, rank, config.OutOfPreferencePenalty))
	}

	// Check every student holds exactly the configured number of courses
	for _, student := range input.Students {
		if held[student.Name] != config.CoursesPerStudent {
			return false
		}
	}
	// Check every course is empty or loaded within bounds
	for _, course := range input.Courses {
		if count := load[course]; count > config.MaxStudentsPerCourse ||
			(count > 0 && count < config.MinStudentsPerCourse) {
			return false
		}
	}
	return objective == outcome.Objective
}

func buildProblem(input Input, config Config) solver.Problem {
	rank := make([][]int, len(input.Students))
	for s, student := range input.Students {
		rank[s] = make([]int, len(input.Courses))
		for c, course := range input.Courses {
			rank[s][c] = student.Prefs[course] // Zero marks an unranked pair
		}
	}

	return solver.Problem{
		Students:          lo.Map(input.Students, func(student Student, _ int) string { return student.Name }),
		Courses:           input.Courses,
		Rank:              rank,
		CoursesPerStudent: config.CoursesPerStudent,
		MinPerCourse:      config.MinStudentsPerCourse,
		MaxPerCourse:      config.MaxStudentsPerCourse,
		Penalty:           config.OutOfPreferencePenalty,
		HardPreferences:   config.HardPreferences,
		TimeLimit:         config.TimeLimit,
	}
}

package solver

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateProblem builds a random instance with the given dimensions: every
// student ranks roughly half the courses with ranks from 1 to 5. Load bounds
// start permissive so callers can tighten them per test.
func GenerateProblem(students, courses int) Problem {
	problem := Problem{
		Students:          make([]string, students),
		Courses:           make([]string, courses),
		Rank:              make([][]int, students),
		CoursesPerStudent: 1,
		MinPerCourse:      0,
		MaxPerCourse:      students,
		Penalty:           20,
		TimeLimit:         30 * time.Second,
	}
	for c := range problem.Courses {
		problem.Courses[c] = fmt.Sprintf("course_%v", c+1)
	}
	for s := range problem.Students {
		problem.Students[s] = fmt.Sprintf("student_%v", s+1)
		problem.Rank[s] = make([]int, courses)
		for c := range problem.Courses {
			if rand.Float32() < 0.5 {
				problem.Rank[s][c] = 1 + rand.IntN(5)
			}
		}
	}
	return problem
}

// AssertAssignment checks a result against the instance constraints and the
// reported objective.
func AssertAssignment(problem Problem, result *Result) bool {
	if result == nil || (result.Status != StatusOptimal && result.Status != StatusFeasible) {
		return false
	}

	loads := make([]int, len(problem.Courses))
	var objective int64
	for s := range problem.Students {
		// Make sure the course count is exact and there are no duplicates
		if len(result.Assigned[s]) != problem.CoursesPerStudent {
			return false
		}
		taken := make(map[int]bool)
		for _, c := range result.Assigned[s] {
			if taken[c] {
				return false
			}
			taken[c] = true
			loads[c]++
			objective += int64(problem.Weight(s, c))

			if problem.HardPreferences && !problem.Ranked(s, c) {
				return false
			}
		}
	}

	// Check that every course load stays within bounds
	for _, load := range loads {
		if load > problem.MaxPerCourse {
			return false
		}
		if load > 0 && load < problem.MinPerCourse {
			return false
		}
	}

	return objective == result.Objective
}

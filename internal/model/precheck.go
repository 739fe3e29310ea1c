package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
)

// Precheck screens an instance for conditions that rule out any feasible
// distribution, before an engine runs. A nil return does not promise
// feasibility; a non-nil return is a proof of infeasibility with the reason.
// The config must be validated.
func Precheck(input Input, config Config) error {
	students, courses := len(input.Students), len(input.Courses)
	if students == 0 {
		return nil
	}

	if config.CoursesPerStudent > courses {
		return fmt.Errorf("every student needs %v distinct courses but only %v exist",
			config.CoursesPerStudent, courses)
	}

	demand := students * config.CoursesPerStudent
	if capacity := courses * config.MaxStudentsPerCourse; demand > capacity {
		return fmt.Errorf("%v students require %v seats but %v courses offer at most %v",
			students, demand, courses, capacity)
	}

	//** The demand must fit an integer number of open courses
	minOpen := (demand + config.MaxStudentsPerCourse - 1) / config.MaxStudentsPerCourse
	maxOpen := courses
	if config.MinStudentsPerCourse > 0 {
		maxOpen = min(courses, demand/config.MinStudentsPerCourse)
	}
	if minOpen > maxOpen {
		return fmt.Errorf("course loads between %v and %v cannot absorb %v assignments over %v courses",
			config.MinStudentsPerCourse, config.MaxStudentsPerCourse, demand, courses)
	}

	if !config.HardPreferences {
		return nil
	}

	//** Hard preferences: every student must hold enough ranked courses
	for _, student := range input.Students {
		if ranked := len(student.Prefs); ranked < config.CoursesPerStudent {
			return fmt.Errorf("student %v ranked %v courses but needs %v",
				student.Name, ranked, config.CoursesPerStudent)
		}
	}
	return matchSlots(input, config)
}

type slot struct {
	student int
	index   int
}

type seat struct {
	course string
	index  int
}

// matchSlots matches student slots (one per required course) against course
// seats (one per capacity unit) along ranked preferences. When no matching
// saturates the slots, no hard-preference distribution can either.
func matchSlots(input Input, config Config) error {
	slots := make([]any, 0, len(input.Students)*config.CoursesPerStudent)
	for s := range input.Students {
		for i := range config.CoursesPerStudent {
			slots = append(slots, slot{student: s, index: i})
		}
	}
	seats := make([]any, 0, len(input.Courses)*config.MaxStudentsPerCourse)
	for _, course := range input.Courses {
		for i := range config.MaxStudentsPerCourse {
			seats = append(seats, seat{course: course, index: i})
		}
	}

	// Build neighbors predicate based on ranked preferences
	neighbors := func(slotAny any, seatAny any) (bool, error) {
		_, ranked := input.Students[slotAny.(slot).student].Prefs[seatAny.(seat).course]
		return ranked, nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(slots, seats, neighbors)
	if err != nil {
		return err
	}

	// Check the matching saturates every slot
	if matching := graph.LargestMatching(); len(matching) < len(slots) {
		return fmt.Errorf("ranked preferences leave no room for every student: only %v of %v required assignments can be placed",
			len(matching), len(slots))
	}
	return nil
}

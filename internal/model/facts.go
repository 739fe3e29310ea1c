package model

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	courseFact     = regexp.MustCompile(`^course\(([^)]+)\)\.`)
	studentFact    = regexp.MustCompile(`^student\(([^)]+)\)\.`)
	preferenceFact = regexp.MustCompile(`^preference\(([^,]+),\s*([^,]+),\s*(\d+)\)\.`)
	factNumber     = regexp.MustCompile(`\((\d+)\)`)
)

// ParseFacts reads an instance from a logic-programming fact file: course/1,
// student/1 and preference/3 facts plus optional configuration facts that
// override fields of config in place. Lines starting with "%" or "#" and lines
// matching no known fact are ignored. Facts may appear in any order and
// duplicates collapse to the first occurrence.
func ParseFacts(reader io.Reader, config *Config) (Input, error) {
	var input Input
	seenCourses := make(map[string]bool)
	seenStudents := make(map[string]bool)
	prefs := make(map[string]map[string]int)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}

		if applyConfigFact(line, config) {
			continue
		}

		if match := courseFact.FindStringSubmatch(line); match != nil {
			course := strings.TrimSpace(match[1])
			if !seenCourses[course] {
				seenCourses[course] = true
				input.Courses = append(input.Courses, course)
			}
		} else if match := studentFact.FindStringSubmatch(line); match != nil {
			student := strings.TrimSpace(match[1])
			if !seenStudents[student] {
				seenStudents[student] = true
				input.Students = append(input.Students, Student{Name: student})
			}
		} else if match := preferenceFact.FindStringSubmatch(line); match != nil {
			student, course := strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
			rank, err := strconv.Atoi(match[3])
			if err != nil || rank < 1 {
				continue
			}
			if prefs[student] == nil {
				prefs[student] = make(map[string]int)
			}
			prefs[student][course] = rank
		}
	}
	if err := scanner.Err(); err != nil {
		return Input{}, fmt.Errorf("cannot read facts: %w", err)
	}

	//** Attach preferences once every student fact is known
	for i, student := range input.Students {
		input.Students[i].Prefs = lo.PickByKeys(prefs[student.Name], input.Courses)
	}
	return input, nil
}

// applyConfigFact reports whether line is a configuration fact, overriding the
// matching config field when it is.
func applyConfigFact(line string, config *Config) bool {
	number := func() (int, bool) {
		match := factNumber.FindStringSubmatch(line)
		if match == nil {
			return 0, false
		}
		value, err := strconv.Atoi(match[1])
		return value, err == nil
	}

	switch {
	case strings.HasPrefix(line, "courses_per_student("):
		if value, ok := number(); ok {
			config.CoursesPerStudent = value
		}
	case strings.HasPrefix(line, "max_student_per_course("):
		if value, ok := number(); ok {
			config.MaxStudentsPerCourse = value
		}
	case strings.HasPrefix(line, "min_student_per_course("):
		if value, ok := number(); ok {
			config.MinStudentsPerCourse = value
		}
	case strings.HasPrefix(line, "out_of_preference_penalty("):
		if value, ok := number(); ok {
			config.OutOfPreferencePenalty = value
		}
	case strings.HasPrefix(line, "hard_enforced_preference("):
		config.HardPreferences = strings.Contains(line, "true")
	default:
		return false
	}
	return true
}

// WriteFacts renders the instance as a fact file: configuration facts first,
// then courses, students and preferences in input order, deduplicated. Parsing
// the output yields the same instance and configuration back.
func WriteFacts(writer io.Writer, input Input, config Config) error {
	buffered := bufio.NewWriter(writer)

	fmt.Fprintln(buffered, "% course distribution instance")
	fmt.Fprintf(buffered, "courses_per_student(%v).\n", config.CoursesPerStudent)
	fmt.Fprintf(buffered, "max_student_per_course(%v).\n", config.MaxStudentsPerCourse)
	fmt.Fprintf(buffered, "min_student_per_course(%v).\n", config.MinStudentsPerCourse)
	fmt.Fprintf(buffered, "out_of_preference_penalty(%v).\n", config.OutOfPreferencePenalty)
	fmt.Fprintf(buffered, "hard_enforced_preference(%v).\n", config.HardPreferences)
	fmt.Fprintln(buffered)

	for _, course := range lo.Uniq(input.Courses) {
		fmt.Fprintf(buffered, "course(%v).\n", course)
	}
	fmt.Fprintln(buffered)

	for _, student := range input.Students {
		fmt.Fprintf(buffered, "student(%v).\n", student.Name)
	}
	fmt.Fprintln(buffered)

	for _, student := range input.Students {
		for _, course := range input.Courses {
			if rank, ok := student.Prefs[course]; ok {
				fmt.Fprintf(buffered, "preference(%v, %v, %v).\n", student.Name, course, rank)
			}
		}
	}
	return buffered.Flush()
}

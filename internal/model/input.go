package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Student is one parsed row: the normalized name atom plus the ranks of the
// courses the student asked for, keyed by course atom. Lower rank means more
// preferred; a course absent from Prefs is unranked.
type Student struct {
	Name  string
	Prefs map[string]int
}

// Input is a full instance: the ordered distinct course atoms of the header
// row and one Student per body row. Ranks are read, never mutated.
type Input struct {
	Courses  []string
	Students []Student
}

// Config carries the distribution parameters. The zero value is invalid, start
// from DefaultConfig.
type Config struct {
	CoursesPerStudent      int `validate:"gte=1"`
	MinStudentsPerCourse   int `validate:"gte=0"`
	MaxStudentsPerCourse   int `validate:"gte=1"`
	HardPreferences        bool
	OutOfPreferencePenalty int           `validate:"gte=0"`
	TimeLimit              time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// DefaultConfig returns the stock parameters: one course per student, course
// loads between 10 and 30, a penalty of 20 per out-of-preference assignment
// and 30 seconds of solving time.
func DefaultConfig() Config {
	return Config{
		CoursesPerStudent:      1,
		MinStudentsPerCourse:   10,
		MaxStudentsPerCourse:   30,
		HardPreferences:        false,
		OutOfPreferencePenalty: 20,
		TimeLimit:              30 * time.Second,
	}
}

func (config Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if config.MinStudentsPerCourse > config.MaxStudentsPerCourse {
		return fmt.Errorf("invalid configuration: minimum course load %v exceeds maximum %v",
			config.MinStudentsPerCourse, config.MaxStudentsPerCourse)
	}
	return nil
}

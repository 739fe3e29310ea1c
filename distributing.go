// Package distributing assigns students to courses from a CSV of ranked
// preferences. The zero Options value solves with the default configuration
// and the cpsat engine.
package distributing

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/limaJavier/distributing/internal/model"
	"github.com/limaJavier/distributing/internal/solver"
)

// Options selects the engine and overrides the default configuration. Zero
// fields keep their defaults; pass a negative MinStudentsPerCourse or
// OutOfPreferencePenalty to explicitly set those to zero.
type Options struct {
	Solver                 string
	TimeLimit              time.Duration
	CoursesPerStudent      int
	MinStudentsPerCourse   int
	MaxStudentsPerCourse   int
	HardPreferences        bool
	OutOfPreferencePenalty int
}

func (options Options) config() model.Config {
	config := model.DefaultConfig()
	if options.TimeLimit > 0 {
		config.TimeLimit = options.TimeLimit
	}
	if options.CoursesPerStudent > 0 {
		config.CoursesPerStudent = options.CoursesPerStudent
	}
	if options.MinStudentsPerCourse != 0 {
		config.MinStudentsPerCourse = max(options.MinStudentsPerCourse, 0)
	}
	if options.MaxStudentsPerCourse > 0 {
		config.MaxStudentsPerCourse = options.MaxStudentsPerCourse
	}
	if options.HardPreferences {
		config.HardPreferences = true
	}
	if options.OutOfPreferencePenalty != 0 {
		config.OutOfPreferencePenalty = max(options.OutOfPreferencePenalty, 0)
	}
	return config
}

// SolveCSV distributes the students of a preference CSV over its courses. It
// returns whether an assignment was found together with the textual report;
// the error covers malformed input, invalid options and engine failures.
func SolveCSV(reader io.Reader, options Options) (bool, string, error) {
	input, err := model.ParsePreferences(reader)
	if err != nil {
		return false, "", err
	}

	engineName := options.Solver
	if engineName == "" {
		engineName = "cpsat"
	}
	engine, err := solver.New(engineName)
	if err != nil {
		return false, "", err
	}

	distributor := model.NewDistributor(engine)
	outcome, err := distributor.Distribute(input, options.config())
	if err != nil {
		return false, "", err
	}
	if outcome.Solved() && !distributor.Verify(outcome, input, options.config()) {
		return false, "", fmt.Errorf("engine %v returned an invalid distribution", engineName)
	}
	return outcome.Solved(), model.RenderText(outcome, input), nil
}

// SolveCSVFile opens the file at path and delegates to SolveCSV.
func SolveCSVFile(path string, options Options) (bool, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, "", fmt.Errorf("cannot open input file: %w", err)
	}
	defer file.Close()
	return SolveCSV(file, options)
}

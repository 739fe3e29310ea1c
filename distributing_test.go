package distributing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const preferencesCSV = ";algebra;biology\nana;1;2\nbruno;2;1\n"

func openOptions() Options {
	return Options{
		Solver:               "gini",
		TimeLimit:            10 * time.Second,
		MinStudentsPerCourse: -1,
		MaxStudentsPerCourse: 2,
	}
}

func TestSolveCSV(t *testing.T) {
	t.Run("Solves an uploaded preference file", func(t *testing.T) {
		// Act
		success, output, err := SolveCSV(strings.NewReader(preferencesCSV), openOptions())

		// Assert
		assert.Nil(t, err)
		assert.True(t, success)
		assert.Contains(t, output, "Optimal solution found!")
		assert.Contains(t, output, "res(ana,algebra,1).")
		assert.Contains(t, output, "res(bruno,biology,1).")
	})

	t.Run("Reports infeasible instances without an error", func(t *testing.T) {
		// Arrange: the default minimum load of ten dwarfs two students
		options := Options{Solver: "gini"}

		// Act
		success, output, err := SolveCSV(strings.NewReader(preferencesCSV), options)

		// Assert
		assert.Nil(t, err)
		assert.False(t, success)
		assert.Contains(t, output, "No feasible solution exists!")
	})

	t.Run("Rejects malformed files", func(t *testing.T) {
		success, output, err := SolveCSV(strings.NewReader(""), openOptions())

		assert.NotNil(t, err)
		assert.False(t, success)
		assert.Empty(t, output)
	})

	t.Run("Rejects unknown engines", func(t *testing.T) {
		_, _, err := SolveCSV(strings.NewReader(preferencesCSV), Options{Solver: "brute_force"})
		assert.NotNil(t, err)
	})

	t.Run("Rejects impossible load bounds", func(t *testing.T) {
		// The default minimum of ten cannot fit under an explicit maximum of five
		options := Options{Solver: "gini", MaxStudentsPerCourse: 5}

		_, _, err := SolveCSV(strings.NewReader(preferencesCSV), options)

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestSolveCSVFile(t *testing.T) {
	t.Run("Solves a file on disk", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "students.csv")
		assert.Nil(t, os.WriteFile(path, []byte(preferencesCSV), 0666))

		// Act
		success, output, err := SolveCSVFile(path, openOptions())

		// Assert
		assert.Nil(t, err)
		assert.True(t, success)
		assert.Contains(t, output, "=== SOLUTION ===")
	})

	t.Run("Reports missing files", func(t *testing.T) {
		_, _, err := SolveCSVFile(filepath.Join(t.TempDir(), "absent.csv"), openOptions())
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "cannot open input file")
	})
}

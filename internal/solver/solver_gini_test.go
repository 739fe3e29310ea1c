package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGiniSolve(t *testing.T) {
	t.Run("Finds the optimum on a contended course", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana", "bruno"},
			Courses:           []string{"algebra", "biology"},
			Rank:              [][]int{{1, 2}, {1, 2}},
			CoursesPerStudent: 1,
			MinPerCourse:      0,
			MaxPerCourse:      1,
			Penalty:           20,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, int64(3), result.Objective)
		assert.True(t, AssertAssignment(problem, result))
	})

	t.Run("Honors hard preferences", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana", "bruno"},
			Courses:           []string{"algebra", "biology", "chemistry"},
			Rank:              [][]int{{1, 0, 0}, {2, 5, 0}},
			CoursesPerStudent: 1,
			MinPerCourse:      0,
			MaxPerCourse:      1,
			HardPreferences:   true,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, []int{0}, result.Assigned[0])
		assert.Equal(t, []int{1}, result.Assigned[1])
		assert.Equal(t, int64(6), result.Objective)
		assert.True(t, AssertAssignment(problem, result))
	})

	t.Run("Falls into an unranked course when cheaper", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana"},
			Courses:           []string{"algebra", "biology"},
			Rank:              [][]int{{5, 0}},
			CoursesPerStudent: 1,
			MinPerCourse:      0,
			MaxPerCourse:      1,
			Penalty:           2,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, []int{1}, result.Assigned[0])
		assert.Equal(t, int64(2), result.Objective)
	})

	t.Run("Keeps the ranked course when the penalty is higher", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana"},
			Courses:           []string{"algebra", "biology"},
			Rank:              [][]int{{5, 0}},
			CoursesPerStudent: 1,
			MinPerCourse:      0,
			MaxPerCourse:      1,
			Penalty:           20,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.Equal(t, []int{0}, result.Assigned[0])
		assert.Equal(t, int64(5), result.Objective)
	})

	t.Run("Keeps courses below the minimum load empty", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"s1", "s2", "s3", "s4"},
			Courses:           []string{"algebra", "biology"},
			Rank:              [][]int{{1, 2}, {1, 2}, {2, 1}, {2, 1}},
			CoursesPerStudent: 1,
			MinPerCourse:      3,
			MaxPerCourse:      4,
			Penalty:           20,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.True(t, AssertAssignment(problem, result))

		loads := make([]int, 2)
		for s := range problem.Students {
			for _, c := range result.Assigned[s] {
				loads[c]++
			}
		}
		assert.Contains(t, [][]int{{4, 0}, {0, 4}}, loads)
	})

	t.Run("Reports infeasible when the minimum cannot be met", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana", "bruno"},
			Courses:           []string{"algebra"},
			Rank:              [][]int{{1}, {1}},
			CoursesPerStudent: 1,
			MinPerCourse:      3,
			MaxPerCourse:      30,
			Penalty:           20,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusInfeasible, result.Status)
		assert.Nil(t, result.Assigned)
	})

	t.Run("Reports unknown when the deadline leaves no room", func(t *testing.T) {
		// Arrange
		problem := GenerateProblem(10, 4)
		problem.TimeLimit = time.Nanosecond
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusUnknown, result.Status)
	})

	t.Run("Solves random instances", func(t *testing.T) {
		solver := NewGiniSolver()
		for range 5 {
			// Arrange
			problem := GenerateProblem(12, 4)

			// Act
			result, err := solver.Solve(problem)

			// Assert
			assert.Nil(t, err)
			assert.Equal(t, StatusOptimal, result.Status)
			assert.True(t, AssertAssignment(problem, result))
		}
	})

	t.Run("Takes several courses per student", func(t *testing.T) {
		// Arrange
		problem := Problem{
			Students:          []string{"ana", "bruno", "clara"},
			Courses:           []string{"algebra", "biology", "chemistry", "drama"},
			Rank:              [][]int{{1, 2, 3, 4}, {4, 3, 2, 1}, {1, 1, 0, 0}},
			CoursesPerStudent: 2,
			MinPerCourse:      0,
			MaxPerCourse:      2,
			Penalty:           20,
			TimeLimit:         30 * time.Second,
		}
		solver := NewGiniSolver()

		// Act
		result, err := solver.Solve(problem)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, result.Status)
		assert.True(t, AssertAssignment(problem, result))
	})
}

func BenchmarkGiniSolve(b *testing.B) {
	problem := GenerateProblem(40, 6)
	problem.MaxPerCourse = 10
	problem.MinPerCourse = 2
	solver := NewGiniSolver()

	b.ResetTimer()
	for range b.N {
		if _, err := solver.Solve(problem); err != nil {
			b.Fatalf("an error occurred while solving the instance: %v", err)
		}
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func precheckInput() Input {
	return Input{
		Courses: []string{"algebra", "biology"},
		Students: []Student{
			{Name: "ana", Prefs: map[string]int{"algebra": 1}},
			{Name: "bruno", Prefs: map[string]int{"biology": 1}},
		},
	}
}

func precheckConfig() Config {
	config := DefaultConfig()
	config.MinStudentsPerCourse = 0
	config.MaxStudentsPerCourse = 2
	return config
}

func TestPrecheck(t *testing.T) {
	t.Run("Accepts a plain instance", func(t *testing.T) {
		assert.Nil(t, Precheck(precheckInput(), precheckConfig()))
	})

	t.Run("Accepts an empty instance", func(t *testing.T) {
		assert.Nil(t, Precheck(Input{}, precheckConfig()))
	})

	t.Run("Rejects more courses per student than courses", func(t *testing.T) {
		// Arrange
		config := precheckConfig()
		config.CoursesPerStudent = 3

		// Act & Assert
		assert.NotNil(t, Precheck(precheckInput(), config))
	})

	t.Run("Rejects demand above the total capacity", func(t *testing.T) {
		// Arrange
		config := precheckConfig()
		config.MaxStudentsPerCourse = 1
		input := precheckInput()
		input.Students = append(input.Students, Student{Name: "clara", Prefs: map[string]int{}})

		// Act & Assert
		assert.NotNil(t, Precheck(input, config))
	})

	t.Run("Rejects a minimum load above the student count", func(t *testing.T) {
		// Arrange: three students cannot open any course that requires ten
		config := DefaultConfig()
		input := precheckInput()
		input.Students = append(input.Students, Student{Name: "clara", Prefs: map[string]int{}})

		// Act & Assert
		assert.NotNil(t, Precheck(input, config))
	})

	t.Run("Rejects hard preferences with too few ranked courses", func(t *testing.T) {
		// Arrange
		config := precheckConfig()
		config.HardPreferences = true
		config.CoursesPerStudent = 2
		config.MaxStudentsPerCourse = 4

		// Act & Assert
		assert.NotNil(t, Precheck(precheckInput(), config))
	})

	t.Run("Rejects hard preferences crowding one course", func(t *testing.T) {
		// Arrange: both students rank only algebra, which seats one
		config := precheckConfig()
		config.HardPreferences = true
		config.MaxStudentsPerCourse = 1
		input := precheckInput()
		input.Students[1].Prefs = map[string]int{"algebra": 2}

		// Act
		err := Precheck(input, config)

		// Assert
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "ranked preferences")
	})

	t.Run("Accepts hard preferences that can spread", func(t *testing.T) {
		// Arrange
		config := precheckConfig()
		config.HardPreferences = true

		// Act & Assert
		assert.Nil(t, Precheck(precheckInput(), config))
	})
}

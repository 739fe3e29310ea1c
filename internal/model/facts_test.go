package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFacts(t *testing.T) {
	t.Run("Reads facts in any order", func(t *testing.T) {
		// Arrange
		content := `% preferences travel ahead of their student facts
#include "model.lp".
preference(ana, algebra, 1).
course(algebra).
course(biology).
student(ana).
student(bruno).
preference(bruno,biology,2).
solve.
`
		config := DefaultConfig()

		// Act
		input, err := ParseFacts(strings.NewReader(content), &config)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, []string{"algebra", "biology"}, input.Courses)
		assert.Equal(t, []Student{
			{Name: "ana", Prefs: map[string]int{"algebra": 1}},
			{Name: "bruno", Prefs: map[string]int{"biology": 2}},
		}, input.Students)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("Overrides the configuration", func(t *testing.T) {
		// Arrange
		content := `courses_per_student(2).
max_student_per_course(5).
min_student_per_course(3).
out_of_preference_penalty(7).
hard_enforced_preference(true).
course(algebra).
`
		config := DefaultConfig()

		// Act
		_, err := ParseFacts(strings.NewReader(content), &config)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 2, config.CoursesPerStudent)
		assert.Equal(t, 5, config.MaxStudentsPerCourse)
		assert.Equal(t, 3, config.MinStudentsPerCourse)
		assert.Equal(t, 7, config.OutOfPreferencePenalty)
		assert.True(t, config.HardPreferences)
	})

	t.Run("Collapses duplicates and drops strays", func(t *testing.T) {
		// Arrange
		content := `course(algebra).
course(algebra).
student(ana).
student(ana).
preference(ana, drama, 1).
preference(ghost, algebra, 1).
preference(ana, algebra, 0).
preference(ana, algebra, 2).
`
		config := DefaultConfig()

		// Act
		input, err := ParseFacts(strings.NewReader(content), &config)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, []string{"algebra"}, input.Courses)
		// The zero rank is skipped, drama and ghost refer to nothing
		assert.Equal(t, []Student{
			{Name: "ana", Prefs: map[string]int{"algebra": 2}},
		}, input.Students)
	})
}

func TestWriteFacts(t *testing.T) {
	// Arrange
	input := Input{
		Courses: []string{"algebra", "biology"},
		Students: []Student{
			{Name: "ana", Prefs: map[string]int{"algebra": 1, "biology": 2}},
			{Name: "bruno", Prefs: map[string]int{}},
		},
	}
	config := DefaultConfig()
	config.HardPreferences = true

	// Act
	var buffer bytes.Buffer
	err := WriteFacts(&buffer, input, config)

	// Assert
	assert.Nil(t, err)
	facts := buffer.String()
	for _, fact := range []string{
		"courses_per_student(1).",
		"max_student_per_course(30).",
		"min_student_per_course(10).",
		"out_of_preference_penalty(20).",
		"hard_enforced_preference(true).",
		"course(algebra).",
		"course(biology).",
		"student(ana).",
		"student(bruno).",
		"preference(ana, algebra, 1).",
		"preference(ana, biology, 2).",
	} {
		assert.Contains(t, facts, fact)
	}
	assert.NotContains(t, facts, "preference(bruno")
}

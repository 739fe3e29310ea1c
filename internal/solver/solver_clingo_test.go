package solver

import (
	"os/exec"
	"strings"
	"testing"
	"time"
)

func clingoProblem() Problem {
	return Problem{
		Students:          []string{"ana", "bruno"},
		Courses:           []string{"algebra", "biology"},
		Rank:              [][]int{{1, 2}, {1, 2}},
		CoursesPerStudent: 1,
		MinPerCourse:      0,
		MaxPerCourse:      1,
		Penalty:           20,
		TimeLimit:         30 * time.Second,
	}
}

func TestBuildProgram(t *testing.T) {
	problem := clingoProblem()
	program := buildProgram(problem)

	for _, fact := range []string{
		"course(algebra).",
		"course(biology).",
		"student(ana).",
		"student(bruno).",
		"preference(ana, algebra, 1).",
		"preference(bruno, biology, 2).",
		"#const k = 1.",
		"#const max_load = 1.",
		"#const min_load = 0.",
		"#const penalty = 20.",
		"k { assign(S, C) : course(C) } k :- student(S).",
		":~ assign(S, C), not ranked(S, C). [penalty@0, S, C]",
	} {
		if !strings.Contains(program, fact) {
			t.Errorf("program is missing %v", fact)
		}
	}

	problem.HardPreferences = true
	program = buildProgram(problem)
	if !strings.Contains(program, ":- assign(S, C), not ranked(S, C).") {
		t.Error("program is missing the hard preference constraint")
	}
	if strings.Contains(program, "[penalty@0") {
		t.Error("program must not carry the penalty constraint in hard mode")
	}
}

func TestParseAnswer(t *testing.T) {
	problem := clingoProblem()

	output := `clingo version 5.6.2
Reading from stdin
Solving...
Answer: 1
assign(ana,algebra) assign(bruno,algebra)
Answer: 2
assign(ana,algebra) assign(bruno,biology)
OPTIMUM FOUND

Models       : 2
Optimization : 3
`
	assigned, found := parseAnswer(output, problem)
	if !found {
		t.Fatal("expected an answer set")
	}
	// Only the last answer set counts
	expected := map[[2]int]bool{{0, 0}: true, {1, 1}: true}
	if len(assigned) != len(expected) {
		t.Errorf("expected %v assignments, got %v", len(expected), len(assigned))
	}
	for pair := range expected {
		if !assigned[pair] {
			t.Errorf("missing assignment %v", pair)
		}
	}

	if _, found := parseAnswer("Solving...\nUNKNOWN\n", problem); found {
		t.Error("expected no answer set")
	}
}

func TestClingoSolve(t *testing.T) {
	if _, err := exec.LookPath(clingoPath); err != nil {
		t.Skip("clingo executable is not available")
	}

	solver := NewClingoSolver()
	for range 5 {
		problem := GenerateProblem(12, 4)
		result, err := solver.Solve(problem)
		if err != nil {
			t.Fatalf("an error occurred while solving the instance: %v", err)
		}
		if result.Status != StatusOptimal {
			t.Errorf("expected an optimal distribution, got %v", result.Status)
		}
		if !AssertAssignment(problem, result) {
			t.Error("solution does not satisfy the instance")
		}
	}
}

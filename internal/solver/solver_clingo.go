package solver

import (
	"bytes"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const clingoPath = "clingo"

type clingoSolver struct{}

// NewClingoSolver returns the engine backed by an external clingo process. The
// instance travels to clingo as ASP facts on standard input and the last
// answer set travels back on standard output.
func NewClingoSolver() Solver {
	return &clingoSolver{}
}

func (solver *clingoSolver) Name() string {
	return "clingo"
}

var assignAtom = regexp.MustCompile(`assign\(([a-z0-9_]+),([a-z0-9_]+)\)`)

func (solver *clingoSolver) Solve(problem Problem) (*Result, error) {
	start := time.Now()

	seconds := int(math.Ceil(problem.TimeLimit.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	cmd := exec.Command(getExecutablePath("clingo", clingoPath), fmt.Sprintf("--time-limit=%v", seconds))
	cmd.Stdin = strings.NewReader(buildProgram(problem)) // Feed the ASP program into clingo's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	// Exit codes follow the clasp convention: 10 satisfiable, 20 unsatisfiable,
	// 30 optimum found, +1 when the time limit interrupts the search
	code := cmd.ProcessState.ExitCode()
	if err != nil && code != 10 && code != 11 && code != 20 && code != 30 && code != 31 {
		return nil, fmt.Errorf("an error occurred during clingo execution: %v : %v", err.Error(), stderr.String())
	}
	runtime := time.Since(start)

	output := stdOut.String()
	if strings.Contains(output, "UNSATISFIABLE") {
		return &Result{Status: StatusInfeasible, Runtime: runtime}, nil
	}

	assigned, found := parseAnswer(output, problem)
	if !found {
		return &Result{Status: StatusUnknown, Runtime: runtime}, nil
	}

	status := StatusFeasible
	if strings.Contains(output, "OPTIMUM FOUND") {
		status = StatusOptimal
	}
	return buildResult(problem, status, runtime, func(s, c int) bool {
		return assigned[[2]int{s, c}]
	}), nil
}

// buildProgram renders the instance as an ASP program: facts first, then the
// choice rule, the load constraints and the weak preference constraints.
func buildProgram(problem Problem) string {
	var builder strings.Builder

	for _, course := range problem.Courses {
		fmt.Fprintf(&builder, "course(%v).\n", course)
	}
	for s, student := range problem.Students {
		fmt.Fprintf(&builder, "student(%v).\n", student)
		for c, course := range problem.Courses {
			if problem.Ranked(s, c) {
				fmt.Fprintf(&builder, "preference(%v, %v, %v).\n", student, course, problem.Rank[s][c])
			}
		}
	}

	fmt.Fprintf(&builder, "\n#const k = %v.\n", problem.CoursesPerStudent)
	fmt.Fprintf(&builder, "#const max_load = %v.\n", problem.MaxPerCourse)
	fmt.Fprintf(&builder, "#const min_load = %v.\n", problem.MinPerCourse)
	fmt.Fprintf(&builder, "#const penalty = %v.\n", problem.Penalty)

	builder.WriteString(`
ranked(S, C) :- preference(S, C, _).
k { assign(S, C) : course(C) } k :- student(S).
:- course(C), #count { S : assign(S, C) } > max_load.
:- course(C), N = #count { S : assign(S, C) }, N > 0, N < min_load.
:~ assign(S, C), preference(S, C, R). [R@0, S, C]
`)
	if problem.HardPreferences {
		builder.WriteString(":- assign(S, C), not ranked(S, C).\n")
	} else {
		builder.WriteString(":~ assign(S, C), not ranked(S, C). [penalty@0, S, C]\n")
	}
	return builder.String()
}

// parseAnswer maps the atoms of the last printed answer set back onto the
// instance indexes. found is false when clingo printed no answer at all.
func parseAnswer(output string, problem Problem) (map[[2]int]bool, bool) {
	lines := strings.Split(output, "\n")
	model, found := "", false
	for i, line := range lines {
		if strings.HasPrefix(line, "Answer:") && i+1 < len(lines) {
			model = lines[i+1]
			found = true
		}
	}
	if !found {
		return nil, false
	}

	studentIndex := make(map[string]int, len(problem.Students))
	for s, student := range problem.Students {
		studentIndex[student] = s
	}
	courseIndex := make(map[string]int, len(problem.Courses))
	for c, course := range problem.Courses {
		courseIndex[course] = c
	}

	assigned := make(map[[2]int]bool)
	for _, match := range assignAtom.FindAllStringSubmatch(model, -1) {
		s, okStudent := studentIndex[match[1]]
		c, okCourse := courseIndex[match[2]]
		if okStudent && okCourse {
			assigned[[2]int{s, c}] = true
		}
	}
	return assigned, true
}

package solver

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns the pure-Go engine. Load bounds become sequential
// counter circuits and the rank objective a saturating weighted counter, so
// optimization runs as repeated incremental SAT calls under one shared
// deadline. It needs no external binary or native library.
func NewGiniSolver() Solver {
	return &giniSolver{}
}

func (solver *giniSolver) Name() string {
	return "gini"
}

func (solver *giniSolver) Solve(problem Problem) (*Result, error) {
	start := time.Now()
	deadline := start.Add(problem.TimeLimit)

	enc := newEncoder(problem)
	enc.encode()

	//** First call establishes feasibility
	outcome := enc.solve(time.Until(deadline))
	if outcome == 0 {
		return &Result{Status: StatusUnknown, Runtime: time.Since(start)}, nil
	}
	if outcome == -1 {
		return &Result{Status: StatusInfeasible, Runtime: time.Since(start)}, nil
	}
	chosen, objective := enc.extract()

	//** Tighten the objective bound until unsat proves the incumbent optimal
	// or the deadline runs out
	status := StatusFeasible
	for objective > 0 {
		enc.capObjectiveBelow(objective)
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		outcome = enc.solve(remaining)
		if outcome == 1 {
			chosen, objective = enc.extract()
			continue
		}
		if outcome == -1 {
			status = StatusOptimal
		}
		break
	}
	if objective == 0 {
		status = StatusOptimal
	}

	return buildResult(problem, status, time.Since(start), func(s, c int) bool {
		return chosen[s][c]
	}), nil
}

// encoder turns a Problem into clauses over pair literals 1..students*courses,
// handing fresh auxiliary variables to the counter circuits as needed.
type encoder struct {
	g       *gini.Gini
	problem Problem
	pair    [][]z.Lit
	next    z.Var
	top     []z.Lit
}

func newEncoder(problem Problem) *encoder {
	students, courses := len(problem.Students), len(problem.Courses)
	enc := &encoder{
		g:       gini.New(),
		problem: problem,
		pair:    make([][]z.Lit, students),
		next:    z.Var(students*courses + 1),
	}
	for s := range enc.pair {
		enc.pair[s] = make([]z.Lit, courses)
		for c := range enc.pair[s] {
			enc.pair[s][c] = z.Var(s*courses + c + 1).Pos()
		}
	}
	return enc
}

func (enc *encoder) fresh() z.Lit {
	lit := enc.next.Pos()
	enc.next++
	return lit
}

func (enc *encoder) clause(lits ...z.Lit) {
	for _, lit := range lits {
		enc.g.Add(lit)
	}
	enc.g.Add(0)
}

func (enc *encoder) solve(limit time.Duration) int {
	if limit <= 0 {
		return 0
	}
	return enc.g.GoSolve().Try(limit)
}

func (enc *encoder) encode() {
	problem := enc.problem
	students, courses := len(problem.Students), len(problem.Courses)

	//** Every student takes exactly CoursesPerStudent courses
	for s := range students {
		row := make([]z.Lit, courses)
		for c := range courses {
			row[c] = enc.pair[s][c]
		}
		enc.atMost(row, problem.CoursesPerStudent, 0)
		enc.atLeast(row, problem.CoursesPerStudent, 0)
	}

	//** Per-course load: at most Max always; empty unless open, at least Min when open
	for c := range courses {
		column := make([]z.Lit, students)
		for s := range students {
			column[s] = enc.pair[s][c]
		}
		enc.atMost(column, problem.MaxPerCourse, 0)

		if problem.MinPerCourse > 0 {
			open := enc.fresh()
			for s := range students {
				enc.clause(column[s].Not(), open)
			}
			enc.atLeast(column, problem.MinPerCourse, open)
		}
	}

	//** Hard preferences forbid unranked pairs outright
	if problem.HardPreferences {
		for s := range students {
			for c := range courses {
				if !problem.Ranked(s, c) {
					enc.clause(enc.pair[s][c].Not())
				}
			}
		}
	}

	enc.encodeObjective()
}

// atMost enforces that no more than k of lits hold, via the sequential counter
// encoding. A non-zero guard makes the bound conditional on guard being true.
func (enc *encoder) atMost(lits []z.Lit, k int, guard z.Lit) {
	n := len(lits)
	if k >= n {
		return
	}
	if k < 0 {
		// Unsatisfiable on its own; under a guard, the guard cannot hold
		if guard != 0 {
			enc.clause(guard.Not())
		} else {
			enc.clause()
		}
		return
	}
	if k == 0 {
		for _, lit := range lits {
			if guard != 0 {
				enc.clause(guard.Not(), lit.Not())
			} else {
				enc.clause(lit.Not())
			}
		}
		return
	}

	// reg[i][j] means at least j+1 of the first i+1 literals hold
	reg := make([][]z.Lit, n-1)
	for i := range reg {
		reg[i] = make([]z.Lit, k)
		for j := range reg[i] {
			reg[i][j] = enc.fresh()
		}
	}

	enc.clause(lits[0].Not(), reg[0][0])
	for i := 1; i < n-1; i++ {
		enc.clause(lits[i].Not(), reg[i][0])
		enc.clause(reg[i-1][0].Not(), reg[i][0])
		for j := 1; j < k; j++ {
			enc.clause(lits[i].Not(), reg[i-1][j-1].Not(), reg[i][j])
			enc.clause(reg[i-1][j].Not(), reg[i][j])
		}
	}
	for i := 1; i < n; i++ {
		if guard != 0 {
			enc.clause(guard.Not(), lits[i].Not(), reg[i-1][k-1].Not())
		} else {
			enc.clause(lits[i].Not(), reg[i-1][k-1].Not())
		}
	}
}

// atLeast enforces that at least m of lits hold by bounding the negations.
func (enc *encoder) atLeast(lits []z.Lit, m int, guard z.Lit) {
	negated := make([]z.Lit, len(lits))
	for i, lit := range lits {
		negated[i] = lit.Not()
	}
	enc.atMost(negated, len(lits)-m, guard)
}

// encodeObjective builds a saturating weighted counter over every objective
// term. After it runs, top[j-1] is forced true by propagation whenever the
// total weight of the chosen terms reaches j, so a single unit literal caps
// the objective from above.
func (enc *encoder) encodeObjective() {
	problem := enc.problem

	type term struct {
		lit    z.Lit
		weight int
	}
	terms := make([]term, 0, len(problem.Students)*len(problem.Courses))
	bound := 0
	for s := range problem.Students {
		heaviest := 0
		for c := range problem.Courses {
			switch {
			case problem.Ranked(s, c):
				terms = append(terms, term{enc.pair[s][c], problem.Rank[s][c]})
				heaviest = max(heaviest, problem.Rank[s][c])
			case problem.HardPreferences:
				// forbidden elsewhere, contributes nothing
			case problem.Penalty > 0:
				terms = append(terms, term{enc.pair[s][c], problem.Penalty})
				heaviest = max(heaviest, problem.Penalty)
			}
		}
		// No valid assignment can cost a student more than its heaviest
		// weight once per granted course
		bound += problem.CoursesPerStudent * heaviest
	}
	if bound == 0 {
		enc.top = nil
		return
	}

	reach := 0
	prev := []z.Lit{}
	for _, term := range terms {
		reach = min(bound, reach+term.weight)
		cur := make([]z.Lit, reach)
		for j := range cur {
			cur[j] = enc.fresh()
		}

		// Carry the previous prefix and keep registers downward closed
		for j := 1; j <= len(prev); j++ {
			enc.clause(prev[j-1].Not(), cur[j-1])
		}
		for j := 2; j <= reach; j++ {
			enc.clause(cur[j-1].Not(), cur[j-2])
		}

		// Choosing the term bumps the reached weight, saturating at reach
		enc.clause(term.lit.Not(), cur[min(term.weight, reach)-1])
		for j := 1; j <= len(prev); j++ {
			enc.clause(term.lit.Not(), prev[j-1].Not(), cur[min(j+term.weight, reach)-1])
		}
		prev = cur
	}
	enc.top = prev
}

// capObjectiveBelow permanently asserts objective < value.
func (enc *encoder) capObjectiveBelow(value int64) {
	enc.clause(enc.top[int(value)-1].Not())
}

// extract reads the current model. Only valid right after solve returned 1.
func (enc *encoder) extract() ([][]bool, int64) {
	problem := enc.problem
	chosen := make([][]bool, len(problem.Students))
	var objective int64
	for s := range problem.Students {
		chosen[s] = make([]bool, len(problem.Courses))
		for c := range problem.Courses {
			if enc.g.Value(enc.pair[s][c]) {
				chosen[s][c] = true
				objective += int64(problem.Weight(s, c))
			}
		}
	}
	return chosen, objective
}

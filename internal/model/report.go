package model

import (
	"encoding/csv"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/distributing/internal/solver"
	"github.com/samber/lo"
)

// RenderText renders the outcome as the solvers always printed it: status
// banner, res/count/quality sections and the penalty totals. Unsolved outcomes
// render the banner and the diagnostic reason only.
func RenderText(outcome *Outcome, input Input) string {
	var builder strings.Builder

	switch outcome.Status {
	case solver.StatusOptimal:
		builder.WriteString("Optimal solution found!\n")
	case solver.StatusFeasible:
		builder.WriteString("Feasible solution found!\n")
	case solver.StatusInfeasible:
		builder.WriteString("No feasible solution exists!\n")
	default:
		fmt.Fprintf(&builder, "Solver status: %v\n", outcome.Status)
	}
	if !outcome.Solved() {
		if outcome.Reason != "" {
			fmt.Fprintf(&builder, "%v\n", outcome.Reason)
		}
		return builder.String()
	}

	builder.WriteString("\n=== SOLUTION ===\n")
	for _, assignment := range outcome.Assignments {
		fmt.Fprintf(&builder, "res(%v,%v,%v).\n", assignment.Student, assignment.Course, rankLabel(assignment))
	}

	builder.WriteString("\n=== COURSE COUNTS ===\n")
	counts := lo.CountValuesBy(outcome.Assignments, func(assignment Assignment) string {
		return assignment.Course
	})
	for _, course := range input.Courses {
		fmt.Fprintf(&builder, "count(%v,%v).\n", counts[course], course)
	}

	builder.WriteString("\n=== QUALITY STATISTICS ===\n")
	ranked := lo.Filter(outcome.Assignments, func(assignment Assignment, _ int) bool {
		return assignment.Ranked
	})
	byRank := lo.CountValuesBy(ranked, func(assignment Assignment) int {
		return assignment.Rank
	})
	for _, rank := range slices.Sorted(maps.Keys(byRank)) {
		fmt.Fprintf(&builder, "quality(rank(%v),amount(%v)).\n", rank, byRank[rank])
	}
	if unranked := len(outcome.Assignments) - len(ranked); unranked > 0 {
		fmt.Fprintf(&builder, "quality(rank(no_preference),amount(%v)).\n", unranked)
	}

	fmt.Fprintf(&builder, "\nTotal penalty: %v\n", outcome.Objective)
	fmt.Fprintf(&builder, "Objective value: %v\n", outcome.Objective)
	return builder.String()
}

// RenderCSV renders the assignments as student,course,rank rows behind a
// header. Unranked picks carry no_preference in the rank column.
func RenderCSV(outcome *Outcome) string {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	writer.Write([]string{"student", "course", "rank"})
	for _, assignment := range outcome.Assignments {
		writer.Write([]string{assignment.Student, assignment.Course, rankLabel(assignment)})
	}
	writer.Flush()
	return builder.String()
}

func rankLabel(assignment Assignment) string {
	if !assignment.Ranked {
		return "no_preference"
	}
	return strconv.Itoa(assignment.Rank)
}

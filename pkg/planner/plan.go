package planner

import (
	"slices"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/timeline"
	"github.com/samber/lo"
)

// Plan is a snapshot of the schedule produced by a planning run
type Plan struct {
	Terms    []timeline.Term
	Schedule map[string][]string // term label -> courses in assignment order
	Outcomes []Outcome           // in resolution order
}

// Courses returns the courses assigned to the term, in assignment order
func (plan Plan) Courses(term string) []string {
	return slices.Clone(plan.Schedule[term])
}

// TermOf returns the earliest term holding the course
func (plan Plan) TermOf(course string) (timeline.Term, bool) {
	return lo.Find(plan.Terms, func(term timeline.Term) bool {
		return slices.Contains(plan.Schedule[term.Label], course)
	})
}

// Load returns the total units assigned to the term
func (plan Plan) Load(term string, courses *catalog.Catalog) float64 {
	return lo.SumBy(plan.Schedule[term], courses.Units)
}

func (plan Plan) Outcome(course string) (Outcome, bool) {
	return lo.Find(plan.Outcomes, func(outcome Outcome) bool { return outcome.Course == course })
}

func (plan Plan) Unplaced() []Outcome {
	return lo.Filter(plan.Outcomes, func(outcome Outcome, _ int) bool { return outcome.Status == Unplaceable })
}

// Scheduled counts the course assignments across every term
func (plan Plan) Scheduled() int {
	return lo.SumBy(plan.Terms, func(term timeline.Term) int { return len(plan.Schedule[term.Label]) })
}

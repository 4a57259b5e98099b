package planner

import (
	"slices"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/samber/lo"
)

func verify(plan Plan, courses *catalog.Catalog, graphs catalog.Graphs, sessions map[string][]string, unitCap float64) bool {
	//** Index scheduled courses
	ordinals := make(map[string][]int)
	termSessions := make(map[string]string)
	for _, term := range plan.Terms {
		termSessions[term.Label] = term.Session
		for _, course := range plan.Schedule[term.Label] {
			ordinals[course] = append(ordinals[course], term.Ordinal)
		}
	}

	placed := lo.SliceToMap(
		lo.Filter(plan.Outcomes, func(outcome Outcome, _ int) bool { return outcome.Status == Placed }),
		func(outcome Outcome) (string, Outcome) { return outcome.Course, outcome },
	)

	for course, outcome := range placed {
		// Check that:
		// - The placed course is in the schedule exactly once, at the term its outcome names
		// - The term's session is permitted for the course
		if len(ordinals[course]) != 1 ||
			!slices.Contains(plan.Schedule[outcome.Term], course) ||
			!slices.Contains(sessions[course], termSessions[outcome.Term]) {
			return false
		}
	}

	//** Prerequisite ordering, for every edge with at least one placed end (pinned pairs are the caller's responsibility)
	for course, prerequisites := range graphs.Backward {
		for _, prerequisite := range prerequisites {
			_, placedCourse := placed[course]
			_, placedPrerequisite := placed[prerequisite]
			if !placedCourse && !placedPrerequisite {
				continue
			}
			if len(ordinals[course]) == 0 || len(ordinals[prerequisite]) == 0 {
				continue
			}
			if lo.Max(ordinals[prerequisite]) >= lo.Min(ordinals[course]) {
				return false
			}
		}
	}

	//** Unit cap, for every term that received a placed course (pinned terms may exceed it)
	for _, term := range plan.Terms {
		if !lo.SomeBy(plan.Schedule[term.Label], func(course string) bool { _, ok := placed[course]; return ok }) {
			continue
		}
		if plan.Load(term.Label, courses) >= unitCap {
			return false
		}
	}

	return true
}

package planner

import (
	"fmt"
	"slices"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/timeline"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// depthFirstPlanner places each course into the earliest legal term after resolving its prerequisites.
// It is a single pass greedy heuristic: placement never backtracks, and for courses unrelated by
// prerequisites the configuration order decides who gets the earlier terms.
type depthFirstPlanner struct {
	catalog      *catalog.Catalog
	graphs       catalog.Graphs
	timeline     *timeline.Timeline
	availability []Availability
	sessions     map[string][]string // course -> permitted session types
	unitCap      float64
	logger       zerolog.Logger

	schedule map[string][]string // term label -> courses
	visited  map[string]bool
	outcomes map[string]Outcome
	resolved []string // courses in resolution order
	built    bool
}

type frame struct {
	course string
	next   int // index of the next prerequisite to descend into
}

func NewDepthFirstPlanner(
	courses *catalog.Catalog,
	horizon *timeline.Timeline,
	availability []Availability,
	unitCap float64,
	logger zerolog.Logger,
) Planner {
	planner := &depthFirstPlanner{
		catalog:      courses,
		graphs:       catalog.BuildGraphs(courses),
		timeline:     horizon,
		availability: slices.Clone(availability),
		sessions:     make(map[string][]string, len(availability)),
		unitCap:      unitCap,
		logger:       logger,
		schedule:     make(map[string][]string),
		visited:      make(map[string]bool),
		outcomes:     make(map[string]Outcome),
		resolved:     make([]string, 0, courses.Len()),
	}

	for _, entry := range availability {
		planner.sessions[entry.Course] = slices.Clone(entry.Sessions)
	}
	for _, label := range horizon.Labels() {
		planner.schedule[label] = []string{}
	}

	return planner
}

func (planner *depthFirstPlanner) Pin(term string, courses []string) error {
	if planner.built {
		return ErrAlreadyBuilt
	} else if _, ok := planner.timeline.Term(term); !ok {
		return fmt.Errorf("cannot pin courses into %q: %w", term, ErrUnknownTerm)
	}

	// Courses previously held by the term lose their slot
	for _, course := range planner.schedule[term] {
		if slices.Contains(courses, course) {
			continue
		}
		outcome := planner.outcomes[course]
		if outcome.Term == term {
			outcome.Status, outcome.Term, outcome.Reason = Unplaceable, "", ReasonDisplaced
			planner.outcomes[course] = outcome
			planner.logger.Warn().Str("course", course).Str("term", term).Msg("course displaced by pinned courses")
		}
	}

	// Pinned courses leave any term an earlier placement put them in
	for _, course := range courses {
		if outcome, ok := planner.outcomes[course]; ok && outcome.Status == Placed && outcome.Term != term {
			planner.schedule[outcome.Term] = lo.Without(planner.schedule[outcome.Term], course)
			planner.logger.Debug().Str("course", course).Str("from", outcome.Term).Str("to", term).Msg("placed course moved by pin")
		}
	}

	planner.schedule[term] = slices.Clone(courses)
	for _, course := range courses {
		planner.visited[course] = true
		planner.record(Outcome{Course: course, Status: Pinned, Term: term})
	}
	planner.logger.Debug().Str("term", term).Strs("courses", courses).Msg("pinned courses")

	return nil
}

func (planner *depthFirstPlanner) Complete(courses []string) error {
	if planner.built {
		return ErrAlreadyBuilt
	}

	for _, course := range courses {
		if planner.visited[course] {
			continue
		}
		planner.visited[course] = true
		planner.record(Outcome{Course: course, Status: Completed})
	}
	return nil
}

// Place runs the depth first traversal with an explicit stack. A course is marked visited when it is
// pushed and assigned when it is popped, so every prerequisite is resolved before its dependent and a
// prerequisite cycle cannot loop forever.
func (planner *depthFirstPlanner) Place(course string) Outcome {
	if planner.visited[course] {
		return planner.outcomes[course]
	}
	planner.visited[course] = true

	stack := []frame{{course: course}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		prerequisites := planner.graphs.Backward[top.course]

		if top.next < len(prerequisites) {
			prerequisite := prerequisites[top.next]
			top.next++
			if !planner.visited[prerequisite] {
				planner.visited[prerequisite] = true
				stack = append(stack, frame{course: prerequisite})
			}
			continue
		}

		current := top.course
		stack = stack[:len(stack)-1]
		planner.record(planner.assign(current))
	}

	return planner.outcomes[course]
}

func (planner *depthFirstPlanner) Build() Plan {
	for _, entry := range planner.availability {
		planner.Place(entry.Course)
	}
	planner.built = true

	plan := planner.Plan()
	planner.logger.Info().
		Int("scheduled", plan.Scheduled()).
		Int("unplaceable", len(plan.Unplaced())).
		Msg("plan built")
	return plan
}

func (planner *depthFirstPlanner) Plan() Plan {
	schedule := make(map[string][]string, len(planner.schedule))
	for term, courses := range planner.schedule {
		schedule[term] = slices.Clone(courses)
	}

	return Plan{
		Terms:    planner.timeline.Terms(),
		Schedule: schedule,
		Outcomes: lo.Map(planner.resolved, func(course string, _ int) Outcome { return planner.outcomes[course] }),
	}
}

func (planner *depthFirstPlanner) Verify(plan Plan) bool {
	return verify(plan, planner.catalog, planner.graphs, planner.sessions, planner.unitCap)
}

func (planner *depthFirstPlanner) Catalog() *catalog.Catalog {
	return planner.catalog
}

func (planner *depthFirstPlanner) Graphs() catalog.Graphs {
	return planner.graphs
}

func (planner *depthFirstPlanner) Timeline() *timeline.Timeline {
	return planner.timeline
}

// assign picks the first term, scanning years in order and the course's sessions in configured order,
// that lies strictly inside the window and still has room below the unit cap
func (planner *depthFirstPlanner) assign(course string) Outcome {
	earliest, latest := planner.window(course)
	outcome := Outcome{Course: course, Earliest: earliest, Latest: latest}

	sessions := planner.sessions[course]
	if len(sessions) == 0 {
		outcome.Status, outcome.Reason = Unplaceable, ReasonNoSessions
		planner.logger.Warn().Str("course", course).Str("reason", outcome.Reason).Msg("course left unplaced")
		return outcome
	}

	for year := 0; year < planner.timeline.Years(); year++ {
		for _, session := range sessions {
			term, ok := planner.timeline.Lookup(session, year)
			if !ok || !planner.fits(term.Label, course) || term.Ordinal <= earliest || term.Ordinal >= latest {
				continue
			}

			planner.schedule[term.Label] = append(planner.schedule[term.Label], course)
			outcome.Status, outcome.Term = Placed, term.Label
			planner.logger.Debug().Str("course", course).Str("term", term.Label).Msg("course placed")
			return outcome
		}
	}

	outcome.Status, outcome.Reason = Unplaceable, ReasonNoTerm
	planner.logger.Warn().
		Str("course", course).
		Int("earliest", earliest).
		Int("latest", latest).
		Str("reason", outcome.Reason).
		Msg("course left unplaced")
	return outcome
}

// window returns the open ordinal interval bounded by the latest scheduled prerequisite and the
// earliest scheduled dependent. Neighbors that are not scheduled leave the sentinel in place
func (planner *depthFirstPlanner) window(course string) (earliest, latest int) {
	earliest, latest = planner.timeline.Sentinels()

	for _, prerequisite := range planner.graphs.Backward[course] {
		for _, ordinal := range planner.ordinals(prerequisite) {
			earliest = max(earliest, ordinal)
		}
	}
	for _, dependent := range planner.graphs.Forward[course] {
		for _, ordinal := range planner.ordinals(dependent) {
			latest = min(latest, ordinal)
		}
	}

	return earliest, latest
}

// ordinals lists the ordinals of every term holding the course; pinned courses may sit in more than one
func (planner *depthFirstPlanner) ordinals(course string) []int {
	return lo.FilterMap(planner.timeline.Terms(), func(term timeline.Term, _ int) (int, bool) {
		return term.Ordinal, slices.Contains(planner.schedule[term.Label], course)
	})
}

// fits reports whether adding the course keeps the term's load strictly below the unit cap
func (planner *depthFirstPlanner) fits(term, course string) bool {
	load := lo.SumBy(planner.schedule[term], planner.catalog.Units)
	return load+planner.catalog.Units(course) < planner.unitCap
}

func (planner *depthFirstPlanner) record(outcome Outcome) {
	if _, ok := planner.outcomes[outcome.Course]; !ok {
		planner.resolved = append(planner.resolved, outcome.Course)
	}
	planner.outcomes[outcome.Course] = outcome
}

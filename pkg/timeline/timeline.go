package timeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

var DefaultSessions = []string{"Fall", "Winter", "Spring"}

// Term is one scheduling slot: a session type within a year of the planning horizon
type Term struct {
	Label   string
	Session string
	Year    int
	Ordinal int // Total order across the horizon; only ever compared
}

// Timeline enumerates the terms of a planning horizon in chronological order
type Timeline struct {
	years    int
	sessions []string
	terms    []Term
	byLabel  map[string]Term
}

func Label(session string, year int) string {
	return fmt.Sprintf("%v%d", session, year)
}

func New(years int, sessions []string) (*Timeline, error) {
	if years <= 0 {
		return nil, fmt.Errorf("planning horizon must be at least one year: %v", years)
	} else if len(sessions) == 0 {
		return nil, errors.New("at least one session type is required")
	}
	if duplicates := lo.FindDuplicates(sessions); len(duplicates) > 0 {
		return nil, fmt.Errorf("session types must be unique: %v", duplicates)
	}

	timeline := &Timeline{
		years:    years,
		sessions: slices.Clone(sessions),
		terms:    make([]Term, 0, years*len(sessions)),
		byLabel:  make(map[string]Term, years*len(sessions)),
	}
	for year := 0; year < years; year++ {
		for index, session := range sessions {
			term := Term{
				Label:   Label(session, year),
				Session: session,
				Year:    year,
				Ordinal: year*len(sessions) + index,
			}
			if _, ok := timeline.byLabel[term.Label]; ok {
				// Sessions such as "Q" and "Q1" collide on "Q10" once the horizon reaches ten years
				return nil, fmt.Errorf("session types %v produce ambiguous term label %q", sessions, term.Label)
			}
			timeline.terms = append(timeline.terms, term)
			timeline.byLabel[term.Label] = term
		}
	}

	return timeline, nil
}

func (timeline *Timeline) Years() int {
	return timeline.years
}

func (timeline *Timeline) Sessions() []string {
	return slices.Clone(timeline.sessions)
}

func (timeline *Timeline) SessionsPerYear() int {
	return len(timeline.sessions)
}

// Terms returns every term in chronological order
func (timeline *Timeline) Terms() []Term {
	return slices.Clone(timeline.terms)
}

func (timeline *Timeline) Labels() []string {
	return lo.Map(timeline.terms, func(term Term, _ int) string { return term.Label })
}

func (timeline *Timeline) Term(label string) (Term, bool) {
	term, ok := timeline.byLabel[label]
	return term, ok
}

func (timeline *Timeline) Lookup(session string, year int) (Term, bool) {
	term, ok := timeline.Term(Label(session, year))
	return term, ok && term.Session == session && term.Year == year
}

func (timeline *Timeline) HasSession(session string) bool {
	return slices.Contains(timeline.sessions, session)
}

// Sentinels returns ordinals just below and just above every term of the horizon
func (timeline *Timeline) Sentinels() (lower, upper int) {
	return -1, timeline.years * len(timeline.sessions)
}

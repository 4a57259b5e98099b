package planner

import (
	"errors"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/timeline"
)

var (
	ErrUnknownTerm  = errors.New("unknown term")
	ErrAlreadyBuilt = errors.New("plan has already been built")
)

// Availability lists the session types a course may be taken in, in order of preference
type Availability struct {
	Course   string   `mapstructure:"course" json:"course" yaml:"course"`
	Sessions []string `mapstructure:"sessions" json:"sessions" yaml:"sessions"`
}

type Planner interface {
	// Forces the courses into the term, replacing whatever the term held, and marks them resolved. Must run before Build
	Pin(term string, courses []string) error

	// Marks courses as already taken so they are neither scheduled nor waited on. Must run before Build
	Complete(courses []string) error

	// Resolves the course and, transitively, its unresolved prerequisites. Repeated calls for a resolved course change nothing
	Place(course string) Outcome

	// Places every course of the availability configuration, in configuration order
	Build() Plan

	// Returns a snapshot of the current schedule
	Plan() Plan

	// Checks the plan against prerequisite ordering, availability and unit cap
	Verify(plan Plan) bool

	Catalog() *catalog.Catalog
	Graphs() catalog.Graphs
	Timeline() *timeline.Timeline
}

package catalog

import (
	"slices"

	"github.com/samber/lo"
)

type Course struct {
	Id            string
	Title         string
	Prerequisites []string
	Units         float64
}

// Catalog maps course identifiers to their records while remembering the order in which they were loaded
type Catalog struct {
	courses map[string]Course
	order   []string
}

// NewCatalog builds a catalog from the given records. A repeated identifier replaces the earlier record but keeps its original position
func NewCatalog(courses []Course) *Catalog {
	catalog := &Catalog{
		courses: make(map[string]Course, len(courses)),
		order:   make([]string, 0, len(courses)),
	}
	for _, course := range courses {
		if _, ok := catalog.courses[course.Id]; !ok {
			catalog.order = append(catalog.order, course.Id)
		}
		course.Prerequisites = slices.Clone(course.Prerequisites)
		if course.Prerequisites == nil {
			course.Prerequisites = []string{}
		}
		catalog.courses[course.Id] = course
	}
	return catalog
}

func (catalog *Catalog) Course(id string) (Course, bool) {
	course, ok := catalog.courses[id]
	if !ok {
		return Course{}, false
	}
	course.Prerequisites = slices.Clone(course.Prerequisites)
	return course, true
}

func (catalog *Catalog) Contains(id string) bool {
	_, ok := catalog.courses[id]
	return ok
}

// Units returns the unit count of the course, or 0 for identifiers that are not in the catalog
func (catalog *Catalog) Units(id string) float64 {
	return catalog.courses[id].Units
}

// Ids returns the identifiers in load order
func (catalog *Catalog) Ids() []string {
	return slices.Clone(catalog.order)
}

// Courses returns the records in load order
func (catalog *Catalog) Courses() []Course {
	return lo.Map(catalog.order, func(id string, _ int) Course {
		course, _ := catalog.Course(id)
		return course
	})
}

func (catalog *Catalog) Len() int {
	return len(catalog.order)
}

// Package render turns a plan into text, JSON or CSV for people and other tools.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/planner"
	"github.com/limaJavier/courseplanning/pkg/timeline"
	"github.com/samber/lo"
)

var Formats = []string{"text", "json", "csv"}

type Renderer func(writer io.Writer, plan planner.Plan, courses *catalog.Catalog) error

var renderers = map[string]Renderer{
	"text": Text,
	"json": Json,
	"csv":  Csv,
}

func ForFormat(format string) (Renderer, error) {
	renderer, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid format, allowed values are %v", format, Formats)
	}
	return renderer, nil
}

// Text prints one line per term followed by the courses that could not be placed
func Text(writer io.Writer, plan planner.Plan, courses *catalog.Catalog) error {
	separator := strings.Repeat("-", 50)

	var builder strings.Builder
	fmt.Fprintf(&builder, "%v\n\n", separator)
	for _, term := range plan.Terms {
		fmt.Fprintf(&builder, "%v: [%v] (%v units)\n",
			term.Label,
			strings.Join(plan.Schedule[term.Label], ", "),
			formatUnits(plan.Load(term.Label, courses)),
		)
	}

	if unplaced := plan.Unplaced(); len(unplaced) > 0 {
		builder.WriteString("\nUnplaced:\n")
		for _, outcome := range unplaced {
			fmt.Fprintf(&builder, "\t%v: %v\n", outcome.Course, outcome.Reason)
		}
	}
	fmt.Fprintf(&builder, "\n%v\n", separator)

	_, err := io.WriteString(writer, builder.String())
	return err
}

type jsonTerm struct {
	Term    string   `json:"term"`
	Units   float64  `json:"units"`
	Courses []string `json:"courses"`
}

type jsonPlan struct {
	Terms    []jsonTerm        `json:"terms"`
	Outcomes []planner.Outcome `json:"outcomes"`
}

func Json(writer io.Writer, plan planner.Plan, courses *catalog.Catalog) error {
	output := jsonPlan{
		Terms: lo.Map(plan.Terms, func(term timeline.Term, _ int) jsonTerm {
			return jsonTerm{
				Term:    term.Label,
				Units:   plan.Load(term.Label, courses),
				Courses: lo.Ternary(plan.Schedule[term.Label] == nil, []string{}, plan.Schedule[term.Label]),
			}
		}),
		Outcomes: plan.Outcomes,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}
	return nil
}

// Csv writes one row per scheduled course, in term order, then one row per unplaced course with an empty term
func Csv(writer io.Writer, plan planner.Plan, courses *catalog.Catalog) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Term", "CoursesID", "Title", "Units", "Status"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	records := make([][]string, 0, len(plan.Outcomes))
	for _, term := range plan.Terms {
		for _, id := range plan.Schedule[term.Label] {
			status := planner.Placed
			if outcome, ok := plan.Outcome(id); ok {
				status = outcome.Status
			}
			records = append(records, record(term.Label, id, status, courses))
		}
	}
	for _, outcome := range plan.Unplaced() {
		records = append(records, record("", outcome.Course, outcome.Status, courses))
	}

	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("cannot write CSV record: %w", err)
	}
	return nil
}

func record(term, id string, status planner.Status, courses *catalog.Catalog) []string {
	course, _ := courses.Course(id)
	return []string{term, id, course.Title, formatUnits(courses.Units(id)), status.String()}
}

func formatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}

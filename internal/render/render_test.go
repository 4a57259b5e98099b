package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/planner"
	"github.com/limaJavier/courseplanning/pkg/timeline"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(t *testing.T) (planner.Plan, *catalog.Catalog) {
	t.Helper()
	courses := catalog.NewCatalog([]catalog.Course{
		{Id: "CS106A", Title: "Programming Methodology", Units: 5},
		{Id: "CS106B", Title: "Programming Abstractions", Prerequisites: []string{"CS106A"}, Units: 5},
		{Id: "CS221", Title: "Artificial Intelligence", Units: 12},
	})
	horizon, err := timeline.New(1, timeline.DefaultSessions)
	require.NoError(t, err)

	coursePlanner := planner.NewDepthFirstPlanner(courses, horizon, []planner.Availability{
		{Course: "CS106B", Sessions: timeline.DefaultSessions},
		{Course: "CS106A", Sessions: timeline.DefaultSessions},
		{Course: "CS221", Sessions: []string{"Spring"}},
	}, 10.5, zerolog.Nop())
	return coursePlanner.Build(), courses
}

func TestText(t *testing.T) {
	plan, courses := samplePlan(t)
	var buffer bytes.Buffer

	require.NoError(t, Text(&buffer, plan, courses))

	output := buffer.String()
	assert.Contains(t, output, "Fall0: [CS106A] (5 units)\n")
	assert.Contains(t, output, "Winter0: [CS106B] (5 units)\n")
	assert.Contains(t, output, "Spring0: [] (0 units)\n")
	assert.Contains(t, output, "\tCS221: "+planner.ReasonNoTerm+"\n")
}

func TestJson(t *testing.T) {
	plan, courses := samplePlan(t)
	var buffer bytes.Buffer

	require.NoError(t, Json(&buffer, plan, courses))

	var output struct {
		Terms []struct {
			Term    string
			Units   float64
			Courses []string
		}
		Outcomes []map[string]string
	}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &output))

	assert.Len(t, output.Terms, 3)
	assert.Equal(t, "Fall0", output.Terms[0].Term)
	assert.Equal(t, []string{"CS106A"}, output.Terms[0].Courses)
	assert.Equal(t, 5.0, output.Terms[0].Units)
	assert.Equal(t, []string{}, output.Terms[2].Courses)
	assert.Equal(t, map[string]string{"course": "CS106A", "status": "placed", "term": "Fall0"}, output.Outcomes[0])
	assert.Equal(t, map[string]string{"course": "CS221", "status": "unplaceable", "reason": planner.ReasonNoTerm}, output.Outcomes[2])
}

func TestCsv(t *testing.T) {
	plan, courses := samplePlan(t)
	var buffer bytes.Buffer

	require.NoError(t, Csv(&buffer, plan, courses))

	records, err := csv.NewReader(&buffer).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Term", "CoursesID", "Title", "Units", "Status"},
		{"Fall0", "CS106A", "Programming Methodology", "5", "placed"},
		{"Winter0", "CS106B", "Programming Abstractions", "5", "placed"},
		{"", "CS221", "Artificial Intelligence", "12", "unplaceable"},
	}, records)
}

func TestForFormat(t *testing.T) {
	for _, format := range Formats {
		renderer, err := ForFormat(format)
		assert.NoError(t, err)
		assert.NotNil(t, renderer)
	}

	_, err := ForFormat("JSON")
	assert.NoError(t, err)

	_, err = ForFormat("xml")
	assert.Error(t, err)
}

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/planner"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	plansTestDirectory = "../../test/plans/"
	resultsFile        = "benchmark_results.csv"
)

// Unit caps tried for every plan, as multiples of the plan's own cap
var capFactors = []float64{0.5, 0.75, 1, 1.5}

type TestMetadata struct {
	Name          string
	Courses       int
	Available     int
	Years         int
	UnitCap       float64
	PinnedTerms   int
	Completed     int
	Prerequisites int // Number of prerequisite edges in the catalog
}

type BenchmarkResult struct {
	Test        TestMetadata
	Duration    time.Duration
	Placed      int
	Pinned      int
	Unplaceable int
	Verified    bool
}

func main() {
	tests := getTests()
	results := make([]BenchmarkResult, 0, len(tests)*len(capFactors))

	for _, test := range tests {
		for _, factor := range capFactors {
			input, courses := loadTest(test.Name)
			input.UnitCap = test.UnitCap * factor

			fmt.Printf("Benchmarking test \"%v\" with unit cap \"%v\"\n", test.Name, input.UnitCap)
			results = append(results, measure(test, input, courses))
		}
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		log.Panicf("%v", err)
	}
}

func getTests() []TestMetadata {
	testFiles, err := os.ReadDir(plansTestDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range testFiles {
		if ext := filepath.Ext(file.Name()); ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		filename := plansTestDirectory + file.Name()
		input, courses := loadTest(filename)

		tests = append(tests, TestMetadata{
			Name:          filename,
			Courses:       courses.Len(),
			Available:     len(input.Availability),
			Years:         input.Years,
			UnitCap:       input.UnitCap,
			PinnedTerms:   len(input.Fixed),
			Completed:     len(input.Completed),
			Prerequisites: lo.SumBy(courses.Courses(), func(course catalog.Course) int { return len(course.Prerequisites) }),
		})
	}

	return tests
}

func loadTest(filename string) (planner.Input, *catalog.Catalog) {
	input, err := planner.InputFromFile(filename)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	courses, err := catalog.FromCsv(input.Catalog)
	if err != nil {
		log.Fatalf("cannot read catalog: %v", err)
	}
	return input, courses
}

func measure(test TestMetadata, input planner.Input, courses *catalog.Catalog) BenchmarkResult {
	start := time.Now()
	coursePlanner, err := planner.Prepare(input, courses, zerolog.Nop())
	if err != nil {
		log.Fatalf("an error occurred while preparing test \"%v\": %v", test.Name, err)
	}
	plan := coursePlanner.Build()
	duration := time.Since(start)

	result := summarize(plan)
	result.Test = test
	result.Test.UnitCap = input.UnitCap
	result.Duration = duration
	result.Verified = coursePlanner.Verify(plan)
	return result
}

func summarize(plan planner.Plan) BenchmarkResult {
	counts := lo.CountValuesBy(plan.Outcomes, func(outcome planner.Outcome) planner.Status { return outcome.Status })
	return BenchmarkResult{
		Placed:      counts[planner.Placed],
		Pinned:      counts[planner.Pinned],
		Unplaceable: counts[planner.Unplaceable],
	}
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"Test", "Courses", "Available", "Years", "Unit Cap", "Pinned Terms", "Completed", "Prerequisites", "Duration(us)", "Placed", "Pinned", "Unplaceable", "Verified"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Available),
			fmt.Sprintf("%d", result.Test.Years),
			fmt.Sprintf("%g", result.Test.UnitCap),
			fmt.Sprintf("%d", result.Test.PinnedTerms),
			fmt.Sprintf("%d", result.Test.Completed),
			fmt.Sprintf("%d", result.Test.Prerequisites),
			fmt.Sprintf("%d", result.Duration.Microseconds()),
			fmt.Sprintf("%d", result.Placed),
			fmt.Sprintf("%d", result.Pinned),
			fmt.Sprintf("%d", result.Unplaceable),
			fmt.Sprintf("%v", result.Verified),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	return nil
}

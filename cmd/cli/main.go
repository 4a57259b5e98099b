package main

import (
	"bytes"
	"flag"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/courseplanning/internal/logger"
	"github.com/limaJavier/courseplanning/internal/render"
	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/planner"
)

const (
	exitUnplaced     = 10 // Plan was built but some courses could not be placed (only with -strict)
	exitVerification = 15 // Plan violates prerequisite order, availability or unit cap
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the planning input (JSON, or YAML when the extension is .yaml or .yml)")
	catalogPathPtr := flag.String("catalog", "", "Path to the course catalog CSV; overrides the input's catalog")
	yearsPtr := flag.Int("years", 0, "Planning horizon in years; overrides the input's years")
	unitCapPtr := flag.Float64("cap", 0, "Per-term unit cap; overrides the input's unitCap")
	formatPtr := flag.String("format", "text", `Output format. Allowed values are: "text", "json" and "csv", where "text" is the default`)
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	logLevelPtr := flag.String("log-level", "info", `Log level. Allowed values are: "debug", "info", "warn" and "error"`)
	prettyPtr := flag.Bool("pretty", true, "Human-readable logs; JSON lines otherwise")
	strictPtr := flag.Bool("strict", false, "Exit with a non-zero code when some course cannot be placed")
	flag.Parse()

	logger.Configure(logger.Config{Level: *logLevelPtr, Pretty: *prettyPtr})
	format := strings.ToLower(*formatPtr)

	// Validate arguments
	if !slices.Contains(render.Formats, format) {
		logger.Fatal().Str("format", format).Msg("not a valid format")
	} else if *filePathPtr == "" {
		logger.Fatal().Msg("an input file must be specified")
	}

	// Extract input
	input, err := planner.InputFromFile(*filePathPtr)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot parse input file")
	}
	if *catalogPathPtr != "" {
		input.Catalog = *catalogPathPtr
	}
	if *yearsPtr != 0 {
		input.Years = *yearsPtr
	}
	if *unitCapPtr != 0 {
		input.UnitCap = *unitCapPtr
	}
	if err := input.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid planning input")
	}

	courses, err := catalog.FromCsv(input.Catalog)
	if err != nil {
		logger.Fatal().Err(err).Str("catalog", input.Catalog).Msg("cannot read catalog")
	}
	logger.Info().Int("courses", courses.Len()).Str("catalog", input.Catalog).Msg("catalog loaded")

	// Build plan
	coursePlanner, err := planner.Prepare(input, courses, logger.Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot prepare planner")
	}
	plan := coursePlanner.Build()

	// Verify plan correctness
	if !coursePlanner.Verify(plan) {
		logger.Error().Msg("plan verification failed")
		os.Exit(exitVerification)
	}

	// Render plan
	renderer, _ := render.ForFormat(format)
	var output bytes.Buffer
	if err := renderer(&output, plan, courses); err != nil {
		logger.Fatal().Err(err).Msg("cannot render plan")
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		os.Stdout.Write(output.Bytes())
	} else if err := os.WriteFile(*outFilePathPtr, output.Bytes(), 0666); err != nil {
		logger.Fatal().Err(err).Msg("an error occurred while writing to the output file")
	}

	if *strictPtr && len(plan.Unplaced()) > 0 {
		os.Exit(exitUnplaced)
	}
}

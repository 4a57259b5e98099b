package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/limaJavier/courseplanning/pkg/catalog"
	"github.com/limaJavier/courseplanning/pkg/timeline"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type FixedTerm struct {
	Term    string   `mapstructure:"term"`
	Courses []string `mapstructure:"courses"`
}

// Input describes one planning run. Years and UnitCap have no defaults
type Input struct {
	Years        int            `mapstructure:"years"`
	UnitCap      float64        `mapstructure:"unitCap"`
	Sessions     []string       `mapstructure:"sessions"` // Defaults to timeline.DefaultSessions
	Catalog      string         `mapstructure:"catalog"`  // Path to the catalog CSV, relative to the input file
	Completed    []string       `mapstructure:"completed"`
	Fixed        []FixedTerm    `mapstructure:"fixed"`
	Availability []Availability `mapstructure:"availability"`
}

// InputFromFile reads a planning input written in YAML (.yaml, .yml) or JSON (anything else)
func InputFromFile(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputMap map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &inputMap)
	default:
		err = json.Unmarshal(bytes, &inputMap)
	}
	if err != nil {
		return Input{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	input, err := InputFromMap(inputMap)
	if err != nil {
		return Input{}, err
	}

	if input.Catalog != "" && !filepath.IsAbs(input.Catalog) {
		input.Catalog = filepath.Join(filepath.Dir(file), input.Catalog)
	}
	return input, nil
}

func InputFromMap(inputMap map[string]any) (Input, error) {
	var input Input
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(rejectFractionalInts),
		Result:     &input,
	})
	if err != nil {
		return Input{}, fmt.Errorf("cannot create input decoder: %w", err)
	}
	if err := decoder.Decode(inputMap); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	if len(input.Sessions) == 0 {
		input.Sessions = timeline.DefaultSessions
	}
	return input, nil
}

// JSON numbers decode as float64, and mapstructure would otherwise truncate 2.5 to 2
func rejectFractionalInts(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int || (from.Kind() != reflect.Float64 && from.Kind() != reflect.Float32) {
		return data, nil
	}
	value := reflect.ValueOf(data).Float()
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("expected a whole number, got %v", value)
	}
	return int(value), nil
}

func (input Input) Validate() error {
	errs := make([]error, 0)

	if input.Years <= 0 {
		errs = append(errs, fmt.Errorf("years must be positive: %v", input.Years))
	}
	if !(input.UnitCap > 0) || math.IsInf(input.UnitCap, 0) {
		errs = append(errs, fmt.Errorf("unitCap must be positive: %v", input.UnitCap))
	}
	if input.Catalog == "" {
		errs = append(errs, errors.New("a catalog file must be specified"))
	}
	if duplicates := lo.FindDuplicates(lo.Map(input.Availability, func(entry Availability, _ int) string { return entry.Course })); len(duplicates) > 0 {
		errs = append(errs, fmt.Errorf("availability lists courses more than once: %v", duplicates))
	}

	sessions := input.Sessions
	if len(sessions) == 0 {
		sessions = timeline.DefaultSessions
	}
	for _, entry := range input.Availability {
		if unknown, _ := lo.Difference(entry.Sessions, sessions); len(unknown) > 0 {
			errs = append(errs, fmt.Errorf("course %q is available in unknown sessions %v", entry.Course, unknown))
		}
	}

	if horizon, err := timeline.New(input.Years, sessions); err == nil {
		for _, fixed := range input.Fixed {
			if _, ok := horizon.Term(fixed.Term); !ok {
				errs = append(errs, fmt.Errorf("fixed term %q is outside the horizon: %w", fixed.Term, ErrUnknownTerm))
			}
		}
	} else if input.Years > 0 {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Prepare builds the timeline and planner for the input, then applies completed and fixed courses
func Prepare(input Input, courses *catalog.Catalog, logger zerolog.Logger) (Planner, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sessions := input.Sessions
	if len(sessions) == 0 {
		sessions = timeline.DefaultSessions
	}
	horizon, err := timeline.New(input.Years, sessions)
	if err != nil {
		return nil, err
	}

	for _, entry := range input.Availability {
		if !courses.Contains(entry.Course) {
			logger.Warn().Str("course", entry.Course).Msg("available course is missing from the catalog")
		}
	}

	planner := NewDepthFirstPlanner(courses, horizon, input.Availability, input.UnitCap, logger)
	if err := planner.Complete(input.Completed); err != nil {
		return nil, err
	}
	for _, fixed := range input.Fixed {
		if err := planner.Pin(fixed.Term, fixed.Courses); err != nil {
			return nil, err
		}
	}

	return planner, nil
}

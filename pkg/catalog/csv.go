package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	IdColumn            = "CoursesID"
	TitleColumn         = "Title"
	PrerequisitesColumn = "Prerequisites"
	UnitsColumn         = "Units"

	PrerequisiteSeparator = "+"
)

// Cells that stand for a missing prerequisite list
var emptyCells = []string{"", "nan", "null", "none"}

type RowError struct {
	Line int
	Err  error
}

func (err RowError) Error() string {
	return fmt.Sprintf("line %d: %v", err.Line, err.Err)
}

func (err RowError) Unwrap() error {
	return err.Err
}

func FromCsv(file string) (*Catalog, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog file: %w", err)
	}
	defer reader.Close()

	return FromReader(reader)
}

// FromReader reads a catalog from CSV data whose header names the CoursesID, Title, Prerequisites and Units columns (in any order)
func FromReader(reader io.Reader) (*Catalog, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog is empty: a header row is required")
	} else if err != nil {
		return nil, fmt.Errorf("cannot read catalog header: %w", err)
	}

	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	courses := make([]Course, 0)
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read catalog row: %w", err)
		}
		line, _ := csvReader.FieldPos(0)

		// Skip blank lines
		if lo.EveryBy(record, func(cell string) bool { return strings.TrimSpace(cell) == "" }) {
			continue
		}

		course, err := parseRow(record, columns)
		if err != nil {
			return nil, RowError{Line: line, Err: err}
		}
		courses = append(courses, course)
	}

	return NewCatalog(courses), nil
}

// ParsePrerequisites splits a delimiter-joined prerequisite cell. Empty or null cells yield an empty list
func ParsePrerequisites(cell string) []string {
	cell = strings.TrimSpace(cell)
	if lo.Contains(emptyCells, strings.ToLower(cell)) {
		return []string{}
	}

	prerequisites := lo.Map(strings.Split(cell, PrerequisiteSeparator), func(id string, _ int) string {
		return strings.TrimSpace(id)
	})
	return lo.Compact(prerequisites)
}

func locateColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		// The first header may carry a byte order mark
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		for _, expected := range []string{IdColumn, TitleColumn, PrerequisitesColumn, UnitsColumn} {
			if strings.EqualFold(name, expected) {
				columns[expected] = i
			}
		}
	}

	missing := lo.Filter([]string{IdColumn, TitleColumn, PrerequisitesColumn, UnitsColumn}, func(column string, _ int) bool {
		_, ok := columns[column]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog header is missing columns %v", missing)
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (Course, error) {
	cell := func(column string) (string, error) {
		index := columns[column]
		if index >= len(record) {
			return "", fmt.Errorf("missing value for column %q", column)
		}
		return strings.TrimSpace(record[index]), nil
	}

	id, err := cell(IdColumn)
	if err != nil {
		return Course{}, err
	} else if id == "" {
		return Course{}, fmt.Errorf("empty %q", IdColumn)
	}

	title, err := cell(TitleColumn)
	if err != nil {
		return Course{}, err
	}

	prerequisites, err := cell(PrerequisitesColumn)
	if err != nil {
		return Course{}, err
	}

	unitsStr, err := cell(UnitsColumn)
	if err != nil {
		return Course{}, err
	}
	units, err := strconv.ParseFloat(unitsStr, 64)
	if err != nil {
		return Course{}, fmt.Errorf("invalid units for course %q: %w", id, err)
	} else if math.IsNaN(units) || math.IsInf(units, 0) || units <= 0 {
		return Course{}, fmt.Errorf("units for course %q must be a positive number: %v", id, unitsStr)
	}

	return Course{
		Id:            id,
		Title:         title,
		Prerequisites: ParsePrerequisites(prerequisites),
		Units:         units,
	}, nil
}

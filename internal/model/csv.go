package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const utf8BOM = "﻿"

// column binds a course atom to its cell index in the header row. Discarded
// header cells keep their index, so later ranks never shift.
type column struct {
	index int
	atom  string
}

// ParsePreferencesFile reads a preference CSV from disk.
func ParsePreferencesFile(path string) (Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("cannot open preferences file: %w", err)
	}
	defer file.Close()
	return ParsePreferences(file)
}

// ParsePreferences parses a preference CSV: the header row names the courses
// (cell 0 is a label for the student column), every body row is a student name
// followed by integer ranks, lower meaning more preferred. The delimiter is
// sniffed from the first non-empty line. Blank, non-integer and non-positive
// rank cells are skipped silently.
func ParsePreferences(reader io.Reader) (Input, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return Input{}, fmt.Errorf("cannot read preferences: %w", err)
	}
	content := strings.TrimPrefix(string(raw), utf8BOM)

	csvReader := csv.NewReader(strings.NewReader(content))
	csvReader.Comma = sniffDelimiter(content)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return Input{}, fmt.Errorf("cannot parse preferences: %w", err)
	}
	if len(rows) == 0 {
		return Input{}, fmt.Errorf("csv file is empty")
	}

	//** Collect course columns from the header row
	header := rows[0]
	columns := make([]column, 0, len(header))
	seenCourses := make(map[string]bool)
	for i, name := range header {
		if i == 0 || strings.TrimSpace(name) == "" {
			continue
		}
		atom := NormalizeAtom(name, "c_")
		// A repeated course name is one course: keep the first column
		if seenCourses[atom] {
			continue
		}
		seenCourses[atom] = true
		columns = append(columns, column{index: i, atom: atom})
	}
	if len(columns) == 0 {
		return Input{}, fmt.Errorf("csv must have at least one course column")
	}

	//** Collect students and ranks from the body rows
	students := make([]Student, 0, len(rows)-1)
	takenNames := make(map[string]bool)
	for _, row := range rows[1:] {
		// Pad short rows so every declared column has a cell
		for len(row) < len(header) {
			row = append(row, "")
		}
		if strings.TrimSpace(row[0]) == "" {
			continue
		}

		base := NormalizeAtom(row[0], "s_")
		atom := base
		// Homonymous students stay distinct through a numeric suffix
		for suffix := 2; takenNames[atom]; suffix++ {
			atom = fmt.Sprintf("%v_%v", base, suffix)
		}
		takenNames[atom] = true

		prefs := make(map[string]int)
		for _, col := range columns {
			cell := strings.TrimSpace(row[col.index])
			if cell == "" {
				continue
			}
			rank, err := strconv.Atoi(cell)
			if err != nil || rank < 1 {
				continue
			}
			prefs[col.atom] = rank
		}
		students = append(students, Student{Name: atom, Prefs: prefs})
	}

	courses := lo.Map(columns, func(col column, _ int) string { return col.atom })
	return Input{Courses: courses, Students: students}, nil
}

// sniffDelimiter inspects the first non-empty line: semicolon by default,
// comma when it strictly outnumbers semicolons, tab when it ties or beats
// both.
func sniffDelimiter(content string) rune {
	var firstLine string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			break
		}
	}

	semicolons := strings.Count(firstLine, ";")
	commas := strings.Count(firstLine, ",")
	tabs := strings.Count(firstLine, "\t")

	if commas > 0 && commas > semicolons {
		return ','
	}
	if tabs > 0 && tabs >= max(semicolons, commas) {
		return '\t'
	}
	return ';'
}

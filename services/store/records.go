package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"sjsage522/dirscraper/internal/directory"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

// Header is the column order written by every exporter
var Header = []string{"first_name", "last_name", "room", "page_url", "telephone", "department", "job_title"}

const fullNameColumn = "full_name"

// fieldColumns are required in both row shapes
var fieldColumns = []string{"room", "page_url", "telephone", "department", "job_title"}

func toRecord(e directory.Employee) []string {
	return []string{e.FirstName, e.LastName, e.Room.String(), e.PageURL, e.Telephone, e.Department, e.JobTitle}
}

// parseRows turns a header row plus data rows into employees. Columns are
// matched by name, extra columns are ignored, and a header carrying
// full_name instead of first_name/last_name is read as FullNameRow.
func parseRows(source string, rows [][]string) ([]directory.Employee, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidation(source, "missing header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range fieldColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	_, hasFirst := index["first_name"]
	_, hasLast := index["last_name"]
	_, hasFull := index[fullNameColumn]
	named := hasFirst && hasLast
	if !named && !hasFull {
		if !hasFirst {
			missing = append(missing, "first_name")
		}
		if !hasLast {
			missing = append(missing, "last_name")
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidation(source, "missing column(s): "+strings.Join(missing, ", "))
	}

	employees := make([]directory.Employee, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		var r directory.Row
		if named {
			r = directory.NamedRow{
				FirstName:  cell("first_name"),
				LastName:   cell("last_name"),
				Room:       directory.RoomText(cell("room")),
				PageURL:    cell("page_url"),
				Telephone:  cell("telephone"),
				Department: cell("department"),
				JobTitle:   cell("job_title"),
			}
		} else {
			r = directory.FullNameRow{
				FullName:   cell(fullNameColumn),
				Room:       directory.RoomText(cell("room")),
				PageURL:    cell("page_url"),
				Telephone:  cell("telephone"),
				Department: cell("department"),
				JobTitle:   cell("job_title"),
			}
		}
		employees = append(employees, directory.FromRow(r))
	}
	return employees, nil
}

// Format is a flat file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the format from the file extension; anything but .xlsx is CSV
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Save writes employees to path in the format implied by its extension
func Save(path string, employees []directory.Employee) error {
	switch FormatOf(path) {
	case FormatXLSX:
		return SaveXLSX(path, employees)
	default:
		return SaveCSV(path, employees)
	}
}

// Load reads employees from path in the format implied by its extension
func Load(path string) ([]directory.Employee, error) {
	switch FormatOf(path) {
	case FormatXLSX:
		return LoadXLSX(path)
	default:
		return LoadCSV(path)
	}
}

func storageError(path, action string, err error) error {
	return apperrors.NewStorage(path, fmt.Sprintf("failed to %s", action), err)
}

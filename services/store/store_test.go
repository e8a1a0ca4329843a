package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sjsage522/dirscraper/internal/directory"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

func sampleEmployees() []directory.Employee {
	return []directory.Employee{
		{
			FirstName:  "John",
			LastName:   "Smith Jr.",
			Room:       directory.Room{Building: "JSB", Floor: "2", Number: "270G"},
			PageURL:    "https://religion.example.edu/john-smith",
			Telephone:  "801-422-1234",
			Department: "Ancient Scripture",
			JobTitle:   "Professor",
		},
		{
			FirstName: "Jane",
			LastName:  "Doe",
			PageURL:   "https://religion.example.edu/jane-doe",
			JobTitle:  "Associate Professor",
		},
		{
			FirstName:  "Mary Ann",
			LastName:   "Van Buren",
			Room:       directory.Room{Building: "HGB", Floor: "B", Number: "B12"},
			PageURL:    "https://religion.example.edu/mary",
			Department: "Church History",
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	in := sampleEmployees()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "first_name,last_name,room,page_url,telephone,department,job_title", firstLine)

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, out[1].Room.IsZero(), "empty room stays empty")
}

func TestCSVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.csv")
	require.NoError(t, Save(path, sampleEmployees()))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleEmployees(), out))
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadCSVFullNameShape(t *testing.T) {
	data := "full_name,room,page_url,telephone,department,job_title\n" +
		"John Smith Jr.,\"JSB, 3, 364\",https://example.edu/john,801-422-1234,Ancient Scripture,Professor\n"

	out, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "John", out[0].FirstName)
	assert.Equal(t, "Smith Jr.", out[0].LastName)
	assert.Equal(t, directory.Room{Building: "JSB", Floor: "3", Number: "364"}, out[0].Room)
}

func TestReadCSVExtraAndReorderedColumns(t *testing.T) {
	data := ",job_title,department,telephone,page_url,room,last_name,first_name\n" +
		"0,Professor,History,,https://example.edu/a,not a room,Lee,Ann\n"

	out, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, directory.Employee{
		FirstName:  "Ann",
		LastName:   "Lee",
		PageURL:    "https://example.edu/a",
		Department: "History",
		JobTitle:   "Professor",
	}, out[0])
}

func TestReadCSVMissingColumn(t *testing.T) {
	data := "first_name,last_name,room,page_url,department,job_title\nJohn,Smith,,,,\n"

	_, err := ReadCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "telephone")

	_, err = ReadCSV(strings.NewReader("room,page_url,telephone,department,job_title\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first_name")
	assert.Contains(t, err.Error(), "last_name")

	_, err = ReadCSV(strings.NewReader(""))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestReadCSVMalformed(t *testing.T) {
	data := "first_name,last_name,room,page_url,telephone,department,job_title\nJohn,Smith\n"

	_, err := ReadCSV(strings.NewReader(data))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeParsing))
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStorage))
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	require.Equal(t, FormatXLSX, FormatOf(path))
	require.NoError(t, Save(path, sampleEmployees()))

	out, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleEmployees(), out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetCellValue(SheetName, "G1")
	require.NoError(t, err)
	assert.Equal(t, "job_title", header)
}

func TestLoadXLSXMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"first_name", "last_name"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadXLSX(path)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestLoadXLSXNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := LoadXLSX(path)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStorage))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatOf("out.csv"))
	assert.Equal(t, FormatCSV, FormatOf("out"))
	assert.Equal(t, FormatXLSX, FormatOf("OUT.XLSX"))
}

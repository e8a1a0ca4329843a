package store

import (
	"encoding/csv"
	"io"
	"os"

	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
	apperrors "sjsage522/dirscraper/pkg/errors"
)

// WriteCSV writes a header row followed by one row per employee
func WriteCSV(w io.Writer, employees []directory.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range employees {
		if err := cw.Write(toRecord(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows written by WriteCSV or any CSV with the same column names
func ReadCSV(r io.Reader) ([]directory.Employee, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, apperrors.NewParsing("csv", "malformed csv", err)
	}
	return parseRows("csv", rows)
}

// SaveCSV writes employees to a CSV file at path
func SaveCSV(path string, employees []directory.Employee) error {
	f, err := os.Create(path)
	if err != nil {
		return storageError(path, "create file", err)
	}
	if err := WriteCSV(f, employees); err != nil {
		f.Close()
		return storageError(path, "write csv", err)
	}
	if err := f.Close(); err != nil {
		return storageError(path, "close file", err)
	}

	logger.ForStore().Info().Str("path", path).Int("employees", len(employees)).Msg("CSV written")
	return nil
}

// LoadCSV reads employees from a CSV file at path
func LoadCSV(path string) ([]directory.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, storageError(path, "open file", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

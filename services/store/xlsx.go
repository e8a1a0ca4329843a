package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sjsage522/dirscraper/internal/directory"
	"sjsage522/dirscraper/logger"
)

// SheetName is the worksheet holding the employee rows
const SheetName = "Employees"

var columnWidths = []float64{18, 22, 16, 48, 16, 32, 32}

// SaveXLSX writes employees to an Excel workbook with a bold, frozen header row
func SaveXLSX(path string, employees []directory.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetName); err != nil {
		return storageError(path, "create sheet", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return storageError(path, "drop default sheet", err)
	}
	index, err := f.GetSheetIndex(SheetName)
	if err != nil {
		return storageError(path, "find sheet", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return storageError(path, "create header style", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return storageError(path, "write header", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Header), 1)
	if err != nil {
		return storageError(path, "resolve header range", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return storageError(path, "style header", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return storageError(path, "resolve column", err)
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return storageError(path, "set column width", err)
		}
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return storageError(path, "resolve row", err)
		}
		record := toRecord(e)
		if err := f.SetSheetRow(SheetName, cell, &record); err != nil {
			return storageError(path, fmt.Sprintf("write row %d", i+2), err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return storageError(path, "freeze header", err)
	}

	if err := f.SaveAs(path); err != nil {
		return storageError(path, "save workbook", err)
	}

	logger.ForStore().Info().Str("path", path).Int("employees", len(employees)).Msg("Workbook written")
	return nil
}

// LoadXLSX reads employees from the first sheet of an Excel workbook
func LoadXLSX(path string) ([]directory.Employee, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, storageError(path, "open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, storageError(path, "find a sheet", fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, storageError(path, "read rows", err)
	}
	return parseRows(path, rows)
}

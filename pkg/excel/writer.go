package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteRows builds a single-sheet workbook from a header row plus data
// rows and returns the serialized .xlsx bytes.
func WriteRows(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheetName != "" {
		// Excel caps sheet names at 31 characters.
		if len(sheetName) > 31 {
			sheetName = sheetName[:31]
		}
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
		sheet = sheetName
	}

	write := func(rowIdx int, cells []string) error {
		for colIdx, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(0, header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := write(i+1, row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

package reader

import (
	"github.com/TsubasaBE/go-xlsb"
	"github.com/TsubasaBE/go-xlsb/workbook"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

// date1904Offset is the serial difference between the 1904 and 1900 date systems.
const date1904Offset = 1462

// readBinary reads the first sheet of an .xlsb workbook. Like legacy files,
// only cached values are read.
func readBinary(path string) (*models.SheetData, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	names := wb.Sheets()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}
	sheet, err := wb.Sheet(1)
	if err != nil {
		return nil, err
	}

	data := &models.SheetData{
		Source:    path,
		SheetName: names[0],
		Format:    models.FormatBinary,
	}

	for row := range sheet.Rows(true) {
		var cells []models.Cell
		rowNum := 0
		for _, c := range row {
			if c.V == nil {
				continue
			}
			value := c.V
			if serial, ok := value.(float64); ok && wb.Styles.IsDate(c.Style) {
				if wb.Date1904 {
					serial += date1904Offset
				}
				if t, err := xlsb.ConvertDate(serial); err == nil {
					value = t
				}
			}
			cell := models.Cell{Col: c.C + 1, Value: value}
			if cell.IsEmpty() {
				continue
			}
			rowNum = c.R + 1
			cells = append(cells, cell)
		}
		if len(cells) > 0 {
			data.Rows = append(data.Rows, models.Row{R: rowNum, Cells: cells})
		}
	}

	return data, nil
}

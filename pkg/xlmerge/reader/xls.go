package reader

import (
	"io"
	"math"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// readLegacy reads the first sheet of a BIFF workbook. BIFF files keep only
// the last computed result of a formula, never its text, so every cell
// yields its cached value whatever Options.ValuesOnly says.
func readLegacy(path string) (*models.SheetData, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
	})
	if err != nil {
		return nil, err
	}
	defer book.ReleaseResources()

	if book.NSheets == 0 {
		return nil, ErrNoSheets
	}
	sheet, err := book.SheetByIndex(0)
	if err != nil {
		return nil, err
	}

	data := &models.SheetData{
		Source:    path,
		SheetName: sheet.Name,
		Format:    models.FormatLegacy,
	}

	for rowx := 0; rowx < sheet.NRows; rowx++ {
		var cells []models.Cell
		for colx := 0; colx < sheet.NCols; colx++ {
			value := legacyValue(book,
				sheet.RawCellType(rowx, colx),
				sheet.RawCellValue(rowx, colx),
				sheet.RawCellXFIndex(rowx, colx))
			cell := models.Cell{Col: colx + 1, Value: value}
			if cell.IsEmpty() {
				continue
			}
			cells = append(cells, cell)
		}
		if len(cells) > 0 {
			data.Rows = append(data.Rows, models.Row{R: rowx + 1, Cells: cells})
		}
	}

	data.Layout = legacyLayout(sheet)
	return data, nil
}

// legacyValue converts an xlrd cell into a typed value.
func legacyValue(book *xlrd.Book, ctype int, value interface{}, xfIndex int) interface{} {
	switch ctype {
	case xlrd.XL_CELL_EMPTY, xlrd.XL_CELL_BLANK:
		return nil
	case xlrd.XL_CELL_TEXT:
		s, _ := value.(string)
		return s
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		f, ok := toFloat(value)
		if !ok {
			return value
		}
		if ctype == xlrd.XL_CELL_DATE || isDateCell(book, xfIndex) {
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				if t, err := xlrd.XldateAsDatetime(f, book.Datemode); err == nil {
					return t
				}
			}
		}
		return f
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			return v
		case int:
			return v != 0
		}
		return value
	case xlrd.XL_CELL_ERROR:
		switch v := value.(type) {
		case byte:
			if text, ok := xlrd.ErrorTextFromCode[v]; ok {
				return text
			}
		case int:
			if text, ok := xlrd.ErrorTextFromCode[byte(v)]; ok {
				return text
			}
		}
		return "#ERROR"
	}
	return value
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// isDateCell reports whether the XF record at xfIndex applies a date format.
func isDateCell(book *xlrd.Book, xfIndex int) bool {
	if book == nil || xfIndex < 0 || xfIndex >= len(book.XFList) {
		return false
	}
	formatKey := book.XFList[xfIndex].FormatKey
	switch formatKey {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 50, 57, 58:
		return true
	}
	if book.FormatMap == nil {
		return false
	}
	format := book.FormatMap[formatKey]
	if format == nil || format.FormatString == "" {
		return false
	}
	return xlrd.IsDateFormatString(book, format.FormatString)
}

// legacyLayout carries over merged ranges and explicit row and column
// dimensions. BIFF column widths are stored in 1/256 of a character and row
// heights in twips.
func legacyLayout(sheet *xlrd.Sheet) *models.Layout {
	layout := &models.Layout{}

	for _, mc := range sheet.MergedCells {
		// rlo, rhi, clo, chi with exclusive upper bounds
		if mc[1]-mc[0] < 1 || mc[3]-mc[2] < 1 {
			continue
		}
		start, err := excelize.CoordinatesToCellName(mc[2]+1, mc[0]+1)
		if err != nil {
			continue
		}
		end, err := excelize.CoordinatesToCellName(mc[3], mc[1])
		if err != nil {
			continue
		}
		if start != end {
			layout.MergedRanges = append(layout.MergedRanges, start+":"+end)
		}
	}

	for colx := 0; colx < sheet.NCols; colx++ {
		info, ok := sheet.ColInfoMap[colx]
		if !ok || info == nil {
			continue
		}
		col, err := excelize.ColumnNumberToName(colx + 1)
		if err != nil {
			continue
		}
		layout.Cols = append(layout.Cols, models.ColFormat{
			Col:    col,
			Width:  float64(info.Width) / 256,
			Hidden: info.Hidden,
		})
	}

	for rowx := 0; rowx < sheet.NRows; rowx++ {
		info, ok := sheet.RowInfoMap[rowx]
		if !ok || info == nil {
			continue
		}
		layout.Rows = append(layout.Rows, models.RowFormat{
			R:      rowx + 1,
			Height: float64(info.Height) / 20,
			Hidden: info.Hidden,
		})
	}

	return layout
}

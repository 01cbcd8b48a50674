package reader

import (
	"sort"
	"strconv"
	"time"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

// readModern reads the first sheet of an OOXML workbook with its styles and
// layout.
func readModern(path string, opts Options) (*models.SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrNoSheets
	}
	sheetName := sheetList[0]

	rows, err := ExtractCells(f, sheetName, opts.ValuesOnly)
	if err != nil {
		return nil, err
	}

	return &models.SheetData{
		Source:            path,
		SheetName:         sheetName,
		Format:            models.FormatModern,
		FormulasAvailable: true,
		Rows:              rows,
		Styles:            extractStyles(f, rows),
		Layout:            extractLayout(f, sheetName, rows),
	}, nil
}

// ExtractCells extracts populated cells from a sheet.
// When valuesOnly is false, formula cells carry their formula text instead
// of the cached result. Blank cells that carry a style are kept so borders
// and fills around the data survive.
func ExtractCells(f *excelize.File, sheetName string, valuesOnly bool) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	maxRow, maxCol := cellExtent(f, sheetName, rows)

	var result []models.Row
	for rowNum := 1; rowNum <= maxRow; rowNum++ {
		var row []string
		if rowNum <= len(rows) {
			row = rows[rowNum-1]
		}
		var cells []models.Cell

		for colNum := 1; colNum <= maxCol; colNum++ {
			cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				break
			}
			cell := models.Cell{Col: colNum}

			// GetRows lists every cell holding a value or a formula, so
			// anything past the end of row can only be a styled blank.
			var raw string
			if colNum <= len(row) {
				raw = row[colNum-1]
				if !valuesOnly {
					if formula, err := f.GetCellFormula(sheetName, cellName); err == nil {
						cell.Formula = formula
					}
				}
			}
			if cell.Formula == "" && raw != "" {
				cellType, _ := f.GetCellType(sheetName, cellName)
				cell.Value = typedValue(raw, cellType)
			}
			if styleID, err := f.GetCellStyle(sheetName, cellName); err == nil {
				cell.StyleID = styleID
			}
			if raw != "" || cell.Formula != "" {
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					cell.Link = target
				}
			}

			if cell.IsEmpty() {
				continue
			}
			cells = append(cells, cell)
		}

		if len(cells) > 0 {
			result = append(result, models.Row{R: rowNum, Cells: cells})
		}
	}

	return result, nil
}

// cellExtent returns the last row and column that hold a cell element,
// valued or not. GetRows stops at the last value, so the row and column
// iterators are counted to reach styled blanks beyond it.
func cellExtent(f *excelize.File, sheetName string, rows [][]string) (maxRow, maxCol int) {
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	if it, err := f.Rows(sheetName); err == nil {
		n := 0
		for it.Next() {
			n++
		}
		_ = it.Close()
		if n > maxRow {
			maxRow = n
		}
	}
	if it, err := f.Cols(sheetName); err == nil {
		n := 0
		for it.Next() {
			n++
		}
		if n > maxCol {
			maxCol = n
		}
	}
	return maxRow, maxCol
}

// typedValue converts a raw cell value according to its stored type.
func typedValue(raw string, cellType excelize.CellType) interface{} {
	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return parseValue(raw)
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
		return raw
	default:
		return raw
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// extractStyles resolves every style referenced by rows.
func extractStyles(f *excelize.File, rows []models.Row) map[int]*excelize.Style {
	styles := make(map[int]*excelize.Style)
	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.StyleID == 0 {
				continue
			}
			if _, ok := styles[cell.StyleID]; ok {
				continue
			}
			style, err := f.GetStyle(cell.StyleID)
			if err != nil || style == nil {
				continue
			}
			styles[cell.StyleID] = style
		}
	}
	return styles
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

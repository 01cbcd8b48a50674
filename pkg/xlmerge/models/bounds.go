package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Dimension returns the used range of the sheet (e.g. "A1:D10"), or an
// empty string when the sheet has no populated cells.
func (s *SheetData) Dimension() string {
	minRow, maxRow, minCol, maxCol := findDataBounds(s.Rows)
	if minRow < 0 {
		return ""
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol, minRow)
	endCell, _ := excelize.CoordinatesToCellName(maxCol, maxRow)
	if startCell == endCell {
		return startCell
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells (1-based).
func findDataBounds(rows []Row) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || row.R < minRow {
				minRow = row.R
			}
			if maxRow < 0 || row.R > maxRow {
				maxRow = row.R
			}
			if minCol < 0 || cell.Col < minCol {
				minCol = cell.Col
			}
			if maxCol < 0 || cell.Col > maxCol {
				maxCol = cell.Col
			}
		}
	}

	return
}

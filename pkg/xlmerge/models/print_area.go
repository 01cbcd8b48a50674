package models

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PrintArea represents cell coordinate bounds for a print area or any other
// rectangular sheet-scoped range such as an auto-filter.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// Ref renders the area as an absolute reference on sheet, quoting the sheet
// name the way Excel does in defined names.
func (a PrintArea) Ref(sheet string) string {
	start, _ := excelize.CoordinatesToCellName(a.C1, a.R1, true)
	end, _ := excelize.CoordinatesToCellName(a.C2, a.R2, true)
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	return fmt.Sprintf("%s!%s:%s", quoted, start, end)
}

// Range renders the area as a relative range without a sheet, e.g. A1:D10.
func (a PrintArea) Range() string {
	start, _ := excelize.CoordinatesToCellName(a.C1, a.R1)
	end, _ := excelize.CoordinatesToCellName(a.C2, a.R2)
	return start + ":" + end
}

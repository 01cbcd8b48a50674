package models

import "github.com/xuri/excelize/v2"

// Format identifies the container format of a source workbook.
type Format string

const (
	// FormatModern is an OOXML workbook (.xlsx, .xlsm, .xltx, .xltm).
	FormatModern Format = "xlsx"
	// FormatLegacy is a BIFF workbook (.xls, .xlt).
	FormatLegacy Format = "xls"
	// FormatBinary is an OOXML binary workbook (.xlsb).
	FormatBinary Format = "xlsb"
)

// SheetData represents the content of one source sheet.
type SheetData struct {
	// Source is the path the data was read from.
	Source string
	// SheetName is the name of the sheet inside the source workbook.
	SheetName string
	// Format is the container format of the source.
	Format Format
	// FormulasAvailable is false when the source format only keeps
	// last-computed values.
	FormulasAvailable bool
	// Rows contains populated rows ordered by row index.
	Rows []Row
	// Styles maps source style ids referenced by cells to their definition.
	Styles map[int]*excelize.Style
	// Layout holds sheet-level formatting (nil when nothing was extracted).
	Layout *Layout
}

// CellCount returns the number of populated cells.
func (s *SheetData) CellCount() int {
	n := 0
	for _, row := range s.Rows {
		n += len(row.Cells)
	}
	return n
}

// RowFormat describes a row whose dimensions differ from the sheet default.
type RowFormat struct {
	R            int
	Height       float64
	Hidden       bool
	OutlineLevel uint8
}

// ColFormat describes a column whose dimensions differ from the sheet default.
type ColFormat struct {
	// Col is the column name (e.g. "B").
	Col          string
	Width        float64
	Hidden       bool
	OutlineLevel uint8
}

// ConditionalFormat is a set of conditional formatting rules for one range.
// Styles runs parallel to Rules and holds the differential style each rule
// referenced in the source workbook (nil when the rule has none).
type ConditionalFormat struct {
	Range  string
	Rules  []excelize.ConditionalFormatOptions
	Styles []*excelize.Style
}

// Layout holds sheet-level formatting copied alongside cell data.
type Layout struct {
	MergedRanges       []string
	Rows               []RowFormat
	Cols               []ColFormat
	Comments           []excelize.Comment
	ConditionalFormats []ConditionalFormat
	Tables             []excelize.Table
	DataValidations    []*excelize.DataValidation
	Panes              *excelize.Panes
	TabColor           string
	PrintAreas         []PrintArea
	// AutoFilter is the sheet's filter range (e.g. "A1:D20"), empty when
	// the sheet has none.
	AutoFilter   string
	HeaderFooter *excelize.HeaderFooterOptions
}

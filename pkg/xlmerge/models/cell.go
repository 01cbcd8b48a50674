// Package models defines data structures shared by the merge pipeline.
package models

// Cell represents a single populated cell of a source sheet.
type Cell struct {
	// Col is the column index (1-based).
	Col int
	// Value is nil, string, int64, float64, bool or time.Time.
	Value interface{}
	// Formula is the formula text without the leading '=' (empty when the
	// cell holds a literal or formulas were not requested).
	Formula string
	// StyleID is the style index in the source workbook (0 for default).
	StyleID int
	// Link is the hyperlink target attached to the cell, if any.
	Link string
}

// IsEmpty reports whether the cell carries nothing worth writing.
func (c Cell) IsEmpty() bool {
	if c.Formula != "" || c.StyleID != 0 || c.Link != "" {
		return false
	}
	switch v := c.Value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// Row represents one populated row of cells.
type Row struct {
	// R is the row index (1-based).
	R int
	// Cells holds the populated cells ordered by column.
	Cells []Cell
}

package reader

import (
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

const (
	defaultRowHeight = 15.0
	defaultColWidth  = 9.140625
)

// extractLayout collects sheet-level formatting. Each component is best
// effort: a part that fails to parse is left out rather than failing the
// whole sheet.
func extractLayout(f *excelize.File, sheetName string, rows []models.Row) *models.Layout {
	layout := &models.Layout{}

	if mergeCells, err := f.GetMergeCells(sheetName); err == nil {
		for _, mc := range mergeCells {
			layout.MergedRanges = append(layout.MergedRanges, mc.GetStartAxis()+":"+mc.GetEndAxis())
		}
	}

	rowHeight, colWidth := defaultRowHeight, defaultColWidth
	if props, err := f.GetSheetProps(sheetName); err == nil {
		if props.DefaultRowHeight != nil && *props.DefaultRowHeight > 0 {
			rowHeight = *props.DefaultRowHeight
		}
		if props.DefaultColWidth != nil && *props.DefaultColWidth > 0 {
			colWidth = *props.DefaultColWidth
		}
		if props.TabColorRGB != nil {
			layout.TabColor = *props.TabColorRGB
		}
	}

	maxRow, maxCol := extent(rows)
	layout.Rows = extractRowFormats(f, sheetName, maxRow, rowHeight)
	layout.Cols = extractColFormats(f, sheetName, maxCol, colWidth)

	if comments, err := f.GetComments(sheetName); err == nil {
		layout.Comments = comments
	}

	if formats, err := f.GetConditionalFormats(sheetName); err == nil {
		for _, ref := range sortedKeys(formats) {
			cf := models.ConditionalFormat{Range: ref, Rules: formats[ref]}
			cf.Styles = make([]*excelize.Style, len(cf.Rules))
			for i, rule := range cf.Rules {
				if rule.Format == nil {
					continue
				}
				if style, err := f.GetConditionalStyle(*rule.Format); err == nil {
					cf.Styles[i] = style
				}
			}
			layout.ConditionalFormats = append(layout.ConditionalFormats, cf)
		}
	}

	if tables, err := f.GetTables(sheetName); err == nil {
		layout.Tables = tables
	}

	if validations, err := f.GetDataValidations(sheetName); err == nil {
		layout.DataValidations = validations
	}

	if panes, err := f.GetPanes(sheetName); err == nil && (panes.Freeze || panes.Split) {
		layout.Panes = &panes
	}

	layout.PrintAreas = ExtractPrintAreas(f, sheetName)
	layout.AutoFilter = ExtractAutoFilter(f, sheetName)

	if hf, err := f.GetHeaderFooter(sheetName); err == nil && hf != nil {
		layout.HeaderFooter = hf
	}

	return layout
}

// extent returns the last populated row and column.
func extent(rows []models.Row) (maxRow, maxCol int) {
	for _, row := range rows {
		if row.R > maxRow {
			maxRow = row.R
		}
		for _, cell := range row.Cells {
			if cell.Col > maxCol {
				maxCol = cell.Col
			}
		}
	}
	return
}

func extractRowFormats(f *excelize.File, sheetName string, maxRow int, defaultHeight float64) []models.RowFormat {
	var formats []models.RowFormat
	for r := 1; r <= maxRow; r++ {
		format := models.RowFormat{R: r, Height: defaultHeight}
		if height, err := f.GetRowHeight(sheetName, r); err == nil {
			format.Height = height
		}
		if visible, err := f.GetRowVisible(sheetName, r); err == nil {
			format.Hidden = !visible
		}
		if level, err := f.GetRowOutlineLevel(sheetName, r); err == nil {
			format.OutlineLevel = level
		}
		if format.Height != defaultHeight || format.Hidden || format.OutlineLevel > 0 {
			formats = append(formats, format)
		}
	}
	return formats
}

func extractColFormats(f *excelize.File, sheetName string, maxCol int, defaultWidth float64) []models.ColFormat {
	var formats []models.ColFormat
	for c := 1; c <= maxCol; c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			break
		}
		format := models.ColFormat{Col: col, Width: defaultWidth}
		if width, err := f.GetColWidth(sheetName, col); err == nil {
			format.Width = width
		}
		if visible, err := f.GetColVisible(sheetName, col); err == nil {
			format.Hidden = !visible
		}
		if level, err := f.GetColOutlineLevel(sheetName, col); err == nil {
			format.OutlineLevel = level
		}
		if format.Width != defaultWidth || format.Hidden || format.OutlineLevel > 0 {
			formats = append(formats, format)
		}
	}
	return formats
}

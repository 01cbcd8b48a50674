package writer

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// applyLayout replays sheet formatting. Failures are collected rather than
// returned so one unsupported feature does not drop the sheet's data.
func (w *Workbook) applyLayout(sheet string, layout *models.Layout) []string {
	var warnings []string
	warn := func(part string, err error) {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", part, err))
		}
	}

	for _, ref := range layout.MergedRanges {
		start, end, ok := strings.Cut(ref, ":")
		if !ok {
			continue
		}
		warn("merged range "+ref, w.f.MergeCell(sheet, start, end))
	}

	for _, row := range layout.Rows {
		if row.Height > 0 {
			warn(fmt.Sprintf("row %d height", row.R), w.f.SetRowHeight(sheet, row.R, row.Height))
		}
		if row.Hidden {
			warn(fmt.Sprintf("row %d visibility", row.R), w.f.SetRowVisible(sheet, row.R, false))
		}
		if row.OutlineLevel > 0 {
			warn(fmt.Sprintf("row %d outline", row.R), w.f.SetRowOutlineLevel(sheet, row.R, row.OutlineLevel))
		}
	}

	for _, col := range layout.Cols {
		if col.Width > 0 {
			warn("column "+col.Col+" width", w.f.SetColWidth(sheet, col.Col, col.Col, col.Width))
		}
		if col.Hidden {
			warn("column "+col.Col+" visibility", w.f.SetColVisible(sheet, col.Col, false))
		}
		if col.OutlineLevel > 0 {
			warn("column "+col.Col+" outline", w.f.SetColOutlineLevel(sheet, col.Col, col.OutlineLevel))
		}
	}

	for _, comment := range layout.Comments {
		if len(comment.Paragraph) > 0 {
			comment.Text = ""
		}
		warn("comment "+comment.Cell, w.f.AddComment(sheet, comment))
	}

	for _, cf := range layout.ConditionalFormats {
		warn("conditional format "+cf.Range, w.addConditionalFormat(sheet, cf))
	}

	for _, dv := range layout.DataValidations {
		if dv == nil {
			continue
		}
		warn("data validation "+dv.Sqref, w.f.AddDataValidation(sheet, dv))
	}

	for _, table := range layout.Tables {
		warn("table "+table.Name, w.addTable(sheet, table))
	}

	if layout.Panes != nil {
		warn("panes", w.f.SetPanes(sheet, layout.Panes))
	}

	if layout.TabColor != "" {
		color := layout.TabColor
		warn("tab color", w.f.SetSheetProps(sheet, &excelize.SheetPropsOptions{TabColorRGB: &color}))
	}

	for _, area := range layout.PrintAreas {
		warn("print area", w.f.SetDefinedName(&excelize.DefinedName{
			Name:     printAreaName,
			RefersTo: area.Ref(sheet),
			Scope:    sheet,
		}))
	}

	if layout.AutoFilter != "" {
		warn("auto filter "+layout.AutoFilter, w.f.AutoFilter(sheet, layout.AutoFilter, nil))
	}

	if layout.HeaderFooter != nil {
		warn("header and footer", w.f.SetHeaderFooter(sheet, layout.HeaderFooter))
	}

	return warnings
}

// addConditionalFormat re-registers the differential styles the rules
// point at, since style indexes are local to a workbook.
func (w *Workbook) addConditionalFormat(sheet string, cf models.ConditionalFormat) error {
	rules := make([]excelize.ConditionalFormatOptions, len(cf.Rules))
	copy(rules, cf.Rules)
	for i := range rules {
		rules[i].Format = nil
		if i >= len(cf.Styles) || cf.Styles[i] == nil {
			continue
		}
		id, err := w.f.NewConditionalStyle(cf.Styles[i])
		if err != nil {
			return err
		}
		rules[i].Format = &id
	}
	return w.f.SetConditionalFormat(sheet, cf.Range, rules)
}

// addTable recreates a table under a name unique within the output
// workbook. Table names are workbook-global and case-insensitive in Excel.
func (w *Workbook) addTable(sheet string, table excelize.Table) error {
	name := w.uniqueTableName(table.Name)
	err := w.f.AddTable(sheet, &excelize.Table{
		Range:             table.Range,
		Name:              name,
		StyleName:         table.StyleName,
		ShowColumnStripes: table.ShowColumnStripes,
		ShowFirstColumn:   table.ShowFirstColumn,
		ShowHeaderRow:     table.ShowHeaderRow,
		ShowLastColumn:    table.ShowLastColumn,
		ShowRowStripes:    table.ShowRowStripes,
	})
	if err != nil {
		return err
	}
	w.tableNames[strings.ToLower(name)] = struct{}{}
	return nil
}

func (w *Workbook) uniqueTableName(base string) string {
	if base == "" {
		base = "Table"
	}
	candidate := base
	for n := 1; ; n++ {
		if _, taken := w.tableNames[strings.ToLower(candidate)]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

// Package writer accumulates sheets into a consolidated workbook.
package writer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

// PlaceholderSheet is the sheet a new workbook starts with. It is replaced
// by the first added sheet and left empty when nothing is added.
const PlaceholderSheet = "Sheet1"

// ErrDuplicateSheet indicates a sheet name is already present in the workbook.
var ErrDuplicateSheet = errors.New("sheet name already used")

// Workbook is the output workbook being assembled in memory.
type Workbook struct {
	f          *excelize.File
	sheets     []string
	tableNames map[string]struct{}
}

// New creates an empty output workbook.
func New() *Workbook {
	return &Workbook{
		f:          excelize.NewFile(),
		tableNames: make(map[string]struct{}),
	}
}

// SheetNames returns the names of the sheets added so far, in order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.sheets...)
}

// AddSheet appends a sheet named name holding data. Cell content errors
// abort the sheet; the returned warnings list layout parts that could not be
// reproduced.
func (w *Workbook) AddSheet(name string, data *models.SheetData) ([]string, error) {
	for _, existing := range w.sheets {
		if strings.EqualFold(existing, name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
		}
	}

	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(PlaceholderSheet, name); err != nil {
			return nil, err
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, err
	}
	w.sheets = append(w.sheets, name)

	styles := newStyleCache(w.f, data.Styles)
	if err := w.writeCells(name, data, styles); err != nil {
		if rbErr := w.discard(name); rbErr != nil {
			return nil, fmt.Errorf("%w (removing partial sheet: %v)", err, rbErr)
		}
		return nil, err
	}

	var warnings []string
	if data.Layout != nil {
		warnings = w.applyLayout(name, data.Layout)
	}
	return warnings, nil
}

func (w *Workbook) writeCells(sheet string, data *models.SheetData, styles *styleCache) error {
	for _, row := range data.Rows {
		for _, cell := range row.Cells {
			ref, err := excelize.CoordinatesToCellName(cell.Col, row.R)
			if err != nil {
				return err
			}

			switch {
			case cell.Formula != "":
				err = w.f.SetCellFormula(sheet, ref, strings.TrimPrefix(cell.Formula, "="))
			case cell.Value != nil:
				err = w.f.SetCellValue(sheet, ref, cell.Value)
			}
			if err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}

			if cell.StyleID != 0 {
				if styleID, ok := styles.resolve(cell.StyleID); ok {
					if err := w.f.SetCellStyle(sheet, ref, ref, styleID); err != nil {
						return fmt.Errorf("cell %s: %w", ref, err)
					}
				}
			}

			if cell.Link != "" {
				link, kind := cell.Link, linkType(cell.Link)
				if kind == "Location" {
					link = retargetLocation(link, data.SheetName, sheet)
				}
				if err := w.f.SetCellHyperLink(sheet, ref, link, kind); err != nil {
					return fmt.Errorf("cell %s: %w", ref, err)
				}
			}
		}
	}
	return nil
}

// discard removes a partially written sheet. A workbook cannot lose its
// last sheet, so when name is the only one a fresh placeholder is added
// under a temporary name, name is deleted, and the placeholder is renamed.
func (w *Workbook) discard(name string) error {
	w.sheets = w.sheets[:len(w.sheets)-1]
	if len(w.sheets) > 0 {
		return w.f.DeleteSheet(name)
	}

	tmp := PlaceholderSheet + "_"
	for strings.EqualFold(tmp, name) {
		tmp += "_"
	}
	if _, err := w.f.NewSheet(tmp); err != nil {
		return err
	}
	if err := w.f.DeleteSheet(name); err != nil {
		return err
	}
	return w.f.SetSheetName(tmp, PlaceholderSheet)
}

// linkType tells external URLs apart from in-workbook locations.
func linkType(target string) string {
	lower := strings.ToLower(target)
	if strings.Contains(lower, "://") || strings.HasPrefix(lower, "mailto:") {
		return "External"
	}
	return "Location"
}

// retargetLocation points an in-workbook link at the sheet's new name when
// it referred to the source sheet itself (from). Links to other sheets or
// to defined names are returned unchanged.
func retargetLocation(target, from, to string) string {
	if from == "" || from == to {
		return target
	}
	loc := strings.TrimPrefix(target, "#")
	prefix := target[:len(target)-len(loc)]

	idx := strings.LastIndex(loc, "!")
	if idx < 0 {
		return target
	}
	sheet := loc[:idx]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	if !strings.EqualFold(sheet, from) {
		return target
	}
	return prefix + quoteSheetName(to) + loc[idx:]
}

// quoteSheetName quotes name for use in a reference when it holds anything
// other than letters, digits, underscores and dots, or starts with a digit.
func quoteSheetName(name string) string {
	plain := name != ""
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			plain = false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			plain = false
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// Save writes the workbook to path in the OOXML format, replacing any
// existing file.
func (w *Workbook) Save(path string) error {
	if len(w.sheets) > 0 {
		if idx, err := w.f.GetSheetIndex(w.sheets[0]); err == nil && idx >= 0 {
			w.f.SetActiveSheet(idx)
		}
	}
	return w.f.SaveAs(path)
}

// Close releases resources held by the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// styleCache maps source style ids to styles registered in the output.
type styleCache struct {
	f      *excelize.File
	source map[int]*excelize.Style
	ids    map[int]int
}

func newStyleCache(f *excelize.File, source map[int]*excelize.Style) *styleCache {
	return &styleCache{f: f, source: source, ids: make(map[int]int)}
}

func (c *styleCache) resolve(sourceID int) (int, bool) {
	if id, ok := c.ids[sourceID]; ok {
		return id, true
	}
	style, ok := c.source[sourceID]
	if !ok || style == nil {
		return 0, false
	}
	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, false
	}
	c.ids[sourceID] = id
	return id, true
}

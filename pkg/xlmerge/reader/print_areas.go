package reader

import (
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

const (
	printAreaName  = "_xlnm.Print_Area"
	autoFilterName = "_xlnm._FilterDatabase"
)

// ExtractPrintAreas returns the print areas defined for sheetName.
func ExtractPrintAreas(f *excelize.File, sheetName string) []models.PrintArea {
	var areas []models.PrintArea
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheetName {
			continue
		}
		areas = append(areas, parseAreaReference(dn.RefersTo, sheetName)...)
	}
	return areas
}

// ExtractAutoFilter returns the auto-filter range of sheetName, or "" when
// the sheet has none. Excel records the range as a hidden sheet-scoped name.
func ExtractAutoFilter(f *excelize.File, sheetName string) string {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, autoFilterName) || dn.Scope != sheetName {
			continue
		}
		if areas := parseAreaReference(dn.RefersTo, sheetName); len(areas) > 0 {
			return areas[0].Range()
		}
	}
	return ""
}

// parseAreaReference parses the parts of ref that point at sheetName.
// Format: 'Sheet Name'!$A$1:$D$10,'Sheet Name'!$F$1:$G$4
func parseAreaReference(ref, sheetName string) []models.PrintArea {
	var areas []models.PrintArea
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := part[:idx]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		if sheet != sheetName {
			continue
		}

		if area, ok := parseRangeToArea(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}
	return areas
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) (models.PrintArea, bool) {
	parts := strings.Split(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if len(parts) != 2 {
		return models.PrintArea{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.PrintArea{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.PrintArea{}, false
	}

	return models.PrintArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}

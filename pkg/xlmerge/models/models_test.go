package models

import "testing"

func TestNewInputFile(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/Q1.xlsx", "Q1"},
		{"reports/sales.2024.xls", "sales.2024"},
		{"noext", "noext"},
		{"dir/.hidden.xlsx", ".hidden"},
	}

	for _, tt := range tests {
		in := NewInputFile(tt.path)
		if in.BaseName != tt.expected {
			t.Errorf("NewInputFile(%q).BaseName = %q, expected %q", tt.path, in.BaseName, tt.expected)
		}
		if in.Path != tt.path {
			t.Errorf("NewInputFile(%q).Path = %q", tt.path, in.Path)
		}
	}
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name     string
		rows     []Row
		expected string
	}{
		{"empty", nil, ""},
		{"single cell", []Row{{R: 3, Cells: []Cell{{Col: 2, Value: "x"}}}}, "B3"},
		{
			"range",
			[]Row{
				{R: 1, Cells: []Cell{{Col: 1, Value: "a"}, {Col: 3, Value: int64(1)}}},
				{R: 4, Cells: []Cell{{Col: 2, Formula: "SUM(A1:A2)"}}},
			},
			"A1:C4",
		},
		{"blank cells ignored", []Row{{R: 2, Cells: []Cell{{Col: 5, Value: ""}}}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SheetData{Rows: tt.rows}
			if got := s.Dimension(); got != tt.expected {
				t.Errorf("Dimension() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCellCount(t *testing.T) {
	s := &SheetData{Rows: []Row{
		{R: 1, Cells: []Cell{{Col: 1}, {Col: 2}}},
		{R: 2, Cells: []Cell{{Col: 1}}},
	}}
	if got := s.CellCount(); got != 3 {
		t.Errorf("CellCount() = %d, expected 3", got)
	}
}

func TestPrintAreaRange(t *testing.T) {
	area := PrintArea{R1: 2, C1: 1, R2: 5, C2: 3}
	if got := area.Range(); got != "A2:C5" {
		t.Errorf("Range = %q", got)
	}
}

func TestPrintAreaRef(t *testing.T) {
	area := PrintArea{R1: 1, C1: 1, R2: 10, C2: 4}
	if got := area.Ref("Q1"); got != "'Q1'!$A$1:$D$10" {
		t.Errorf("Ref = %q", got)
	}
	if got := area.Ref("Bob's"); got != "'Bob''s'!$A$1:$D$10" {
		t.Errorf("Ref with quote = %q", got)
	}
}

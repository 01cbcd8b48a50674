package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		cfgSource     string
		output        string
		wantSource    string
		wantOutput    string
		wantDefaulted bool
	}{
		{
			name:       "argument",
			args:       []string{"reports"},
			wantSource: "reports",
			wantOutput: filepath.Join("reports", "combined.xlsx"),
		},
		{
			name:       "explicit output",
			args:       []string{"reports"},
			output:     "out.xlsx",
			wantSource: "reports",
			wantOutput: "out.xlsx",
		},
		{
			name:       "config source",
			cfgSource:  "/data/in",
			wantSource: "/data/in",
			wantOutput: filepath.Join("/data/in", "combined.xlsx"),
		},
		{
			name:          "executable folder",
			wantSource:    "/opt/xlmerge",
			wantOutput:    filepath.Join("/opt/xlmerge", "combined.xlsx"),
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			exeDir := func() (string, error) {
				called = true
				return "/opt/xlmerge", nil
			}
			source, out, defaulted, err := resolvePaths(tt.args, tt.cfgSource, tt.output, exeDir)
			if err != nil {
				t.Fatalf("resolvePaths failed: %v", err)
			}
			if called != tt.wantDefaulted {
				t.Errorf("executable folder looked up = %v, expected %v", called, tt.wantDefaulted)
			}
			if source != tt.wantSource || out != tt.wantOutput || defaulted != tt.wantDefaulted {
				t.Errorf("resolvePaths = (%q, %q, %v), expected (%q, %q, %v)",
					source, out, defaulted, tt.wantSource, tt.wantOutput, tt.wantDefaulted)
			}
		})
	}
}

func TestResolvePathsExecutableError(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("no executable") }

	if _, _, _, err := resolvePaths([]string{"reports"}, "", "", failing); err != nil {
		t.Errorf("explicit source should not need the executable folder: %v", err)
	}
	if _, _, _, err := resolvePaths(nil, "", "", failing); err == nil {
		t.Error("expected an error when the executable folder is unknown")
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	res := &xlmerge.Result{
		Output: "combined.xlsx",
		Sheets: []models.MergedSheet{
			{Source: "/in/Q1.xlsx", SheetName: "Q1", Range: "A1:C3"},
		},
		Skipped: []models.SkippedFile{
			{Source: "/in/bad.xlsx", Err: errors.New("corrupt")},
		},
		Warnings: []string{"/in/old.xls: xls format keeps no formula text, copied cached values"},
	}

	var buf bytes.Buffer
	printSummary(&buf, res)
	out := buf.String()

	for _, want := range []string{
		"Merged 1 Excel file into 'combined.xlsx'.",
		"Q1 <- Q1.xlsx (A1:C3)",
		"Skipped 1 file(s)",
		"/in/bad.xlsx: corrupt",
		"keeps no formula text",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRunMergesDirectory(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Merged 0 Excel files") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}

func TestRunMissingDirectory(t *testing.T) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing")})

	err := cmd.Execute()
	if !errors.Is(err, xlmerge.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

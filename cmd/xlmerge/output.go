package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// printSummary reports merged sheets, skipped files and warnings.
func printSummary(w io.Writer, res *xlmerge.Result) {
	count := len(res.Sheets)
	plural := "s"
	if count == 1 {
		plural = ""
	}
	_, _ = successColor.Fprintf(w, "✓ Merged %d Excel file%s into '%s'.\n", count, plural, res.Output)

	for _, sheet := range res.Sheets {
		_, _ = labelColor.Fprintf(w, "  %s", sheet.SheetName)
		_, _ = dimColor.Fprintf(w, " <- %s", filepath.Base(sheet.Source))
		if sheet.Range != "" {
			_, _ = dimColor.Fprintf(w, " (%s)", sheet.Range)
		}
		fmt.Fprintln(w)
	}

	if count == 0 {
		_, _ = dimColor.Fprintln(w, "  no sheets merged, the workbook holds an empty placeholder sheet")
	}

	if len(res.Skipped) > 0 {
		_, _ = warningColor.Fprintf(w, "⚠ Skipped %d file(s):\n", len(res.Skipped))
		for _, skipped := range res.Skipped {
			fmt.Fprintf(w, "  %s: %v\n", skipped.Source, skipped.Err)
		}
	}

	for _, warning := range res.Warnings {
		_, _ = warningColor.Fprintf(w, "⚠ %s\n", warning)
	}
}

func printInfo(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

// printError prints an error message to w.
func printError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "✗ Error: %s\n", msg)
}

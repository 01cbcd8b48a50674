// Package xlmerge merges the workbooks found in a directory into a single
// workbook with one sheet per input file.
package xlmerge

import (
	"github.com/rs/zerolog"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/discover"
)

// DefaultOutputName is the output file name used when none is given.
const DefaultOutputName = "combined.xlsx"

// Options configures a merge run.
type Options struct {
	// Pattern filters input file names (default "*.xls*").
	Pattern string
	// Recursive searches subdirectories of the source directory.
	Recursive bool
	// ValuesOnly copies cached results instead of formula text. Legacy and
	// binary workbooks always provide cached results.
	ValuesOnly bool
	// Logger receives progress and per-file warnings.
	Logger zerolog.Logger
}

// DefaultOptions returns default merge options with logging disabled.
func DefaultOptions() Options {
	return Options{
		Pattern: discover.DefaultPattern,
		Logger:  zerolog.Nop(),
	}
}

package models

// MergedSheet records which source file became which output sheet.
type MergedSheet struct {
	// Source is the input file path.
	Source string
	// SheetName is the sheet name used in the output workbook.
	SheetName string
	// Format is the container format the source was read as.
	Format Format
	// Range is the used range written to the output sheet.
	Range string
}

// SkippedFile records an input file that could not be merged.
type SkippedFile struct {
	// Source is the input file path.
	Source string
	// Err is the reason the file was skipped.
	Err error
}

package models

import (
	"path/filepath"
	"strings"
)

// InputFile is a discovered workbook on disk.
type InputFile struct {
	// Path is the file path as found during discovery.
	Path string
	// BaseName is the file name without directory and extension.
	BaseName string
}

// NewInputFile derives the base name of path.
func NewInputFile(path string) InputFile {
	name := filepath.Base(path)
	return InputFile{
		Path:     path,
		BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

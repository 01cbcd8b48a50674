// Package reader extracts the first sheet of a workbook on disk.
package reader

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

// ErrUnsupportedFormat indicates the file is not a workbook this package can read.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// ErrEncrypted indicates the workbook is password protected.
var ErrEncrypted = errors.New("workbook is password protected")

// ErrNoSheets indicates the workbook contains no worksheet.
var ErrNoSheets = errors.New("workbook has no sheets")

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

var knownExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
	".xlsb": true,
	".xls":  true,
	".xlt":  true,
}

// Options configures how cell content is read.
type Options struct {
	// ValuesOnly selects cached computed values instead of formula text.
	// Legacy and binary workbooks only ever provide cached values.
	ValuesOnly bool
}

// Read opens the workbook at in.Path, extracts its first sheet and closes
// the file before returning.
func Read(in models.InputFile, opts Options) (*models.SheetData, error) {
	format, err := Detect(in.Path)
	if err != nil {
		return nil, err
	}

	switch format {
	case models.FormatModern:
		return readModern(in.Path, opts)
	case models.FormatLegacy:
		return readLegacy(in.Path)
	case models.FormatBinary:
		return readBinary(in.Path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Detect identifies the container format of the file at path from its
// extension and leading bytes.
func Detect(path string) (models.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !knownExtensions[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	magic := make([]byte, len(oleMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return "", fmt.Errorf("%w: file too short", ErrUnsupportedFormat)
	}

	switch {
	case bytes.HasPrefix(magic, zipMagic):
		return detectZip(f, info.Size())
	case bytes.Equal(magic, oleMagic):
		return detectCompound(f)
	}
	return "", fmt.Errorf("%w: unrecognized file signature", ErrUnsupportedFormat)
}

// detectZip distinguishes OOXML packages by their workbook part.
func detectZip(r io.ReaderAt, size int64) (models.Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	for _, file := range zr.File {
		switch file.Name {
		case "xl/workbook.xml":
			return models.FormatModern, nil
		case "xl/workbook.bin":
			return models.FormatBinary, nil
		}
	}
	return "", fmt.Errorf("%w: zip archive without workbook part", ErrUnsupportedFormat)
}

// detectCompound inspects an OLE2 compound file. BIFF workbooks keep their
// data in a "Workbook" (BIFF8) or "Book" (BIFF5) stream; password protected
// OOXML files are wrapped in a compound file with an "EncryptedPackage".
func detectCompound(r io.ReaderAt) (models.Format, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "Workbook", "Book":
			return models.FormatLegacy, nil
		case "EncryptedPackage":
			return "", ErrEncrypted
		}
	}
	return "", fmt.Errorf("%w: compound file without workbook stream", ErrUnsupportedFormat)
}

package xlmerge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/discover"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/reader"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/sheetname"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/writer"
)

// Result summarizes a merge run.
type Result struct {
	// Output is the path of the saved workbook.
	Output string
	// Sheets lists merged inputs in output order.
	Sheets []models.MergedSheet
	// Skipped lists inputs that could not be read.
	Skipped []models.SkippedFile
	// Warnings lists non-fatal issues, such as formulas unavailable in
	// legacy inputs or formatting that could not be reproduced.
	Warnings []string
}

// Merge copies the first sheet of every workbook in sourceDir matching
// opts.Pattern into a new workbook saved at outputPath. Unreadable inputs
// are skipped and reported; only a missing source directory or a failed
// save abort the run.
func Merge(sourceDir, outputPath string, opts Options) (*Result, error) {
	log := opts.Logger
	if opts.Pattern == "" {
		opts.Pattern = discover.DefaultPattern
	}

	files, err := collect(sourceDir, outputPath, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Output: outputPath}
	out := writer.New()
	defer out.Close()

	if len(files) == 0 {
		log.Info().
			Str("source", sourceDir).
			Str("pattern", opts.Pattern).
			Msg("no matching workbooks, writing empty placeholder workbook")
	}

	used := sheetname.Set{}
	for _, in := range files {
		log.Debug().Str("file", in.Path).Msg("reading workbook")

		data, err := reader.Read(in, reader.Options{ValuesOnly: opts.ValuesOnly})
		if err != nil {
			skipErr := &UnreadableFileError{Path: in.Path, Err: err}
			log.Warn().Err(err).Str("file", in.Path).Msg("skipping unreadable workbook")
			result.Skipped = append(result.Skipped, models.SkippedFile{Source: in.Path, Err: skipErr})
			continue
		}

		if !data.FormulasAvailable && !opts.ValuesOnly {
			msg := fmt.Sprintf("%s: %s format keeps no formula text, copied cached values", in.Path, data.Format)
			log.Warn().Str("file", in.Path).Str("format", string(data.Format)).
				Msg("formula text unavailable, copying cached values")
			result.Warnings = append(result.Warnings, msg)
		}

		name := sheetname.Unique(in.BaseName, used)
		layoutWarnings, err := out.AddSheet(name, data)
		if err != nil {
			skipErr := &UnreadableFileError{Path: in.Path, Err: err}
			log.Warn().Err(err).Str("file", in.Path).Msg("skipping workbook that could not be copied")
			result.Skipped = append(result.Skipped, models.SkippedFile{Source: in.Path, Err: skipErr})
			continue
		}
		used.Add(name)

		for _, w := range layoutWarnings {
			log.Warn().Str("file", in.Path).Str("sheet", name).Msg(w)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", in.Path, w))
		}

		result.Sheets = append(result.Sheets, models.MergedSheet{
			Source:    in.Path,
			SheetName: name,
			Format:    data.Format,
			Range:     data.Dimension(),
		})
		log.Debug().
			Str("file", in.Path).
			Str("sheet", name).
			Int("cells", data.CellCount()).
			Msg("sheet merged")
	}

	if err := save(out, outputPath); err != nil {
		return nil, err
	}

	log.Info().
		Str("output", outputPath).
		Int("sheets", len(result.Sheets)).
		Int("skipped", len(result.Skipped)).
		Msg("workbook saved")

	return result, nil
}

// collect discovers the input files, leaving out the output workbook. A
// non-recursive search that finds nothing is retried recursively.
func collect(sourceDir, outputPath string, opts Options) ([]models.InputFile, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, &NotFoundError{Path: sourceDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: sourceDir, Err: fmt.Errorf("not a directory: %w", fs.ErrNotExist)}
	}

	files, err := find(sourceDir, outputPath, opts.Pattern, opts.Recursive)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 && !opts.Recursive {
		files, err = find(sourceDir, outputPath, opts.Pattern, true)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			opts.Logger.Info().
				Str("source", sourceDir).
				Int("files", len(files)).
				Msg("no workbooks at top level, using workbooks from subdirectories")
		}
	}

	return files, nil
}

func find(sourceDir, outputPath, pattern string, recursive bool) ([]models.InputFile, error) {
	candidates, err := discover.Files(sourceDir, pattern, recursive)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: sourceDir, Err: err}
		}
		return nil, err
	}

	excluded := absPath(outputPath)
	files := candidates[:0]
	for _, in := range candidates {
		if absPath(in.Path) == excluded {
			continue
		}
		files = append(files, in)
	}
	return files, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func save(out *writer.Workbook, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: outputPath, Err: err}
		}
	}
	if err := out.Save(outputPath); err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}
	return nil
}

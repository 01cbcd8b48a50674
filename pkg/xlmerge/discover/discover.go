// Package discover locates candidate workbooks in a directory tree.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

// DefaultPattern matches every extension starting with ".xls", which covers
// legacy, modern and binary workbooks.
const DefaultPattern = "*.xls*"

// Files returns the regular files under root whose base name matches
// pattern, sorted by path. Subdirectories are searched only when recursive
// is set. A missing root yields an error wrapping fs.ErrNotExist; no match
// yields an empty slice.
func Files(root, pattern string, recursive bool) ([]models.InputFile, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	// Surface a malformed pattern even when the directory is empty.
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, fs.ErrNotExist)
	}

	var paths []string
	if recursive {
		paths, err = walk(root, pattern)
	} else {
		paths, err = list(root, pattern)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	files := make([]models.InputFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, models.NewInputFile(p))
	}
	return files, nil
}

func list(root, pattern string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !isFile(filepath.Join(root, entry.Name()), entry) {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}
	return paths, nil
}

func walk(root, pattern string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !isFile(path, d) {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// isFile reports whether entry is a regular file or a symlink resolving to
// one. Symlinked directories are not followed.
func isFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Package sheetname derives valid, unique worksheet names from file names.
package sheetname

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest sheet name Excel accepts, in characters.
const MaxLength = 31

// Fallback is used when sanitizing leaves nothing behind.
const Fallback = "Sheet"

const invalidChars = `[]:*?/\`

// Set records sheet names already used in a workbook. Excel compares sheet
// names case-insensitively, so membership does too.
type Set map[string]struct{}

// Contains reports whether name is taken.
func (s Set) Contains(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Add marks name as taken.
func (s Set) Add(name string) {
	s[strings.ToLower(name)] = struct{}{}
}

// Sanitize replaces characters Excel forbids in sheet names with '_' and
// trims surrounding whitespace and apostrophes. The result is not truncated.
func Sanitize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < 0x20 || r == utf8.RuneError || strings.ContainsRune(invalidChars, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return trim(b.String())
}

// Unique returns the first candidate derived from base that is not in used.
// The first candidate is the sanitized base truncated to MaxLength; later
// candidates append "_2", "_3", ... after shortening the prefix so the
// whole name still fits. used is not modified.
func Unique(base string, used Set) string {
	clean := Sanitize(base)
	if clean == "" {
		clean = Fallback
	}

	name := truncate(clean, MaxLength)
	if name == "" {
		name = Fallback
	}
	if !used.Contains(name) {
		return name
	}

	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		prefix := truncate(clean, MaxLength-len(suffix))
		if prefix == "" {
			prefix = truncate(Fallback, MaxLength-len(suffix))
		}
		candidate := prefix + suffix
		if !used.Contains(candidate) {
			return candidate
		}
	}
}

// truncate shortens s to at most n runes and drops characters that would
// leave the name ending in whitespace or an apostrophe.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		runes := []rune(s)
		s = string(runes[:n])
	}
	return trim(s)
}

func trim(s string) string {
	return strings.Trim(strings.TrimSpace(s), "'")
}

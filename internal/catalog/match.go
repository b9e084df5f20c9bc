package catalog

import (
	"path/filepath"
	"strings"
)

// matchFold reports whether name matches the file-system glob pattern,
// case-insensitively. Glob semantics, not regular expressions: '*' matches
// any run of characters, '?' a single character.
//
// A malformed pattern counts as no match; filepath.Match only errors on
// unterminated character classes, which no sane computer or user pattern has.
func matchFold(pattern, name string) bool {
	ok, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/dmitrijs2005/pwrecover/internal/logging"
)

// List enumerates archives under dir whose names match
// computerPattern+"+*+*+*" and returns them in ascending tick order.
//
// Files that match the rough shape but do not parse into four segments are
// warned about and skipped; a stray file must never abort the batch. A missing
// or unreadable directory is common.ErrPathNotFound, and an empty result is
// common.ErrNoComputerMatch, so the caller can emit distinct diagnostics.
func List(ctx context.Context, dir, computerPattern string, log logging.Logger) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrPathNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", common.ErrPathNotFound, dir, err)
	}

	pattern := computerPattern + strings.Repeat(common.NameDelimiter+"*", common.NameSegments-1)

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !matchFold(pattern, name) {
			continue
		}

		rec, err := ParseName(name)
		if err != nil {
			log.Warn(ctx, "skipping archive with malformed name", "name", name, "error", err)
			continue
		}
		rec.Path = filepath.Join(dir, name)
		records = append(records, *rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q in %s", common.ErrNoComputerMatch, computerPattern, dir)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Ticks < records[j].Ticks
	})
	return records, nil
}

// Filter keeps only records whose user segment glob-matches userPattern.
// An empty result is common.ErrNoUserMatch.
func Filter(records []Record, userPattern string) ([]Record, error) {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if matchFold(userPattern, r.User) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrNoUserMatch, userPattern)
	}
	return filtered, nil
}

// SelectLatest keeps the single chronologically last record of the whole
// filtered set. This reproduces the sealing tool's directory-sort-then-take-
// last behavior exactly, including its quirk: a wildcard user pattern still
// collapses to one overall answer.
func SelectLatest(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	latest := records[0]
	for _, r := range records[1:] {
		if r.Ticks >= latest.Ticks {
			latest = r
		}
	}
	return []Record{latest}
}

// SelectLatestPerUser keeps the latest record for each distinct user (matched
// case-insensitively), in ascending tick order. The explicit alternative to
// SelectLatest for wildcard user patterns.
func SelectLatestPerUser(records []Record) []Record {
	latest := make(map[string]Record)
	for _, r := range records {
		key := strings.ToLower(r.User)
		if cur, ok := latest[key]; !ok || r.Ticks >= cur.Ticks {
			latest[key] = r
		}
	}

	out := make([]Record, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ticks < out[j].Ticks
	})
	return out
}

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/dmitrijs2005/pwrecover/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogger struct {
	warns []string
}

func (f *fakeLogger) Debug(_ context.Context, msg string, _ ...any) {}
func (f *fakeLogger) Info(_ context.Context, msg string, _ ...any)  {}
func (f *fakeLogger) Warn(_ context.Context, msg string, _ ...any) {
	f.warns = append(f.warns, msg)
}
func (f *fakeLogger) Error(_ context.Context, msg string, _ ...any) {}
func (f *fakeLogger) With(_ ...any) logging.Logger                  { return f }

func writeArchiveDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ciphertext"), 0o600))
	}
	return dir
}

func TestList_SortsAscendingByTicks(t *testing.T) {
	dir := writeArchiveDir(t,
		"LAPTOP47+Administrator+638123456700000000+AB12CD34EF56",
		"LAPTOP47+Administrator+638000000000000000+AB12CD34EF56",
		"LAPTOP47+Administrator+638100000000000000+PASSWORD-RESET-FAILURE",
	)

	recs, err := List(context.Background(), dir, "LAPTOP47", &fakeLogger{})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, int64(638000000000000000), recs[0].Ticks)
	assert.Equal(t, int64(638100000000000000), recs[1].Ticks)
	assert.Equal(t, int64(638123456700000000), recs[2].Ticks)
	assert.Equal(t, filepath.Join(dir, recs[0].Name()), recs[0].Path)
}

func TestList_PatternIsCaseInsensitiveGlob(t *testing.T) {
	dir := writeArchiveDir(t,
		"LAPTOP47+Administrator+638000000000000000+AB12",
		"DESKTOP9+Guest+638050000000000000+FFEE",
	)

	recs, err := List(context.Background(), dir, "laptop47", &fakeLogger{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "LAPTOP47", recs[0].Computer)

	recs, err = List(context.Background(), dir, "*TOP*", &fakeLogger{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestList_MalformedNamesAreWarnedAndSkipped(t *testing.T) {
	dir := writeArchiveDir(t,
		"LAPTOP47+Administrator+638000000000000000+AB12",
		// Matches the rough shape but the timestamp segment is not numeric.
		"LAPTOP47+Administrator+yesterday+AB12",
	)

	log := &fakeLogger{}
	recs, err := List(context.Background(), dir, "LAPTOP47", log)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Len(t, log.warns, 1, "malformed name must produce a warning, not a crash")
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(context.Background(), filepath.Join(t.TempDir(), "nope"), "*", &fakeLogger{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrPathNotFound))
}

func TestList_NoComputerMatch(t *testing.T) {
	dir := writeArchiveDir(t, "LAPTOP47+Administrator+638000000000000000+AB12")

	_, err := List(context.Background(), dir, "SERVER01", &fakeLogger{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoComputerMatch))
}

func TestFilter(t *testing.T) {
	recs := []Record{
		{User: "Administrator", Ticks: 1},
		{User: "Guest", Ticks: 2},
		{User: "svc-backup", Ticks: 3},
	}

	t.Run("literal match is case-insensitive", func(t *testing.T) {
		got, err := Filter(recs, "administrator")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Administrator", got[0].User)
	})

	t.Run("wildcard", func(t *testing.T) {
		got, err := Filter(recs, "svc*")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "svc-backup", got[0].User)
	})

	t.Run("no match is an error, not an empty result", func(t *testing.T) {
		_, err := Filter(recs, "root")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrNoUserMatch))
	})
}

func TestSelectLatest_OneGlobalRecord(t *testing.T) {
	recs := []Record{
		{User: "Administrator", Ticks: 10},
		{User: "Guest", Ticks: 30},
		{User: "Administrator", Ticks: 20},
	}

	got := SelectLatest(recs)
	require.Len(t, got, 1)
	// One overall latest even across distinct users.
	assert.Equal(t, "Guest", got[0].User)
	assert.Equal(t, int64(30), got[0].Ticks)

	for _, r := range recs {
		assert.GreaterOrEqual(t, got[0].Ticks, r.Ticks)
	}
}

func TestSelectLatest_Empty(t *testing.T) {
	assert.Nil(t, SelectLatest(nil))
}

func TestSelectLatestPerUser(t *testing.T) {
	recs := []Record{
		{User: "Administrator", Ticks: 10},
		{User: "Guest", Ticks: 30},
		{User: "administrator", Ticks: 20},
		{User: "Guest", Ticks: 5},
	}

	got := SelectLatestPerUser(recs)
	require.Len(t, got, 2)
	assert.Equal(t, int64(20), got[0].Ticks)
	assert.Equal(t, int64(30), got[1].Ticks)
}

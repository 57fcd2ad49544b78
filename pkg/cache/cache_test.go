package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/narma/pkg/cache"
	"github.com/glorpus-work/narma/pkg/errutils"
	"github.com/glorpus-work/narma/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, fsutil.DirModeDefault))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), fsutil.FileModeDefault))
	}
}

func TestSetDirectory(t *testing.T) {
	mgr := cache.NewManager(t.TempDir())

	require.Error(t, mgr.SetDirectory(""))

	dir := filepath.Join(t.TempDir(), ".narma-cache")
	require.NoError(t, mgr.SetDirectory(dir))
	assert.Equal(t, dir, mgr.GetDirectory())
}

func TestFileNameAndParse(t *testing.T) {
	assert.Equal(t, "1700000000.acir", cache.FileName(1700000000))

	ts, err := cache.TimestampFromName("1700000000.acir")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), ts)

	_, err = cache.TimestampFromName("draft.acir")
	assert.True(t, errors.Is(err, errutils.ErrInvalidTimestamp))

	_, err = cache.ParseTimestamp("-5")
	assert.True(t, errors.Is(err, errutils.ErrInvalidTimestamp))

	signed, err := cache.SignedTimestampFromName("-60.acir")
	require.NoError(t, err)
	assert.Equal(t, int64(-60), signed)

	assert.True(t, cache.IsArtifactName("12.acir"))
	assert.False(t, cache.IsArtifactName("12.acir.bak"))
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ts      int64
		want    string
		wantErr bool
	}{
		{ts: 0, want: "1970-01-01 00:00:00"},
		{ts: 1700000000, want: "2023-11-14 22:13:20"},
		{ts: -60, want: "1969-12-31 23:59:00"},
		{ts: 253402300799, want: "9999-12-31 23:59:59"},
		{ts: 253402300800, want: "+10000-01-01 00:00:00"},
		{ts: -62167219200, want: "0000-01-01 00:00:00"},
		{ts: -62167219201, want: "-0001-12-31 23:59:59"},
		{ts: 1 << 60, wantErr: true},
		{ts: -(1 << 60), wantErr: true},
		{ts: 9_000_000_000_000, wantErr: true},
	}

	for _, tt := range tests {
		got, err := cache.FormatTimestamp(tt.ts)
		if tt.wantErr {
			assert.True(t, errors.Is(err, errutils.ErrTimestampRange), "ts=%d", tt.ts)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEnsure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".narma-cache")
	mgr := cache.NewManager(dir)

	ok, err := mgr.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mgr.Ensure())
	require.NoError(t, mgr.Ensure(), "existing directory is fine")
	assert.DirExists(t, dir)

	missingParent := cache.NewManager(filepath.Join(t.TempDir(), "a", "b"))
	err = missingParent.Ensure()
	assert.True(t, errors.Is(err, errutils.ErrCacheDirectory))
}

func TestSaveAndHas(t *testing.T) {
	dir := t.TempDir()
	mgr := cache.NewManager(dir)

	path, err := mgr.Save(1700000000, []byte("acir"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1700000000.acir"), path)

	ok, err := mgr.Has(1700000000)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mgr.Has(1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Same second overwrites.
	_, err = mgr.Save(1700000000, []byte("second"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSave_MissingDirectory(t *testing.T) {
	mgr := cache.NewManager(filepath.Join(t.TempDir(), "missing"))
	_, err := mgr.Save(1, []byte("x"))
	assert.True(t, errors.Is(err, errutils.ErrCacheWrite))
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    string
		wantErr bool
	}{
		{name: "empty", files: nil, want: ""},
		{name: "picks greatest", files: map[string]string{"10.acir": "", "30.acir": "", "20.acir": ""}, want: "30.acir"},
		{name: "ignores other files", files: map[string]string{"10.acir": "", "99.txt": ""}, want: "10.acir"},
		{name: "zero never selected", files: map[string]string{"0.acir": ""}, want: ""},
		{name: "malformed artifact name", files: map[string]string{"10.acir": "", "x.acir": ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			setupTestCache(t, dir, tt.files)

			latest, err := cache.NewManager(dir).Latest()
			if tt.wantErr {
				assert.True(t, errors.Is(err, errutils.ErrInvalidTimestamp))
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, latest)
				return
			}
			require.NotNil(t, latest)
			assert.Equal(t, tt.want, latest.Name)
			assert.Equal(t, filepath.Join(dir, tt.want), latest.Path)
		})
	}
}

func TestReset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".narma-cache")
	setupTestCache(t, dir, map[string]string{"1.acir": "a", "2.acir": "b", "notes.txt": "c"})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), fsutil.DirModeDefault))

	require.NoError(t, cache.NewManager(dir).Reset())

	assert.DirExists(t, dir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	setupTestCache(t, dir, map[string]string{"100.acir": "abcd", "300.acir": "ef", "200.acir": "", "notes.txt": "zzzzzz"})

	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, 3, info.Artifacts)
	assert.Equal(t, int64(6), info.TotalSize)
	assert.Equal(t, uint64(100), info.Oldest)
	assert.Equal(t, uint64(300), info.Newest)
}

func TestGetInfo_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nonexistent")
	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)
	assert.False(t, info.Exists)
	assert.Equal(t, 0, info.Artifacts)
}

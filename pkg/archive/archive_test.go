package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, dir string, files map[string]string) map[string]string {
	t.Helper()
	mapping := make(map[string]string, len(files))
	for name, content := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
		mapping[full] = name
	}
	return mapping
}

func TestArchiveManager_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	files := map[string]string{
		"1700000000.acir": "func 0\ncurrent witness index : 3\n",
		"1700000100.acir": "func 0\ncurrent witness index : 4\n",
	}
	mapping := writeSources(t, filepath.Join(tempDir, "source"), files)

	am := NewManager()
	ctx := context.Background()
	archivePath := filepath.Join(tempDir, "acir.tar.gz")
	require.NoError(t, am.Create(ctx, mapping, archivePath))
	require.FileExists(t, archivePath)

	dest := filepath.Join(tempDir, "dest")
	require.NoError(t, os.MkdirAll(dest, 0o755))

	written, err := am.ExtractMatching(ctx, archivePath, dest, func(string) bool { return true }, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1700000000.acir", "1700000100.acir"}, written)

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dest, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestArchiveManager_ExtractMatchingFiltersAndFlattens(t *testing.T) {
	tempDir := t.TempDir()
	mapping := writeSources(t, filepath.Join(tempDir, "source"), map[string]string{
		"nested/42.acir": "nested",
		"README.md":      "ignore me",
	})

	am := NewManager()
	ctx := context.Background()
	archivePath := filepath.Join(tempDir, "mixed.tar.gz")
	require.NoError(t, am.Create(ctx, mapping, archivePath))

	dest := t.TempDir()
	var skipped []string
	written, err := am.ExtractMatching(ctx, archivePath, dest,
		func(name string) bool { return strings.HasSuffix(name, ".acir") },
		func(name string) { skipped = append(skipped, name) },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"42.acir"}, written)
	assert.Equal(t, []string{"README.md"}, skipped)
	assert.FileExists(t, filepath.Join(dest, "42.acir"))
	assert.NoFileExists(t, filepath.Join(dest, "README.md"))
}

func TestArchiveManager_ExtractMissingArchive(t *testing.T) {
	am := NewManager()
	_, err := am.ExtractMatching(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir(),
		func(string) bool { return true }, nil)
	assert.Error(t, err)
}

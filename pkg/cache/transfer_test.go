package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_ExportImport(t *testing.T) {
	src := newFixture(t)
	writeArtifacts(t, src.dir, "100.acir", "200.acir", "notes.txt")

	archivePath := filepath.Join(t.TempDir(), "acir.tar.gz")
	require.NoError(t, src.op.Export(context.Background(), archivePath, src.stdout, src.stderr))
	assert.Equal(t, "Exported 2 artifacts to "+archivePath+"\n", src.stdout.String())

	dst := newFixture(t)
	require.NoError(t, dst.op.Import(context.Background(), archivePath, dst.stdout))
	assert.Equal(t, "Imported 2 artifacts from "+archivePath+"\n", dst.stdout.String())

	for _, name := range []string{"100.acir", "200.acir"} {
		data, err := os.ReadFile(filepath.Join(dst.dir, name))
		require.NoError(t, err)
		assert.Equal(t, name, string(data))
	}
	assert.NoFileExists(t, filepath.Join(dst.dir, "notes.txt"))
}

func TestOperation_Export_MissingDirectory(t *testing.T) {
	f := newFixture(t)
	archivePath := filepath.Join(t.TempDir(), "acir.tar.gz")

	require.NoError(t, f.op.Export(context.Background(), archivePath, f.stdout, f.stderr))
	assert.Equal(t, "Cache directory not found.\n", f.stderr.String())
	assert.NoFileExists(t, archivePath)
}

func TestOperation_Import_MissingArchive(t *testing.T) {
	f := newFixture(t)
	err := f.op.Import(context.Background(), filepath.Join(t.TempDir(), "absent.tar.gz"), f.stdout)
	assert.Error(t, err)
}

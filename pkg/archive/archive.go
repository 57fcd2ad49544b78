// Package archive bundles cached ACIR artifacts into compressed tarballs and
// unpacks them again, so a cache can be carried between checkouts.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/glorpus-work/narma/pkg/fsutil"
	"github.com/mholt/archives"
)

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Create writes a gzip compressed tarball at archivePath containing files,
// a map from path on disk to name inside the archive.
func (am *Manager) Create(ctx context.Context, files map[string]string, archivePath string) error {
	archiveFiles, err := archives.FilesFromDisk(ctx, nil, files)
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", archivePath, err)
	}

	file, err := fsutil.CreateFilePerm(archivePath, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	// Ensure data is flushed and handle is released promptly
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}

	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}

// ExtractMatching copies every regular file from the archive whose base name
// satisfies keep into destDir, flattening any directory structure. It returns
// the base names written. Files rejected by keep are reported through skip
// when it is non-nil.
func (am *Manager) ExtractMatching(ctx context.Context, archivePath, destDir string, keep func(name string) bool, skip func(name string)) ([]string, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	// Ensure archive FS is closed after extraction
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var written []string
	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		name := path.Base(p)
		if !keep(name) {
			if skip != nil {
				skip(p)
			}
			return nil
		}

		if err := am.writeRegularFile(fsys, p, filepath.Join(destDir, name)); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	}

	if err := fs.WalkDir(fsys, ".", walkFn); err != nil {
		return written, err
	}
	return written, nil
}

// writeRegularFile writes a regular file from the archive entry at p to targetPath.
func (am *Manager) writeRegularFile(fsys fs.FS, p, targetPath string) error {
	srcFile, err := fsys.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", p, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := fsutil.CreateFilePerm(targetPath, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", p, err)
	}
	return nil
}

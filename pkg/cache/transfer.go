package cache

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/archive"
	"github.com/glorpus-work/narma/pkg/errutils"
)

// Export writes every artifact of the cache into a tar.gz at archivePath.
func (op *Operation) Export(ctx context.Context, archivePath string, stdout, stderr io.Writer) error {
	info, err := op.manager.GetInfo()
	if err != nil {
		return err
	}
	if !info.Exists {
		fmt.Fprintln(stderr, MsgCacheDirNotFound)
		return nil
	}

	names, err := op.manager.Names()
	if err != nil {
		return err
	}

	files := make(map[string]string)
	for _, name := range names {
		if !IsArtifactName(name) {
			continue
		}
		if _, err := TimestampFromName(name); err != nil {
			return err
		}
		files[filepath.Join(op.manager.GetDirectory(), name)] = name
	}

	if err := archive.NewManager().Create(ctx, files, archivePath); err != nil {
		return errutils.Wrap(errutils.ErrArchive, err.Error())
	}

	fmt.Fprintf(stdout, "Exported %d artifacts to %s\n", len(files), archivePath)
	logger.Info("Exported cache", logger.Fields{"archive": archivePath, "artifacts": len(files)})
	return nil
}

// Import copies the artifacts contained in archivePath into the cache,
// creating the cache directory when needed. Entries whose names are not
// <integer>.acir are skipped. Existing artifacts with the same timestamp are
// overwritten.
func (op *Operation) Import(ctx context.Context, archivePath string, stdout io.Writer) error {
	if err := op.manager.Ensure(); err != nil {
		return err
	}

	keep := func(name string) bool {
		if !IsArtifactName(name) {
			return false
		}
		_, err := TimestampFromName(name)
		return err == nil
	}
	skip := func(name string) {
		logger.Warn("Skipping archive entry", logger.Fields{"name": name})
	}

	written, err := archive.NewManager().ExtractMatching(ctx, archivePath, op.manager.GetDirectory(), keep, skip)
	if err != nil {
		return errutils.Wrap(errutils.ErrArchive, err.Error())
	}

	fmt.Fprintf(stdout, "Imported %d artifacts from %s\n", len(written), archivePath)
	logger.Infof("Imported %d artifacts into %s", len(written), op.manager.GetDirectory())
	return nil
}

package cache

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/errutils"
	"github.com/glorpus-work/narma/pkg/fsutil"
)

// DefaultManager implements the Manager interface over a single flat directory.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// SetDirectory sets the cache directory path.
func (cm *DefaultManager) SetDirectory(dir string) error {
	if dir == "" {
		return errutils.ErrCacheDirectory
	}
	cm.directory = dir
	return nil
}

// Exists reports whether the cache directory is present.
func (cm *DefaultManager) Exists() (bool, error) {
	ok, err := fsutil.Exists(cm.directory)
	if err != nil {
		return false, errutils.Wrapf(err, "failed to stat cache directory %s", cm.directory)
	}
	return ok, nil
}

// Ensure creates the cache directory if it is absent. Parents are not created.
func (cm *DefaultManager) Ensure() error {
	if err := fsutil.MkdirExisting(cm.directory); err != nil {
		return errutils.Wrapf(errutils.ErrCacheDirectory, "%s: %v", cm.directory, err)
	}
	return nil
}

// Path returns the location of the artifact for ts, present or not.
func (cm *DefaultManager) Path(ts uint64) string {
	return filepath.Join(cm.directory, FileName(ts))
}

// Has reports whether an artifact for ts exists.
func (cm *DefaultManager) Has(ts uint64) (bool, error) {
	return fsutil.Exists(cm.Path(ts))
}

// Save writes data verbatim as the artifact for ts. An existing artifact with
// the same timestamp is overwritten.
func (cm *DefaultManager) Save(ts uint64, data []byte) (string, error) {
	path := cm.Path(ts)
	if err := fsutil.WriteFile(path, data); err != nil {
		return "", errutils.Wrap(errutils.ErrCacheWrite, err.Error())
	}
	logger.DebugfWithFields(logger.Fields{"timestamp": ts}, "wrote %s", path)
	return path, nil
}

// Names returns every entry name in the cache directory in raw enumeration order.
func (cm *DefaultManager) Names() ([]string, error) {
	names, err := fsutil.ReadDirNames(cm.directory)
	if err != nil {
		return nil, errutils.Wrapf(errutils.ErrCacheRead, "%s: %v", cm.directory, err)
	}
	return names, nil
}

// Latest returns the artifact with the strictly greatest timestamp, or nil
// when there is none above zero. Among equal timestamps the first one
// enumerated wins. A non-numeric artifact name is an error.
func (cm *DefaultManager) Latest() (*Artifact, error) {
	names, err := cm.Names()
	if err != nil {
		return nil, err
	}

	var latest *Artifact
	var latestTime uint64
	for _, name := range names {
		if !IsArtifactName(name) {
			continue
		}
		ts, err := TimestampFromName(name)
		if err != nil {
			return nil, err
		}
		if ts > latestTime {
			latestTime = ts
			latest = &Artifact{Timestamp: ts, Name: name, Path: filepath.Join(cm.directory, name)}
		}
	}
	return latest, nil
}

// Reset removes the cache directory with everything in it and recreates it empty.
func (cm *DefaultManager) Reset() error {
	if err := os.RemoveAll(cm.directory); err != nil {
		return errutils.Wrapf(errutils.ErrCacheClean, "failed to remove directory %s: %v", cm.directory, err)
	}

	if err := os.Mkdir(cm.directory, os.FileMode(CacheDirPerm)); err != nil {
		return errutils.Wrapf(errutils.ErrCacheClean, "failed to recreate directory %s: %v", cm.directory, err)
	}

	logger.Debug("Cache directory reset", logger.Fields{"directory": cm.directory})
	return nil
}

// GetInfo returns information about the cache. Entries that do not look like
// artifacts are not counted.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.directory}

	ok, err := cm.Exists()
	if err != nil || !ok {
		return info, err
	}
	info.Exists = true

	names, err := cm.Names()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if !IsArtifactName(name) {
			continue
		}
		ts, err := TimestampFromName(name)
		if err != nil {
			logger.Warn("Skipping malformed artifact name", logger.Fields{"name": name})
			continue
		}

		st, err := os.Stat(filepath.Join(cm.directory, name))
		if err != nil {
			return nil, errutils.Wrapf(errutils.ErrCacheRead, "%s: %v", name, err)
		}

		info.Artifacts++
		info.TotalSize += st.Size()
		if info.Oldest == 0 || ts < info.Oldest {
			info.Oldest = ts
		}
		if ts > info.Newest {
			info.Newest = ts
		}
	}

	return info, nil
}

package fsutil

// File and directory permission constants.
// These follow standard Unix permission conventions and are used consistently
// throughout the application to ensure consistent file and directory permissions.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files, including cached ACIR

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories, including the cache directory
)

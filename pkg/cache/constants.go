package cache

import "github.com/glorpus-work/narma/pkg/fsutil"

// Extension is the suffix every cached ACIR artifact carries.
const Extension = ".acir"

// DateTimeLayout renders the part of an artifact timestamp after the year,
// MM-DD HH:MM:SS. The year is written by FormatTimestamp.
const DateTimeLayout = "01-02 15:04:05"

// Messages reported for recoverable conditions.
const (
	MsgCacheDirNotFound     = "Cache directory not found."
	msgArtifactNotFoundForm = "Error: ACIR file for timestamp %d not found."
)

// Calendar bounds of a representable artifact timestamp, in years.
const (
	minCalendarYear = -262143
	maxCalendarYear = 262142

	// Beyond this magnitude time.Unix can no longer represent the instant.
	maxUnixMagnitude = int64(1) << 55
)

// CacheDirPerm is the permission mode of the cache directory.
var CacheDirPerm = fsutil.DirModeDefault

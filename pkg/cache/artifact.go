package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/narma/pkg/errutils"
)

// FileName returns the artifact file name for ts.
func FileName(ts uint64) string {
	return strconv.FormatUint(ts, 10) + Extension
}

// IsArtifactName reports whether name carries the artifact extension.
// The prefix is not checked; callers parse it and fail on garbage.
func IsArtifactName(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// ParseTimestamp parses a decimal unsigned timestamp as typed by a user.
func ParseTimestamp(token string) (uint64, error) {
	ts, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, errutils.ErrInvalidTimestampWithValue(token, err)
	}
	return ts, nil
}

// TimestampFromName parses the unsigned timestamp prefix of an artifact name.
func TimestampFromName(name string) (uint64, error) {
	return ParseTimestamp(strings.TrimSuffix(name, Extension))
}

// SignedTimestampFromName parses the prefix of an artifact name as a signed
// timestamp, the way listings interpret it.
func SignedTimestampFromName(name string) (int64, error) {
	prefix := strings.TrimSuffix(name, Extension)
	ts, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, errutils.ErrInvalidTimestampWithValue(prefix, err)
	}
	return ts, nil
}

// FormatTimestamp renders ts as a UTC calendar date-time.
func FormatTimestamp(ts int64) (string, error) {
	if ts >= maxUnixMagnitude || ts <= -maxUnixMagnitude {
		return "", errutils.Wrapf(errutils.ErrTimestampRange, "%d", ts)
	}

	t := time.Unix(ts, 0).UTC()
	if y := t.Year(); y < minCalendarYear || y > maxCalendarYear {
		return "", errutils.Wrapf(errutils.ErrTimestampRange, "%d", ts)
	}
	return formatYear(t.Year()) + "-" + t.Format(DateTimeLayout), nil
}

// formatYear pads years 0..9999 to four digits. Years outside that range carry
// an explicit sign: +10000, -0001.
func formatYear(y int) string {
	switch {
	case y < 0:
		return fmt.Sprintf("-%04d", -y)
	case y > 9999:
		return fmt.Sprintf("+%d", y)
	default:
		return fmt.Sprintf("%04d", y)
	}
}

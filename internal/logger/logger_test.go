package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("cached artifact") },
			contains: []string{"cached artifact", "level=INFO"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("running compiler") },
			contains: []string{"running compiler", "level=DEBUG"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("running compiler") },
			excludes: []string{"running compiler"},
		},
		{
			name:     "info hidden at default warn level",
			level:    "",
			logFn:    func() { Info("cached artifact") },
			excludes: []string{"cached artifact"},
		},
		{
			name:     "warn log with fields",
			level:    "warn",
			logFn:    func() { Warn("skipping entry", Fields{"name": "notes.txt", "size": 42}) },
			contains: []string{"skipping entry", "level=WARN", "name=notes.txt", "size=42"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("cache cleaned") },
			contains: []string{"cache cleaned", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("exported %d artifacts", 3) },
			contains: []string{"exported 3 artifacts"},
		},
		{
			name:  "formatted debug with fields",
			level: "debug",
			logFn: func() {
				DebugfWithFields(Fields{"timestamp": 1700000000}, "writing %s", "1700000000.acir")
			},
			contains: []string{"writing 1700000000.acir", "timestamp=1700000000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("bogus"))
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestJSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("test json message", Fields{
			"name":  "1700000000.acir",
			"bytes": 42,
			"new":   true,
		})
	})

	assert.Contains(t, output, `"msg":"test json message"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"name":"1700000000.acir"`)
	assert.Contains(t, output, `"bytes":42`)
	assert.Contains(t, output, `"new":true`)
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"key1": "value1"}, Fields{"key1": "new value", "key2": 123})
	result := make(map[string]interface{})
	for i := 0; i < len(attrs); i += 2 {
		result[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, map[string]interface{}{"key1": "new value", "key2": 123}, result)
}

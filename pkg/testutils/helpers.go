package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// WriteFiles creates files with the given content inside dir
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// WriteSeed marshals v as YAML into dir/<screen>.yaml and returns the path
func WriteSeed(t *testing.T, dir, screen string, v interface{}) string {
	t.Helper()
	data, err := yaml.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, screen+".yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// WriteRecords writes a `records:` seed file for screen
func WriteRecords(t *testing.T, dir, screen string, records []map[string]interface{}) string {
	t.Helper()
	return WriteSeed(t, dir, screen, map[string]interface{}{"records": records})
}

// DefaultRecords is a small activity collection for seed-file tests
func DefaultRecords() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "a1", "timestamp": "2024-02-01T09:00:00Z", "user": "ops@example.com", "action": "Rotated keys", "type": "security", "severity": "warning", "ipAddress": "10.1.1.1"},
		{"id": "a2", "timestamp": "2024-02-01T10:00:00Z", "user": "ops@example.com", "action": "Logged in", "type": "login", "severity": "info", "ipAddress": "10.1.1.2"},
		{"timestamp": "2024-02-01T11:00:00Z", "user": "bot", "action": "Nightly export", "type": "file", "severity": "success", "ipAddress": "10.1.1.3"},
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}

// Package testutil provides a standardized harness for exercising the
// preview app end to end against grid files written to a temp directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/paramgridgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a preview run.
type HarnessResult struct {
	Output string
	Err    error
}

// RunPreview writes the given files (relative path → content) into a temp
// directory and runs the preview app over it. The combined log and
// preview output is captured in the result.
func RunPreview(t *testing.T, files map[string]string, product bool) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig, err := app.NewAppConfig(app.AppConfig{
		GridPath:  tmpDir,
		Product:   product,
		LogLevel:  "debug",
		LogFormat: "text",
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}
	previewApp := app.NewApp(buf, appConfig)
	runErr := previewApp.Run(context.Background(), appConfig)

	return &HarnessResult{Output: buf.String(), Err: runErr}
}

package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/paramgridgo/expand"
	"github.com/vk/paramgridgo/internal/app"
	"github.com/vk/paramgridgo/internal/testutil"
)

const sampleGrid = `
params "delete_limit" {
  values = [0, 1, 2]
}

params "auth" {
  rows = {
    anonymous = []
    admin     = ["root", true]
  }
}
`

func TestRun_ListsTableRows(t *testing.T) {
	result := testutil.RunPreview(t, map[string]string{"grid.hcl": sampleGrid}, false)
	require.NoError(t, result.Err)

	require.Contains(t, result.Output, `params "auth": 2 row(s)`)
	require.Contains(t, result.Output, "  - admin\n")
	require.Contains(t, result.Output, "  - anonymous\n")
	require.Contains(t, result.Output, `params "delete_limit": 3 row(s)`)
	require.Contains(t, result.Output, "  - 0\n")
}

func TestRun_ProductPrintsUnitNames(t *testing.T) {
	result := testutil.RunPreview(t, map[string]string{"grid.hcl": sampleGrid}, true)
	require.NoError(t, result.Err)

	require.Contains(t, result.Output, "6 generated unit(s)")
	// Tables attach in name order, so auth varies slowest.
	require.Contains(t, result.Output, "  unit__<admin, 0>\n")
	require.Contains(t, result.Output, "  unit__<admin, 2>\n")
	require.Contains(t, result.Output, "  unit__<anonymous, 1>\n")
}

func TestRun_SplitsTablesAcrossFiles(t *testing.T) {
	files := map[string]string{
		"limits.hcl": `
params "delete_limit" {
  values = [0, 1]
}
`,
		"auth.yaml": `
params:
  auth:
    rows:
      anonymous: []
      admin: [root, true]
`,
	}
	result := testutil.RunPreview(t, files, true)
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "4 generated unit(s)")
}

func TestRun_BadGridFileFails(t *testing.T) {
	result := testutil.RunPreview(t, map[string]string{"grid.hcl": `params "x" {`}, false)
	require.Error(t, result.Err)
}

func TestRun_CustomNamePattern(t *testing.T) {
	gridPath := filepath.Join(t.TempDir(), "grid.hcl")
	require.NoError(t, os.WriteFile(gridPath, []byte(`
params "delete_limit" {
  values = [0, 1]
}
`), 0o644))

	cfg, err := app.NewAppConfig(app.AppConfig{
		GridPath:    gridPath,
		Product:     true,
		NamePattern: "{base_name}-{count}",
		LogLevel:    "info",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	buf := &testutil.SafeBuffer{}
	previewApp := app.NewApp(buf, cfg)
	require.NoError(t, previewApp.Run(context.Background(), cfg))

	require.Contains(t, buf.String(), "  unit-1\n")
	require.Contains(t, buf.String(), "  unit-2\n")

	// The pattern resets once the run is done.
	require.Equal(t, expand.DefaultNamePattern, expand.NamePattern())
}

func TestNewAppConfig_RequiresGridPath(t *testing.T) {
	_, err := app.NewAppConfig(app.AppConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "GridPath")
}

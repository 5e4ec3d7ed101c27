package gridfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/paramgridgo/internal/ctxlog"
	"github.com/vk/paramgridgo/internal/fsutil"
	"github.com/vk/paramgridgo/param"
)

// Load reads every parameter table reachable from path, which may be a
// single file or a directory walked recursively for .hcl, .yaml and .yml
// files. Table names must be unique across all loaded files.
func Load(ctx context.Context, path string) (map[string]*param.Seq, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("grid path %s: %w", path, err)
	}

	var files []string
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtensions(path, ".hcl", ".yaml", ".yml")
		if err != nil {
			return nil, fmt.Errorf("walking grid path %s: %w", path, err)
		}
	} else {
		files = []string{path}
	}
	logger.Debug("Discovered grid files.", "count", len(files))

	tables := make(map[string]*param.Seq)
	for _, file := range files {
		var loaded map[string]*param.Seq
		switch {
		case strings.HasSuffix(file, ".hcl"):
			loaded, err = parseHCLFile(ctx, file)
		case strings.HasSuffix(file, ".yaml"), strings.HasSuffix(file, ".yml"):
			loaded, err = parseYAMLFile(ctx, file)
		default:
			err = fmt.Errorf("unsupported grid file extension")
		}
		if err != nil {
			return nil, fmt.Errorf("grid file %s: %w", file, err)
		}
		for name, seq := range loaded {
			if _, dup := tables[name]; dup {
				return nil, fmt.Errorf("grid file %s: parameter table %q already declared in another file", file, name)
			}
			tables[name] = seq
		}
	}

	logger.Info("Parameter tables loaded.", "tables", len(tables), "files", len(files))
	return tables, nil
}

package gridfile

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/paramgridgo/internal/ctxlog"
	"github.com/vk/paramgridgo/param"
	"gopkg.in/yaml.v3"
)

// yamlRoot mirrors the HCL grid shape in YAML:
//
//	params:
//	  delete_limit:
//	    values: [0, 1, 2]
//	  auth:
//	    rows:
//	      anonymous: []
//	      admin: [root, true]
type yamlRoot struct {
	Params map[string]*yamlTable `yaml:"params"`
}

type yamlTable struct {
	Values []any          `yaml:"values"`
	Rows   map[string]any `yaml:"rows"`
}

func parseYAMLFile(ctx context.Context, path string) (map[string]*param.Seq, error) {
	logger := ctxlog.FromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yamlRoot
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	tables := make(map[string]*param.Seq, len(root.Params))
	for name, table := range root.Params {
		seq, err := table.toSeq()
		if err != nil {
			return nil, fmt.Errorf("parameter table %q: %w", name, err)
		}
		tables[name] = seq
		logger.Debug("Loaded parameter table.", "table", name)
	}
	return tables, nil
}

func (t *yamlTable) toSeq() (*param.Seq, error) {
	if t == nil || (t.Values == nil) == (t.Rows == nil) {
		return nil, fmt.Errorf("exactly one of 'values' or 'rows' must be set")
	}
	if t.Values != nil {
		return param.NewSeq(t.Values)
	}
	return param.NewSeq(t.Rows)
}

package gridfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/paramgridgo/internal/ctxlog"
	"github.com/vk/paramgridgo/param"
)

// fileRoot decodes the top-level blocks of a grid file.
type fileRoot struct {
	Params []*paramsBlock `hcl:"params,block"`
	Remain hcl.Body       `hcl:",remain"`
}

// paramsBlock is one declared parameter table. Exactly one of values or
// rows must be present.
type paramsBlock struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values,optional"`
	Rows   hcl.Expression `hcl:"rows,optional"`
}

func parseHCLFile(ctx context.Context, path string) (map[string]*param.Seq, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing: %w", diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding: %w", diags)
	}

	tables := make(map[string]*param.Seq, len(root.Params))
	for _, block := range root.Params {
		if _, dup := tables[block.Name]; dup {
			return nil, fmt.Errorf("parameter table %q declared twice", block.Name)
		}
		seq, err := block.toSeq()
		if err != nil {
			return nil, fmt.Errorf("parameter table %q: %w", block.Name, err)
		}
		tables[block.Name] = seq
		logger.Debug("Loaded parameter table.", "table", block.Name)
	}
	return tables, nil
}

func (b *paramsBlock) toSeq() (*param.Seq, error) {
	hasValues := exprPresent(b.Values)
	hasRows := exprPresent(b.Rows)
	if hasValues == hasRows {
		return nil, fmt.Errorf("exactly one of 'values' or 'rows' must be set")
	}

	if hasValues {
		val, diags := b.Values.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating values: %w", diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, err
		}
		rowsList, ok := goVal.([]any)
		if !ok {
			return nil, fmt.Errorf("'values' must be a list, got %T", goVal)
		}
		return param.NewSeq(rowsList)
	}

	val, diags := b.Rows.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating rows: %w", diags)
	}
	goVal, err := ctyToGo(val)
	if err != nil {
		return nil, err
	}
	rowsMap, ok := goVal.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("'rows' must be a label-keyed object, got %T", goVal)
	}
	return param.NewSeq(rowsMap)
}

// exprPresent reports whether gohcl saw the optional attribute at all. A
// missing attribute leaves the field nil; a present one always carries a
// range.
func exprPresent(expr hcl.Expression) bool {
	return expr != nil
}

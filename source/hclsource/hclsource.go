// Package hclsource reads HCL native syntax documents into dynmsg.Value trees.
//
// Attributes become object fields. A block becomes a nested object keyed by its
// type, and a block type that occurs more than once becomes an array of objects.
// Labeled blocks are rejected.
package hclsource

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/go-gum/dynmsg"
	"github.com/go-gum/dynmsg/source/ctysource"
)

// Parse parses an HCL document without any variables or functions in scope.
func Parse(src []byte, filename string) (dynmsg.Value, error) {
	return ParseWithContext(src, filename, nil)
}

// ParseWithContext parses an HCL document and evaluates its expressions using ctx.
func ParseWithContext(src []byte, filename string, ctx *hcl.EvalContext) (dynmsg.Value, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return dynmsg.Value{}, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return dynmsg.Value{}, fmt.Errorf("unexpected body type %T", file.Body)
	}

	return bodyValue(body, ctx)
}

func bodyValue(body *hclsyntax.Body, ctx *hcl.EvalContext) (dynmsg.Value, error) {
	fields := make(map[string]dynmsg.Value, len(body.Attributes))

	// source order, so the first broken attribute is the one reported
	attrs := slices.SortedFunc(maps.Values(body.Attributes), func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		name := attr.Name

		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return dynmsg.Value{}, diags
		}

		value, err := ctysource.FromCty(val)
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("%s: attribute %q: %w", attr.SrcRange, name, err)
		}

		fields[name] = value
	}

	blocks := map[string][]dynmsg.Value{}
	var order []string

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return dynmsg.Value{}, fmt.Errorf("%s: block %q: labels are not supported", block.TypeRange, block.Type)
		}

		if _, exists := fields[block.Type]; exists {
			return dynmsg.Value{}, fmt.Errorf("%s: %q is defined as attribute and block", block.TypeRange, block.Type)
		}

		value, err := bodyValue(block.Body, ctx)
		if err != nil {
			return dynmsg.Value{}, err
		}

		if !slices.Contains(order, block.Type) {
			order = append(order, block.Type)
		}

		blocks[block.Type] = append(blocks[block.Type], value)
	}

	for _, name := range order {
		values := blocks[name]
		if len(values) == 1 {
			fields[name] = values[0]
			continue
		}

		fields[name] = dynmsg.ArrayValue(values...)
	}

	return dynmsg.ObjectValue(fields), nil
}

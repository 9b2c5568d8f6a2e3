// Package ctysource converts go-cty values into dynmsg.Value trees.
package ctysource

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/go-gum/dynmsg"
)

// ErrUnknownValue is returned for values that are not known yet, e.g. the
// result of an expression referencing an undefined variable.
var ErrUnknownValue = errors.New("value is not known")

// FromCty converts val into a dynmsg.Value. Objects and maps become objects,
// lists, sets and tuples become arrays. Marks are dropped.
func FromCty(val cty.Value) (dynmsg.Value, error) {
	val, _ = val.Unmark()

	if !val.IsKnown() {
		return dynmsg.Value{}, ErrUnknownValue
	}

	if val.IsNull() {
		return dynmsg.NullValue(), nil
	}

	ty := val.Type()

	switch {
	case ty == cty.String:
		return dynmsg.StringValue(val.AsString()), nil

	case ty == cty.Bool:
		return dynmsg.BoolValue(val.True()), nil

	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInf() {
			if bf.Sign() < 0 {
				return dynmsg.NumberValue("-Inf"), nil
			}
			return dynmsg.NumberValue("+Inf"), nil
		}

		if bf.IsInt() {
			return dynmsg.NumberValue(bf.Text('f', 0)), nil
		}

		return dynmsg.NumberValue(bf.Text('g', -1)), nil

	case ty.IsObjectType() || ty.IsMapType():
		fields := make(map[string]dynmsg.Value, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()

			value, err := FromCty(v)
			if err != nil {
				return dynmsg.Value{}, fmt.Errorf("attribute %q: %w", k.AsString(), err)
			}

			fields[k.AsString()] = value
		}

		return dynmsg.ObjectValue(fields), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		items := make([]dynmsg.Value, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()

			item, err := FromCty(v)
			if err != nil {
				return dynmsg.Value{}, fmt.Errorf("element idx=%d: %w", len(items), err)
			}

			items = append(items, item)
		}

		return dynmsg.ArrayValue(items...), nil

	default:
		return dynmsg.Value{}, fmt.Errorf("unsupported cty type %s: %w", ty.FriendlyName(), dynmsg.ErrNotSupported)
	}
}

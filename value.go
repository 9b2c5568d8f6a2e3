package dynmsg

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Value is the canonical untyped value: a tagged variant over null, bool, number,
// string, array and object. Parser adapters produce a Value, a [DecodeFunc]
// consumes it through the [Source] interface.
//
// Numbers keep the literal text they were parsed from, so integer reads are exact
// and never take a detour through float64.
//
// The zero Value is null. A Value is immutable once constructed and safe to share
// between goroutines.
type Value struct {
	kind ValueKind

	boolValue bool

	// string contents or the literal of a number
	text string

	items  []Value
	fields map[string]Value
}

var _ Source = Value{}

// NullValue returns the null value.
func NullValue() Value {
	return Value{}
}

func BoolValue(b bool) Value {
	return Value{kind: ValueBool, boolValue: b}
}

// NumberValue returns a number with the given literal text, e.g. "12", "-3.5e2".
// The text is not validated here; reads report malformed literals.
func NumberValue(text string) Value {
	return Value{kind: ValueNumber, text: text}
}

func IntValue(i int64) Value {
	return NumberValue(strconv.FormatInt(i, 10))
}

func UintValue(u uint64) Value {
	return NumberValue(strconv.FormatUint(u, 10))
}

func FloatValue(f float64) Value {
	return NumberValue(strconv.FormatFloat(f, 'g', -1, 64))
}

func StringValue(s string) Value {
	return Value{kind: ValueString, text: s}
}

func ArrayValue(items ...Value) Value {
	return Value{kind: ValueArray, items: items}
}

// ObjectValue returns an object holding the given fields. The map is not copied.
func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}

	return Value{kind: ValueObject, fields: fields}
}

// FromAny converts a tree of plain go values into a Value. Supported are nil, bool,
// string, all integer and float types, []any, map[string]any, Value, []Value and
// map[string]Value.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return v, nil
	case bool:
		return BoolValue(v), nil
	case string:
		return StringValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int8:
		return IntValue(int64(v)), nil
	case int16:
		return IntValue(int64(v)), nil
	case int32:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case uint:
		return UintValue(uint64(v)), nil
	case uint8:
		return UintValue(uint64(v)), nil
	case uint16:
		return UintValue(uint64(v)), nil
	case uint32:
		return UintValue(uint64(v)), nil
	case uint64:
		return UintValue(v), nil
	case float32:
		return NumberValue(strconv.FormatFloat(float64(v), 'g', -1, 32)), nil
	case float64:
		return FloatValue(v), nil
	case []Value:
		return ArrayValue(v...), nil
	case map[string]Value:
		return ObjectValue(v), nil

	case []any:
		items := make([]Value, 0, len(v))
		for idx, item := range v {
			itemValue, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("element idx=%d: %w", idx, err)
			}

			items = append(items, itemValue)
		}

		return ArrayValue(items...), nil

	case map[string]any:
		fields := make(map[string]Value, len(v))
		for key, item := range v {
			itemValue, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}

			fields[key] = itemValue
		}

		return ObjectValue(fields), nil

	default:
		return Value{}, fmt.Errorf("convert %T: %w", v, ErrNotSupported)
	}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == ValueNull
}

// Len returns the number of elements of an array or the number of keys of an object.
func (v Value) Len() int {
	switch v.kind {
	case ValueArray:
		return len(v.items)
	case ValueObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Keys returns the keys of an object in sorted order.
func (v Value) Keys() []string {
	return slices.Sorted(maps.Keys(v.fields))
}

func (v Value) Bool() (bool, error) {
	if v.kind != ValueBool {
		return false, ErrNotSupported
	}

	return v.boolValue, nil
}

func (v Value) Int() (int64, error) {
	if v.kind != ValueNumber {
		return 0, ErrNotSupported
	}

	intValue, err := strconv.ParseInt(v.text, 10, 64)
	if errors.Is(err, strconv.ErrSyntax) {
		// not a plain integer literal, e.g. 1e3 or 2.0
		floatValue, ferr := strconv.ParseFloat(v.text, 64)
		switch {
		case ferr != nil:
			return 0, fmt.Errorf("parse number %q: %w", v.text, ferr)
		case floatValue != math.Trunc(floatValue):
			return 0, fmt.Errorf("number %q is not an integer: %w", v.text, strconv.ErrSyntax)
		case floatValue < math.MinInt64 || floatValue >= math.MaxInt64:
			return 0, fmt.Errorf("parse number %q: %w", v.text, strconv.ErrRange)
		}

		return int64(floatValue), nil
	}

	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", v.text, err)
	}

	return intValue, nil
}

func (v Value) Uint() (uint64, error) {
	if v.kind != ValueNumber {
		return 0, ErrNotSupported
	}

	if len(v.text) > 0 && v.text[0] == '-' {
		if intValue, err := v.Int(); err == nil && intValue == 0 {
			return 0, nil
		}

		return 0, fmt.Errorf("number %q is negative: %w", v.text, strconv.ErrRange)
	}

	uintValue, err := strconv.ParseUint(v.text, 10, 64)
	if errors.Is(err, strconv.ErrSyntax) {
		floatValue, ferr := strconv.ParseFloat(v.text, 64)
		switch {
		case ferr != nil:
			return 0, fmt.Errorf("parse number %q: %w", v.text, ferr)
		case floatValue != math.Trunc(floatValue):
			return 0, fmt.Errorf("number %q is not an integer: %w", v.text, strconv.ErrSyntax)
		case floatValue >= math.MaxUint64:
			return 0, fmt.Errorf("parse number %q: %w", v.text, strconv.ErrRange)
		}

		return uint64(floatValue), nil
	}

	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", v.text, err)
	}

	return uintValue, nil
}

func (v Value) Float() (float64, error) {
	if v.kind != ValueNumber {
		return 0, ErrNotSupported
	}

	floatValue, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", v.text, err)
	}

	return floatValue, nil
}

func (v Value) String() (string, error) {
	if v.kind != ValueString {
		return "", ErrNotSupported
	}

	return v.text, nil
}

func (v Value) Get(key string) (Source, error) {
	if v.kind != ValueObject {
		return nil, ErrNotSupported
	}

	child, ok := v.fields[key]
	if !ok {
		return nil, ErrNoValue
	}

	return child, nil
}

func (v Value) Iter() (iter.Seq[Source], error) {
	if v.kind != ValueArray {
		return nil, ErrNotSupported
	}

	it := func(yield func(Source) bool) {
		for _, item := range v.items {
			if !yield(item) {
				break
			}
		}
	}

	return it, nil
}

// Interface converts the Value back into plain go values: nil, bool, string,
// []any and map[string]any. Numbers are returned as float64 unless they are
// integers that fit into an int64.
func (v Value) Interface() any {
	switch v.kind {
	case ValueBool:
		return v.boolValue
	case ValueString:
		return v.text
	case ValueNumber:
		if intValue, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return intValue
		}

		floatValue, _ := strconv.ParseFloat(v.text, 64)
		return floatValue
	case ValueArray:
		items := make([]any, 0, len(v.items))
		for _, item := range v.items {
			items = append(items, item.Interface())
		}
		return items
	case ValueObject:
		fields := make(map[string]any, len(v.fields))
		for key, item := range v.fields {
			fields[key] = item.Interface()
		}
		return fields
	default:
		return nil
	}
}

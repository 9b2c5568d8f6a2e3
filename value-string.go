package dynmsg

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
)

// StringSource adapts a `string` to a Source.
// It parses primitive values using strconv.ParseInt, strconv.ParseUint,
// strconv.ParseFloat and strconv.ParseBool. string values are returned as is.
// This makes it a lenient source: "42" decodes into an int32 field.
type StringSource string

var _ SizedSource = StringSource("")

func (s StringSource) Kind() ValueKind {
	return ValueString
}

func (s StringSource) Int32() (int32, error) {
	intValue, err := strconv.ParseInt(string(s), 10, 32)
	return handleSyntaxErr(string(s), int32(intValue), err)
}

func (s StringSource) Int64() (int64, error) {
	intValue, err := strconv.ParseInt(string(s), 10, 64)
	return handleSyntaxErr(string(s), intValue, err)
}

func (s StringSource) Uint32() (uint32, error) {
	intValue, err := strconv.ParseUint(string(s), 10, 32)
	return handleSyntaxErr(string(s), uint32(intValue), err)
}

func (s StringSource) Uint64() (uint64, error) {
	intValue, err := strconv.ParseUint(string(s), 10, 64)
	return handleSyntaxErr(string(s), intValue, err)
}

func (s StringSource) Float32() (float32, error) {
	floatValue, err := strconv.ParseFloat(string(s), 32)
	return handleSyntaxErr(string(s), float32(floatValue), err)
}

func (s StringSource) Float64() (float64, error) {
	return s.Float()
}

func (s StringSource) Bool() (bool, error) {
	parsedValue, err := strconv.ParseBool(string(s))
	return handleSyntaxErr(string(s), parsedValue, err)
}

func (s StringSource) Int() (int64, error) {
	return s.Int64()
}

func (s StringSource) Uint() (uint64, error) {
	return s.Uint64()
}

func (s StringSource) Float() (float64, error) {
	parsedValue, err := strconv.ParseFloat(string(s), 64)
	return handleSyntaxErr(string(s), parsedValue, err)
}

func (s StringSource) String() (string, error) {
	return string(s), nil
}

func (s StringSource) Get(key string) (Source, error) {
	return nil, ErrNotSupported
}

func (s StringSource) Iter() (iter.Seq[Source], error) {
	return nil, ErrNotSupported
}

func handleSyntaxErr[T any](inputValue string, value T, err error) (T, error) {
	var zeroValue T
	if errors.Is(err, strconv.ErrSyntax) {
		err := fmt.Errorf("parse %q: %w", inputValue, err)
		return zeroValue, errors.Join(err, ErrNotSupported)
	}

	if err != nil {
		return zeroValue, err
	}

	return value, nil
}

// Package jsonsource parses JSON text into a dynmsg.Value using go-json.
// Numbers keep their literal text, so 64 bit integers survive unchanged.
package jsonsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/go-gum/dynmsg"
)

// ErrTrailingData is returned by Parse if the input holds more than one JSON value.
var ErrTrailingData = errors.New("trailing data after json value")

// Parse parses exactly one JSON value.
func Parse(data []byte) (dynmsg.Value, error) {
	r := NewReader(bytes.NewReader(data))

	value, err := r.Next()
	if errors.Is(err, io.EOF) {
		return dynmsg.Value{}, io.ErrUnexpectedEOF
	}

	if err != nil {
		return dynmsg.Value{}, err
	}

	if _, err := r.dec.Token(); !errors.Is(err, io.EOF) {
		return dynmsg.Value{}, ErrTrailingData
	}

	return value, nil
}

// Reader reads a stream of JSON values, e.g. newline delimited JSON.
type Reader struct {
	dec *json.Decoder
}

func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// Next returns the next value in the stream. It returns io.EOF when the stream
// is exhausted.
func (r *Reader) Next() (dynmsg.Value, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return dynmsg.Value{}, err
	}

	return r.valueOf(tok)
}

// ReadAll reads all remaining values of the stream.
func (r *Reader) ReadAll() ([]dynmsg.Value, error) {
	var values []dynmsg.Value
	for {
		value, err := r.Next()
		if errors.Is(err, io.EOF) {
			return values, nil
		}

		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}
}

func (r *Reader) valueOf(tok json.Token) (dynmsg.Value, error) {
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return r.object()
		case '[':
			return r.array()
		default:
			return dynmsg.Value{}, fmt.Errorf("unexpected delimiter %q", rune(tok))
		}

	case string:
		return dynmsg.StringValue(tok), nil

	case json.Number:
		return dynmsg.NumberValue(string(tok)), nil

	case float64:
		return dynmsg.FloatValue(tok), nil

	case bool:
		return dynmsg.BoolValue(tok), nil

	case nil:
		return dynmsg.NullValue(), nil

	default:
		return dynmsg.Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func (r *Reader) object() (dynmsg.Value, error) {
	fields := map[string]dynmsg.Value{}

	for r.dec.More() {
		keyTok, err := r.dec.Token()
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("read key: %w", err)
		}

		key, ok := keyTok.(string)
		if !ok {
			return dynmsg.Value{}, fmt.Errorf("expected object key, got %T", keyTok)
		}

		valueTok, err := r.dec.Token()
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("read value of %q: %w", key, err)
		}

		value, err := r.valueOf(valueTok)
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("value of %q: %w", key, err)
		}

		// like encoding/json, the last duplicate wins
		fields[key] = value
	}

	// closing brace
	if _, err := r.dec.Token(); err != nil {
		return dynmsg.Value{}, fmt.Errorf("end of object: %w", err)
	}

	return dynmsg.ObjectValue(fields), nil
}

func (r *Reader) array() (dynmsg.Value, error) {
	var items []dynmsg.Value

	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("read element idx=%d: %w", len(items), err)
		}

		item, err := r.valueOf(tok)
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("element idx=%d: %w", len(items), err)
		}

		items = append(items, item)
	}

	// closing bracket
	if _, err := r.dec.Token(); err != nil {
		return dynmsg.Value{}, fmt.Errorf("end of array: %w", err)
	}

	return dynmsg.ArrayValue(items...), nil
}

// Package yamlsource parses YAML documents into dynmsg.Value trees by walking
// the yaml.v3 node graph. Duplicate mapping keys are rejected with their position.
package yamlsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-gum/dynmsg"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Parse parses the first document of the input. An empty input is an error.
func Parse(data []byte) (dynmsg.Value, error) {
	value, err := NewReader(bytes.NewReader(data)).Next()
	if errors.Is(err, io.EOF) {
		return dynmsg.Value{}, io.ErrUnexpectedEOF
	}

	return value, err
}

// Reader decodes a multi-document YAML stream.
type Reader struct {
	dec *yaml.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yaml.NewDecoder(r)}
}

// Next returns the next YAML document. It returns io.EOF when the stream is exhausted.
// An empty document is null.
func (r *Reader) Next() (dynmsg.Value, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		return dynmsg.Value{}, err
	}

	return valueOf(&root)
}

// ReadAll reads all remaining documents of the stream.
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

func valueOf(n *yaml.Node) (dynmsg.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return dynmsg.NullValue(), nil
		}
		return valueOf(n.Content[0])

	case yaml.AliasNode:
		return valueOf(n.Alias)

	case yaml.MappingNode:
		fields := make(map[string]dynmsg.Value, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)

		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]

			key := k.Value
			if pos, dup := first[key]; dup {
				return dynmsg.Value{}, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}

			value, err := valueOf(v)
			if err != nil {
				return dynmsg.Value{}, err
			}

			fields[key] = value
		}

		return dynmsg.ObjectValue(fields), nil

	case yaml.SequenceNode:
		items := make([]dynmsg.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := valueOf(c)
			if err != nil {
				return dynmsg.Value{}, err
			}

			items = append(items, item)
		}

		return dynmsg.ArrayValue(items...), nil

	case yaml.ScalarNode:
		return scalarOf(n)

	default:
		return dynmsg.NullValue(), nil
	}
}

func scalarOf(n *yaml.Node) (dynmsg.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return dynmsg.NullValue(), nil

	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return dynmsg.Value{}, fmt.Errorf("line %d: invalid bool %q", n.Line, n.Value)
		}
		return dynmsg.BoolValue(b), nil

	case "!!int":
		// base prefixes like 0x and 0o are resolved here, the decoder
		// only understands decimal literals.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return dynmsg.IntValue(i), nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return dynmsg.UintValue(u), nil
		}
		return dynmsg.Value{}, fmt.Errorf("line %d: invalid int %q: %w", n.Line, n.Value, strconv.ErrRange)

	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return dynmsg.NumberValue("+Inf"), nil
		case "-.inf":
			return dynmsg.NumberValue("-Inf"), nil
		case ".nan":
			return dynmsg.NumberValue("NaN"), nil
		}

		if _, err := strconv.ParseFloat(n.Value, 64); err != nil {
			return dynmsg.Value{}, fmt.Errorf("line %d: invalid float %q: %w", n.Line, n.Value, err)
		}
		return dynmsg.NumberValue(n.Value), nil

	default:
		// !!str, !!binary, !!timestamp and custom tags are kept as text
		return dynmsg.StringValue(n.Value), nil
	}
}

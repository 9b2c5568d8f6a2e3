package dynmsg

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// A DecodeFunc builds a message of one type from an untyped value. It either
// returns a fully populated message or an error, never a partially filled one.
// A DecodeFunc is safe for concurrent use.
type DecodeFunc func(source Source) (*dynamicpb.Message, error)

// A setter decodes a single field of a message from the object source
type setter func(Source, *dynamicpb.Message) error

// A valueDecoder converts a source into a single value of a field
type valueDecoder func(Source) (protoreflect.Value, error)

// A set of message types that are currently in construction
type inConstructionTypes map[protoreflect.FullName]struct{}

// Decoder builds and caches a DecodeFunc per message type of a Registry.
type Decoder struct {
	registry *Registry

	// look fields up by their json name instead of the name in the schema
	jsonNames bool

	logger *slog.Logger

	// Cache for DecodeFuncs, indexed by protoreflect.FullName
	decoderCache sync.Map
}

func NewDecoder(registry *Registry) *Decoder {
	return &Decoder{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithJSONNames returns a Decoder that looks up fields by their json name,
// e.g. "repeatedNumber" for a field named "repeated_number".
func (d *Decoder) WithJSONNames() *Decoder {
	if d.jsonNames {
		return d
	}

	return &Decoder{
		registry:  d.registry,
		jsonNames: true,
		logger:    d.logger,
	}
}

// WithLogger returns a Decoder that logs the construction of decode plans at debug level.
func (d *Decoder) WithLogger(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Decoder{
		registry:  d.registry,
		jsonNames: d.jsonNames,
		logger:    logger,
	}
}

// Registry returns the registry the decoder resolves message types in.
func (d *Decoder) Registry() *Registry {
	return d.registry
}

// UnmarshalerOf returns the DecodeFunc of the message with the given fully qualified
// name. The function is built on first use and cached for the lifetime of the Decoder.
func (d *Decoder) UnmarshalerOf(name string) (DecodeFunc, error) {
	md, err := d.registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	return d.unmarshalerOf(inConstructionTypes{}, md)
}

// Unmarshal decodes the source into a new message of the named type.
func (d *Decoder) Unmarshal(name string, source Source) (*dynamicpb.Message, error) {
	decode, err := d.UnmarshalerOf(name)
	if err != nil {
		return nil, err
	}

	return decode(source)
}

// Decoders builds the DecodeFunc of every message in the registry, keyed by
// the fully qualified message name.
func (d *Decoder) Decoders() (map[string]DecodeFunc, error) {
	decoders := map[string]DecodeFunc{}

	for _, name := range d.registry.Messages() {
		decode, err := d.UnmarshalerOf(name)
		if err != nil {
			return nil, fmt.Errorf("build decoder for %q: %w", name, err)
		}

		decoders[name] = decode
	}

	return decoders, nil
}

// DecodersByFile builds the DecodeFunc of every message, grouped by the path of the
// file that declares it. Within a file, messages are keyed by their name relative to
// the file's package, e.g. "MessageFixture.Nested".
func (d *Decoder) DecodersByFile() (map[string]map[string]DecodeFunc, error) {
	byFile := map[string]map[string]DecodeFunc{}

	for _, path := range d.registry.Files() {
		decoders := map[string]DecodeFunc{}

		for _, name := range d.registry.MessagesOf(path) {
			md, err := d.registry.Resolve(name)
			if err != nil {
				return nil, err
			}

			decode, err := d.unmarshalerOf(inConstructionTypes{}, md)
			if err != nil {
				return nil, fmt.Errorf("build decoder for %q: %w", name, err)
			}

			pkg := string(md.ParentFile().Package())
			decoders[strings.TrimPrefix(name, pkg+".")] = decode
		}

		byFile[path] = decoders
	}

	return byFile, nil
}

// BuildDecoders builds a DecodeFunc for every message type in the registry.
func BuildDecoders(registry *Registry) (map[string]DecodeFunc, error) {
	return NewDecoder(registry).Decoders()
}

// BuildDecodersByFile is like BuildDecoders, but groups the functions by file,
// see Decoder.DecodersByFile.
func BuildDecodersByFile(registry *Registry) (map[string]map[string]DecodeFunc, error) {
	return NewDecoder(registry).DecodersByFile()
}

func (d *Decoder) unmarshalerOf(inConstruction inConstructionTypes, md protoreflect.MessageDescriptor) (DecodeFunc, error) {
	name := md.FullName()

	if cached, ok := d.decoderCache.Load(name); ok {
		return cached.(DecodeFunc), nil
	}

	if _, ok := inConstruction[name]; ok {
		// detected a cycle. return a DecodeFunc that does a cache lookup when executed.
		// the actual DecodeFunc is in the cache once the outermost construction finished.
		lazyDecode := func(source Source) (*dynamicpb.Message, error) {
			decode, err := d.unmarshalerOf(inConstructionTypes{}, md)
			if err != nil {
				return nil, err
			}

			return decode(source)
		}

		return lazyDecode, nil
	}

	inConstruction[name] = struct{}{}

	decode, err := d.makeMessageDecoder(inConstruction, md)
	if err != nil {
		return nil, err
	}

	// a concurrent construction might have won, keep its function so that
	// every caller sees the same DecodeFunc.
	actual, _ := d.decoderCache.LoadOrStore(name, decode)

	return actual.(DecodeFunc), nil
}

func (d *Decoder) makeMessageDecoder(inConstruction inConstructionTypes, md protoreflect.MessageDescriptor) (DecodeFunc, error) {
	fields := fieldsToDecode(md, d.jsonNames)

	setters := make([]setter, 0, len(fields))
	for _, field := range fields {
		setField, err := d.makeSetField(inConstruction, field)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		setters = append(setters, setField)
	}

	d.logger.Debug("Built decode plan.", "message", md.FullName(), "fields", len(fields))

	decode := func(source Source) (*dynamicpb.Message, error) {
		if kind := source.Kind(); kind != ValueObject {
			return nil, NotAnObjectError{Found: kind}
		}

		msg := dynamicpb.NewMessage(md)

		for idx, field := range fields {
			if err := setters[idx](source, msg); err != nil {
				return nil, fmt.Errorf("set field %q on %q: %w", field.Name, md.FullName(), err)
			}
		}

		return msg, nil
	}

	return decode, nil
}

func (d *Decoder) makeSetField(inConstruction inConstructionTypes, field field) (setter, error) {
	if !field.Kind.Supported() {
		// fails for every input, even if the key is absent
		err := UnsupportedFieldKindError{Kind: field.Kind, Field: field.Name}
		return func(Source, *dynamicpb.Message) error { return err }, nil
	}

	decodeValue, err := d.valueDecoderOf(inConstruction, field)
	if err != nil {
		return nil, err
	}

	if field.Desc.IsList() {
		return makeSetList(field, decodeValue), nil
	}

	return makeSetSingular(field, decodeValue), nil
}

func makeSetSingular(field field, decodeValue valueDecoder) setter {
	return func(source Source, msg *dynamicpb.Message) error {
		fieldSource, err := source.Get(field.Name)
		switch {
		case errors.Is(err, ErrNoValue):
			return MissingFieldError{Field: field.Name}
		case err != nil:
			return fmt.Errorf("lookup child %q: %w", field.Name, err)
		}

		value, err := decodeValue(fieldSource)
		if err != nil {
			return err
		}

		msg.Set(field.Desc, value)
		return nil
	}
}

func makeSetList(field field, decodeElement valueDecoder) setter {
	return func(source Source, msg *dynamicpb.Message) error {
		fieldSource, err := source.Get(field.Name)
		switch {
		case errors.Is(err, ErrNoValue):
			// an absent key is not an array, same as an explicit null
			return NotAnArrayError{Found: ValueNull}
		case err != nil:
			return fmt.Errorf("lookup child %q: %w", field.Name, err)
		}

		if kind := fieldSource.Kind(); kind != ValueArray {
			return NotAnArrayError{Found: kind}
		}

		elements, err := fieldSource.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		list := msg.NewField(field.Desc).List()

		for elementSource := range elements {
			value, err := decodeElement(elementSource)
			if err != nil {
				return fmt.Errorf("set element idx=%d: %w", list.Len(), err)
			}

			list.Append(value)
		}

		if list.Len() > 0 {
			msg.Set(field.Desc, protoreflect.ValueOfList(list))
		}

		return nil
	}
}

// valueDecoderOf dispatches over the supported field kinds.
func (d *Decoder) valueDecoderOf(inConstruction inConstructionTypes, field field) (valueDecoder, error) {
	switch field.Kind {
	case KindInt32:
		return makeDecodeInt(SizedSource.Int32, Source.Int, protoreflect.ValueOfInt32, math.MinInt32, math.MaxInt32), nil

	case KindInt64:
		return makeDecodeInt(SizedSource.Int64, Source.Int, protoreflect.ValueOfInt64, math.MinInt64, math.MaxInt64), nil

	case KindUint32:
		return makeDecodeInt(SizedSource.Uint32, Source.Uint, protoreflect.ValueOfUint32, 0, math.MaxUint32), nil

	case KindUint64:
		return makeDecodeInt(SizedSource.Uint64, Source.Uint, protoreflect.ValueOfUint64, 0, math.MaxUint64), nil

	case KindFloat:
		return decodeFloat32, nil

	case KindDouble:
		return decodeFloat64, nil

	case KindBool:
		return decodeBool, nil

	case KindString:
		return decodeString, nil

	case KindMessage:
		return d.makeDecodeMessage(inConstruction, field)

	default:
		return nil, UnsupportedFieldKindError{Kind: field.Kind, Field: field.Name}
	}
}

func (d *Decoder) makeDecodeMessage(inConstruction inConstructionTypes, field field) (valueDecoder, error) {
	name := string(field.Desc.Message().FullName())

	// nested types are resolved by name, the descriptor of the field might
	// reference a file that is not part of the registry.
	md, resolveErr := d.registry.Resolve(name)
	if resolveErr != nil {
		return func(Source) (protoreflect.Value, error) {
			return protoreflect.Value{}, resolveErr
		}, nil
	}

	decode, err := d.unmarshalerOf(inConstruction, md)
	if err != nil {
		return nil, fmt.Errorf("decoder for message %q: %w", name, err)
	}

	decodeValue := func(source Source) (protoreflect.Value, error) {
		msg, err := decode(source)
		if err != nil {
			return protoreflect.Value{}, err
		}

		return protoreflect.ValueOfMessage(msg), nil
	}

	return decodeValue, nil
}

func makeDecodeInt[T constraints.Integer, V int64 | uint64](
	parseSized func(SizedSource) (T, error),
	parse func(Source) (V, error),
	toValue func(T) protoreflect.Value,
	minValue, maxValue V,
) valueDecoder {
	return func(source Source) (protoreflect.Value, error) {
		var tZero T

		if sizedSource, ok := source.(SizedSource); ok {
			parsedValue, err := parseSized(sizedSource)
			if err != nil {
				return protoreflect.Value{}, readError(source, ValueNumber, fmt.Sprintf("%T", tZero), err)
			}

			return toValue(parsedValue), nil
		}

		// no sized source, read 64 bit and narrow
		wideValue, err := parse(source)
		if err != nil {
			return protoreflect.Value{}, readError(source, ValueNumber, fmt.Sprintf("%T", tZero), err)
		}

		if wideValue < minValue || wideValue > maxValue {
			return protoreflect.Value{}, fmt.Errorf("invalid %T value %d: %w", tZero, wideValue, strconv.ErrRange)
		}

		return toValue(T(wideValue)), nil
	}
}

func decodeFloat32(source Source) (protoreflect.Value, error) {
	if sizedSource, ok := source.(SizedSource); ok {
		floatValue, err := sizedSource.Float32()
		if err != nil {
			return protoreflect.Value{}, readError(source, ValueNumber, "float32", err)
		}

		return protoreflect.ValueOfFloat32(floatValue), nil
	}

	floatValue, err := source.Float()
	if err != nil {
		return protoreflect.Value{}, readError(source, ValueNumber, "float32", err)
	}

	if !math.IsInf(floatValue, 0) && math.Abs(floatValue) > math.MaxFloat32 {
		return protoreflect.Value{}, fmt.Errorf("invalid float32 value %g: %w", floatValue, strconv.ErrRange)
	}

	return protoreflect.ValueOfFloat32(float32(floatValue)), nil
}

func decodeFloat64(source Source) (protoreflect.Value, error) {
	floatValue, err := source.Float()
	if err != nil {
		return protoreflect.Value{}, readError(source, ValueNumber, "float64", err)
	}

	return protoreflect.ValueOfFloat64(floatValue), nil
}

func decodeBool(source Source) (protoreflect.Value, error) {
	boolValue, err := source.Bool()
	if err != nil {
		return protoreflect.Value{}, readError(source, ValueBool, "bool", err)
	}

	return protoreflect.ValueOfBool(boolValue), nil
}

func decodeString(source Source) (protoreflect.Value, error) {
	stringValue, err := source.String()
	if err != nil {
		return protoreflect.Value{}, readError(source, ValueString, "string", err)
	}

	return protoreflect.ValueOfString(stringValue), nil
}

// readError turns ErrNotSupported into a TypeMismatchError. Other errors, e.g. range
// errors, are kept.
func readError(source Source, expected ValueKind, typeName string, err error) error {
	if errors.Is(err, ErrNotSupported) {
		return TypeMismatchError{Expected: expected, Found: source.Kind()}
	}

	return fmt.Errorf("get %s value: %w", typeName, err)
}

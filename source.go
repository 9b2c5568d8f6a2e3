package dynmsg

import "iter"

// ValueKind is the shape of an untyped value as produced by a parser.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueObject:
		return "object"
	default:
		return "unknown"
	}
}

// Source represents the abstract interface to an untyped, already parsed value tree.
// It is what a [DecodeFunc] consumes.
//
// A [Source] provides methods to interpret the current value in different forms:
//   - **Primitive types**: [Source.Bool], [Source.Int], [Source.Uint], [Source.Float]
//     and [Source.String] read scalar values.
//   - **Objects**: [Source.Get] retrieves the child value stored under a key.
//   - **Arrays**: [Source.Iter] iterates over the elements in order.
//
// If reading the [Source] as a particular type isn't possible, the method must return
// [ErrNotSupported] as the error. The decoder turns this into a [TypeMismatchError]
// using the value reported by [Source.Kind].
//
// Two implementations ship with this package: [Value], the canonical tagged variant
// that parser adapters produce, and [StringSource], which parses its primitive values
// from text using strconv. [EmptySource] can be embedded as a base for custom
// implementations.
type Source interface {
	// Kind reports the shape of the current value.
	Kind() ValueKind

	// Bool returns the current value as a bool.
	// Returns error ErrNotSupported if the value can not be represented as such.
	Bool() (bool, error)

	// Int returns the current value as an int64.
	// Returns error ErrNotSupported if the value can not be represented as such.
	Int() (int64, error)

	// Uint returns the current value as an uint64.
	// Returns error ErrNotSupported if the value can not be represented as such.
	Uint() (uint64, error)

	// Float returns the current value as a float64.
	// Returns error ErrNotSupported if the value can not be represented as such.
	Float() (float64, error)

	// String returns the current value as a string.
	// Returns error ErrNotSupported if the value can not be represented as such.
	String() (string, error)

	// Get returns a child value of this [Source] if it exists.
	// Returns error [ErrNotSupported] if the current [Source] is not an object.
	// If the [Source] is an object, but just does not hold the requested key,
	// [ErrNoValue] must be returned.
	Get(key string) (Source, error)

	// Iter interprets the [Source] as an array and iterates over the
	// elements within.
	// Returns [ErrNotSupported] if the [Source] is not an array.
	Iter() (iter.Seq[Source], error)
}

// SizedSource extends the [Source] interface by adding methods for extracting
// values of a specific bit size. When a [Source] implements [SizedSource], the
// decoder prefers these methods over the generic 64 bit reads, which lets a source
// report range errors in its own terms.
type SizedSource interface {
	Source

	Int32() (int32, error)
	Int64() (int64, error)

	Uint32() (uint32, error)
	Uint64() (uint64, error)

	Float32() (float32, error)
	Float64() (float64, error)
}

package dynmsg

import "iter"

// EmptySource is a Source that returns ErrNotSupported for all conversion functions.
// It is useful as an embedded base for your own custom Source implementation.
// Its Kind is ValueNull.
type EmptySource struct{}

var _ Source = EmptySource{}

func (i EmptySource) Kind() ValueKind {
	return ValueNull
}

func (i EmptySource) Bool() (bool, error) {
	return false, ErrNotSupported
}

func (i EmptySource) Int() (int64, error) {
	return 0, ErrNotSupported
}

func (i EmptySource) Uint() (uint64, error) {
	return 0, ErrNotSupported
}

func (i EmptySource) Float() (float64, error) {
	return 0, ErrNotSupported
}

func (i EmptySource) String() (string, error) {
	return "", ErrNotSupported
}

func (i EmptySource) Get(key string) (Source, error) {
	return nil, ErrNotSupported
}

func (i EmptySource) Iter() (iter.Seq[Source], error) {
	return nil, ErrNotSupported
}

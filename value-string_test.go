package dynmsg

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringSource(t *testing.T) {
	parseTest(t, StringSource.Int32, stringSourceTestValues[int32]{
		MinIn:        "-2147483648",
		MinOut:       -2147483648,
		MaxIn:        "2147483647",
		MaxOut:       2147483647,
		OutOfRange:   []string{"-2147483649", "2147483648"},
		NotSupported: []string{"foobar", "", "1e4"},
	})

	parseTest(t, StringSource.Int64, stringSourceTestValues[int64]{
		MinIn:        "-9223372036854775808",
		MinOut:       -9223372036854775808,
		MaxIn:        "9223372036854775807",
		MaxOut:       9223372036854775807,
		OutOfRange:   []string{"-9223372036854775809", "9223372036854775808"},
		NotSupported: []string{"foobar", "", "1e4"},
	})

	parseTest(t, StringSource.Uint32, stringSourceTestValues[uint32]{
		MinIn:        "0",
		MinOut:       0,
		MaxIn:        "4294967295",
		MaxOut:       4294967295,
		OutOfRange:   []string{"4294967296"},
		NotSupported: []string{"foobar", "", "1e4", "-1"},
	})

	parseTest(t, StringSource.Uint64, stringSourceTestValues[uint64]{
		MinIn:        "0",
		MinOut:       0,
		MaxIn:        strconv.FormatUint(math.MaxUint64, 10),
		MaxOut:       math.MaxUint64,
		OutOfRange:   []string{"18446744073709551616"},
		NotSupported: []string{"foobar", "", "1e4", "-1"},
	})

	parseTest(t, StringSource.Bool, stringSourceTestValues[bool]{
		MinIn:        "true",
		MinOut:       true,
		MaxIn:        "false",
		MaxOut:       false,
		NotSupported: []string{"foobar", "", "1e4", "-1"},
	})

	parseTest(t, StringSource.Float64, stringSourceTestValues[float64]{
		MinIn:        "-1234.5",
		MinOut:       -1234.5,
		MaxIn:        "1235.5",
		MaxOut:       1235.5,
		OutOfRange:   []string{"1e400"},
		Valid:        []string{"1e4", "-1", "0.0024"},
		NotSupported: []string{"foobar", ""},
	})

	parseTest(t, StringSource.Float32, stringSourceTestValues[float32]{
		MinIn:        "-0.5",
		MinOut:       -0.5,
		MaxIn:        "3.4028235e38",
		MaxOut:       math.MaxFloat32,
		OutOfRange:   []string{"1e39"},
		NotSupported: []string{"foobar", ""},
	})
}

func TestStringSourceIsNoContainer(t *testing.T) {
	source := StringSource("foo")
	require.Equal(t, ValueString, source.Kind())

	_, err := source.Get("foo")
	require.ErrorIs(t, err, ErrNotSupported)

	_, err = source.Iter()
	require.ErrorIs(t, err, ErrNotSupported)
}

type stringSourceTestValues[T any] struct {
	MinIn  string
	MinOut T

	MaxIn  string
	MaxOut T

	OutOfRange   []string
	NotSupported []string
	Valid        []string
}

func parseTest[T any](t *testing.T, parse func(StringSource) (T, error), v stringSourceTestValues[T]) {
	var tZero T

	t.Run(fmt.Sprintf("parse to %T", tZero), func(t *testing.T) {
		actual, err := parse(StringSource(v.MinIn))
		require.NoError(t, err)
		require.Equal(t, actual, v.MinOut)

		actual, err = parse(StringSource(v.MaxIn))
		require.NoError(t, err)
		require.Equal(t, actual, v.MaxOut)

		for _, value := range v.OutOfRange {
			actual, err = parse(StringSource(value))
			require.ErrorIs(t, err, strconv.ErrRange)
			require.Equal(t, actual, tZero)
		}

		for _, value := range v.NotSupported {
			actual, err = parse(StringSource(value))
			require.ErrorIs(t, err, ErrNotSupported)
			require.Equal(t, actual, tZero)
		}

		for _, value := range v.Valid {
			_, err = parse(StringSource(value))
			require.NoError(t, err)
		}
	})
}

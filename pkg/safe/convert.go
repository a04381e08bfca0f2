// Package safe converts between integer widths with range checks, so amounts never wrap.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a value does not fit the target type.
var ErrOutOfRange = errors.New("value out of range")

// Integer is any built-in integer type or a type defined on one.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint32 converts v to uint32.
func Uint32[T Integer](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, outOfRange(v, "uint32")
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if v < 0 {
		return 0, outOfRange(v, "uint64")
	}
	return uint64(v), nil
}

// Int64 converts v to int64, rejecting unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	if v > 0 && uint64(v) > math.MaxInt64 {
		return 0, outOfRange(v, "int64")
	}
	return int64(v), nil
}

func outOfRange[T Integer](v T, target string) error {
	return fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, target)
}

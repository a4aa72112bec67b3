package utils

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Normalize converts a driver value into the canonical form used for keys and
// comparisons. Integer types collapse to int64, float32 widens to float64 and
// byte slices become strings, so values read through different drivers compare
// equal when they represent the same thing. nil stays nil.
func Normalize(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return uintToCanonical(uint64(v))
	case uint64:
		return uintToCanonical(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	default:
		return v
	}
}

// uint64 values beyond the int64 range keep their unsigned type.
func uintToCanonical(v uint64) any {
	if v > 1<<63-1 {
		return v
	}
	return int64(v)
}

// IsHashable reports whether val can be used as a map key without panicking.
func IsHashable(val any) bool {
	if val == nil {
		return true
	}
	return reflect.TypeOf(val).Comparable()
}

// Equal compares two normalized values. Two nils are equal; nil never equals
// a non-nil value. Times compare by instant, uncomparable values by deep equality.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if IsHashable(a) && IsHashable(b) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return "<null>"
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v)
	}
}

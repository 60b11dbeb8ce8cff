package common

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](lo T, value T, hi T) bool {
	return lo <= value && value <= hi
}

// Clamp limits value to [lo, hi].
func Clamp[T number](lo T, value T, hi T) T {
	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

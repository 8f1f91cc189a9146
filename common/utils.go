package common

// Coalesce returns the first value that differs from the zero value of T.
// Used to fold optional staging fields over their defaults, e.g. sampler
// filter modes and texture formats.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

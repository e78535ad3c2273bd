package utils

// Ptr returns a pointer to v, handy for the optional card fields.
func Ptr[T any](v T) *T {
	return &v
}

package util

// Ptr returns a pointer to v. Used for the nil-means-default config
// fields, where a literal cannot be addressed directly.
func Ptr[T any](v T) *T {
	return &v
}

package kitutils

// Map returns a new slice holding f applied to each element of s, in order.
func Map[T, R any](s []T, f func(T) R) []R {
	out := make([]R, 0, len(s))
	for _, v := range s {
		out = append(out, f(v))
	}

	return out
}

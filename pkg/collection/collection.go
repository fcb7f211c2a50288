// Package collection has generic helpers for slices.
//
//	names := collection.Map(users, func(u models.User) string { return u.Username })
package collection

// Map transforms each element of s with fn. The result is never nil.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

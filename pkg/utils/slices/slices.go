package slices

// Map generates a new slice with converted values.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	mapped := make([]R, len(sli))
	for nth, v := range sli {
		mapped[nth] = mapper(v)
	}
	return mapped
}

// First finds the first element the predicator matches.
//
// When no element matches, it returns (zero-value, false).
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

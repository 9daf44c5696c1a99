package cmp

// true when a and b have the same elements in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// true when a and b have equivalent elements, ignoring order.
//
// Each element in a is matched with at most one element in b.
func SliceContentEqWith[S, T any](a []S, b []T, equiv func(S, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
A:
	for _, va := range a {
		for nth, vb := range b {
			if used[nth] {
				continue
			}
			if equiv(va, vb) {
				used[nth] = true
				continue A
			}
		}
		return false
	}
	return true
}

func SliceContentEq[T comparable](a, b []T) bool {
	return SliceContentEqWith(a, b, func(x, y T) bool { return x == y })
}

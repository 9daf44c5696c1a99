package cmp_test

import (
	"fmt"
	"testing"

	"github.com/aiod/metacat/pkg/utils/cmp"
)

func TestSliceEq(t *testing.T) {
	t.Run("it detects two slices are equal", func(t *testing.T) {
		a := []string{"a", "b", "c"}
		b := []string{"a", "b", "c"}
		if !cmp.SliceEq(a, b) {
			t.Error("two slices are not equal, unexpectedly.")
		}
		if !cmp.SliceEq(b, a) {
			t.Error("two slices are not equal, unexpectedly.")
		}
	})
	t.Run("it detects two slices with different content are not equal", func(t *testing.T) {
		a := []string{"a", "b", "c"}
		b := []string{"a", "b", "d"}
		if cmp.SliceEq(a, b) {
			t.Error("two slices are equal, unexpectedly.")
		}
	})
	t.Run("it detects two slices with different length are not equal", func(t *testing.T) {
		a := []string{"a", "b", "c"}
		b := []string{"a", "b"}
		if cmp.SliceEq(a, b) {
			t.Error("two slices are equal, unexpectedly.")
		}
		if cmp.SliceEq(b, a) {
			t.Error("two slices are equal, unexpectedly.")
		}
	})
	t.Run("it detects ordering differences", func(t *testing.T) {
		a := []string{"a", "b", "c"}
		b := []string{"c", "a", "b"}
		if cmp.SliceEq(a, b) {
			t.Error("two slices are equal, unexpectedly.")
		}
	})
}

func TestSliceEqWith(t *testing.T) {
	equalInLen := func(a string, b int) bool { return len(a) == b }

	t.Run("it compares two slices in some comparing rule", func(t *testing.T) {
		a := []string{"foobar", "", "baz"}
		b := []int{6, 0, 3}
		if !cmp.SliceEqWith(a, b, equalInLen) {
			t.Error("two slices are not equal, unexpectedly.")
		}
	})
	t.Run("it detects two slices with different content (after mapped) are not equal", func(t *testing.T) {
		a := []string{"foobar", "", "baz"}
		b := []int{6, 1, 3}
		if cmp.SliceEqWith(a, b, equalInLen) {
			t.Error("two slices are equal, unexpectedly.")
		}
	})
	t.Run("it detects two slices with different length are not equal", func(t *testing.T) {
		a := []string{"foobar", "", "baz"}
		b := []int{6, 1}
		if cmp.SliceEqWith(a, b, equalInLen) {
			t.Error("two slices are equal, unexpectedly.")
		}
	})
}

func TestSliceContentEq(t *testing.T) {
	type when struct {
		a []string
		b []string
	}
	type testcase struct {
		when     when
		expected bool
	}
	for _, testcase := range []testcase{
		{
			when: when{
				a: []string{"a", "b", "c"},
				b: []string{"a", "b", "c"},
			},
			expected: true,
		},
		{
			when: when{
				a: []string{"a", "b", "c"},
				b: []string{"a", "b", "d"},
			},
			expected: false,
		},
		{
			when: when{
				a: []string{"a", "b", "c"},
				b: []string{"c", "a", "b"},
			},
			expected: true,
		},
		{
			when: when{
				a: []string{"a", "b", "c"},
				b: []string{"a", "b", "c", "c"},
			},
			expected: false,
		},
		{
			when: when{
				a: []string{"c", "a", "b", "c"},
				b: []string{"a", "b", "c", "c"},
			},
			expected: true,
		},
	} {
		a := testcase.when.a
		b := testcase.when.b
		expected := testcase.expected
		t.Run(
			fmt.Sprintf(
				"SliceContentEq(%#v, %#v) should be %v, commutative",
				a, b, expected,
			),
			func(t *testing.T) {
				if cmp.SliceContentEq(a, b) != expected {
					t.Errorf("SliceContentEq(%#v, %#v) != %v", a, b, expected)
				}
				if cmp.SliceContentEq(b, a) != expected {
					t.Errorf("SliceContentEq(%#v, %#v) != %v", b, a, expected)
				}
			},
		)
	}
}

func TestSliceContentEqWith(t *testing.T) {
	type T struct {
		header  string
		trailer string
	}
	equiv := func(a, b T) bool {
		return a.header+a.trailer == b.header+b.trailer
	}

	type when struct{ a, b []T }

	for name, testcase := range map[string]struct {
		when when
		then bool
	}{
		"when two slices are equal, it returns true": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
			},
			then: true,
		},
		"when two slices are equal except ordering, it returns true": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"ij", "kl"}, {"ab", "cd"}, {"ef", "gh"}},
			},
			then: true,
		},
		"when two slices are equivarent, it returns true": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"i", "jkl"}, {"abc", "d"}, {"", "efgh"}},
			},
			then: true,
		},
		"when two slices are different in length, it returns false": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"ab", "cd"}, {"ef", "gh"}},
			},
			then: false,
		},
		"when two slices are different in element, it returns false": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"ab", "cd"}, {"ef", "gh"}, {"mn", "op"}},
			},
			then: false,
		},
		"when two slices are equivarent and have duplicated value, it returns true": {
			when: when{
				a: []T{{"ab", "cd"}, {"ef", "gh"}, {"ef", "gh"}, {"ij", "kl"}},
				b: []T{{"ab", "cd"}, {"e", "fgh"}, {"ef", "gh"}, {"ij", "kl"}},
			},
			then: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := cmp.SliceContentEqWith(
				testcase.when.a, testcase.when.b, equiv,
			); actual != testcase.then {
				t.Errorf(
					"wrong result: SliceContentEqWith(a = %#v, b = %#v, equiv) -> %v",
					testcase.when.a, testcase.when.b, actual,
				)
			}
			if actual := cmp.SliceContentEqWith(
				testcase.when.b, testcase.when.a, equiv,
			); actual != testcase.then {
				t.Errorf(
					"wrong result: SliceContentEqWith(b = %#v, a = %#v, equiv) -> %v",
					testcase.when.b, testcase.when.a, actual,
				)
			}
		})
	}
}

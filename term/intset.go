package term

import "sort"

// IntSet is an immutable, sorted set of non-negative indices. It backs both
// free_vars and free_ivars analyses: small, append-only, and cheap to
// union or shift without ever mutating a shared instance.
type IntSet struct {
	vals []int32 // sorted, unique
}

// EmptyIntSet is the canonical empty set; safe to share across nodes.
var EmptyIntSet = IntSet{}

// NewIntSet builds an IntSet from arbitrary (possibly unsorted, possibly
// duplicated) indices.
func NewIntSet(xs ...int) IntSet {
	if len(xs) == 0 {
		return EmptyIntSet
	}
	vals := make([]int32, len(xs))
	for i, x := range xs {
		vals[i] = int32(x)
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	out := vals[:0:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return IntSet{vals: out}
}

// Len reports the number of elements.
func (s IntSet) Len() int { return len(s.vals) }

// Contains reports whether x is a member.
func (s IntSet) Contains(x int) bool {
	i := sort.Search(len(s.vals), func(i int) bool { return int(s.vals[i]) >= x })
	return i < len(s.vals) && int(s.vals[i]) == x
}

// Slice returns the sorted elements as a fresh []int.
func (s IntSet) Slice() []int {
	out := make([]int, len(s.vals))
	for i, v := range s.vals {
		out[i] = int(v)
	}
	return out
}

// Max returns the largest element and true, or (0, false) if empty.
func (s IntSet) Max() (int, bool) {
	if len(s.vals) == 0 {
		return 0, false
	}
	return int(s.vals[len(s.vals)-1]), true
}

// Union returns the sorted union of s and t.
func Union(s, t IntSet) IntSet {
	if len(s.vals) == 0 {
		return t
	}
	if len(t.vals) == 0 {
		return s
	}
	out := make([]int32, 0, len(s.vals)+len(t.vals))
	i, j := 0, 0
	for i < len(s.vals) && j < len(t.vals) {
		switch {
		case s.vals[i] < t.vals[j]:
			out = append(out, s.vals[i])
			i++
		case s.vals[i] > t.vals[j]:
			out = append(out, t.vals[j])
			j++
		default:
			out = append(out, s.vals[i])
			i++
			j++
		}
	}
	out = append(out, s.vals[i:]...)
	out = append(out, t.vals[j:]...)
	return IntSet{vals: out}
}

// ShiftedDownOpen returns {v-1 | v in s, v >= 1}: the free_vars rule for
// crossing a binder. Indices equal to 0 (bound by the crossed binder) are
// dropped.
func ShiftedDownOpen(s IntSet) IntSet {
	if len(s.vals) == 0 {
		return s
	}
	out := make([]int32, 0, len(s.vals))
	for _, v := range s.vals {
		if v >= 1 {
			out = append(out, v-1)
		}
	}
	return IntSet{vals: out}
}

// ShiftedBy returns {v+delta | v in s}, delta may be negative provided no
// result would go below zero (callers must pre-check via Max/Contains).
func ShiftedBy(s IntSet, delta int) IntSet {
	if len(s.vals) == 0 {
		return s
	}
	out := make([]int32, len(s.vals))
	for i, v := range s.vals {
		out[i] = v + int32(delta)
	}
	return IntSet{vals: out}
}

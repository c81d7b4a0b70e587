package session

import "slices"

// Grade reports whether selected and correct hold exactly the same option
// indices. Order and duplicates are ignored and neither slice is modified.
func Grade(selected, correct []int) bool {
	a := normalize(selected)
	b := normalize(correct)
	return slices.Equal(a, b)
}

// normalize returns a sorted, de-duplicated copy of idx.
func normalize(idx []int) []int {
	out := slices.Clone(idx)
	slices.Sort(out)
	return slices.Compact(out)
}

package engine

import "slices"

func mergeSort(r *Run) bool {
	return mergeRange(r, 0, len(r.values)-1)
}

func mergeRange(r *Run, lo, hi int) bool {
	if lo >= hi {
		return true
	}
	mid := (lo + hi) / 2
	if !mergeRange(r, lo, mid) {
		return false
	}
	if !mergeRange(r, mid+1, hi) {
		return false
	}
	return merge(r, lo, mid, hi)
}

// merge combines the sorted runs [lo, mid] and [mid+1, hi]. Ties take the
// left element. Writes from the right buffer also count as a movement.
func merge(r *Run, lo, mid, hi int) bool {
	a := r.values
	left := slices.Clone(a[lo : mid+1])
	right := slices.Clone(a[mid+1 : hi+1])
	r.counters.RecordAccess(len(left) + len(right))

	i, j, k := 0, 0, lo

	// On abort the unconsumed tails fill a[k..hi] exactly, so the array stays
	// a permutation of its input.
	abort := func() bool {
		n := copy(a[k:hi+1], left[i:])
		copy(a[k+n:hi+1], right[j:])
		return false
	}

	for i < len(left) && j < len(right) {
		r.counters.RecordCompare()
		if !r.step(Writing{Index: k}) {
			return abort()
		}
		if left[i] <= right[j] {
			a[k] = left[i]
			i++
			r.counters.RecordAccess(1)
		} else {
			a[k] = right[j]
			j++
			r.counters.RecordAccess(1)
			r.counters.RecordMove()
		}
		k++
		if !r.step(Writing{Index: k - 1}) {
			return abort()
		}
	}

	for i < len(left) {
		a[k] = left[i]
		i++
		k++
		r.counters.RecordAccess(1)
		if !r.step(Writing{Index: k - 1}) {
			return abort()
		}
	}
	for j < len(right) {
		a[k] = right[j]
		j++
		k++
		r.counters.RecordAccess(1)
		if !r.step(Writing{Index: k - 1}) {
			return abort()
		}
	}
	return true
}

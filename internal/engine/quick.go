package engine

// quickSort uses Lomuto partitioning with the last element as pivot. The
// pivot is never randomized so runs replay identically.
func quickSort(r *Run) bool {
	return quickRange(r, 0, len(r.values)-1)
}

func quickRange(r *Run, lo, hi int) bool {
	if lo >= hi {
		return true
	}
	p, ok := partition(r, lo, hi)
	if !ok {
		return false
	}
	if !quickRange(r, lo, p-1) {
		return false
	}
	return quickRange(r, p+1, hi)
}

func partition(r *Run, lo, hi int) (int, bool) {
	a := r.values
	pivot := a[hi]
	r.counters.RecordAccess(1)

	i := lo - 1
	for j := lo; j < hi; j++ {
		r.counters.RecordCompare()
		if !r.step(Comparing{I: j, J: hi}) {
			return hi, false
		}
		if a[j] < pivot {
			i++
			r.swap(i, j)
			if !r.step(Swapping{I: i, J: j}) {
				return hi, false
			}
		}
	}

	r.swap(i+1, hi)
	if !r.step(Swapping{I: i + 1, J: hi}) {
		return i + 1, false
	}
	return i + 1, true
}

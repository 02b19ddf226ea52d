package engine

// insertionSort holds a[i] out as the key and shifts larger elements right.
// Each shift is tallied as a swap so the counters show the movement.
func insertionSort(r *Run) bool {
	a := r.values
	n := len(a)
	for i := 1; i < n; i++ {
		key := a[i]
		r.counters.RecordAccess(1)

		// a[j+1] is the open slot throughout the inner loop.
		j := i - 1
		for j >= 0 {
			r.counters.RecordCompare()
			if !r.step(Comparing{I: j, J: j + 1}) {
				a[j+1] = key
				return false
			}
			if a[j] <= key {
				break
			}
			a[j+1] = a[j]
			r.counters.RecordSwap()
			j--
		}

		a[j+1] = key
		r.counters.RecordAccess(1)
		if !r.step(SortedThrough{Index: i}) {
			return false
		}
	}
	return true
}

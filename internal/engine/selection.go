package engine

func selectionSort(r *Run) bool {
	a := r.values
	n := len(a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.counters.RecordCompare()
			if !r.step(Comparing{I: minIdx, J: j}) {
				return false
			}
			if a[j] < a[minIdx] {
				minIdx = j
			}
		}

		if minIdx == i {
			r.emit(SortedThrough{Index: i})
			continue
		}
		r.swap(i, minIdx)
		if !r.step(swapOverSorted(i, minIdx, 0, i)) {
			return false
		}
	}
	return true
}

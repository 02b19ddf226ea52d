package engine

// bubbleSort compares adjacent pairs and swaps them when out of order. After
// pass i the tail [n-i-1, n) holds its final values.
func bubbleSort(r *Run) bool {
	a := r.values
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			r.counters.RecordCompare()
			if !r.step(Comparing{I: j, J: j + 1}) {
				return false
			}
			if a[j] > a[j+1] {
				r.swap(j, j+1)
				if !r.step(Swapping{I: j, J: j + 1}) {
					return false
				}
			}
		}
		r.emit(SortedFrom{Index: n - i - 1})
	}
	return true
}

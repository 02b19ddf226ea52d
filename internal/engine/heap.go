package engine

func heapSort(r *Run) bool {
	n := len(r.values)
	for i := n/2 - 1; i >= 0; i-- {
		if !siftDown(r, n, i) {
			return false
		}
	}
	for i := n - 1; i > 0; i-- {
		r.swap(0, i)
		if !r.step(swapOverSorted(0, i, i, n-1)) {
			return false
		}
		if !siftDown(r, i, 0) {
			return false
		}
	}
	return true
}

// siftDown restores the max-heap property below i within the first size
// elements. Child comparisons are counted but not shown.
func siftDown(r *Run, size, i int) bool {
	a := r.values
	largest := i
	left, right := 2*i+1, 2*i+2
	if left < size {
		r.counters.RecordCompare()
		if a[left] > a[largest] {
			largest = left
		}
	}
	if right < size {
		r.counters.RecordCompare()
		if a[right] > a[largest] {
			largest = right
		}
	}
	if largest == i {
		return true
	}

	r.swap(i, largest)
	if !r.step(Swapping{I: i, J: largest}) {
		return false
	}
	return siftDown(r, size, largest)
}

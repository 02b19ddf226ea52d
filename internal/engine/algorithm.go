package engine

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the sorting procedures.
type Algorithm uint8

const (
	Bubble Algorithm = iota
	Selection
	Insertion
	Merge
	Quick
	Heap

	numAlgorithms
)

var algorithmNames = [numAlgorithms]string{
	Bubble:    "bubble",
	Selection: "selection",
	Insertion: "insertion",
	Merge:     "merge",
	Quick:     "quick",
	Heap:      "heap",
}

var procedures = [numAlgorithms]func(*Run) bool{
	Bubble:    bubbleSort,
	Selection: selectionSort,
	Insertion: insertionSort,
	Merge:     mergeSort,
	Quick:     quickSort,
	Heap:      heapSort,
}

// Algorithms lists every algorithm in menu order.
func Algorithms() []Algorithm {
	all := make([]Algorithm, numAlgorithms)
	for i := range all {
		all[i] = Algorithm(i)
	}
	return all
}

func (a Algorithm) Valid() bool { return a < numAlgorithms }

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// Next cycles forward through the menu order.
func (a Algorithm) Next() Algorithm { return (a + 1) % numAlgorithms }

// Prev cycles backward through the menu order.
func (a Algorithm) Prev() Algorithm { return (a + numAlgorithms - 1) % numAlgorithms }

// ParseAlgorithm accepts the short name ("quick") or the name with a "sort"
// suffix ("quicksort", "quick_sort"), case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "sort")
	name = strings.TrimRight(name, " _-")
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Execute runs algo over the run's array and reports whether it reached the
// sorted terminal state. A stop requested before the first step leaves the
// array and counters untouched. A stop is not an error.
func Execute(r *Run, algo Algorithm) (bool, error) {
	if !algo.Valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(algo))
	}
	if r.Stopped() {
		return false, nil
	}

	if !procedures[algo](r) {
		return false, nil
	}
	r.emit(SortedFrom{Index: 0})
	return true, nil
}

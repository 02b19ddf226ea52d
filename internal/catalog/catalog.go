// Package catalog holds the reference material shown next to a run:
// complexity facts per algorithm and source snippets in several languages.
package catalog

import (
	"errors"
	"fmt"

	"github.com/san-kum/sortviz/internal/engine"
)

var ErrUnknownLanguage = errors.New("catalog: unknown language")

type Info struct {
	Algorithm engine.Algorithm `json:"algorithm" yaml:"algorithm"`
	Title     string           `json:"title" yaml:"title"`
	Time      string           `json:"time" yaml:"time"`
	Space     string           `json:"space" yaml:"space"`
	Stable    bool             `json:"stable" yaml:"stable"`
	Summary   string           `json:"summary" yaml:"summary"`
}

func (i Info) StableLabel() string {
	if i.Stable {
		return "Yes"
	}
	return "No"
}

var infos = map[engine.Algorithm]Info{
	engine.Bubble: {
		Title:   "Bubble Sort",
		Time:    "O(n²)",
		Space:   "O(1)",
		Stable:  true,
		Summary: "Repeatedly steps through the list, compares adjacent elements and swaps if out of order.",
	},
	engine.Selection: {
		Title:   "Selection Sort",
		Time:    "O(n²)",
		Space:   "O(1)",
		Summary: "Selects the minimum of the unsorted part and swaps it to its correct position.",
	},
	engine.Insertion: {
		Title:   "Insertion Sort",
		Time:    "O(n²)",
		Space:   "O(1)",
		Stable:  true,
		Summary: "Builds the sorted prefix by inserting each element into its correct place.",
	},
	engine.Merge: {
		Title:   "Merge Sort",
		Time:    "O(n log n)",
		Space:   "O(n)",
		Stable:  true,
		Summary: "Divides the array and merges the sorted halves.",
	},
	engine.Quick: {
		Title:   "Quick Sort",
		Time:    "O(n log n)",
		Space:   "O(log n)",
		Summary: "Divide and conquer using partitioning around a pivot.",
	},
	engine.Heap: {
		Title:   "Heap Sort",
		Time:    "O(n log n)",
		Space:   "O(1)",
		Summary: "Builds a max-heap and repeatedly moves the maximum to the end.",
	},
}

// Lookup returns the facts for algo. Unknown algorithms get bubble sort's
// entry.
func Lookup(algo engine.Algorithm) Info {
	info, ok := infos[algo]
	if !ok {
		algo = engine.Bubble
		info = infos[algo]
	}
	info.Algorithm = algo
	return info
}

func All() []Info {
	out := make([]Info, 0, len(infos))
	for _, a := range engine.Algorithms() {
		out = append(out, Lookup(a))
	}
	return out
}

func mustKnow(algo engine.Algorithm) error {
	if _, ok := infos[algo]; !ok {
		return fmt.Errorf("%w: %d", engine.ErrUnknownAlgorithm, uint8(algo))
	}
	return nil
}

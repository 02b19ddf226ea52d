package viz

import (
	"slices"
	"sync"

	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
)

// Frame is the latest picture of a run.
type Frame struct {
	Values    []int
	Highlight engine.Highlight
	Stats     engine.Stats
	Seq       uint64
}

// Bridge hands frames from the run goroutine to the UI. The run side only
// overwrites the latest frame, so a slow terminal drops frames instead of
// slowing the sort.
type Bridge struct {
	mu       sync.Mutex
	frame    Frame
	finished *controller.Result
}

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Render(values []int, h engine.Highlight) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame.Values = values
	b.frame.Highlight = h
	b.frame.Seq++
}

func (b *Bridge) ReportStats(s engine.Stats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame.Stats = s
}

// Finish records a run result for the next Poll.
func (b *Bridge) Finish(res controller.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finished = &res
}

// Show replaces the frame outside of a run, after regeneration for example.
func (b *Bridge) Show(values []int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = Frame{Values: slices.Clone(values), Seq: b.frame.Seq + 1}
}

// Poll returns the latest frame and, once, the result of a run that ended
// since the last call.
func (b *Bridge) Poll() (Frame, *controller.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := b.finished
	b.finished = nil
	return b.frame, res
}

// Peek returns the latest frame and leaves any pending result in place.
func (b *Bridge) Peek() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

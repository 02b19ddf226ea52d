package engine

import (
	"context"
	"math/rand"
	"slices"
	"testing"
	"time"
)

func execute(t *testing.T, algo Algorithm, in []int) ([]int, Stats, *Run) {
	t.Helper()
	values := slices.Clone(in)
	run := NewRun(context.Background(), values, nil, nil, nil, nil)
	completed, err := Execute(run, algo)
	if err != nil {
		t.Fatalf("%s: execute failed: %v", algo, err)
	}
	if !completed {
		t.Fatalf("%s: expected completed run", algo)
	}
	return values, run.Counters().Snapshot(), run
}

func randomValues(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(50)
	}
	return out
}

func TestExecute_SortsEveryInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := [][]int{
		{},
		{7},
		{2, 1},
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{3, 3, 3, 3},
		{4, 2, 4, 1},
	}
	for n := 0; n <= 40; n++ {
		inputs = append(inputs, randomValues(rng, n))
	}

	for _, algo := range Algorithms() {
		t.Run(algo.String(), func(t *testing.T) {
			for _, in := range inputs {
				got, _, _ := execute(t, algo, in)
				want := slices.Sorted(slices.Values(in))
				if !slices.Equal(got, want) {
					t.Errorf("sort(%v) = %v, want %v", in, got, want)
				}
			}
		})
	}
}

func TestBubbleSort_Trace(t *testing.T) {
	got, stats, _ := execute(t, Bubble, []int{5, 3, 8, 1})

	if !slices.Equal(got, []int{1, 3, 5, 8}) {
		t.Errorf("expected [1 3 5 8], got %v", got)
	}
	if stats.Comparisons != 6 {
		t.Errorf("expected 6 comparisons, got %d", stats.Comparisons)
	}
	if stats.Swaps != 4 {
		t.Errorf("expected 4 swaps, got %d", stats.Swaps)
	}
	if stats.Accesses != 8 {
		t.Errorf("expected 8 accesses, got %d", stats.Accesses)
	}
}

func TestQuadraticComparisonCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, algo := range []Algorithm{Bubble, Selection} {
		for n := 0; n <= 25; n++ {
			_, stats, _ := execute(t, algo, randomValues(rng, n))
			want := int64(n * (n - 1) / 2)
			if stats.Comparisons != want {
				t.Errorf("%s n=%d: expected %d comparisons, got %d", algo, n, want, stats.Comparisons)
			}
		}
	}
}

func TestInsertionSort_AlreadySorted(t *testing.T) {
	for _, n := range []int{1, 2, 5, 30} {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 3
		}
		_, stats, _ := execute(t, Insertion, in)

		if stats.Comparisons != int64(n-1) {
			t.Errorf("n=%d: expected %d comparisons, got %d", n, n-1, stats.Comparisons)
		}
		if stats.Swaps != 0 {
			t.Errorf("n=%d: expected no movements, got %d", n, stats.Swaps)
		}
		if stats.Accesses != int64(2*(n-1)) {
			t.Errorf("n=%d: expected %d accesses, got %d", n, 2*(n-1), stats.Accesses)
		}
	}
}

func TestMergeSort_TiesTakeLeft(t *testing.T) {
	got, stats, _ := execute(t, Merge, []int{4, 2, 4, 1})

	if !slices.Equal(got, []int{1, 2, 4, 4}) {
		t.Errorf("expected [1 2 4 4], got %v", got)
	}
	if stats.Comparisons != 5 {
		t.Errorf("expected 5 comparisons, got %d", stats.Comparisons)
	}
	// Right-buffer writes: [4|2], [4|1], then only the 1 in [2 4|1 4].
	if stats.Swaps != 3 {
		t.Errorf("expected 3 right-buffer movements, got %d", stats.Swaps)
	}
}

func TestQuickSort_PivotIsLastElement(t *testing.T) {
	var frames []Highlight
	sink := RenderFunc(func(_ []int, h Highlight) { frames = append(frames, h) })
	run := NewRun(context.Background(), []int{3, 1, 2}, nil, nil, nil, sink)
	if _, err := Execute(run, Quick); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	expected := []Highlight{
		Comparing{I: 0, J: 2},
		Comparing{I: 1, J: 2},
		Swapping{I: 0, J: 1},
		Swapping{I: 1, J: 2},
	}
	if len(frames) < len(expected) {
		t.Fatalf("expected at least %d frames, got %d", len(expected), len(frames))
	}
	for i, want := range expected {
		if frames[i] != want {
			t.Errorf("frame %d = %#v, want %#v", i, frames[i], want)
		}
	}
}

func TestExecute_TrivialInputs(t *testing.T) {
	for _, algo := range Algorithms() {
		for _, in := range [][]int{{}, {7}} {
			got, stats, run := execute(t, algo, in)
			if stats != (Stats{}) {
				t.Errorf("%s %v: expected zero stats, got %+v", algo, in, stats)
			}
			if run.Steps() != 0 {
				t.Errorf("%s %v: expected zero steps, got %d", algo, in, run.Steps())
			}
			if !slices.Equal(got, in) {
				t.Errorf("%s: expected %v, got %v", algo, in, got)
			}
		}
	}
}

func TestExecute_StopBeforeFirstStep(t *testing.T) {
	in := []int{9, 4, 7, 1, 3}
	for _, algo := range Algorithms() {
		values := slices.Clone(in)
		token := &Token{}
		token.RequestStop()
		frames := 0
		sink := RenderFunc(func([]int, Highlight) { frames++ })
		run := NewRun(context.Background(), values, nil, token, nil, sink)

		completed, err := Execute(run, algo)
		if err != nil {
			t.Fatalf("%s: execute failed: %v", algo, err)
		}
		if completed {
			t.Errorf("%s: expected aborted run", algo)
		}
		if !slices.Equal(values, in) {
			t.Errorf("%s: array changed to %v", algo, values)
		}
		if s := run.Counters().Snapshot(); s != (Stats{}) {
			t.Errorf("%s: expected zero stats, got %+v", algo, s)
		}
		if frames != 0 {
			t.Errorf("%s: expected no frames, got %d", algo, frames)
		}
	}
}

func TestExecute_StopMidRunPreservesElements(t *testing.T) {
	in := []int{12, 3, 7, 7, 1, 15, 9, 4, 4, 11, 2, 8}
	want := slices.Sorted(slices.Values(in))

	for _, algo := range Algorithms() {
		t.Run(algo.String(), func(t *testing.T) {
			_, _, full := execute(t, algo, in)
			total := full.Steps()
			if total == 0 {
				t.Fatal("expected steps for unsorted input")
			}

			for cut := 1; cut <= total; cut++ {
				values := slices.Clone(in)
				token := &Token{}
				suspends := 0
				sleep := func(ctx context.Context, _ time.Duration) error {
					suspends++
					if suspends == cut {
						token.RequestStop()
					}
					return nil
				}
				lateFrames := 0
				sink := RenderFunc(func([]int, Highlight) {
					if token.IsStopRequested() {
						lateFrames++
					}
				})
				sched := NewScheduler(DefaultPacing(), nil, WithSleep(sleep))
				run := NewRun(context.Background(), values, nil, token, sched, sink)

				completed, err := Execute(run, algo)
				if err != nil {
					t.Fatalf("cut %d: execute failed: %v", cut, err)
				}
				if completed {
					t.Errorf("cut %d: expected aborted run", cut)
				}
				if run.Steps() != cut {
					t.Errorf("cut %d: expected to halt after %d steps, took %d", cut, cut, run.Steps())
				}
				if got := slices.Sorted(slices.Values(values)); !slices.Equal(got, want) {
					t.Errorf("cut %d: elements changed: %v", cut, values)
				}
				if lateFrames != 0 {
					t.Errorf("cut %d: %d frames after stop", cut, lateFrames)
				}
			}
		})
	}
}

func TestExecute_HostContextEndsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	sink := RenderFunc(func([]int, Highlight) {
		steps++
		if steps == 3 {
			cancel()
		}
	})
	values := []int{5, 4, 3, 2, 1}
	run := NewRun(ctx, values, nil, nil, nil, sink)

	completed, err := Execute(run, Bubble)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if completed {
		t.Error("expected aborted run after context cancel")
	}
	if run.Steps() != 3 {
		t.Errorf("expected 3 steps, got %d", run.Steps())
	}
}

func TestExecute_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := randomValues(rng, 30)
	for _, algo := range Algorithms() {
		a, sa, _ := execute(t, algo, in)
		b, sb, _ := execute(t, algo, in)
		if !slices.Equal(a, b) {
			t.Errorf("%s: arrays differ between runs", algo)
		}
		if sa != sb {
			t.Errorf("%s: stats differ between runs: %+v vs %+v", algo, sa, sb)
		}
	}
}

func TestExecute_FinalFrameOnlyWhenCompleted(t *testing.T) {
	var last Highlight
	sink := RenderFunc(func(_ []int, h Highlight) { last = h })
	run := NewRun(context.Background(), []int{2, 1, 3}, nil, nil, nil, sink)
	if _, err := Execute(run, Heap); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if last != (SortedFrom{Index: 0}) {
		t.Errorf("expected final SortedFrom{0}, got %#v", last)
	}
}

func TestExecute_StopAfterLastStepStillCompletes(t *testing.T) {
	values := []int{2, 1}
	token := &Token{}
	var last Highlight
	// The pass-end frame is emitted after the last suspend point.
	sink := RenderFunc(func(_ []int, h Highlight) {
		if h == (SortedFrom{Index: 1}) {
			token.RequestStop()
		}
		last = h
	})
	run := NewRun(context.Background(), values, nil, token, nil, sink)

	completed, err := Execute(run, Bubble)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !completed {
		t.Error("expected completed run")
	}
	if !slices.Equal(values, []int{1, 2}) {
		t.Errorf("values = %v", values)
	}
	if last != (SortedFrom{Index: 0}) {
		t.Errorf("expected final SortedFrom{0}, got %#v", last)
	}
}

func TestExecute_UnknownAlgorithm(t *testing.T) {
	run := NewRun(context.Background(), []int{1}, nil, nil, nil, nil)
	if _, err := Execute(run, Algorithm(42)); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRenderSinkGetsCopies(t *testing.T) {
	var seen [][]int
	sink := RenderFunc(func(v []int, _ Highlight) { seen = append(seen, v) })
	values := []int{3, 2, 1}
	run := NewRun(context.Background(), values, nil, nil, nil, sink)
	if _, err := Execute(run, Bubble); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !slices.Equal(seen[0], []int{3, 2, 1}) {
		t.Errorf("first frame mutated after render: %v", seen[0])
	}
}

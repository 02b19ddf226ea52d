package controller_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// paced keeps a run alive long enough to interact with it.
func paced(ctx context.Context, _ time.Duration) error {
	return engine.Sleep(ctx, time.Millisecond)
}

func reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

var _ = Describe("Controller", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("New", func() {
		It("rejects an unknown algorithm", func() {
			_, err := controller.New(engine.Algorithm(42), nil)
			Expect(err).To(MatchError(engine.ErrUnknownAlgorithm))
		})

		It("rejects invalid pacing", func() {
			_, err := controller.New(engine.Bubble, nil, controller.WithPacing(engine.Pacing{SpeedMin: 5, SpeedMax: 1}))
			Expect(err).To(MatchError(engine.ErrInvalidPacing))
		})

		It("starts idle with a clamped speed", func() {
			c, err := controller.New(engine.Quick, []int{1}, controller.WithSpeed(1000))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.State()).To(Equal(controller.Idle))
			Expect(c.Speed().Value()).To(Equal(engine.DefaultSpeedMax))
		})
	})

	Describe("a completed run", func() {
		It("sorts and reports the final counts", func() {
			var finished []controller.Result
			var reported engine.Stats
			c, err := controller.New(engine.Bubble, []int{5, 3, 8, 1},
				controller.WithSleep(engine.Instant),
				controller.WithLogger(quietLogger),
				controller.WithOnFinish(func(r controller.Result) { finished = append(finished, r) }),
				controller.WithReporter(engine.StatsReporterFunc(func(s engine.Stats) { reported = s })),
			)
			Expect(err).NotTo(HaveOccurred())

			res, err := c.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Completed).To(BeTrue())
			Expect(res.Final).To(Equal([]int{1, 3, 5, 8}))
			Expect(res.Stats).To(Equal(engine.Stats{Comparisons: 6, Swaps: 4, Accesses: 8}))
			Expect(res.Size).To(Equal(4))
			Expect(reported).To(Equal(res.Stats))
			Expect(finished).To(HaveLen(1))
			Expect(c.State()).To(Equal(controller.Idle))
			Expect(c.Values()).To(Equal([]int{1, 3, 5, 8}))
		})

		It("handles empty and single-element arrays", func() {
			for _, in := range [][]int{{}, {7}} {
				c, err := controller.New(engine.Merge, in,
					controller.WithSleep(engine.Instant),
					controller.WithLogger(quietLogger))
				Expect(err).NotTo(HaveOccurred())

				res, err := c.Run(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Completed).To(BeTrue())
				Expect(res.Stats).To(BeZero())
				Expect(res.Steps).To(BeZero())
				Expect(c.State()).To(Equal(controller.Idle))
			}
		})

		It("zeroes the counters for each run", func() {
			c, err := controller.New(engine.Selection, reversed(10),
				controller.WithSleep(engine.Instant),
				controller.WithLogger(quietLogger))
			Expect(err).NotTo(HaveOccurred())

			first, err := c.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := c.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(first.Stats.Comparisons).To(Equal(int64(45)))
			Expect(second.Stats.Comparisons).To(Equal(int64(45)))
		})
	})

	Describe("while running", func() {
		var c *controller.Controller

		BeforeEach(func() {
			var err error
			c, err = controller.New(engine.Bubble, reversed(60),
				controller.WithSleep(paced),
				controller.WithLogger(quietLogger))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Start(ctx)).To(Succeed())
		})

		AfterEach(func() {
			c.Stop()
			Expect(c.Wait(ctx)).To(Succeed())
		})

		It("refuses a second start", func() {
			Expect(c.State()).To(Equal(controller.Running))
			Expect(c.Start(ctx)).To(MatchError(controller.ErrRunInProgress))
		})

		It("refuses an algorithm change", func() {
			Expect(c.SetAlgorithm(engine.Heap)).To(MatchError(controller.ErrRunInProgress))
			Expect(c.Algorithm()).To(Equal(engine.Bubble))
		})

		It("accepts speed changes", func() {
			Expect(c.Speed().Set(90)).To(Equal(90))
			Expect(c.Speed().Value()).To(Equal(90))
		})

		It("stops at the next step and keeps a permutation", func() {
			c.Stop()
			Expect(c.State()).To(BeElementOf(controller.Stopping, controller.Idle))
			Expect(c.Wait(ctx)).To(Succeed())
			Expect(c.State()).To(Equal(controller.Idle))

			res, ok := c.LastResult()
			Expect(ok).To(BeTrue())
			Expect(res.Completed).To(BeFalse())
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(slices.Sorted(slices.Values(res.Final))).To(Equal(slices.Sorted(slices.Values(reversed(60)))))
		})

		It("regenerates after the run unwinds", func() {
			fresh := []int{9, 8, 7}
			Expect(c.Regenerate(ctx, fresh)).To(Succeed())
			Expect(c.State()).To(Equal(controller.Idle))
			Expect(c.Values()).To(Equal(fresh))

			res, ok := c.LastResult()
			Expect(ok).To(BeTrue())
			Expect(res.Completed).To(BeFalse())
		})
	})

	It("treats Stop while idle as a no-op", func() {
		c, err := controller.New(engine.Insertion, []int{2, 1}, controller.WithLogger(quietLogger))
		Expect(err).NotTo(HaveOccurred())
		c.Stop()
		Expect(c.State()).To(Equal(controller.Idle))
		Expect(c.Wait(ctx)).To(Succeed())
		_, ok := c.LastResult()
		Expect(ok).To(BeFalse())
	})

	It("stops when the host context is cancelled", func() {
		c, err := controller.New(engine.Heap, reversed(60),
			controller.WithSleep(paced),
			controller.WithLogger(quietLogger))
		Expect(err).NotTo(HaveOccurred())

		runCtx, cancel := context.WithCancel(ctx)
		Expect(c.Start(runCtx)).To(Succeed())
		cancel()

		Eventually(c.State).Should(Equal(controller.Idle))
		res, _ := c.LastResult()
		Expect(res.Completed).To(BeFalse())
		Expect(res.Err).NotTo(HaveOccurred())
	})

	It("recovers from a panicking sink and returns to idle", func() {
		var renders atomic.Int32
		var once sync.Once
		sink := engine.RenderFunc(func([]int, engine.Highlight) {
			if renders.Add(1) == 3 {
				once.Do(func() { panic("sink exploded") })
			}
		})

		c, err := controller.New(engine.Quick, reversed(20),
			controller.WithSleep(engine.Instant),
			controller.WithSink(sink),
			controller.WithLogger(quietLogger))
		Expect(err).NotTo(HaveOccurred())

		res, err := c.Run(ctx)
		Expect(err).To(MatchError(controller.ErrAbnormalTermination))

		var runErr *controller.RunError
		Expect(errors.As(err, &runErr)).To(BeTrue())
		Expect(runErr.Algorithm).To(Equal(engine.Quick))
		Expect(runErr.Cause).To(Equal("sink exploded"))
		Expect(res.Completed).To(BeFalse())
		Expect(c.State()).To(Equal(controller.Idle))

		res, err = c.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Completed).To(BeTrue())
		Expect(slices.IsSorted(res.Final)).To(BeTrue())
	})

	It("keeps the pre-run array when a run panics mid-shift", func() {
		var renders atomic.Int32
		// The 4th frame of insertion on [5 4 3 2 1] is taken while the key 3
		// is held outside the array.
		sink := engine.RenderFunc(func([]int, engine.Highlight) {
			if renders.Add(1) == 4 {
				panic("boom")
			}
		})

		in := reversed(5)
		c, err := controller.New(engine.Insertion, in,
			controller.WithSleep(engine.Instant),
			controller.WithSink(sink),
			controller.WithLogger(quietLogger))
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Run(ctx)
		Expect(err).To(MatchError(controller.ErrAbnormalTermination))

		values := c.Values()
		Expect(values).To(Equal([]int{5, 4, 3, 2, 1}))
		Expect(slices.Sorted(slices.Values(values))).To(Equal([]int{1, 2, 3, 4, 5}))
	})

	It("switches algorithm while idle", func() {
		c, err := controller.New(engine.Bubble, reversed(8),
			controller.WithSleep(engine.Instant),
			controller.WithLogger(quietLogger))
		Expect(err).NotTo(HaveOccurred())

		Expect(c.SetAlgorithm(engine.Merge)).To(Succeed())
		Expect(c.SetAlgorithm(engine.Algorithm(99))).To(MatchError(engine.ErrUnknownAlgorithm))

		res, err := c.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Algorithm).To(Equal(engine.Merge))
	})
})

// Package engine implements the animated sorting engine: six sorting
// algorithms written as step-emitting procedures that pause between steps so a
// renderer can keep up.
//
// The package is built around a handful of small types:
//
//   - [Run]: per-run context holding the working array and collaborators
//   - [Counters]: comparison, swap and access tallies
//   - [Token]: cooperative cancellation flag
//   - [Scheduler]: maps the live [Speed] to a per-step delay
//   - [Highlight]: what a renderer should emphasize at a given step
//   - [Algorithm]: the enumeration dispatched by [Execute]
//
// # Step Pattern
//
// Every algorithm advances through the same primitive: record the operation
// on the counters, emit a highlight to the [RenderSink], suspend on the
// scheduler, then check the token. When the token is set the procedure
// returns immediately, unwinding any recursion, and the array is left as a
// permutation of its input.
//
// # Example
//
//	counters := engine.NewCounters()
//	sched := engine.NewScheduler(engine.DefaultPacing(), engine.NewSpeed(engine.DefaultPacing(), 50))
//	run := engine.NewRun(ctx, values, counters, &engine.Token{}, sched, sink)
//	completed := engine.Execute(run, engine.Quick)
//
// # Thread Safety
//
// A Run and its Counters belong to the single goroutine executing the
// algorithm. Token and Speed are the only values meant to be touched from
// other goroutines while a run is in flight.
package engine

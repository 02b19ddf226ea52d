// Package viz draws sorting runs in the terminal.
//
// The interactive [App] is a Bubble Tea model. A sort runs on the
// controller's goroutine and publishes frames to a [Bridge]; the app polls
// the bridge on every tick, so a slow terminal drops frames rather than
// slowing the sort.
//
//   - [RenderBars]: one colored column per element, tinted by highlight role
//   - [Canvas]: braille canvas for arrays too large for full bars
//   - [ComplexityChart], [TraceChart]: asciigraph line charts
//   - [Theme]: six built-in color schemes
//
// # Key Bindings
//
//	enter/s  start sorting
//	x        stop the run
//	r        new array
//	tab      next algorithm
//	[ ]      smaller or larger array
//	+ -      faster or slower, live during a run
//	a        cycle array shape
//	l        cycle snippet language
//	t        cycle theme
//	c        complexity or performance chart
//	v        full or compact bars
//	?        full help
package viz

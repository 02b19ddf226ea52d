package engine

import "sync/atomic"

// Token is a cooperative stop flag. The zero value is ready to use.
type Token struct {
	stop atomic.Bool
}

// RequestStop sets the flag. Safe to call repeatedly and from any goroutine.
func (t *Token) RequestStop() { t.stop.Store(true) }

func (t *Token) IsStopRequested() bool { return t.stop.Load() }

// Reset clears the flag. Only the owner of the next run may call it, and
// only before that run starts, so a draining run never sees it flip back.
func (t *Token) Reset() { t.stop.Store(false) }

package importer

import "sync/atomic"

// LoadGuard lets at most one list load run at a time. A caller that loses
// TryAcquire should drop its request rather than queue it.
type LoadGuard struct {
	busy atomic.Bool
}

// TryAcquire marks the guard busy and reports whether the caller got it.
func (g *LoadGuard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release frees the guard. Only the holder may call it.
func (g *LoadGuard) Release() {
	g.busy.Store(false)
}

// Busy reports whether a load currently holds the guard.
func (g *LoadGuard) Busy() bool {
	return g.busy.Load()
}

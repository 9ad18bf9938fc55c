// Package launch answers "is this the first run?" exactly once per fresh
// persisted state.
package launch

import (
	"context"
	"fmt"
	"sync"
)

// Flag is a durable set-once marker. SetOnce must be an atomic
// check-and-set: it reports true only to the caller that created the marker.
type Flag interface {
	SetOnce(ctx context.Context) (bool, error)
	Reset(ctx context.Context) error
}

// Gate wraps a Flag and serializes in-process callers.
type Gate struct {
	mu   sync.Mutex
	flag Flag
}

// NewGate creates a gate over flag.
func NewGate(flag Flag) *Gate {
	return &Gate{flag: flag}
}

// IsInitialLaunch returns true the first time it is called against a fresh
// flag and false on every later call, including after a restart.
func (g *Gate) IsInitialLaunch(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	first, err := g.flag.SetOnce(ctx)
	if err != nil {
		return false, fmt.Errorf("check first launch: %w", err)
	}
	return first, nil
}

// Reset clears the flag so the next IsInitialLaunch returns true again.
func (g *Gate) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.flag.Reset(ctx); err != nil {
		return fmt.Errorf("reset first launch: %w", err)
	}
	return nil
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about render execution, data
// reduction, and frame diffing.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, rowCount, panelCount)
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, rowCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from render pipeline execution.
type RenderHooks interface {
	// OnRenderStart records the start of one render invocation.
	OnRenderStart(ctx context.Context, rowCount, panelCount int)

	// OnRenderComplete records the end of one render invocation.
	OnRenderComplete(ctx context.Context, rowCount int, duration time.Duration, err error)
}

// =============================================================================
// Reduce Hooks
// =============================================================================

// ReduceHooks receives events from dataset reduction.
type ReduceHooks interface {
	// OnReduce records one reduction pass.
	OnReduce(ctx context.Context, method string, rowsIn, rowsOut int, duration time.Duration)
}

// =============================================================================
// Diff Hooks
// =============================================================================

// DiffHooks receives events from frame diffing.
type DiffHooks interface {
	// OnDiff records one frame comparison.
	OnDiff(ctx context.Context, changedCells, totalCells int, fullRedraw bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, int, int)                    {}
func (NoopRenderHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}

// NoopReduceHooks is a no-op implementation of ReduceHooks.
type NoopReduceHooks struct{}

func (NoopReduceHooks) OnReduce(context.Context, string, int, int, time.Duration) {}

// NoopDiffHooks is a no-op implementation of DiffHooks.
type NoopDiffHooks struct{}

func (NoopDiffHooks) OnDiff(context.Context, int, int, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	reduceHooks ReduceHooks = NoopReduceHooks{}
	diffHooks   DiffHooks   = NoopDiffHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any renders.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetReduceHooks registers custom reduction hooks.
func SetReduceHooks(h ReduceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		reduceHooks = h
	}
}

// SetDiffHooks registers custom diff hooks.
func SetDiffHooks(h DiffHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diffHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reduce returns the registered reduction hooks.
func Reduce() ReduceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return reduceHooks
}

// Diff returns the registered diff hooks.
func Diff() DiffHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diffHooks
}

// Reset restores the no-op hooks. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	reduceHooks = NoopReduceHooks{}
	diffHooks = NoopDiffHooks{}
}

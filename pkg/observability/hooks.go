// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about plot execution, data fetching, and
// cache operations.
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
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlotHooks(&myPlotHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plot().OnFetchStart(ctx, track, gr.String())
//	// ... fetch records ...
//	observability.Plot().OnFetchComplete(ctx, track, gr.String(), n, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Plot Hooks
// =============================================================================

// PlotHooks receives events from frame and joint-view plotting.
type PlotHooks interface {
	// Fetch events
	OnFetchStart(ctx context.Context, track, grange string)
	OnFetchComplete(ctx context.Context, track, grange string, records int, duration time.Duration, err error)

	// Track render events
	OnTrackRenderStart(ctx context.Context, track string)
	OnTrackRenderComplete(ctx context.Context, track string, duration time.Duration, err error)

	// Composite events (one per Plot call on a frame or joint view)
	OnCompositeStart(ctx context.Context, kind string, panels int)
	OnCompositeComplete(ctx context.Context, kind string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlotHooks is a no-op implementation of PlotHooks.
type NoopPlotHooks struct{}

func (NoopPlotHooks) OnFetchStart(context.Context, string, string) {}
func (NoopPlotHooks) OnFetchComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPlotHooks) OnTrackRenderStart(context.Context, string)                          {}
func (NoopPlotHooks) OnTrackRenderComplete(context.Context, string, time.Duration, error) {}
func (NoopPlotHooks) OnCompositeStart(context.Context, string, int)                       {}
func (NoopPlotHooks) OnCompositeComplete(context.Context, string, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	plotHooks  PlotHooks  = NoopPlotHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetPlotHooks registers custom plot hooks.
// This should be called once at application startup before any plotting.
func SetPlotHooks(h PlotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		plotHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Plot returns the registered plot hooks.
func Plot() PlotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return plotHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	plotHooks = NoopPlotHooks{}
	cacheHooks = NoopCacheHooks{}
}

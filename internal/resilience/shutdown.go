package resilience

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ShutdownHook is one named cleanup step executed during graceful shutdown.
type ShutdownHook struct {
	Name string
	Run  func(context.Context) error
}

// GracefulShutdown executes registered hooks in reverse registration order,
// so dependent resources stop before the resources they depend on. Each hook
// gets an equal slice of the total timeout budget; a hook that overruns its
// slice is abandoned and the next hook still runs. Shutdown is idempotent.
type GracefulShutdown struct {
	mu           sync.Mutex
	logger       *slog.Logger
	hooks        []ShutdownHook
	shuttingDown bool
}

// NewGracefulShutdown creates an empty shutdown registry.
func NewGracefulShutdown(logger *slog.Logger) *GracefulShutdown {
	if logger == nil {
		logger = slog.Default()
	}
	return &GracefulShutdown{
		logger: logger.With("component", "shutdown"),
	}
}

// Register adds a hook. Hooks registered later run earlier.
func (g *GracefulShutdown) Register(name string, run func(context.Context) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks = append(g.hooks, ShutdownHook{Name: name, Run: run})
}

// Shutdown runs all hooks in reverse registration order within the total
// timeout. A second call while or after shutdown is in progress is a no-op.
func (g *GracefulShutdown) Shutdown(totalTimeout time.Duration) {
	g.mu.Lock()
	if g.shuttingDown {
		g.mu.Unlock()
		return
	}
	g.shuttingDown = true
	hooks := make([]ShutdownHook, len(g.hooks))
	copy(hooks, g.hooks)
	g.mu.Unlock()

	if len(hooks) == 0 {
		return
	}

	g.logger.Info("initiating graceful shutdown", "hooks", len(hooks))

	perHook := totalTimeout / time.Duration(len(hooks))

	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if err := g.runHook(hook, perHook); err != nil {
			g.logger.Error("shutdown hook failed", "hook", hook.Name, "error", err)
			continue
		}
		g.logger.Info("shutdown hook completed", "hook", hook.Name)
	}

	g.logger.Info("graceful shutdown completed")
}

// runHook executes one hook bounded by its timeout slice. The hook runs in its
// own goroutine so an unresponsive hook is abandoned rather than blocking the
// remaining hooks.
func (g *GracefulShutdown) runHook(hook ShutdownHook, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error("shutdown hook panicked", "hook", hook.Name, "panic", r)
				done <- nil
			}
		}()
		done <- hook.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		g.logger.Warn("shutdown hook timed out", "hook", hook.Name, "timeout", timeout)
		return nil
	}
}

// IsShuttingDown reports whether Shutdown has been called.
func (g *GracefulShutdown) IsShuttingDown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shuttingDown
}

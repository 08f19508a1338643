// Package shutdown coordinates graceful termination of long-running
// commands such as `snapkeep list --watch`.
//
// A Handler waits for SIGINT/SIGTERM (or a programmatic Trigger), then
// runs the registered hooks in reverse order under a timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return watcher.Stop() })
//	return h.Wait()
package shutdown

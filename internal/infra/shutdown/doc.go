// Package shutdown coordinates process exit for redislight.
//
// A Handler turns SIGINT and SIGTERM into context cancellation and runs
// registered exit hooks (saving history, writing metrics, stopping the
// config watcher) exactly once, in reverse registration order.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.Context(context.Background())
//	defer stop()
//	h.OnShutdown(saveHistory)
//	runREPL(ctx)
//	_ = h.Shutdown()
package shutdown

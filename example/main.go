// Demonstrates booting the runtime and reaching its capabilities ambiently
// from inside task bodies, without passing any handle down the call stack.
package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/upb/taskrt/config"
	"github.com/upb/taskrt/internal/observability"
	"github.com/upb/taskrt/rtcontext"
	"github.com/upb/taskrt/runtime"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Environment, cfg.Observability.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	rt, err := runtime.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build runtime: %v", err)
	}
	if err := rt.Start(); err != nil {
		log.Fatalf("failed to start runtime: %v", err)
	}
	defer func() {
		if err := rt.Shutdown(context.Background()); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	if err := rt.Spawn(func() {
		defer wg.Done()
		// The task body discovers its runtime through the ambient context.
		if td, ok := rtcontext.CurrentTimeDriver(); ok {
			fired := make(chan struct{})
			if _, err := td.Schedule(10*time.Millisecond, func() { close(fired) }); err == nil {
				<-fired
			}
		}
		if spawner, ok := rtcontext.CurrentSpawner(); ok {
			wg.Add(1)
			if err := spawner.Spawn(func() { defer wg.Done(); logger.Info("follow-up task ran") }); err != nil {
				wg.Done()
				logger.Warn("follow-up rejected")
			}
		}
	}); err != nil {
		log.Fatalf("spawn failed: %v", err)
	}
	wg.Wait()

	stats := rt.Stats()
	logger.Info("done")
	log.Printf("tasks spawned=%d rejected=%d", stats.TasksSpawned, stats.TasksRejected)
}

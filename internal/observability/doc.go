// Package observability provides structured logging and lightweight runtime
// counters for the task runtime.
//
// Logging is zap-based; every component receives an injected *zap.Logger.
// Counters are plain atomics sampled by the runtime's Stats accessor.
package observability

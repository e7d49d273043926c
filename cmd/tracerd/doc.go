// Package main is the entry point for the message tracer daemon.
//
// The tracer records message bus emissions from a client application,
// keeps a bounded in-memory window of them, and serves reconstruction
// and analysis over a small REST API plus a built-in dev panel.
//
// Architecture:
//
//	Client app (message bus) → POST /traces → Store (bounded, FIFO)
//	Dev panel (browser)      → GET /chains, /panel, /metrics
//
// The daemon provides:
//   - REST API for trace ingestion and chain inspection
//   - Call tree reconstruction per chain
//   - Completion, critical path, and anomaly reports
//   - Prometheus metrics and a self-contained HTML panel
//   - Rate limiting and optional time-based retention
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML file via -config (file wins over env)
//   - CLI flags (override both)
//   - Defaults for development
//
// Usage:
//
//	# Environment-driven
//	./tracerd
//
//	# Explicit config file and port override
//	./tracerd -config tracer.yaml -port 8766
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

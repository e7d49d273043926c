// Package server provides HTTP server setup and initialization for the
// message tracer.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, recovery, request metrics,
//     request tracing)
//   - Trace store construction and metrics wiring
//   - Retention sweep goroutine
//
// Server Lifecycle:
//  1. Load configuration from environment/flags or a YAML file
//  2. Initialize logger (production or development)
//  3. Build the trace store and Prometheus collectors
//  4. Setup HTTP routes and middleware
//  5. Start the retention sweeper when a retention window is set
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

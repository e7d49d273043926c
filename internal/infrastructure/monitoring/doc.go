/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the tracer
service, tracking HTTP requests, trace store activity, analysis runs, and
system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Trace store metrics (recorded, dropped, evicted, pruned, size)
- Tree reconstruction and analysis metrics (duration, anomaly counts)
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordMessage()
	metrics.SetStoreSize(42)

	// Time operations
	timer := monitoring.NewTimer(metrics, "anomalies")
	// ... perform analysis ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring

/*
Package tracing provides lightweight request tracing for the panel API.

# Overview

Every request through the Gin middleware gets a span with a trace ID and
a span ID. Completed spans are buffered and written asynchronously to the
structured log, so slow log sinks never sit on the request path. Callers
that already carry a trace can propagate it via headers and their IDs are
threaded through as the parent.

# Usage

	// Create tracer
	tracer := tracing.New("message-tracer", logger)
	defer tracer.Close()

	// HTTP middleware
	router.Use(tracing.Middleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

# Trace Format

Traces use HTTP headers for propagation:
  - X-Trace-ID: identifier for the entire request flow
  - X-Span-ID: identifier for the current operation

Both headers are echoed on every response, so a producer can line up a
panel response with its own logs.

# Performance

The tracing system is designed for minimal overhead:
  - Buffered span collection (1000 spans)
  - Async span processing
  - Spans are dropped, never blocked on, when the buffer is full
*/
package tracing

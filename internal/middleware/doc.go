// Package middleware provides HTTP middleware for the media server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path cardinality
//   - Response compression (gzip)
//   - Panic recovery with JSON error responses
package middleware

// Package server implements the HTTP server using Echo framework.
//
// Routes: stream (SSE subscribe), notify (authenticated publish), health, metrics.
// Handlers split by concern: handlers_stream.go, handlers_notify.go, handlers_health.go.
package server

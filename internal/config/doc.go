// Package config provides environment-based configuration.
//
// Loads plain environment variables into a Config struct with defaults.
// SSE_SECRET is the only required value: without it the hub would accept
// unauthenticated publishes, so startup fails instead.
package config

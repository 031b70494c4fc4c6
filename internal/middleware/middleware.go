// Package middleware holds the global and route-specific middleware:
// Clerk authentication, request ids and loggers, New Relic tracing, rate
// limiting and the global error handler.
package middleware

// Package requestid correlates HTTP requests with an opaque identifier.
//
// The Middleware reuses a valid client-supplied "X-Request-ID" header or
// generates a UUIDv4, stores the ID in the request context, and echoes it in
// the response. FromContext retrieves it anywhere downstream; the
// LoggerExtractor feeds it into structured log records so validation
// failures can be traced back to the request that caused them.
package requestid

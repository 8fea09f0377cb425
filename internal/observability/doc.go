// Package observability builds the process-wide zap logger used by the API.
//
// Level and encoding come from LOG_LEVEL and LOG_FORMAT; request scoped fields
// (request id, identity) are attached by the middleware that logs them.
package observability

// ABOUTME: Package documentation for the transport package
// ABOUTME: Describes the request executor and error classification

// Package transport provides the shared request-execution path for all
// network-bound components.
//
// # Overview
//
// Every outbound call in the client funnels through Executor.Execute,
// which applies an optional per-request timeout, attaches bearer
// credentials, and converts failures into one of three shapes:
//
//   - *TimeoutError when the configured deadline elapses
//   - *StatusError carrying {StatusCode, Operation, Category} for
//     non-success responses
//   - a wrapped error for everything else (DNS failure, reset, etc.)
//
// # Classification
//
// Classify maps status codes to categories:
//
//	400 → invalid_request    409 → conflict
//	401 → authentication_error  429 → rate_limit_error
//	403 → permission_error   500 → api_error
//	404 → not_found          else → unknown_error
//
// Classification is deterministic and side-effect-free aside from error
// logging. Nothing is retried here; callers own retry policy.
package transport

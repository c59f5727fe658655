// ABOUTME: Package documentation for the stream package
// ABOUTME: Describes the SSE connection lifecycle and no-reconnect policy

// Package stream manages the long-lived server-push event connection.
//
// # Lifecycle
//
// Each CreateStream call owns exactly one connection, moving through
// Idle → Connecting → Open → Closed. An empty token fails synchronously
// before any connection attempt.
//
// # Disconnect policy
//
// On transport disconnect the controller does NOT reconnect: the
// connection transitions straight to Closed, the underlying body is
// closed by the controller itself, and the cause is delivered through
// OnError. Reconnection is entirely the caller's responsibility via a
// new CreateStream call carrying Connection.LastEventID, which the
// server honors as a replay cursor. This keeps silent, unbounded
// background reconnect loops out of this layer.
//
// # Frames
//
// Inbound frames are delimited at the SSE level (id/event/data fields,
// blank-line dispatch) and forwarded verbatim; payload interpretation is
// the caller's responsibility.
package stream

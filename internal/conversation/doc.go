// ABOUTME: Package documentation for the conversation package
// ABOUTME: Describes gateway operations and the wire-to-domain contract

// Package conversation builds all conversation-scoped requests and
// normalizes service responses into a stable domain model.
//
// # Operations
//
//   - Create: open a conversation (caller-supplied or generated id)
//   - Close: terminate the conversation
//   - EndSession: end the active messaging session, conversation stays open
//   - Status: fetch routing status (activity/liveness fields synthesized)
//   - SendMessage: post a static-content text message
//   - SendTypingIndicator: post typing started/stopped
//   - SendReceipts: acknowledge entries (Delivery/Read)
//   - List: fetch a transcript page with optional filters
//
// # Normalization
//
// Raw wire entries never reach callers. normalizeEntry maps identifier →
// ID, entryType → Type, the static-content text (message entries only) →
// Text, the epoch-millisecond client timestamp → RFC 3339, and the wire
// sender's subject/role → Sender. Entries violating the domain invariant
// (empty id or type) are rejected.
//
// # Known quirks
//
// Two behaviors are deliberate approximations, documented on the methods:
// Status synthesizes LastActivityTimestamp and IsActive, and List derives
// the result ID from the first wire entry (empty page → empty ID).
package conversation

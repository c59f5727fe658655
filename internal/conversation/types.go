// ABOUTME: Domain types for conversations, entries, receipts, and listing
// ABOUTME: Stable caller-facing shapes produced by normalization from the wire

package conversation

import "time"

// Entry type values the gateway produces or recognizes.
const (
	EntryTypeMessage                = "Message"
	EntryTypeTypingStartedIndicator = "TypingStartedIndicator"
	EntryTypeTypingStoppedIndicator = "TypingStoppedIndicator"
)

// Sender identifies who produced an entry.
type Sender struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Entry is the normalized domain representation of a conversation entry.
// Immutable once constructed; ID and Type are always non-empty, Text is
// present only for message entries, and Timestamp is RFC 3339.
type Entry struct {
	ID                string         `json:"id"`
	Type              string         `json:"type"`
	Text              string         `json:"text,omitempty"`
	Timestamp         string         `json:"timestamp"`
	Sender            Sender         `json:"sender"`
	RoutingAttributes map[string]any `json:"routingAttributes,omitempty"`
}

// Status describes a conversation's routing state. LastActivityTimestamp
// and IsActive are synthesized by the gateway (the wire status endpoint
// does not provide them): LastActivityTimestamp is the time the status
// call completed and IsActive is always true. Treat both as
// approximations, not server facts.
type Status struct {
	ID                    string    `json:"id"`
	Status                string    `json:"status"`
	LastActivityTimestamp time.Time `json:"lastActivityTimestamp"`
	IsActive              bool      `json:"isActive"`
}

// ReceiptType is the kind of acknowledgment being sent.
type ReceiptType string

const (
	ReceiptDelivery ReceiptType = "Delivery"
	ReceiptRead     ReceiptType = "Read"
)

// ReceiptEntry acknowledges a single conversation entry. ID defaults to a
// fresh identifier and Type to ReceiptDelivery when left empty.
type ReceiptEntry struct {
	ID                  string
	Type                ReceiptType
	ConversationEntryID string
}

// ReceiptParams carries the acknowledgments for one SendReceipts call.
type ReceiptParams struct {
	Entries []ReceiptEntry
}

// CreateParams configures conversation creation. An empty ID asks the
// gateway to generate one.
type CreateParams struct {
	ID                string
	RoutingAttributes map[string]any
}

// SendMessageParams configures one outbound message. Text is required.
// An empty ID asks the gateway to generate the entry identifier.
type SendMessageParams struct {
	ID                string
	Text              string
	IsNewSession      bool
	RoutingAttributes map[string]any
	Language          string
}

// Direction selects which end of the transcript a listing starts from.
type Direction string

const (
	DirectionFromEnd   Direction = "FromEnd"
	DirectionFromStart Direction = "FromStart"
)

// ListParams are the optional transcript filters. Zero values are omitted
// from the query string entirely. Timestamps are epoch milliseconds.
type ListParams struct {
	Limit           int
	StartTimestamp  int64
	EndTimestamp    int64
	Direction       Direction
	EntryTypeFilter []string
}

// ListResult is a normalized transcript page. ID is taken from the first
// wire entry's identifier and is therefore "" for an empty page; see
// Gateway.List.
type ListResult struct {
	ID      string  `json:"id"`
	Entries []Entry `json:"entries"`
}

// ABOUTME: Wire-format types and normalization into the domain model
// ABOUTME: Raw service JSON never leaves this package un-normalized

package conversation

import (
	"fmt"
	"time"
)

// wireSender is the service's sender representation.
type wireSender struct {
	Role             string `json:"role"`
	Subject          string `json:"subject"`
	AppType          string `json:"appType,omitempty"`
	ClientIdentifier string `json:"clientIdentifier,omitempty"`
}

// wireStaticContent is the text payload of a static content message.
type wireStaticContent struct {
	FormatType string `json:"formatType"`
	Text       string `json:"text"`
}

// wireAbstractMessage wraps the message body inside an entry payload.
type wireAbstractMessage struct {
	ID            string             `json:"id,omitempty"`
	MessageType   string             `json:"messageType,omitempty"`
	StaticContent *wireStaticContent `json:"staticContent,omitempty"`
}

// wireEntryPayload is the polymorphic payload of a conversation entry.
// Only the message shape is interpreted; other entry kinds carry payloads
// this layer does not read.
type wireEntryPayload struct {
	AbstractMessage *wireAbstractMessage `json:"abstractMessage,omitempty"`
}

// wireEntry is the service's raw conversation entry representation.
type wireEntry struct {
	Identifier            string           `json:"identifier"`
	EntryType             string           `json:"entryType"`
	EntryPayload          wireEntryPayload `json:"entryPayload"`
	ClientTimestamp       int64            `json:"clientTimestamp"`
	TranscriptedTimestamp int64            `json:"transcriptedTimestamp"`
	Sender                wireSender       `json:"sender"`
	SenderDisplayName     string           `json:"senderDisplayName,omitempty"`
}

// normalizeEntry converts a wire entry into the domain shape. The domain
// invariant is enforced here: an entry without an identifier or entry
// type is rejected rather than passed through half-formed. Text is
// extracted only for message entries; the epoch-millisecond client
// timestamp becomes RFC 3339 UTC.
func normalizeEntry(w wireEntry) (Entry, error) {
	if w.Identifier == "" {
		return Entry{}, fmt.Errorf("wire entry missing identifier")
	}
	if w.EntryType == "" {
		return Entry{}, fmt.Errorf("wire entry %s missing entryType", w.Identifier)
	}

	entry := Entry{
		ID:        w.Identifier,
		Type:      w.EntryType,
		Timestamp: time.UnixMilli(w.ClientTimestamp).UTC().Format(time.RFC3339),
		Sender: Sender{
			ID:   w.Sender.Subject,
			Type: w.Sender.Role,
		},
	}

	if w.EntryType == EntryTypeMessage {
		if msg := w.EntryPayload.AbstractMessage; msg != nil && msg.StaticContent != nil {
			entry.Text = msg.StaticContent.Text
		}
	}

	return entry, nil
}

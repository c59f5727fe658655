// ABOUTME: Tests for wire entry normalization into the domain model
// ABOUTME: Covers text extraction, timestamp conversion, and invariant enforcement

package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEntry_MessageEntry(t *testing.T) {
	wire := wireEntry{
		Identifier: "entry-1",
		EntryType:  EntryTypeMessage,
		EntryPayload: wireEntryPayload{
			AbstractMessage: &wireAbstractMessage{
				MessageType: "StaticContentMessage",
				StaticContent: &wireStaticContent{
					FormatType: "Text",
					Text:       "Hello world",
				},
			},
		},
		ClientTimestamp: 1735689600000, // 2025-01-01T00:00:00Z
		Sender: wireSender{
			Role:    "Agent",
			Subject: "agent-7",
		},
		SenderDisplayName: "Sam",
	}

	entry, err := normalizeEntry(wire)
	require.NoError(t, err)

	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, EntryTypeMessage, entry.Type)
	assert.Equal(t, "Hello world", entry.Text)
	assert.Equal(t, "2025-01-01T00:00:00Z", entry.Timestamp)
	assert.Equal(t, Sender{ID: "agent-7", Type: "Agent"}, entry.Sender)
}

func TestNormalizeEntry_NonMessageEntryHasNoText(t *testing.T) {
	wire := wireEntry{
		Identifier: "entry-2",
		EntryType:  EntryTypeTypingStartedIndicator,
		EntryPayload: wireEntryPayload{
			// Payload text present but the entry is not a message
			AbstractMessage: &wireAbstractMessage{
				StaticContent: &wireStaticContent{Text: "should be ignored"},
			},
		},
		ClientTimestamp: 1735689600000,
		Sender:          wireSender{Role: "EndUser", Subject: "user-1"},
	}

	entry, err := normalizeEntry(wire)
	require.NoError(t, err)
	assert.Empty(t, entry.Text)
}

func TestNormalizeEntry_MessageWithoutPayloadText(t *testing.T) {
	wire := wireEntry{
		Identifier:      "entry-3",
		EntryType:       EntryTypeMessage,
		ClientTimestamp: 1735689600000,
		Sender:          wireSender{Role: "System", Subject: "system"},
	}

	entry, err := normalizeEntry(wire)
	require.NoError(t, err)
	assert.Empty(t, entry.Text)
}

func TestNormalizeEntry_MissingIdentifier(t *testing.T) {
	_, err := normalizeEntry(wireEntry{EntryType: EntryTypeMessage})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier")
}

func TestNormalizeEntry_MissingEntryType(t *testing.T) {
	_, err := normalizeEntry(wireEntry{Identifier: "entry-4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entryType")
}

// ABOUTME: Conversation gateway building outbound requests and normalizing responses
// ABOUTME: Covers create, close, end-session, status, messaging, typing, receipts, listing

package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/iamessage-client/internal/transport"
)

// Validation errors, raised before any network call.
var (
	ErrEmptyMessageText = errors.New("message text is empty")
)

const basePath = "/iamessage/api/v2/conversation"

// Gateway builds and issues all conversation-scoped requests. It holds no
// conversation state: tokens and conversation ids are supplied by the
// caller on every operation.
type Gateway struct {
	exec          *transport.Executor
	developerName string
	newID         func() string
	logger        *slog.Logger
}

// NewGateway creates a conversation gateway. newID generates
// collision-resistant identifiers for conversations, message entries, and
// receipts; nil installs the default lower-cased random UUID generator.
func NewGateway(exec *transport.Executor, developerName string, newID func() string, logger *slog.Logger) *Gateway {
	if newID == nil {
		newID = func() string {
			return strings.ToLower(uuid.NewString())
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		exec:          exec,
		developerName: developerName,
		newID:         newID,
		logger:        logger.With("component", "conversation"),
	}
}

type createConversationRequest struct {
	ConversationID    string         `json:"conversationId"`
	DeveloperName     string         `json:"esDeveloperName"`
	RoutingAttributes map[string]any `json:"routingAttributes,omitempty"`
}

// Create opens a new conversation and returns its identifier: the
// caller-supplied one when set, otherwise a freshly generated id. Nothing
// is cached locally; the id comes back to the caller and that is the only
// record this layer keeps.
func (g *Gateway) Create(ctx context.Context, token string, params *CreateParams) (string, error) {
	if params == nil {
		params = &CreateParams{}
	}

	conversationID := params.ID
	if conversationID == "" {
		conversationID = g.newID()
	}

	err := g.exec.Execute(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   basePath,
		Token:  token,
		Body: createConversationRequest{
			ConversationID:    conversationID,
			DeveloperName:     g.developerName,
			RoutingAttributes: params.RoutingAttributes,
		},
		Operation: "createConversation",
	})
	if err != nil {
		return "", err
	}

	g.logger.Debug("conversation created", "conversation_id", conversationID)
	return conversationID, nil
}

// Close terminates the conversation entirely. Distinct from EndSession,
// which leaves the conversation record open.
func (g *Gateway) Close(ctx context.Context, token, conversationID string) error {
	return g.exec.Execute(ctx, transport.Request{
		Method:    http.MethodDelete,
		Path:      basePath + "/" + conversationID,
		Query:     url.Values{"esDeveloperName": {g.developerName}},
		Token:     token,
		Operation: "closeConversation",
	})
}

// EndSession ends the active messaging session while leaving the
// conversation record open for later sessions.
func (g *Gateway) EndSession(ctx context.Context, token, conversationID string) error {
	return g.exec.Execute(ctx, transport.Request{
		Method:    http.MethodDelete,
		Path:      basePath + "/" + conversationID + "/session",
		Query:     url.Values{"esDeveloperName": {g.developerName}},
		Token:     token,
		Operation: "endSession",
	})
}

type wireStatus struct {
	ConversationID string `json:"conversationId"`
	Status         string `json:"status"`
}

// Status fetches the conversation's routing status. The wire response
// does not carry an activity timestamp or liveness flag, so
// LastActivityTimestamp is synthesized as the current time and IsActive
// is always true. Known approximation, not a server-derived fact.
func (g *Gateway) Status(ctx context.Context, token, conversationID string) (Status, error) {
	var wire wireStatus
	err := g.exec.Execute(ctx, transport.Request{
		Method:    http.MethodGet,
		Path:      basePath + "/" + conversationID,
		Token:     token,
		Operation: "getConversationStatus",
		Out:       &wire,
	})
	if err != nil {
		return Status{}, err
	}

	id := wire.ConversationID
	if id == "" {
		id = conversationID
	}

	return Status{
		ID:                    id,
		Status:                wire.Status,
		LastActivityTimestamp: time.Now(),
		IsActive:              true,
	}, nil
}

type sendMessagePayload struct {
	ID            string            `json:"id"`
	MessageType   string            `json:"messageType"`
	StaticContent wireStaticContent `json:"staticContent"`
}

type sendMessageRequest struct {
	Message               sendMessagePayload `json:"message"`
	DeveloperName         string             `json:"esDeveloperName"`
	IsNewMessagingSession bool               `json:"isNewMessagingSession,omitempty"`
	RoutingAttributes     map[string]any     `json:"routingAttributes,omitempty"`
	Language              string             `json:"language,omitempty"`
}

type entriesResponse struct {
	ConversationEntries []wireEntry `json:"conversationEntries"`
}

// SendMessage posts a static-content text message. Empty text is rejected
// before any network call. The first entry of the response is normalized
// into the domain shape; this endpoint does not echo full sender
// metadata, so the sender is fixed to the end user.
func (g *Gateway) SendMessage(ctx context.Context, token, conversationID string, params SendMessageParams) (Entry, error) {
	if params.Text == "" {
		return Entry{}, fmt.Errorf("sending message: %w", ErrEmptyMessageText)
	}

	entryID := params.ID
	if entryID == "" {
		entryID = g.newID()
	}

	var resp entriesResponse
	err := g.exec.Execute(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   basePath + "/" + conversationID + "/message",
		Token:  token,
		Body: sendMessageRequest{
			Message: sendMessagePayload{
				ID:          entryID,
				MessageType: "StaticContentMessage",
				StaticContent: wireStaticContent{
					FormatType: "Text",
					Text:       params.Text,
				},
			},
			DeveloperName:         g.developerName,
			IsNewMessagingSession: params.IsNewSession,
			RoutingAttributes:     params.RoutingAttributes,
			Language:              params.Language,
		},
		Operation: "sendMessage",
		Out:       &resp,
	})
	if err != nil {
		return Entry{}, err
	}

	if len(resp.ConversationEntries) == 0 {
		return Entry{}, fmt.Errorf("sendMessage: response contained no entries")
	}

	entry, err := normalizeEntry(resp.ConversationEntries[0])
	if err != nil {
		return Entry{}, fmt.Errorf("sendMessage: %w", err)
	}

	entry.Sender = Sender{ID: "user", Type: "endUser"}
	return entry, nil
}

type typingIndicatorRequest struct {
	ID        string `json:"id"`
	EntryType string `json:"entryType"`
}

// SendTypingIndicator posts a typing started or stopped indicator entry.
func (g *Gateway) SendTypingIndicator(ctx context.Context, token, conversationID string, isTyping bool) error {
	entryType := EntryTypeTypingStoppedIndicator
	if isTyping {
		entryType = EntryTypeTypingStartedIndicator
	}

	return g.exec.Execute(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   basePath + "/" + conversationID + "/entry",
		Token:  token,
		Body: typingIndicatorRequest{
			ID:        g.newID(),
			EntryType: entryType,
		},
		Operation: "sendTypingIndicator",
	})
}

type wireReceipt struct {
	ID                  string `json:"id"`
	Type                string `json:"type"`
	ConversationEntryID string `json:"conversationEntryId"`
}

type receiptRequest struct {
	Acks []wireReceipt `json:"acks"`
}

// SendReceipts acknowledges one or more conversation entries. Per entry,
// a missing id gets a fresh identifier and a missing type defaults to
// Delivery.
func (g *Gateway) SendReceipts(ctx context.Context, token, conversationID string, params ReceiptParams) error {
	acks := make([]wireReceipt, 0, len(params.Entries))
	for _, entry := range params.Entries {
		ack := wireReceipt{
			ID:                  entry.ID,
			Type:                string(entry.Type),
			ConversationEntryID: entry.ConversationEntryID,
		}
		if ack.ID == "" {
			ack.ID = g.newID()
		}
		if ack.Type == "" {
			ack.Type = string(ReceiptDelivery)
		}
		acks = append(acks, ack)
	}

	return g.exec.Execute(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      basePath + "/" + conversationID + "/acknowledge-entries",
		Token:     token,
		Body:      receiptRequest{Acks: acks},
		Operation: "sendReceipts",
	})
}

// List fetches a transcript page. Unset filters are omitted from the
// query string; EntryTypeFilter is comma-joined. The returned ID is taken
// from the first wire entry's identifier, so an empty page yields ID ""
// — a documented quirk of deriving the id from list contents rather than
// the request argument. Preserved as-is pending a deliberate contract
// change.
func (g *Gateway) List(ctx context.Context, token, conversationID string, params *ListParams) (ListResult, error) {
	query := url.Values{}
	if params != nil {
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.StartTimestamp > 0 {
			query.Set("startTimestamp", strconv.FormatInt(params.StartTimestamp, 10))
		}
		if params.EndTimestamp > 0 {
			query.Set("endTimestamp", strconv.FormatInt(params.EndTimestamp, 10))
		}
		if params.Direction != "" {
			query.Set("direction", string(params.Direction))
		}
		if len(params.EntryTypeFilter) > 0 {
			query.Set("entryTypeFilter", strings.Join(params.EntryTypeFilter, ","))
		}
	}

	var resp entriesResponse
	err := g.exec.Execute(ctx, transport.Request{
		Method:    http.MethodGet,
		Path:      basePath + "/" + conversationID + "/entries",
		Query:     query,
		Token:     token,
		Operation: "listEntries",
		Out:       &resp,
	})
	if err != nil {
		return ListResult{}, err
	}

	result := ListResult{Entries: make([]Entry, 0, len(resp.ConversationEntries))}
	for _, wire := range resp.ConversationEntries {
		entry, err := normalizeEntry(wire)
		if err != nil {
			return ListResult{}, fmt.Errorf("listEntries: %w", err)
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(resp.ConversationEntries) > 0 {
		result.ID = resp.ConversationEntries[0].Identifier
	}

	return result, nil
}

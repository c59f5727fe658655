// ABOUTME: Client facade composing token, conversation, and stream components
// ABOUTME: Each construction owns fresh instances; no state is shared across clients

package client

import (
	"log/slog"
	"net/http"

	"github.com/2389/iamessage-client/internal/config"
	"github.com/2389/iamessage-client/internal/conversation"
	"github.com/2389/iamessage-client/internal/stream"
	"github.com/2389/iamessage-client/internal/token"
	"github.com/2389/iamessage-client/internal/transport"
)

// Client is the top-level handle for one deployment. Every New call
// builds its own component instances, so independent clients never share
// state and need no cross-instance locking.
type Client struct {
	Token        *token.Manager
	Conversation *conversation.Gateway
	Stream       *stream.Controller
}

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	newID      func() string
}

// Option customizes client construction.
type Option func(*options)

// WithLogger injects the logger all components log through. Without it,
// slog.Default() is used — supply a discard-handler logger to silence
// the client entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient overrides the HTTP client used for requests and the
// event stream. The supplied client must not set a global timeout, or
// long-lived streams will be severed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// WithIDGenerator swaps the identifier generator, e.g. for deterministic
// ids under test.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// New validates cfg and builds a client. Missing required configuration
// is a validation error raised here, before any network use.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	exec := transport.NewExecutor(cfg.BaseURL, cfg.RequestTimeout, o.httpClient, o.logger)

	return &Client{
		Token:        token.NewManager(exec, cfg.OrgID, cfg.DeveloperName, cfg.AppName, cfg.ClientVersion, o.logger),
		Conversation: conversation.NewGateway(exec, cfg.DeveloperName, o.newID, o.logger),
		Stream:       stream.NewController(cfg.BaseURL, cfg.OrgID, o.httpClient, o.logger),
	}, nil
}

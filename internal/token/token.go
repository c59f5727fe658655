// ABOUTME: Token lifecycle management for access token issuance and refresh
// ABOUTME: Selects authenticated vs unauthenticated issuance from a tagged union

package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/2389/iamessage-client/internal/transport"
)

// Token errors
var (
	ErrEmptyToken = errors.New("empty token")
)

// Default values applied when CreateParams leaves them unset.
const (
	defaultCapabilitiesVersion = "1"
	defaultPlatform            = "Web"
)

// Token is the credential returned by the issuance endpoints. LastEventID
// is the resumption cursor for the event stream; the manager never stores
// either value.
type Token struct {
	AccessToken string `json:"accessToken"`
	LastEventID string `json:"lastEventId"`
}

// RequestContext identifies the calling application to the service.
type RequestContext struct {
	AppName       string `json:"appName"`
	ClientVersion string `json:"clientVersion"`
}

// AuthenticatedParams carries the credentials selecting the authenticated
// issuance path. Both fields must be non-empty for the path to apply.
type AuthenticatedParams struct {
	AuthorizationType     string
	CustomerIdentityToken string
}

// CreateParams configures token issuance. A nil (or incomplete)
// Authenticated field selects the unauthenticated path; the decision is
// made once here, never re-inspected downstream.
type CreateParams struct {
	Authenticated       *AuthenticatedParams
	CapabilitiesVersion string
	Platform            string
	DeviceID            string
	Context             *RequestContext
}

// authenticated reports whether the params select the authenticated path.
func (p CreateParams) authenticated() bool {
	return p.Authenticated != nil &&
		p.Authenticated.AuthorizationType != "" &&
		p.Authenticated.CustomerIdentityToken != ""
}

// Manager issues and refreshes access tokens. It holds no token state:
// every operation receives and returns credentials explicitly.
type Manager struct {
	exec          *transport.Executor
	orgID         string
	developerName string
	appName       string
	clientVersion string
	logger        *slog.Logger
}

// NewManager creates a token manager bound to one deployment.
func NewManager(exec *transport.Executor, orgID, developerName, appName, clientVersion string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		exec:          exec,
		orgID:         orgID,
		developerName: developerName,
		appName:       appName,
		clientVersion: clientVersion,
		logger:        logger.With("component", "token"),
	}
}

// createRequest is the wire body for both issuance paths.
type createRequest struct {
	OrgID                 string         `json:"orgId"`
	DeveloperName         string         `json:"esDeveloperName"`
	CapabilitiesVersion   string         `json:"capabilitiesVersion"`
	Platform              string         `json:"platform"`
	DeviceID              string         `json:"deviceId,omitempty"`
	Context               RequestContext `json:"context"`
	AuthorizationType     string         `json:"authorizationType,omitempty"`
	CustomerIdentityToken string         `json:"customerIdentityToken,omitempty"`
}

// Create issues a new access token. The authenticated endpoint is used
// only when params carries both an authorization type and a customer
// identity token; everything else goes through the unauthenticated
// endpoint. No retry is attempted on failure.
func (m *Manager) Create(ctx context.Context, params CreateParams) (Token, error) {
	body := createRequest{
		OrgID:               m.orgID,
		DeveloperName:       m.developerName,
		CapabilitiesVersion: params.CapabilitiesVersion,
		Platform:            params.Platform,
		DeviceID:            params.DeviceID,
	}
	if body.CapabilitiesVersion == "" {
		body.CapabilitiesVersion = defaultCapabilitiesVersion
	}
	if body.Platform == "" {
		body.Platform = defaultPlatform
	}
	if params.Context != nil {
		body.Context = *params.Context
	} else {
		body.Context = RequestContext{AppName: m.appName, ClientVersion: m.clientVersion}
	}

	path := "/iamessage/api/v2/authorization/unauthenticated/access-token"
	if params.authenticated() {
		path = "/iamessage/api/v2/authorization/authenticated/access-token"
		body.AuthorizationType = params.Authenticated.AuthorizationType
		body.CustomerIdentityToken = params.Authenticated.CustomerIdentityToken
	}

	var tok Token
	err := m.exec.Execute(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      path,
		Body:      body,
		Operation: "createToken",
		Out:       &tok,
	})
	if err != nil {
		return Token{}, err
	}

	m.logger.Debug("token issued", "authenticated", params.authenticated())
	return tok, nil
}

// Continue refreshes an existing token using the bearer token as the sole
// credential. Returns ErrEmptyToken before any network call when the
// token is empty.
func (m *Manager) Continue(ctx context.Context, accessToken string) (Token, error) {
	if accessToken == "" {
		return Token{}, fmt.Errorf("continuing token: %w", ErrEmptyToken)
	}

	var tok Token
	err := m.exec.Execute(ctx, transport.Request{
		Method:    http.MethodGet,
		Path:      "/iamessage/api/v2/authorization/continuation-access-token",
		Token:     accessToken,
		Operation: "continueToken",
		Out:       &tok,
	})
	if err != nil {
		return Token{}, err
	}

	m.logger.Debug("token continued")
	return tok, nil
}

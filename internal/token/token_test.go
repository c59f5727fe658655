// ABOUTME: Tests for token issuance path selection and refresh
// ABOUTME: Covers authenticated/unauthenticated classification and wire bodies

package token

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/iamessage-client/internal/transport"
)

const (
	unauthenticatedPath = "/iamessage/api/v2/authorization/unauthenticated/access-token"
	authenticatedPath   = "/iamessage/api/v2/authorization/authenticated/access-token"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exec := transport.NewExecutor(srv.URL, 0, nil, logger)
	return NewManager(exec, "00Dxx0000000001", "Embedded_Messaging", "iamessage-client", "1.0.0", logger), srv
}

func TestCreate_UnauthenticatedDefaults(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"tok-1","lastEventId":"evt-9"}`))
	})

	tok, err := mgr.Create(context.Background(), CreateParams{})
	require.NoError(t, err)

	assert.Equal(t, unauthenticatedPath, gotPath)
	assert.Equal(t, "tok-1", tok.AccessToken)
	assert.Equal(t, "evt-9", tok.LastEventID)

	assert.Equal(t, "00Dxx0000000001", gotBody["orgId"])
	assert.Equal(t, "Embedded_Messaging", gotBody["esDeveloperName"])
	assert.Equal(t, "1", gotBody["capabilitiesVersion"])
	assert.Equal(t, "Web", gotBody["platform"])
	assert.Equal(t, map[string]any{
		"appName":       "iamessage-client",
		"clientVersion": "1.0.0",
	}, gotBody["context"])
	assert.NotContains(t, gotBody, "deviceId")
	assert.NotContains(t, gotBody, "authorizationType")
	assert.NotContains(t, gotBody, "customerIdentityToken")
}

func TestCreate_AuthenticatedPath(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"accessToken":"tok-2","lastEventId":""}`))
	})

	_, err := mgr.Create(context.Background(), CreateParams{
		Authenticated: &AuthenticatedParams{
			AuthorizationType:     "JWT",
			CustomerIdentityToken: "identity-token",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, authenticatedPath, gotPath)
	assert.Equal(t, "JWT", gotBody["authorizationType"])
	assert.Equal(t, "identity-token", gotBody["customerIdentityToken"])
}

func TestCreate_IncompleteCredentialsUseUnauthenticatedPath(t *testing.T) {
	tests := []struct {
		name   string
		params *AuthenticatedParams
	}{
		{"nil", nil},
		{"missing identity token", &AuthenticatedParams{AuthorizationType: "JWT"}},
		{"missing authorization type", &AuthenticatedParams{CustomerIdentityToken: "identity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"accessToken":"tok","lastEventId":""}`))
			})

			_, err := mgr.Create(context.Background(), CreateParams{Authenticated: tt.params})
			require.NoError(t, err)
			assert.Equal(t, unauthenticatedPath, gotPath)
		})
	}
}

func TestCreate_OverridesDefaults(t *testing.T) {
	var gotBody map[string]any
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"accessToken":"tok","lastEventId":""}`))
	})

	_, err := mgr.Create(context.Background(), CreateParams{
		CapabilitiesVersion: "2",
		Platform:            "Mobile",
		DeviceID:            "device-7",
		Context:             &RequestContext{AppName: "custom", ClientVersion: "9.9.9"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2", gotBody["capabilitiesVersion"])
	assert.Equal(t, "Mobile", gotBody["platform"])
	assert.Equal(t, "device-7", gotBody["deviceId"])
	assert.Equal(t, map[string]any{
		"appName":       "custom",
		"clientVersion": "9.9.9",
	}, gotBody["context"])
}

func TestCreate_ClassifiedFailure(t *testing.T) {
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad org"}`, http.StatusBadRequest)
	})

	_, err := mgr.Create(context.Background(), CreateParams{})

	var statusErr *transport.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, transport.CategoryInvalidRequest, statusErr.Category)
	assert.Equal(t, "createToken", statusErr.Operation)
}

func TestContinue_SendsBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"accessToken":"tok-next","lastEventId":"evt-3"}`))
	})

	tok, err := mgr.Continue(context.Background(), "tok-prev")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/iamessage/api/v2/authorization/continuation-access-token", gotPath)
	assert.Equal(t, "Bearer tok-prev", gotAuth)
	assert.Equal(t, "tok-next", tok.AccessToken)
	assert.Equal(t, "evt-3", tok.LastEventID)
}

func TestContinue_EmptyTokenNoNetwork(t *testing.T) {
	requests := 0
	mgr, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := mgr.Continue(context.Background(), "")

	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Zero(t, requests, "validation failure must not reach the network")
}

// ABOUTME: Package documentation for the token package
// ABOUTME: Describes token issuance, refresh, and expiry inspection

// Package token manages the access-token lifecycle.
//
// # Overview
//
// Manager issues tokens (Create) and refreshes them (Continue). It is
// stateless: the caller owns the token and the lastEventId resumption
// cursor and passes them into every subsequent operation.
//
// # Path selection
//
// Create targets the authenticated issuance endpoint only when
// CreateParams.Authenticated is set with both a non-empty
// AuthorizationType and CustomerIdentityToken. Any other shape uses the
// unauthenticated endpoint. The decision is resolved once at this
// boundary rather than inspected structurally downstream.
//
// # Expiry inspection
//
// ExpiresAt reads the exp claim from a JWT-shaped access token without
// verifying its signature, so callers can refresh proactively. Validity
// is still decided solely by the service.
package token

// Package common contains constants and sentinel errors shared by the
// client packages.
package common

// TokenStorageKey is the single well-known key the session token is kept
// under in every credential store backend.
const TokenStorageKey = "auth_token"

// AuthHeaderName is the request header carrying the session token.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// DefaultAuthScheme prefixes the token in AuthHeaderName.
const DefaultAuthScheme = "Token"

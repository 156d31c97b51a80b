// Package client talks to the CRM backend.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts: IdentityService (login, registration,
//     current user, bearer token attach/detach), EnrichmentService (lead
//     score, follow-up suggestions) and CRMService (contacts, tasks,
//     policies).
//  2. HTTPClient, a JSON-over-HTTP implementation of all three that attaches
//     the current token to every request and tags each request with an
//     X-Request-ID.
//
// # Error Handling
//
// Failures are classified with sentinel errors matched by errors.Is:
// ErrUnavailable (server unreachable), ErrUnauthorized (401),
// ErrForbidden (403), ErrMalformedResponse (unexpected body). Other non-2xx responses are
// returned as *APIError carrying the server's message, which MessageOf
// extracts for display.
//
// HTTPClient is safe for concurrent use.
package client

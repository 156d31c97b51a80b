// Package access decides what the shell may show.
//
// Route admission answers whether a view renders, waits for session
// restoration, or redirects to the login entry point. Feature admission
// answers whether a premium-only panel, navigation entry or enrichment fetch
// is exposed at all. Both are pure functions of session state.
package access

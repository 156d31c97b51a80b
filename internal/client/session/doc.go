// Package session owns the identity state of the client profile.
//
// A Manager is constructed once at process start from a credential store and
// an identity service and passed explicitly to whoever needs it. It starts in
// the Initializing phase (Loading=true); Restore resolves Loading exactly once
// by validating the stored token against the server, failing closed to
// Anonymous on any error.
//
// Login, Register, Logout, Restore and Invalidate are serialized. Each one
// publishes its outcome as a single state replacement, so observers (see
// Subscribe) never see a user without Authenticated or the reverse.
package session

package session

import "github.com/dmitrijs2005/crmclient/internal/client/models"

type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
	// PhaseErroring is Anonymous with a LastError to display.
	PhaseErroring
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseErroring:
		return "erroring"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the session.
// User is non-nil if and only if Authenticated is true.
type State struct {
	User          *models.User
	Authenticated bool
	Loading       bool
	LastError     string
}

func (s State) Phase() Phase {
	switch {
	case s.Loading && !s.Authenticated:
		return PhaseInitializing
	case s.Authenticated:
		return PhaseAuthenticated
	case s.LastError != "":
		return PhaseErroring
	default:
		return PhaseAnonymous
	}
}

// IsPremium reports the premium entitlement of the signed-in user.
func (s State) IsPremium() bool {
	return s.Authenticated && s.User != nil && s.User.IsPremium
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

package access

import "github.com/dmitrijs2005/crmclient/internal/client/session"

type Kind int

const (
	// KindWait renders a neutral loading indicator and nothing else.
	KindWait Kind = iota
	KindRedirect
	KindRender
	// KindForbidden is a premium route requested without the entitlement.
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindWait:
		return "wait"
	case KindRedirect:
		return "redirect"
	case KindRender:
		return "render"
	case KindForbidden:
		return "forbidden"
	}
	return "unknown"
}

type Decision struct {
	Kind     Kind
	Redirect string
	// Replace means the redirect overwrites the current history entry.
	Replace bool
}

// Admit decides what to do with a request for route given the session state.
// It is evaluated on every navigation and on every session state change.
func Admit(s session.State, route Route) Decision {
	if !route.Protected {
		return Decision{Kind: KindRender}
	}
	if s.Loading {
		return Decision{Kind: KindWait}
	}
	if !s.Authenticated {
		return Decision{Kind: KindRedirect, Redirect: PathLogin, Replace: true}
	}
	if route.Feature != "" && !FeaturesFor(s).Allowed(route.Feature) {
		return Decision{Kind: KindForbidden}
	}
	return Decision{Kind: KindRender}
}

package cli

import (
	"sync"

	"github.com/dmitrijs2005/crmclient/internal/client/access"
	"github.com/dmitrijs2005/crmclient/internal/client/session"
)

// maxRedirects bounds redirect chains within one resolution.
const maxRedirects = 4

// Screen is the resolved outcome of the current history entry.
type Screen struct {
	Target   access.Target
	Decision access.Decision
	// Found is false when the path matches no route.
	Found bool
}

func (s Screen) same(o Screen) bool {
	return s.Found == o.Found && s.Target.Path == o.Target.Path && s.Decision.Kind == o.Decision.Kind
}

// Navigator keeps the history stack and re-admits its top entry on every
// navigation and session change.
type Navigator struct {
	state func() session.State

	mu      sync.Mutex
	history []string
	screen  Screen

	changed chan struct{}
}

func NewNavigator(state func() session.State) *Navigator {
	return &Navigator{
		state:   state,
		changed: make(chan struct{}, 1),
	}
}

// Go pushes path and resolves it.
func (n *Navigator) Go(path string) Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, path)
	return n.resolve()
}

// Back pops the current entry. It reports false when there is nowhere to go.
func (n *Navigator) Back() (Screen, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return n.screen, false
	}
	n.history = n.history[:len(n.history)-1]
	return n.resolve(), true
}

// Refresh re-admits the current entry and signals Changed when the outcome
// differs from the previous one.
func (n *Navigator) Refresh() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return n.screen
	}
	prev := n.screen
	s := n.resolve()
	if !s.same(prev) {
		select {
		case n.changed <- struct{}{}:
		default:
		}
	}
	return s
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.screen
}

func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// Changed receives a value after a Refresh changed the screen.
func (n *Navigator) Changed() <-chan struct{} {
	return n.changed
}

func (n *Navigator) resolve() Screen {
	st := n.state()
	for i := 0; ; i++ {
		top := len(n.history) - 1
		target, ok := access.Match(n.history[top])
		if !ok {
			n.screen = Screen{Target: access.Target{Path: n.history[top]}}
			return n.screen
		}
		// Store the normalized form so Back and History show real routes.
		n.history[top] = target.Path

		d := access.Admit(st, target.Route)
		if d.Kind != access.KindRedirect || i == maxRedirects {
			n.screen = Screen{Target: target, Decision: d, Found: true}
			return n.screen
		}
		if d.Replace {
			n.history[top] = d.Redirect
		} else {
			n.history = append(n.history, d.Redirect)
		}
	}
}

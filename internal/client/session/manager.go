package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/crmclient/internal/client/client"
	"github.com/dmitrijs2005/crmclient/internal/client/credstore"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/dmitrijs2005/crmclient/internal/logging"
)

// User-facing messages used when the server does not provide one.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgPersistFailed      = "Could not save the session"
)

type Manager struct {
	store    credstore.Store
	identity client.IdentityService
	logger   logging.Logger

	// ops serializes every operation that touches the store or the token.
	ops sync.Mutex

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int

	restoreOnce sync.Once
	restored    chan struct{}
}

func New(store credstore.Store, identity client.IdentityService, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		store:    store,
		identity: identity,
		logger:   logger.With("component", "session"),
		state:    State{Loading: true},
		subs:     make(map[int]func(State)),
		restored: make(chan struct{}),
	}
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// IsPremium is safe to call at any time; it is false until a user is
// authenticated.
func (m *Manager) IsPremium() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsPremium()
}

// Subscribe registers fn to receive every new state. fn runs on the
// goroutine that caused the change, after the state lock is released.
func (m *Manager) Subscribe(fn func(State)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Restored is closed once the startup restoration has resolved.
func (m *Manager) Restored() <-chan struct{} {
	return m.restored
}

func (m *Manager) update(fn func(s *State)) {
	m.mu.Lock()
	fn(&m.state)
	snapshot := m.state.clone()
	subs := make([]func(State), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s(snapshot.clone())
	}
}

func (m *Manager) becomeAuthenticated(u *models.User) {
	user := *u
	m.update(func(s *State) {
		s.User = &user
		s.Authenticated = true
		s.LastError = ""
	})
}

func (m *Manager) becomeAnonymous() {
	m.update(func(s *State) {
		s.User = nil
		s.Authenticated = false
	})
}

// Restore validates the stored token, if any, and resolves Loading. Only the
// first call does work; later calls return the current state.
func (m *Manager) Restore(ctx context.Context) State {
	m.restoreOnce.Do(func() { m.restore(ctx) })
	return m.State()
}

func (m *Manager) restore(ctx context.Context) {
	m.ops.Lock()
	defer m.ops.Unlock()
	defer close(m.restored)

	user := m.restoreUser(ctx)
	m.update(func(s *State) {
		s.Loading = false
		s.User = user
		s.Authenticated = user != nil
	})
}

// restoreUser returns the user behind the stored token, or nil after
// discarding a missing, unreadable or rejected token.
func (m *Manager) restoreUser(ctx context.Context) *models.User {
	token, ok, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "cannot read stored token", "error", err)
		m.discardToken(ctx)
		return nil
	}
	if !ok {
		m.logger.Info(ctx, "no stored session")
		return nil
	}

	m.identity.SetAuthToken(token)
	user, err := m.identity.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn(ctx, "stored session rejected", "error", err)
		m.discardToken(ctx)
		return nil
	}

	m.logger.Info(ctx, "session restored", "user_id", user.ID)
	u := *user
	return &u
}

// discardToken clears both the store and the attached token. Store errors are
// only logged: the in-memory state is anonymous regardless.
func (m *Manager) discardToken(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "cannot clear stored token", "error", err)
	}
	m.identity.RemoveAuthToken()
}

// Login authenticates with email and password. Failures are reported through
// the return value and State().LastError.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	return m.authenticate(ctx, "login", MsgLoginFailed, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.identity.Login(ctx, email, password)
	})
}

// Register creates the account and signs in with the returned session in one
// step.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) bool {
	return m.authenticate(ctx, "register", MsgRegistrationFailed, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.identity.Register(ctx, req)
	})
}

func (m *Manager) authenticate(ctx context.Context, op, fallback string, call func(context.Context) (*models.AuthResponse, error)) bool {
	m.ops.Lock()
	defer m.ops.Unlock()

	m.update(func(s *State) { s.LastError = "" })

	resp, err := call(ctx)
	if err != nil {
		msg := client.MessageOf(err)
		if msg == "" {
			msg = fallback
		}
		m.logger.Warn(ctx, op+" failed", "error", err)
		m.update(func(s *State) { s.LastError = msg })
		return false
	}

	if err := m.store.Save(ctx, resp.Token); err != nil {
		m.logger.Error(ctx, op+": cannot persist token", "error", err)
		m.update(func(s *State) { s.LastError = MsgPersistFailed })
		return false
	}
	m.identity.SetAuthToken(resp.Token)

	m.logger.Info(ctx, op+" succeeded", "user_id", resp.User.ID, "premium", resp.User.IsPremium)
	m.becomeAuthenticated(resp.User)
	return true
}

// Logout forgets the session. It cannot fail.
func (m *Manager) Logout(ctx context.Context) {
	m.ops.Lock()
	defer m.ops.Unlock()

	m.discardToken(ctx)
	m.becomeAnonymous()
	m.logger.Info(ctx, "logged out")
}

// Invalidate is Logout triggered by the server rejecting the token of an
// authenticated session.
func (m *Manager) Invalidate(ctx context.Context, reason error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !m.State().Authenticated {
		return
	}
	m.logger.Warn(ctx, "session invalidated by server", "error", reason)
	m.discardToken(ctx)
	m.becomeAnonymous()
}

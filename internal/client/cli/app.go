package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/crmclient/internal/client/access"
	"github.com/dmitrijs2005/crmclient/internal/client/client"
	"github.com/dmitrijs2005/crmclient/internal/client/config"
	"github.com/dmitrijs2005/crmclient/internal/client/credstore"
	"github.com/dmitrijs2005/crmclient/internal/client/enrich"
	"github.com/dmitrijs2005/crmclient/internal/client/services"
	"github.com/dmitrijs2005/crmclient/internal/client/session"
	"github.com/dmitrijs2005/crmclient/internal/logging"
)

// Deps are the collaborators of an App.
type Deps struct {
	Store      credstore.Store
	Identity   client.IdentityService
	CRM        client.CRMService
	Enrichment client.EnrichmentService
	Logger     logging.Logger
	In         io.Reader
	Out        io.Writer
	// StartPath is the first route requested; "/" when empty.
	StartPath string
}

type App struct {
	session   *session.Manager
	contacts  services.ContactService
	tasks     services.TaskService
	scores    *enrich.LeadScores
	followUps *enrich.FollowUps
	nav       *Navigator
	logger    logging.Logger

	in        *bufio.Reader
	out       *syncWriter
	startPath string
	store     credstore.Store

	// background tracks asynchronous recomputes.
	background sync.WaitGroup
}

// NewApp builds an App from configuration: it opens the credential store and
// the HTTP client and binds the process stdin/stdout.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := credstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	api := client.NewHTTPClient(client.Options{
		BaseURL:    cfg.APIBaseURL,
		AuthScheme: cfg.AuthScheme,
		Timeout:    cfg.RequestTimeout,
		Logger:     logger,
	})

	return New(Deps{
		Store:      store,
		Identity:   api,
		CRM:        api,
		Enrichment: api,
		Logger:     logger,
		In:         os.Stdin,
		Out:        os.Stdout,
	}), nil
}

func New(d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	start := d.StartPath
	if start == "" {
		start = access.PathHome
	}

	m := session.New(d.Store, d.Identity, logger)
	contacts := services.NewContactService(d.CRM)

	return &App{
		session:   m,
		contacts:  contacts,
		tasks:     services.NewTaskService(d.CRM),
		scores:    enrich.NewLeadScores(d.Enrichment, contacts.Cache(), m, logger),
		followUps: enrich.NewFollowUps(d.Enrichment, m, logger),
		nav:       NewNavigator(m.State),
		logger:    logger,
		in:        bufio.NewReader(d.In),
		out:       &syncWriter{w: d.Out},
		startPath: start,
		store:     d.Store,
	}
}

// Run restores the session, shows the first view and runs the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	cancel := a.session.Subscribe(func(session.State) { a.nav.Refresh() })
	defer cancel()

	// Restoration starts before any admission decision is made.
	go a.session.Restore(ctx)

	a.printf("Welcome to the CRM client (type 'help' for commands)\n")
	a.render(ctx, a.nav.Go(a.startPath))

	select {
	case <-a.session.Restored():
	case <-ctx.Done():
		return ctx.Err()
	}
	a.drainChanges()
	a.render(ctx, a.nav.Refresh())
	a.afterCommand(ctx)

	runREPL(ctx, a, a.status, a.in)
	a.background.Wait()
	return nil
}

// Close releases the credential store.
func (a *App) Close() error {
	a.background.Wait()
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Authenticated
}

func (a *App) features() access.Features {
	return access.FeaturesFor(a.session)
}

func (a *App) status() string {
	s := a.session.State()
	switch s.Phase() {
	case session.PhaseInitializing:
		return "(loading)"
	case session.PhaseAuthenticated:
		tier := "basic"
		if s.IsPremium() {
			tier = "premium"
		}
		return fmt.Sprintf("(%s %s) %s", s.User.Email, tier, a.nav.Current().Target.Path)
	default:
		return "(guest) " + a.nav.Current().Target.Path
	}
}

// drainChanges discards a pending change signal that has already been
// accounted for by an explicit render.
func (a *App) drainChanges() {
	select {
	case <-a.nav.Changed():
	default:
	}
}

// afterCommand renders the current screen again when a session change moved
// it while the command ran.
func (a *App) afterCommand(ctx context.Context) {
	select {
	case <-a.nav.Changed():
		a.render(ctx, a.nav.Current())
	default:
	}
}

// handleErr reports err to the user. A rejected token ends the session.
func (a *App) handleErr(ctx context.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.session.Invalidate(ctx, err)
		a.printf("Your session has expired. Please log in again.\n")
	case errors.Is(err, client.ErrForbidden):
		if msg := client.MessageOf(err); msg != "" {
			a.printf("Not permitted: %s\n", msg)
		} else {
			a.printf("Not permitted.\n")
		}
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable, try again later.\n")
	default:
		if msg := client.MessageOf(err); msg != "" {
			a.printf("Error: %s\n", msg)
		} else {
			a.printf("Error: %s\n", err)
		}
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// syncWriter serializes writes from the REPL and background recomputes.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

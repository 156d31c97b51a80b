package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/crmclient/internal/client/access"
	"github.com/dmitrijs2005/crmclient/internal/client/client"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/dmitrijs2005/crmclient/internal/logging"
)

// ContactCache is the contact store lead scores are written back to.
type ContactCache interface {
	Get(id int64) (models.Contact, bool)
	Update(id int64, fn func(*models.Contact)) bool
}

// LeadScores serves the lead score panel of the contact detail view.
// A stored score of 0 means "not computed yet".
type LeadScores struct {
	api      client.EnrichmentService
	contacts ContactCache
	ent      access.Entitlements
	logger   logging.Logger
	slot     *Slot[int64, int]

	mu         sync.Mutex
	autoIssued map[int64]struct{}
}

func NewLeadScores(api client.EnrichmentService, contacts ContactCache, ent access.Entitlements, logger logging.Logger) *LeadScores {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LeadScores{
		api:        api,
		contacts:   contacts,
		ent:        ent,
		logger:     logger.With("component", "lead_score"),
		slot:       NewSlot[int64, int](),
		autoIssued: make(map[int64]struct{}),
	}
}

func (l *LeadScores) admitted() bool {
	return access.FeaturesFor(l.ent).Allowed(access.FeatureLeadScore)
}

// OnView returns the score to display for c. A cached non-zero score is
// returned without a request; a zero score triggers one automatic request the
// first time the contact is viewed in this process. On failure the previous
// value is returned along with the error.
func (l *LeadScores) OnView(ctx context.Context, c models.Contact) (int, error) {
	if !l.admitted() {
		return 0, ErrNotAdmitted
	}

	score := c.LeadScore
	if cached, ok := l.contacts.Get(c.ID); ok {
		score = cached.LeadScore
	}
	if score != 0 {
		return score, nil
	}

	l.mu.Lock()
	_, done := l.autoIssued[c.ID]
	l.autoIssued[c.ID] = struct{}{}
	l.mu.Unlock()
	if done {
		return 0, nil
	}

	return l.fetch(ctx, c.ID, 0)
}

// Recompute asks the server for a fresh score. It returns ErrInFlight while a
// request for the same contact is outstanding.
func (l *LeadScores) Recompute(ctx context.Context, contactID int64) (int, error) {
	if !l.admitted() {
		return 0, ErrNotAdmitted
	}
	prev := 0
	if cached, ok := l.contacts.Get(contactID); ok {
		prev = cached.LeadScore
	}
	return l.fetch(ctx, contactID, prev)
}

// InFlight reports whether the recompute affordance must be disabled.
func (l *LeadScores) InFlight(contactID int64) bool {
	return l.slot.InFlight(contactID)
}

func (l *LeadScores) fetch(ctx context.Context, contactID int64, prev int) (int, error) {
	score, err := l.slot.Fetch(ctx, contactID, func(ctx context.Context) (int, error) {
		score, err := l.api.LeadScore(ctx, contactID)
		if err != nil {
			return 0, err
		}
		l.contacts.Update(contactID, func(c *models.Contact) { c.LeadScore = score })
		return score, nil
	})
	if err != nil {
		if !errors.Is(err, ErrInFlight) {
			l.logger.Warn(ctx, "lead score request failed", "contact_id", contactID, "error", err)
			err = fmt.Errorf("lead score for contact %d: %w", contactID, err)
		}
		return prev, err
	}
	l.logger.Debug(ctx, "lead score updated", "contact_id", contactID, "score", score)
	return score, nil
}

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

// FollowUps serves the follow-up suggestion panel of the contact detail view.
type FollowUps struct {
	api    client.EnrichmentService
	ent    access.Entitlements
	logger logging.Logger
	slot   *Slot[int64, []models.Suggestion]

	mu     sync.Mutex
	loaded map[int64][]models.Suggestion
}

func NewFollowUps(api client.EnrichmentService, ent access.Entitlements, logger logging.Logger) *FollowUps {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FollowUps{
		api:    api,
		ent:    ent,
		logger: logger.With("component", "follow_ups"),
		slot:   NewSlot[int64, []models.Suggestion](),
		loaded: make(map[int64][]models.Suggestion),
	}
}

func (f *FollowUps) admitted() bool {
	return access.FeaturesFor(f.ent).Allowed(access.FeatureFollowUps)
}

// OnView returns the suggestions for contactID, loading them automatically the
// first time the contact is viewed.
func (f *FollowUps) OnView(ctx context.Context, contactID int64) ([]models.Suggestion, error) {
	if !f.admitted() {
		return nil, ErrNotAdmitted
	}

	f.mu.Lock()
	cached, seen := f.loaded[contactID]
	if !seen {
		f.loaded[contactID] = nil
	}
	f.mu.Unlock()
	if seen {
		return cached, nil
	}
	return f.fetch(ctx, contactID)
}

// Reload fetches fresh suggestions. It returns ErrInFlight while a request for
// the same contact is outstanding.
func (f *FollowUps) Reload(ctx context.Context, contactID int64) ([]models.Suggestion, error) {
	if !f.admitted() {
		return nil, ErrNotAdmitted
	}
	return f.fetch(ctx, contactID)
}

func (f *FollowUps) InFlight(contactID int64) bool {
	return f.slot.InFlight(contactID)
}

// Cached returns the last loaded suggestions without a request.
func (f *FollowUps) Cached(contactID int64) []models.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded[contactID]
}

func (f *FollowUps) fetch(ctx context.Context, contactID int64) ([]models.Suggestion, error) {
	out, err := f.slot.Fetch(ctx, contactID, func(ctx context.Context) ([]models.Suggestion, error) {
		s, err := f.api.FollowUpSuggestions(ctx, contactID)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.loaded[contactID] = s
		f.mu.Unlock()
		return s, nil
	})
	if err != nil {
		if !errors.Is(err, ErrInFlight) {
			f.logger.Warn(ctx, "follow-up suggestions request failed", "contact_id", contactID, "error", err)
			err = fmt.Errorf("follow-ups for contact %d: %w", contactID, err)
		}
		return f.Cached(contactID), err
	}
	return out, nil
}

// Package credstore persists the single session token of this client
// profile across process restarts.
//
// Every backend keeps exactly one value under common.TokenStorageKey and
// nothing else. Absence of a token is a normal result of Load, not an error,
// and Clear on an empty store succeeds.
package credstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/crmclient/internal/client/config"
	"github.com/dmitrijs2005/crmclient/internal/common"
)

// Store is the credential store contract.
type Store interface {
	// Save persists token, overwriting any previous value.
	Save(ctx context.Context, token string) error
	// Load returns the stored token; ok is false when there is none.
	Load(ctx context.Context) (token string, ok bool, err error)
	// Clear removes the stored token. It is idempotent.
	Clear(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return common.ErrInvalidToken
	}
	return nil
}

// Open returns the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite, "":
		return OpenSQLite(ctx, cfg.StoreDSN)
	case config.StoreRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, cfg.Store)
	}
}

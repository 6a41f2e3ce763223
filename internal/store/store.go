// Package store loads and saves dictionary snapshots.
//
// Three backends are available. The gist and dir backends keep the five
// JSON files the dictionary has always been published as (ko.json,
// en.json, ar.json, description.json and verification.json), each an
// object whose key order is the row order. The sqlite backend keeps one
// table with an explicit position column.
package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dshills/trilex/internal/config"
	"github.com/dshills/trilex/internal/dictionary"
)

// Store persists dictionary snapshots.
type Store interface {
	// Name describes the store, e.g. "gist:8f2c1a0b".
	Name() string
	// Load reads the whole dictionary.
	Load(ctx context.Context) (dictionary.Snapshot, error)
	// Save replaces the whole dictionary.
	Save(ctx context.Context, snap dictionary.Snapshot) error
	// Close releases resources.
	Close() error
}

// Open creates the store selected in cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendGist:
		return NewGist(cfg.GistID, cfg.Token,
			WithAPIURL(cfg.APIURL),
			WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
		)
	case config.BackendDir:
		return NewDir(cfg.Dir), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLite)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

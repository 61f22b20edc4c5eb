package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/metrics"
)

// ErrNotFound is returned by backends when no blob exists for a key.
var ErrNotFound = errors.New("snapshot not found")

// Backend reads and writes raw JSON blobs by key. Writes overwrite; there are no
// cross-key transactions and concurrent writers resolve last-writer-wins.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Fallback reasons reported on snapshot_fallbacks_total.
const (
	ReasonMissing = "missing"
	ReasonBackend = "backend"
	ReasonDecode  = "decode"
)

// StoreParams wires a Store.
type StoreParams struct {
	Backend Backend
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Store is the decode-or-default persistence primitive every collection goes through.
type Store struct {
	backend Backend
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

func NewStore(params StoreParams) (*Store, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("snapshot backend required")
	}
	return &Store{
		backend: params.Backend,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Load returns the value stored under key, or fallback when the key is missing,
// the backend fails, or the blob does not decode. It never returns an error.
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	value, _ := LoadFound(ctx, s, key, fallback)
	return value
}

// LoadFound is Load that also reports whether a stored value was used.
func LoadFound[T any](ctx context.Context, s *Store, key string, fallback T) (T, bool) {
	if s == nil {
		return fallback, false
	}
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.IncSnapshotFallback(KeyLabel(key), ReasonMissing)
			return fallback, false
		}
		s.fallback(ctx, key, ReasonBackend, err)
		return fallback, false
	}
	value, err := DecodeOr(raw, fallback)
	if err != nil {
		s.fallback(ctx, key, ReasonDecode, err)
		return fallback, false
	}
	return value, true
}

// DecodeOr unmarshals raw into a fresh T. On empty input, JSON null, or malformed
// content it returns fallback together with the decode error, if any.
func DecodeOr[T any](raw []byte, fallback T) (T, error) {
	if len(raw) == 0 {
		return fallback, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback, err
	}
	if isJSONNull(raw) {
		return fallback, nil
	}
	return out, nil
}

func isJSONNull(raw []byte) bool {
	var decoded any
	return json.Unmarshal(raw, &decoded) == nil && decoded == nil
}

func (s *Store) fallback(ctx context.Context, key, reason string, err error) {
	s.metrics.IncSnapshotFallback(KeyLabel(key), reason)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"snapshot_key": key,
		"reason":       reason,
		"error":        err.Error(),
	})
	s.logg.Warn(ctx, "snapshot load fell back to default")
}

// Save writes value under key. Failures are logged and counted, never returned.
func (s *Store) Save(ctx context.Context, key string, value any) {
	if err := s.SaveErr(ctx, key, value); err != nil {
		s.logg.Error(s.logg.WithSnapshotKey(ctx, key), "snapshot write failed", err)
	}
}

// SaveErr is Save for callers that need to know the write landed.
func (s *Store) SaveErr(ctx context.Context, key string, value any) error {
	if s == nil {
		return fmt.Errorf("snapshot store not initialized")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	start := time.Now()
	err = s.backend.Put(ctx, key, raw)
	s.metrics.ObserveSnapshotWrite(KeyLabel(key), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

// SaveAll writes every entry and combines the failures.
func (s *Store) SaveAll(ctx context.Context, entries map[string]any) error {
	var errs error
	for key, value := range entries {
		errs = multierr.Append(errs, s.SaveErr(ctx, key, value))
	}
	return errs
}

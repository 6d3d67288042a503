// Package suggest wraps the remote suggestion endpoint with a 24-hour
// per-label cache and static offline fallback tables.
package suggest

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"abctrack/internal/domain/models"
	"abctrack/internal/kv"
)

// cacheTTL is the fixed expiry for cached suggestion sets.
const cacheTTL = 24 * time.Hour

// cachePrefix matches the mobile app's cache key layout. Suggestion entries
// are label-keyed, not caregiver-keyed: the same behavior word yields the
// same suggestions for everyone.
const cachePrefix = "gpt_suggestion_"

// Service is the response-caching wrapper around the remote client.
type Service struct {
	kv       kv.Store
	client   Client
	fallback *fallbackTables
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a suggestion service. It fails only if the embedded
// fallback tables cannot be parsed.
func NewService(store kv.Store, client Client, logger *slog.Logger) (*Service, error) {
	tables, err := loadFallbackTables()
	if err != nil {
		return nil, err
	}
	return &Service{
		kv:       store,
		client:   client,
		fallback: tables,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// WithClock overrides the service clock; tests use it to age cache entries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Get returns suggestions for a behavior label. A fresh cache entry is
// served as-is; otherwise the remote endpoint is called once and the result
// cached. Any remote failure degrades to the static tables with
// IsFallback=true, and the fallback is deliberately not cached so a later
// call retries the remote endpoint.
func (s *Service) Get(ctx context.Context, behaviorLabel string) (*models.SuggestionResult, error) {
	label := normalize(behaviorLabel)
	key := cachePrefix + label

	if cached := s.readCache(ctx, key); cached != nil {
		return &models.SuggestionResult{SuggestionSet: cached.Suggestions}, nil
	}

	set, err := s.client.Fetch(ctx, label)
	if err != nil {
		s.logger.Warn("suggestion call failed, serving fallback",
			"behavior", label,
			"error", err,
		)
		fb := s.fallback.lookup(label)
		return &models.SuggestionResult{SuggestionSet: fb, IsFallback: true}, nil
	}

	s.writeCache(ctx, key, set)
	return &models.SuggestionResult{SuggestionSet: *set}, nil
}

// readCache returns a cache entry younger than the TTL, or nil. Corrupted or
// stale entries are treated as misses.
func (s *Service) readCache(ctx context.Context, key string) *models.CachedSuggestion {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return nil
	}

	var entry models.CachedSuggestion
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil
	}

	age := s.now().UnixMilli() - entry.Timestamp
	if age >= cacheTTL.Milliseconds() {
		return nil
	}
	return &entry
}

func (s *Service) writeCache(ctx context.Context, key string, set *models.SuggestionSet) {
	entry := models.CachedSuggestion{
		Suggestions: *set,
		Timestamp:   s.now().UnixMilli(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	// A failed cache write only costs a future remote call.
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		s.logger.Warn("suggestion cache write failed", "key", key, "error", err)
	}
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

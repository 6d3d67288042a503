// Package store implements the per-child record store: one JSON document per
// child in a flat key-value keyspace, mutated by whole-document
// read-modify-write. Writes to a given child are serialized through a per-key
// mutex so rapid successive mutations cannot lose an update.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
	"abctrack/internal/kv"
)

// RecordStore translates between ChildRecord documents and the key-value
// persistence layer.
type RecordStore struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRecordStore creates a record store over the given key-value backend.
func NewRecordStore(store kv.Store, logger *slog.Logger) *RecordStore {
	return &RecordStore{
		kv:     store,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// WithClock overrides the store's clock. Tests use this to pin updated_at.
func (s *RecordStore) WithClock(now func() time.Time) *RecordStore {
	s.now = now
	return s
}

// lockFor returns the mutex serializing writes to one storage key.
func (s *RecordStore) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// CreateChild generates the immutable child id, writes a fresh record with
// both log arrays present and is_deleted=false, and returns it. The storage
// id is lowercase(name) + "_" + uuid and never changes, even if the name is
// edited later.
func (s *RecordStore) CreateChild(ctx context.Context, userID, name, pronouns string) (string, *models.ChildRecord, error) {
	childUUID := uuid.New().String()
	lower := strings.ToLower(strings.TrimSpace(name))
	id := lower + "_" + childUUID

	now := s.now()
	record := &models.ChildRecord{
		ChildUUID:            childUUID,
		ChildName:            lower,
		ChildNameCapitalized: capitalize(strings.TrimSpace(name)),
		Pronouns:             pronouns,
		CreatedAt:            now,
		UpdatedAt:            now,
		IsDeleted:            false,
		CompletedLogs: models.CompletedLogs{
			Positive: []models.LogEntry{},
			Negative: []models.LogEntry{},
		},
	}

	if err := s.write(ctx, userID, id, record); err != nil {
		return "", nil, err
	}

	s.logger.Info("child created", "id", id, "user_id", userID)
	return id, record, nil
}

// LoadChild reads and parses one child document. A missing key is
// domain.ErrNotFound; an unparseable value is reported as a corrupted record
// and the key is left in place for the purge maintenance operation.
func (s *RecordStore) LoadChild(ctx context.Context, userID, id string) (*models.ChildRecord, error) {
	key := userKey(userID, id)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.NotFoundError{Message: "child not found: " + id}
	}

	var record models.ChildRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &domain.CorruptedRecordError{Key: id, Reason: err.Error()}
	}
	ensureLogArrays(&record)
	return &record, nil
}

// SaveChild refreshes updated_at and overwrites the whole document.
func (s *RecordStore) SaveChild(ctx context.Context, userID, id string, record *models.ChildRecord) error {
	record.UpdatedAt = s.now()
	return s.write(ctx, userID, id, record)
}

// Mutate runs a read-modify-write of one child document under the per-child
// write lock. fn sees the freshly loaded record and may modify it in place.
func (s *RecordStore) Mutate(ctx context.Context, userID, id string, fn func(*models.ChildRecord) error) (*models.ChildRecord, error) {
	key := userKey(userID, id)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.LoadChild(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	if err := s.SaveChild(ctx, userID, id, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListChildren enumerates this caregiver's non-deleted child records.
// Reserved keys, corrupted values, and entries missing the required id or
// name fields are skipped, never deleted.
func (s *RecordStore) ListChildren(ctx context.Context, userID string) ([]models.ChildRecord, []string, error) {
	ids, err := s.childKeys(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	prefix := userPrefix(userID)
	full := make([]string, len(ids))
	for i, id := range ids {
		full[i] = prefix + id
	}

	pairs, err := s.kv.MultiGet(ctx, full)
	if err != nil {
		return nil, nil, err
	}

	records := make([]models.ChildRecord, 0, len(pairs))
	listedIDs := make([]string, 0, len(pairs))
	for _, p := range pairs {
		var record models.ChildRecord
		if err := json.Unmarshal([]byte(p.Value), &record); err != nil {
			s.logger.Warn("skipping corrupted record", "key", p.Key)
			continue
		}
		if record.ChildUUID == "" || (record.ChildName == "" && record.ChildNameCapitalized == "") {
			continue // not a child document
		}
		if record.IsDeleted {
			continue
		}
		ensureLogArrays(&record)
		records = append(records, record)
		listedIDs = append(listedIDs, strings.TrimPrefix(p.Key, prefix))
	}
	return records, listedIDs, nil
}

// SoftDeleteChild marks the record deleted. Logs and fields are retained and
// the record stays loadable by id; only listings exclude it.
func (s *RecordStore) SoftDeleteChild(ctx context.Context, userID, id string) error {
	_, err := s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		record.IsDeleted = true
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("child soft-deleted", "id", id, "user_id", userID)
	return nil
}

// UpdateChild edits the stored name fields and pronouns. The storage id and
// child_uuid never change.
func (s *RecordStore) UpdateChild(ctx context.Context, userID, id, name, pronouns string) (*models.ChildRecord, error) {
	return s.Mutate(ctx, userID, id, func(record *models.ChildRecord) error {
		if name != "" {
			trimmed := strings.TrimSpace(name)
			record.ChildName = strings.ToLower(trimmed)
			record.ChildNameCapitalized = capitalize(trimmed)
		}
		if pronouns != "" {
			record.Pronouns = pronouns
		}
		return nil
	})
}

// childKeys returns the bare (unprefixed) candidate child ids for a user.
func (s *RecordStore) childKeys(ctx context.Context, userID string) ([]string, error) {
	keys, err := s.kv.GetAllKeys(ctx)
	if err != nil {
		return nil, err
	}

	prefix := userPrefix(userID)
	var ids []string
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		bare := strings.TrimPrefix(k, prefix)
		if isReserved(bare) {
			continue
		}
		ids = append(ids, bare)
	}
	return ids, nil
}

func (s *RecordStore) write(ctx context.Context, userID, id string, record *models.ChildRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return &domain.StorageError{Op: "set", Key: id, Err: err}
	}
	return s.kv.Set(ctx, userKey(userID, id), string(payload))
}

// ensureLogArrays keeps the both-arrays-present invariant across records
// written before a partition existed.
func ensureLogArrays(record *models.ChildRecord) {
	if record.CompletedLogs.Positive == nil {
		record.CompletedLogs.Positive = []models.LogEntry{}
	}
	if record.CompletedLogs.Negative == nil {
		record.CompletedLogs.Negative = []models.LogEntry{}
	}
}

func capitalize(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(name)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

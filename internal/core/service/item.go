package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
)

// ItemService implements the owner-scoped list/create/update/delete flow for any item kind.
// A missing item and an item owned by someone else both surface as domain.ErrNotFound.
type ItemService[T domain.Item[T], P domain.Patch[T]] struct {
	repo      port.ItemRepository[T]
	cache     port.CacheRepository
	cacheTTL  time.Duration
	telemetry port.Telemetry
	now       func() time.Time
}

type ItemOption func(*itemOptions)

type itemOptions struct {
	cache     port.CacheRepository
	cacheTTL  time.Duration
	telemetry port.Telemetry
	now       func() time.Time
}

func WithCache(cache port.CacheRepository, ttl time.Duration) ItemOption {
	return func(o *itemOptions) {
		o.cache = cache
		o.cacheTTL = ttl
	}
}

func WithTelemetry(telemetry port.Telemetry) ItemOption {
	return func(o *itemOptions) {
		o.telemetry = telemetry
	}
}

func WithClock(now func() time.Time) ItemOption {
	return func(o *itemOptions) {
		o.now = now
	}
}

func NewItemService[T domain.Item[T], P domain.Patch[T]](repo port.ItemRepository[T], opts ...ItemOption) *ItemService[T, P] {
	options := itemOptions{
		telemetry: tel.NewNoOpProbe(),
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &ItemService[T, P]{
		repo:      repo,
		cache:     options.cache,
		cacheTTL:  options.cacheTTL,
		telemetry: options.telemetry,
		now:       options.now,
	}
}

func NewTaskService(repo port.ItemRepository[domain.Task], opts ...ItemOption) *ItemService[domain.Task, domain.TaskPatch] {
	return NewItemService[domain.Task, domain.TaskPatch](repo, opts...)
}

func NewNoteService(repo port.ItemRepository[domain.Note], opts ...ItemOption) *ItemService[domain.Note, domain.NotePatch] {
	return NewItemService[domain.Note, domain.NotePatch](repo, opts...)
}

func (s *ItemService[T, P]) kind() string {
	var zero T
	return zero.Kind()
}

// Listings are cached under "<kind>:owner:<id>:v<generation>". Every mutation bumps the
// owner's generation, so a listing read before the bump can only land under a retired key.
func (s *ItemService[T, P]) ownerPrefix(ownerID int) string {
	return fmt.Sprintf("%s:owner:%d:", s.kind(), ownerID)
}

func (s *ItemService[T, P]) generationKey(ownerID int) string {
	return s.ownerPrefix(ownerID) + "gen"
}

func (s *ItemService[T, P]) snapshotPrefix(ownerID int) string {
	return s.ownerPrefix(ownerID) + "v"
}

func (s *ItemService[T, P]) cacheKey(ownerID int, generation int64) string {
	return fmt.Sprintf("%s%d", s.snapshotPrefix(ownerID), generation)
}

func (s *ItemService[T, P]) List(ctx context.Context, callerID int) ([]T, error) {
	ctx, done := tel.TrackService(ctx, s.telemetry, s.kind(), "List", callerID)

	key, cacheable := s.listingKey(ctx, callerID)

	if cacheable {
		if items, ok := s.cached(ctx, key); ok {
			return items, done(nil)
		}
	}

	items, err := s.repo.ListByOwner(ctx, callerID)

	if err != nil {
		return nil, done(err)
	}

	if cacheable {
		s.store(ctx, key, items)
	}

	return items, done(nil)
}

func (s *ItemService[T, P]) Create(ctx context.Context, callerID int, item T) (T, error) {
	ctx, done := tel.TrackService(ctx, s.telemetry, s.kind(), "Create", callerID)

	normalized, err := item.Normalize()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	created, err := s.repo.Create(ctx, normalized.Stamp(callerID, uuid.New(), s.now()))

	if err != nil {
		var zero T
		return zero, done(err)
	}

	s.invalidate(ctx, callerID)
	s.telemetry.RecordBusinessEvent(ctx, "created", s.kind(), created.Identity().String(), callerID, nil)

	return created, done(nil)
}

func (s *ItemService[T, P]) Update(ctx context.Context, callerID int, id string, patch P) (T, error) {
	var zero T

	ctx, done := tel.TrackService(ctx, s.telemetry, s.kind(), "Update", callerID)

	if err := patch.Validate(); err != nil {
		return zero, done(err)
	}

	existing, err := s.owned(ctx, callerID, id)

	if err != nil {
		return zero, done(err)
	}

	updated, err := s.repo.Update(ctx, patch.Apply(existing, s.now()))

	if err != nil {
		return zero, done(err)
	}

	s.invalidate(ctx, callerID)
	s.telemetry.RecordBusinessEvent(ctx, "updated", s.kind(), id, callerID, nil)

	return updated, done(nil)
}

func (s *ItemService[T, P]) Delete(ctx context.Context, callerID int, id string) error {
	ctx, done := tel.TrackService(ctx, s.telemetry, s.kind(), "Delete", callerID)

	if _, err := s.owned(ctx, callerID, id); err != nil {
		return done(err)
	}

	if err := s.repo.DeleteByUUID(ctx, id); err != nil {
		return done(err)
	}

	s.invalidate(ctx, callerID)
	s.telemetry.RecordBusinessEvent(ctx, "deleted", s.kind(), id, callerID, nil)

	return done(nil)
}

// owned loads the item and hides it from anyone but its owner.
func (s *ItemService[T, P]) owned(ctx context.Context, callerID int, id string) (T, error) {
	var zero T

	if _, err := uuid.Parse(id); err != nil {
		return zero, domain.ErrNotFound
	}

	item, err := s.repo.GetByUUID(ctx, id)

	if err != nil {
		return zero, err
	}

	if item.Owner() != callerID {
		return zero, domain.ErrNotFound
	}

	return item, nil
}

// listingKey resolves the snapshot key for the owner's current generation.
// It must be read before the store is queried.
func (s *ItemService[T, P]) listingKey(ctx context.Context, ownerID int) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	genKey := s.generationKey(ownerID)
	generation, err := s.cache.Counter(ctx, genKey)

	if err != nil {
		s.telemetry.RecordError(ctx, "cache.counter", err, map[string]interface{}{"key": genKey})
		return "", false
	}

	return s.cacheKey(ownerID, generation), true
}

func (s *ItemService[T, P]) cached(ctx context.Context, key string) ([]T, bool) {
	payload, err := s.cache.Get(ctx, key)

	if err != nil {
		s.telemetry.RecordError(ctx, "cache.get", err, map[string]interface{}{"key": key})
		return nil, false
	}

	if payload == nil {
		s.telemetry.RecordCacheLookup(ctx, key, false)
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		s.telemetry.RecordError(ctx, "cache.decode", err, map[string]interface{}{"key": key})
		if err := s.cache.Delete(ctx, key); err != nil {
			s.telemetry.RecordError(ctx, "cache.delete", err, map[string]interface{}{"key": key})
		}
		return nil, false
	}

	s.telemetry.RecordCacheLookup(ctx, key, true)

	return items, true
}

func (s *ItemService[T, P]) store(ctx context.Context, key string, items []T) {
	payload, err := json.Marshal(items)

	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.telemetry.RecordError(ctx, "cache.set", err, map[string]interface{}{"key": key})
	}
}

// invalidate retires the owner's current generation, then drops the snapshots it left behind.
func (s *ItemService[T, P]) invalidate(ctx context.Context, ownerID int) {
	if s.cache == nil {
		return
	}

	genKey := s.generationKey(ownerID)
	if _, err := s.cache.Increment(ctx, genKey); err != nil {
		s.telemetry.RecordError(ctx, "cache.increment", err, map[string]interface{}{"key": genKey})
	}

	prefix := s.snapshotPrefix(ownerID)
	if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
		s.telemetry.RecordError(ctx, "cache.delete", err, map[string]interface{}{"prefix": prefix})
	}
}

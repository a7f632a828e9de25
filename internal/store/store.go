// Package store holds the canonical stakeholder → entity → activity tree.
//
// Every mutation builds a new immutable Snapshot, persists it, swaps it in
// and then notifies subscribers. Readers always get a complete snapshot.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/alexanderramin/procmap/internal/repository"
	"github.com/google/uuid"
)

// Snapshot is one immutable version of the store's state. Callers must
// treat it as read-only; the store shares unchanged records between
// consecutive snapshots.
type Snapshot struct {
	CurrentView  domain.View
	Stakeholders []domain.Stakeholder

	idx *index
}

func newSnapshot(view domain.View, stakeholders []domain.Stakeholder) *Snapshot {
	return &Snapshot{
		CurrentView:  view,
		Stakeholders: stakeholders,
		idx:          buildIndex(stakeholders),
	}
}

func emptySnapshot() *Snapshot {
	return newSnapshot(domain.DefaultView, []domain.Stakeholder{})
}

// Store is the single owner of the hierarchy.
type Store struct {
	repo     repository.StateRepo
	key      string
	newID    func() string
	observer MutationObserver
	logger   *slog.Logger

	mu      sync.Mutex // serializes mutations and notifications
	current atomic.Pointer[Snapshot]

	subMu   sync.Mutex
	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func(*Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithObserver reports every mutation to obs.
func WithObserver(obs MutationObserver) Option {
	return func(s *Store) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStorageKey overrides the persisted record key.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open restores the store from repo. A missing or undecodable record yields
// the empty initial state; only a failing repository read is an error, so
// that an unreadable database is never silently overwritten.
func Open(ctx context.Context, repo repository.StateRepo, opts ...Option) (*Store, error) {
	s := &Store{
		repo:     repo,
		key:      StorageKey,
		newID:    uuid.NewString,
		observer: NoopMutationObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	return s, nil
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	slot, err := s.repo.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptySnapshot(), nil
		}
		return nil, fmt.Errorf("loading persisted state: %w", err)
	}

	snap, err := decodeSnapshot(slot.Value)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable persisted state",
			"key", s.key, "revision", slot.Revision, "error", err.Error())
		return emptySnapshot(), nil
	}
	return snap, nil
}

// Snapshot returns the current snapshot. The pointer changes on every
// effective mutation and stays the same otherwise.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// CurrentView returns the view selector.
func (s *Store) CurrentView() domain.View {
	return s.Snapshot().CurrentView
}

// Stakeholders returns a deep copy of the current stakeholder sequence.
func (s *Store) Stakeholders() []domain.Stakeholder {
	return domain.CloneStakeholders(s.Snapshot().Stakeholders)
}

// Subscribe registers fn to be called with each new snapshot, after it has
// been persisted and installed. Callbacks run synchronously in
// subscription order and must not mutate the store.
func (s *Store) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(snap *Snapshot) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// commit persists next and installs it. On a persistence error the
// current snapshot is kept. Caller must hold s.mu.
func (s *Store) commit(ctx context.Context, next *Snapshot) error {
	data, err := encodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.repo.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting state: %w", err)
	}
	s.current.Store(next)
	s.publish(next)
	return nil
}

const maxIDAttempts = 8

// freshID returns a generated ID that is not already used in snap. A
// generator that keeps colliding is replaced by UUIDs.
func (s *Store) freshID(snap *Snapshot) string {
	gen := s.newID
	for attempt := 1; ; attempt++ {
		if attempt > maxIDAttempts {
			gen = uuid.NewString
		}
		id := gen()
		if id != "" && !snap.idx.has(id) {
			return id
		}
	}
}

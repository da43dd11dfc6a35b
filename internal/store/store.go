package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Keyed is implemented by entities addressable by a natural key.
type Keyed interface {
	Key() string
}

// Remote is the REST surface a store mirrors.
type Remote[T any] interface {
	List(ctx context.Context) ([]T, error)
	// Create returns the created item, or nil when the service only
	// acknowledges the write.
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, key string, item T) error
	Delete(ctx context.Context, key string) error
}

//go:generate mockgen -destination=../mocks/confirmer.go -package=mocks github.com/beesaferoot/condo-console/internal/store Confirmer

// Confirmer asks the user to acknowledge a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  = ConfirmFunc(func(context.Context, string) bool { return false })
)

// Reconcile selects how the mirror is refreshed after a successful create.
// Updates always reload and removals always filter locally.
type Reconcile int

const (
	// ReloadAfterWrite fetches the whole collection again.
	ReloadAfterWrite Reconcile = iota
	// SpliceCreated inserts the object echoed by the service, falling back
	// to a reload when nothing usable came back.
	SpliceCreated
)

func (r Reconcile) String() string {
	if r == SpliceCreated {
		return "splice"
	}
	return "reload"
}

// Observer receives per-operation telemetry.
type Observer interface {
	ObserveOp(entity string, op Op, err error, elapsed time.Duration)
	SetBusy(entity string, busy bool)
	SetSize(entity string, n int)
}

type nopObserver struct{}

func (nopObserver) ObserveOp(string, Op, error, time.Duration) {}
func (nopObserver) SetBusy(string, bool)                      {}
func (nopObserver) SetSize(string, int)                       {}

type Config[T Keyed] struct {
	Entity    string // plural, used for collection messages
	Noun      string // singular, used for item messages and prompts
	Remote    Remote[T]
	Reconcile Reconcile
	// Toggle returns a copy of the item with the named boolean field
	// negated. Nil means the entity has no toggleable fields.
	Toggle    func(item T, field string) (T, error)
	Confirmer Confirmer
	Observer  Observer
	Logger    *slog.Logger
}

// Store mirrors one remote collection. Only one operation may be in flight
// at a time; concurrent calls are rejected with a KindBusy error.
type Store[T Keyed] struct {
	entity    string
	noun      string
	remote    Remote[T]
	reconcile Reconcile
	toggle    func(T, string) (T, error)
	confirm   Confirmer
	observer  Observer
	logger    *slog.Logger

	busy atomic.Bool

	mu     sync.RWMutex
	items  []T
	loaded bool
	err    error
}

func New[T Keyed](cfg Config[T]) *Store[T] {
	if cfg.Remote == nil {
		panic("store: remote is required")
	}
	s := &Store[T]{
		entity:    cfg.Entity,
		noun:      cfg.Noun,
		remote:    cfg.Remote,
		reconcile: cfg.Reconcile,
		toggle:    cfg.Toggle,
		confirm:   cfg.Confirmer,
		observer:  cfg.Observer,
		logger:    cfg.Logger,
		items:     []T{},
	}
	if s.noun == "" {
		s.noun = s.entity
	}
	if s.confirm == nil {
		s.confirm = NeverConfirm
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Store[T]) Entity() string {
	return s.entity
}

func (s *Store[T]) Noun() string {
	return s.noun
}

func (s *Store[T]) Reconcile() Reconcile {
	return s.reconcile
}

// Items returns a copy of the mirror.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the mirrored item with the given key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loaded reports whether at least one load succeeded.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Busy reports whether an operation is in flight.
func (s *Store[T]) Busy() bool {
	return s.busy.Load()
}

// Err returns the failure of the most recent operation, or nil.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Load replaces the mirror with the remote collection.
func (s *Store[T]) Load(ctx context.Context) error {
	return s.run(ctx, OpLoad, func() error {
		return s.load(ctx)
	})
}

// Create posts item and reconciles the mirror according to the store's
// Reconcile policy.
func (s *Store[T]) Create(ctx context.Context, item T) error {
	return s.run(ctx, OpCreate, func() error {
		created, err := s.remote.Create(ctx, item)
		if err != nil {
			return s.fail(KindMutation, OpCreate, err)
		}
		if err := ctx.Err(); err != nil {
			return s.fail(KindMutation, OpCreate, err)
		}
		if s.reconcile == SpliceCreated && created != nil && hasKey(*created) {
			s.splice(*created)
			return nil
		}
		return s.load(ctx)
	})
}

// Update replaces the item addressed by key and reloads the collection.
func (s *Store[T]) Update(ctx context.Context, key string, item T) error {
	return s.run(ctx, OpUpdate, func() error {
		return s.update(ctx, key, item)
	})
}

// Toggle negates one boolean field of item and sends the full object.
func (s *Store[T]) Toggle(ctx context.Context, item T, field string) error {
	return s.run(ctx, OpToggle, func() error {
		if s.toggle == nil {
			return &Error{Kind: KindValidation, Op: OpToggle, Entity: s.noun, Err: ErrNotToggleable}
		}
		flipped, err := s.toggle(item, field)
		if err != nil {
			return &Error{Kind: KindValidation, Op: OpToggle, Entity: s.noun, Err: err}
		}
		return s.update(ctx, item.Key(), flipped)
	})
}

// Remove deletes the item addressed by key after the store's Confirmer
// agrees. It reports false with a nil error when the user declined, in
// which case nothing was sent and no state changed.
func (s *Store[T]) Remove(ctx context.Context, key string) (bool, error) {
	if s.Busy() {
		return false, &Error{Kind: KindBusy, Op: OpRemove, Entity: s.noun, Err: ErrBusy}
	}
	if !s.confirm.Confirm(ctx, fmt.Sprintf("Remove %s %s?", s.noun, key)) {
		s.logger.Debug("removal declined", "entity", s.entity, "key", key)
		return false, nil
	}
	err := s.run(ctx, OpRemove, func() error {
		if err := s.remote.Delete(ctx, key); err != nil {
			return s.fail(KindMutation, OpRemove, err)
		}
		if err := ctx.Err(); err != nil {
			return s.fail(KindMutation, OpRemove, err)
		}
		s.drop(key)
		return nil
	})
	return err == nil, err
}

func (s *Store[T]) run(ctx context.Context, op Op, fn func() error) error {
	if !s.busy.CompareAndSwap(false, true) {
		err := &Error{Kind: KindBusy, Op: op, Entity: s.noun, Err: ErrBusy}
		s.observer.ObserveOp(s.entity, op, err, 0)
		return err
	}
	s.observer.SetBusy(s.entity, true)
	defer func() {
		s.busy.Store(false)
		s.observer.SetBusy(s.entity, false)
	}()

	s.setErr(nil)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.observer.ObserveOp(s.entity, op, err, elapsed)

	if err != nil {
		// results for an abandoned view are dropped
		if ctx.Err() == nil {
			s.setErr(err)
		}
		s.logger.Debug("store operation failed", "entity", s.entity, "op", op, "elapsed", elapsed, "error", err)
		return err
	}
	s.logger.Debug("store operation", "entity", s.entity, "op", op, "elapsed", elapsed, "items", s.Len())
	return nil
}

func (s *Store[T]) load(ctx context.Context) error {
	items, err := s.remote.List(ctx)
	if err != nil {
		return s.fail(KindLoad, OpLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return s.fail(KindLoad, OpLoad, err)
	}
	s.mu.Lock()
	s.items = append(make([]T, 0, len(items)), items...)
	s.loaded = true
	s.mu.Unlock()
	s.observer.SetSize(s.entity, len(items))
	return nil
}

func (s *Store[T]) update(ctx context.Context, key string, item T) error {
	if err := s.remote.Update(ctx, key, item); err != nil {
		return s.fail(KindMutation, OpUpdate, err)
	}
	return s.load(ctx)
}

// splice replaces the item sharing created's key, or appends it.
func (s *Store[T]) splice(created T) {
	s.mu.Lock()
	key := created.Key()
	replaced := false
	for i, item := range s.items {
		if item.Key() == key {
			s.items[i] = created
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, created)
	}
	n := len(s.items)
	s.mu.Unlock()
	s.observer.SetSize(s.entity, n)
}

func (s *Store[T]) drop(key string) {
	s.mu.Lock()
	kept := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.observer.SetSize(s.entity, len(kept))
}

func (s *Store[T]) fail(kind Kind, op Op, err error) error {
	entity := s.noun
	if op == OpLoad {
		entity = s.entity
	}
	return &Error{Kind: kind, Op: op, Entity: entity, Err: err}
}

func (s *Store[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func hasKey[T Keyed](item T) bool {
	key := item.Key()
	return key != "" && key != "0"
}

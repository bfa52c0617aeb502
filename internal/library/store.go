package library

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Persister receives the full collection after every mutation.
type Persister interface {
	Save(ctx context.Context, books []domain.Book) error
}

// Backend is what Open needs: something to load the collection from and to
// save it back to. *persistence.Adapter satisfies it.
type Backend interface {
	Persister
	Load(ctx context.Context) []domain.Book
}

// Store is the in-memory book collection and the only writer of it.
// Every operation holds one mutex for its full duration, persistence
// included, so operations never interleave.
type Store struct {
	mu        sync.Mutex
	books     []domain.Book // insertion order
	persister Persister
	logger    logger.Logger
	strict    bool
	now       func() time.Time
	lastID    int64
	dirty     bool

	subs    map[int]chan Event
	nextSub int
}

// Option customizes a Store.
type Option func(*Store)

// WithStrict enables rejection of out-of-range input instead of accepting
// or clamping it.
func WithStrict(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over an already loaded collection.
func New(books []domain.Book, p Persister, opts ...Option) *Store {
	s := &Store{
		books:     make([]domain.Book, len(books)),
		persister: p,
		logger:    logger.NewNop(),
		now:       time.Now,
		subs:      make(map[int]chan Event),
	}
	copy(s.books, books)
	for _, opt := range opts {
		opt(s)
	}

	for _, b := range s.books {
		if b.ID > s.lastID {
			s.lastID = b.ID
		}
	}
	return s
}

// Open loads the collection from b and returns a store persisting to it.
func Open(ctx context.Context, b Backend, opts ...Option) *Store {
	s := New(b.Load(ctx), b, opts...)
	s.logger.Info("library opened",
		logger.Int("books", len(s.books)),
		logger.Bool("strict", s.strict))
	return s
}

// ─────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────

// All returns a copy of every book in insertion order.
func (s *Store) All() []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// FindByID returns the book with the given id.
func (s *Store) FindByID(id int64) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.books[i], true
	}
	return domain.Book{}, false
}

// Search returns the books matching query, in insertion order.
func (s *Store) Search(query string) []domain.Book {
	return domain.Filter(s.All(), query)
}

// InSection returns the books on one shelf, in insertion order.
func (s *Store) InSection(sec domain.Section) []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Book, 0)
	for _, b := range s.books {
		if b.Section == sec {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of books.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.books)
}

// Strict reports whether strict validation is enabled.
func (s *Store) Strict() bool {
	return s.strict
}

// ─────────────────────────────────────────────────────────────────
// Durability
// ─────────────────────────────────────────────────────────────────

// Dirty reports whether the last save failed and memory is ahead of the
// durable copy.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty
}

// Flush saves the collection if a previous save failed. It is a no-op when
// the store is clean.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		return err
	}
	s.dirty = false
	s.logger.Info("pending library changes saved", logger.Int("books", len(s.books)))
	s.publishLocked(Event{Op: OpFlush, Persisted: true})
	return nil
}

// persistLocked saves the collection and tracks failures in s.dirty.
// Callers must hold s.mu.
func (s *Store) persistLocked(ctx context.Context) bool {
	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		s.dirty = true
		s.logger.Error("failed to save library, will retry",
			logger.Int("books", len(s.books)),
			logger.Error(err))
		return false
	}
	s.dirty = false
	return true
}

// commitLocked persists after a mutation, notifies subscribers and builds
// the Result. Callers must hold s.mu.
func (s *Store) commitLocked(ctx context.Context, op Op, b domain.Book, status Status) Result {
	persisted := s.persistLocked(ctx)
	s.logger.Debug("book updated",
		logger.String("op", string(op)),
		logger.Int64("id", b.ID),
		logger.String("status", string(status)),
		logger.Bool("persisted", persisted))
	s.publishLocked(Event{Op: op, ID: b.ID, Persisted: persisted})
	return Result{Status: status, Book: b, Persisted: persisted}
}

// unchangedLocked builds the Result of an operation that did not modify the
// collection. Callers must hold s.mu.
func (s *Store) unchangedLocked(b domain.Book, status Status) Result {
	return Result{Status: status, Book: b, Persisted: !s.dirty}
}

func (s *Store) snapshotLocked() []domain.Book {
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked returns a millisecond timestamp, bumped past the last issued
// id so that ids stay unique even within the same millisecond.
func (s *Store) nextIDLocked() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}

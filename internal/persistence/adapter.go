package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Adapter loads and saves the book collection and the theme flag.
// Loading never fails: anything unreadable falls back to the seed library.
type Adapter struct {
	kv      KV
	seed    []domain.Book
	ambient domain.Theme
	logger  logger.Logger
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithSeed replaces the built-in seed library.
func WithSeed(books []domain.Book) Option {
	return func(a *Adapter) { a.seed = books }
}

// WithAmbientTheme sets the theme used when none has been saved.
func WithAmbientTheme(t domain.Theme) Option {
	return func(a *Adapter) { a.ambient = t }
}

// NewAdapter creates an adapter over kv.
func NewAdapter(kv KV, log logger.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		kv:      kv,
		seed:    DefaultSeed(),
		ambient: domain.ThemeLight,
		logger:  log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load returns the persisted collection, or a copy of the seed when the key
// is absent or cannot be decoded.
func (a *Adapter) Load(ctx context.Context) []domain.Book {
	data, err := a.kv.Get(ctx, KeyBooks)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.logger.Info("no saved library, using seed data",
				logger.Int("books", len(a.seed)))
		} else {
			a.logger.Warn("failed to read saved library, using seed data",
				logger.Error(err))
		}
		return a.seedCopy()
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		a.logger.Warn("saved library is malformed, using seed data",
			logger.Error(err))
		return a.seedCopy()
	}
	if books == nil {
		a.logger.Warn("saved library is null, using seed data")
		return a.seedCopy()
	}

	books, fixes := Normalize(books)
	for _, fix := range fixes {
		a.logger.Warn("normalized saved book", logger.String("fix", fix))
	}

	a.logger.Debug("library loaded", logger.Int("books", len(books)))
	return books
}

// Save overwrites the stored collection with books.
func (a *Adapter) Save(ctx context.Context, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to marshal books: %w", err)
	}
	if err := a.kv.Set(ctx, KeyBooks, data); err != nil {
		return fmt.Errorf("failed to save books: %w", err)
	}
	return nil
}

// LoadTheme returns the stored theme, falling back to the ambient preference.
func (a *Adapter) LoadTheme(ctx context.Context) domain.Theme {
	data, err := a.kv.Get(ctx, KeyTheme)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn("failed to read theme, using ambient preference",
				logger.Error(err))
		}
		return a.ambient
	}

	theme, err := domain.ParseTheme(string(data))
	if err != nil {
		a.logger.Warn("stored theme is invalid, using ambient preference",
			logger.String("value", string(data)))
		return a.ambient
	}
	return theme
}

// SaveTheme overwrites the stored theme.
func (a *Adapter) SaveTheme(ctx context.Context, t domain.Theme) error {
	if _, err := domain.ParseTheme(string(t)); err != nil {
		return err
	}
	if err := a.kv.Set(ctx, KeyTheme, []byte(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the current theme, saves and returns it.
func (a *Adapter) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := a.LoadTheme(ctx).Toggle()
	if err := a.SaveTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Ping checks the underlying store.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.kv.Ping(ctx)
}

func (a *Adapter) seedCopy() []domain.Book {
	out := make([]domain.Book, len(a.seed))
	copy(out, a.seed)
	return out
}

// Normalize re-applies the collection invariants to data read from storage:
// duplicate ids keep their first occurrence, page counts floor at zero and
// the current page is clamped to the total. It returns a description of
// every correction made.
func Normalize(books []domain.Book) ([]domain.Book, []string) {
	out := make([]domain.Book, 0, len(books))
	seen := make(map[int64]bool, len(books))
	var fixes []string

	for _, b := range books {
		if seen[b.ID] {
			fixes = append(fixes, fmt.Sprintf("dropped duplicate id %d", b.ID))
			continue
		}
		seen[b.ID] = true

		if b.TotalPages < 0 {
			fixes = append(fixes, fmt.Sprintf("book %d: negative totalPages reset to 0", b.ID))
			b.TotalPages = 0
		}
		if clamped := domain.ClampPage(b.CurrentPage, b.TotalPages); clamped != b.CurrentPage {
			fixes = append(fixes, fmt.Sprintf("book %d: currentPage %d clamped to %d", b.ID, b.CurrentPage, clamped))
			b.CurrentPage = clamped
		}
		out = append(out, b)
	}
	return out, fixes
}

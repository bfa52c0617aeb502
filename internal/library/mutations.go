package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Add appends a new book with a fresh id. Progress, notes and rating start
// empty. An empty section defaults to domain.DefaultSection.
func (s *Store) Add(ctx context.Context, nb domain.NewBook) (Result, error) {
	sec := domain.DefaultSection
	if strings.TrimSpace(string(nb.Section)) != "" {
		parsed, err := domain.ParseSection(string(nb.Section))
		if err != nil {
			return Result{}, err
		}
		sec = parsed
	}

	status := StatusApplied
	total := nb.TotalPages
	if total < 0 {
		if s.strict {
			return Result{}, fmt.Errorf("%w: totalPages %d", ErrNegativePage, total)
		}
		total = 0
		status = StatusClamped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := domain.Book{
		ID:         s.nextIDLocked(),
		Title:      nb.Title,
		Author:     nb.Author,
		Cover:      nb.Cover,
		Section:    sec,
		TotalPages: total,
	}
	s.books = append(s.books, b)
	return s.commitLocked(ctx, OpAdd, b, status), nil
}

// Delete removes the book with the given id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id int64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound)
	}
	removed := s.books[i]
	s.books = append(s.books[:i], s.books[i+1:]...)
	return s.commitLocked(ctx, OpDelete, removed, StatusApplied)
}

// Move puts the book on another shelf, resetting its progress and rating.
// Moving to the current section is a no-op.
func (s *Store) Move(ctx context.Context, id int64, target domain.Section) (Result, error) {
	sec, err := domain.ParseSection(string(target))
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound), nil
	}
	b := &s.books[i]
	if b.Section == sec {
		return s.unchangedLocked(*b, StatusNoop), nil
	}

	b.Section = sec
	b.CurrentPage = 0
	b.Rating = 0
	return s.commitLocked(ctx, OpMove, *b, StatusApplied), nil
}

// UpdateProgress sets the current page, clamped to [0, totalPages]. When the
// total is unknown only the lower bound applies.
func (s *Store) UpdateProgress(ctx context.Context, id int64, page int) (Result, error) {
	if page < 0 && s.strict {
		return Result{}, fmt.Errorf("%w: page %d", ErrNegativePage, page)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound), nil
	}
	b := &s.books[i]
	return s.setProgressLocked(ctx, OpProgress, b, page), nil
}

func (s *Store) setProgressLocked(ctx context.Context, op Op, b *domain.Book, page int) Result {
	clamped := domain.ClampPage(page, b.TotalPages)
	status := StatusApplied
	if clamped != page {
		status = StatusClamped
	}
	if clamped == b.CurrentPage && status == StatusApplied {
		return s.unchangedLocked(*b, StatusNoop)
	}
	b.CurrentPage = clamped
	return s.commitLocked(ctx, op, *b, status)
}

// Rate sets the star rating. 0 clears it. Outside strict mode any value and
// any section is accepted.
func (s *Store) Rate(ctx context.Context, id int64, stars int) (Result, error) {
	if s.strict && (stars < 0 || stars > 5) {
		return Result{}, fmt.Errorf("%w: got %d", ErrRatingOutOfRange, stars)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound), nil
	}
	b := &s.books[i]
	if s.strict && stars != 0 && b.Section != domain.SectionFinished {
		return Result{}, fmt.Errorf("%w: book %d is in %s", ErrRatingOutsideFinished, id, b.Section)
	}
	if b.Rating == stars {
		return s.unchangedLocked(*b, StatusNoop), nil
	}

	b.Rating = stars
	return s.commitLocked(ctx, OpRate, *b, StatusApplied), nil
}

// UpdateNotes replaces the notes text.
func (s *Store) UpdateNotes(ctx context.Context, id int64, text string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound)
	}
	b := &s.books[i]
	if b.Notes == text {
		return s.unchangedLocked(*b, StatusNoop)
	}
	b.Notes = text
	return s.commitLocked(ctx, OpNotes, *b, StatusApplied)
}

// UpdateCover replaces the cover URI. An empty value restores the
// placeholder.
func (s *Store) UpdateCover(ctx context.Context, id int64, uri string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound)
	}
	b := &s.books[i]
	if b.Cover == uri {
		return s.unchangedLocked(*b, StatusNoop)
	}
	b.Cover = uri
	return s.commitLocked(ctx, OpCover, *b, StatusApplied)
}

// Details is the payload of the book details dialog.
type Details struct {
	// CurrentPage is only applied while the book is being read.
	CurrentPage *int   `json:"currentPage,omitempty"`
	Notes       string `json:"notes"`
}

// SaveDetails applies the details dialog in one step: progress (only for
// books in leyendo-ahora) and notes, with a single save.
func (s *Store) SaveDetails(ctx context.Context, id int64, d Details) (Result, error) {
	if s.strict && d.CurrentPage != nil && *d.CurrentPage < 0 {
		return Result{}, fmt.Errorf("%w: page %d", ErrNegativePage, *d.CurrentPage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.unchangedLocked(domain.Book{ID: id}, StatusNotFound), nil
	}
	b := &s.books[i]

	status := StatusNoop
	if d.CurrentPage != nil && domain.KindOf(b.Section) == domain.KindProgress {
		page := domain.ClampPage(*d.CurrentPage, b.TotalPages)
		if page != b.CurrentPage {
			status = StatusApplied
		}
		if page != *d.CurrentPage {
			status = StatusClamped
		}
		b.CurrentPage = page
	}
	if b.Notes != d.Notes {
		b.Notes = d.Notes
		if status == StatusNoop {
			status = StatusApplied
		}
	}

	if status == StatusNoop {
		return s.unchangedLocked(*b, StatusNoop), nil
	}
	return s.commitLocked(ctx, OpDetails, *b, status), nil
}

package library

import (
	"errors"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

var (
	// ErrRatingOutOfRange is returned in strict mode for stars outside 0-5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5 (0 clears)")
	// ErrRatingOutsideFinished is returned in strict mode when rating a book
	// that is not in libros-terminados.
	ErrRatingOutsideFinished = errors.New("only finished books can be rated")
	// ErrNegativePage is returned in strict mode for negative page numbers.
	ErrNegativePage = errors.New("page numbers cannot be negative")
)

// Status tells the caller what a mutation actually did.
type Status string

const (
	StatusApplied  Status = "applied"
	StatusNoop     Status = "noop"
	StatusNotFound Status = "not_found"
	// StatusClamped means the mutation applied but an input was adjusted to
	// keep the book valid (page clamped to the total, negative floored).
	StatusClamped Status = "clamped"
)

// Result is returned by every mutation.
type Result struct {
	Status Status      `json:"status"`
	Book   domain.Book `json:"book"`

	// Persisted is false while the durable copy lags behind memory, i.e.
	// the last save failed and the flusher has not caught up yet.
	Persisted bool `json:"persisted"`
}

// Changed reports whether the collection was modified.
func (r Result) Changed() bool {
	return r.Status == StatusApplied || r.Status == StatusClamped
}

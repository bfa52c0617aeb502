package domain

// Book is the single entity of the library.
//
// It is NOT tied to any storage backend. The JSON shape is the persisted
// contract under the "myBooks" key, so field names must not change.
type Book struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique across the collection and assigned once at creation.
	ID int64 `json:"id"`

	// ─────────────────────────────
	// Description
	// ─────────────────────────────

	Title  string `json:"title"`
	Author string `json:"author"`

	// Cover is an image URI. Empty renders a placeholder.
	Cover string `json:"cover,omitempty"`

	// ─────────────────────────────
	// Life-cycle
	// ─────────────────────────────

	// Section is the shelf the book currently lives on.
	Section Section `json:"section"`

	// CurrentPage is only displayed while Section is SectionReading.
	CurrentPage int `json:"currentPage"`

	// TotalPages is 0 when unknown.
	TotalPages int `json:"totalPages"`

	// Notes is free text.
	Notes string `json:"notes,omitempty"`

	// Rating is 0 (absent) or 1-5 and only displayed while Section is
	// SectionFinished.
	Rating int `json:"rating,omitempty"`
}

// NewBook carries the fields a caller may supply when adding a book.
// Everything else is defaulted by the store.
type NewBook struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Cover      string  `json:"cover"`
	Section    Section `json:"section"`
	TotalPages int     `json:"totalPages"`
}

// ClampPage bounds page to [0, total]. A total of 0 means unknown and leaves
// the upper bound open.
func ClampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if total > 0 && page > total {
		return total
	}
	return page
}

// HasRating reports whether a star rating is set.
func (b Book) HasRating() bool {
	return b.Rating > 0
}

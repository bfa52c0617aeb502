package domain

import "math"

// AttributeKind names the extra widget a section displays next to a book.
type AttributeKind string

const (
	KindNone     AttributeKind = "none"
	KindProgress AttributeKind = "progress"
	KindRating   AttributeKind = "rating"
)

// KindOf maps a section to the attribute it displays.
// Unknown sections display nothing.
func KindOf(s Section) AttributeKind {
	switch s {
	case SectionReading:
		return KindProgress
	case SectionFinished:
		return KindRating
	case SectionUpcoming, SectionWishlist:
		return KindNone
	default:
		return KindNone
	}
}

// Attributes is the per-book extra information selected by KindOf.
// Implementations: Progress, Rating, None.
type Attributes interface {
	Kind() AttributeKind
	sealed()
}

// Progress is the reading position of a book on SectionReading.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Rating is the star rating of a book on SectionFinished.
type Rating struct {
	Stars int `json:"stars"`
}

// None is shown by sections without extra attributes.
type None struct{}

func (Progress) Kind() AttributeKind { return KindProgress }
func (Rating) Kind() AttributeKind   { return KindRating }
func (None) Kind() AttributeKind     { return KindNone }

func (Progress) sealed() {}
func (Rating) sealed()   {}
func (None) sealed()     {}

// ExtraAttributes returns the attribute variant for b according to its section.
func ExtraAttributes(b Book) Attributes {
	switch KindOf(b.Section) {
	case KindProgress:
		return Progress{Current: b.CurrentPage, Total: b.TotalPages}
	case KindRating:
		return Rating{Stars: b.Rating}
	default:
		return None{}
	}
}

// Percent returns the rounded completion percentage.
// ok is false when the total is unknown.
func (p Progress) Percent() (pct int, ok bool) {
	if p.Total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(p.Current) / float64(p.Total) * 100)), true
}

// Known reports whether the total page count is known.
func (p Progress) Known() bool { return p.Total > 0 }

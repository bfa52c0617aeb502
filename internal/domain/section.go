package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Section identifies one of the four shelves a book can live on.
type Section string

const (
	SectionReading  Section = "leyendo-ahora"
	SectionUpcoming Section = "proximas-lecturas"
	SectionFinished Section = "libros-terminados"
	SectionWishlist Section = "lista-deseos"
)

// DefaultSection is used when a book is added without a section.
const DefaultSection = SectionUpcoming

// ErrUnknownSection is returned for identifiers outside the four sections.
var ErrUnknownSection = errors.New("unknown section")

// sectionOrder is the display order of the shelves.
var sectionOrder = []Section{
	SectionReading,
	SectionUpcoming,
	SectionFinished,
	SectionWishlist,
}

var sectionLabels = map[Section]string{
	SectionReading:  "Leyendo Ahora",
	SectionUpcoming: "Próximas Lecturas",
	SectionFinished: "Libros Terminados",
	SectionWishlist: "Lista de Deseos",
}

// Sections returns all sections in display order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// ParseSection validates s and returns the matching Section.
// Surrounding whitespace and case are ignored.
func ParseSection(s string) (Section, error) {
	sec := Section(strings.ToLower(strings.TrimSpace(s)))
	if !sec.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// Valid reports whether s is one of the four sections.
func (s Section) Valid() bool {
	_, ok := sectionLabels[s]
	return ok
}

// Label returns the human readable name, or the raw identifier when unknown.
func (s Section) Label() string {
	if l, ok := sectionLabels[s]; ok {
		return l
	}
	return string(s)
}

// MoveTargets lists every section a book in s can be moved to.
func (s Section) MoveTargets() []Section {
	targets := make([]Section, 0, len(sectionOrder)-1)
	for _, other := range sectionOrder {
		if other != s {
			targets = append(targets, other)
		}
	}
	return targets
}

func (s Section) String() string { return string(s) }

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type sectionView struct {
	ID    domain.Section       `json:"id"`
	Label string               `json:"label"`
	Kind  domain.AttributeKind `json:"kind"`
	Count int                  `json:"count"`
}

func newSectionView(s domain.Section, count int) sectionView {
	return sectionView{ID: s, Label: s.Label(), Kind: domain.KindOf(s), Count: count}
}

// ListSections returns the shelves in display order with their book counts.
func ListSections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := make(map[domain.Section]int)
		for _, b := range d.Library.All() {
			counts[b.Section]++
		}

		out := make([]sectionView, 0, 4)
		for _, s := range domain.Sections() {
			out = append(out, newSectionView(s, counts[s]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// MoveTargets lists the sections a book on {section} can be moved to.
func MoveTargets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sec, err := domain.ParseSection(chi.URLParam(r, "section"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		targets := sec.MoveTargets()
		out := make([]sectionView, 0, len(targets))
		for _, t := range targets {
			out = append(out, newSectionView(t, len(d.Library.InSection(t))))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

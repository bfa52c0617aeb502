package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// bookView is a book as the renderer consumes it: the stored fields plus the
// attribute its section displays.
type bookView struct {
	domain.Book
	Label   string               `json:"sectionLabel"`
	Kind    domain.AttributeKind `json:"kind"`
	Extra   domain.Attributes    `json:"extra"`
	Percent *int                 `json:"percent,omitempty"`
	Hidden  *bool                `json:"hidden,omitempty"`
}

func newBookView(b domain.Book) bookView {
	extra := domain.ExtraAttributes(b)
	v := bookView{
		Book:  b,
		Label: b.Section.Label(),
		Kind:  extra.Kind(),
		Extra: extra,
	}
	if p, ok := extra.(domain.Progress); ok {
		if pct, known := p.Percent(); known {
			v.Percent = &pct
		}
	}
	return v
}

type listResponse struct {
	Query string     `json:"query,omitempty"`
	Count int        `json:"count"`
	Books []bookView `json:"books"`
}

// ListBooks returns the collection filtered by ?q= and optionally ?section=.
// With ?view=all every book is returned and carries a hidden flag instead.
func ListBooks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := strings.TrimSpace(q.Get("q"))

		var books []domain.Book
		if raw := q.Get("section"); raw != "" {
			sec, err := domain.ParseSection(raw)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			books = d.Library.InSection(sec)
		} else {
			books = d.Library.All()
		}

		resp := listResponse{Query: query, Books: make([]bookView, 0, len(books))}
		if q.Get("view") == "all" {
			visible := domain.Visibility(books, query)
			for _, b := range books {
				v := newBookView(b)
				hidden := !visible[b.ID]
				v.Hidden = &hidden
				resp.Books = append(resp.Books, v)
			}
		} else {
			for _, b := range domain.Filter(books, query) {
				resp.Books = append(resp.Books, newBookView(b))
			}
		}
		resp.Count = len(resp.Books)

		writeJSON(w, http.StatusOK, resp)
	}
}

func GetBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		b, found := d.Library.FindByID(id)
		if !found {
			writeError(w, http.StatusNotFound, string(library.StatusNotFound), errors.New("book not found"))
			return
		}
		writeJSON(w, http.StatusOK, newBookView(b))
	}
}

func AddBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var nb domain.NewBook
		if !decodeJSON(w, r, &nb) {
			return
		}
		res, err := d.Library.Add(r.Context(), nb)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		d.Logger.Info("book added",
			logger.Int64("id", res.Book.ID),
			logger.String("section", res.Book.Section.String()))
		writeJSON(w, http.StatusCreated, res)
	}
}

// DeleteBook removes a book. Confirmation is the client's job.
func DeleteBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		res := d.Library.Delete(r.Context(), id)
		if res.Status == library.StatusNotFound {
			writeResult(w, res)
			return
		}
		d.Logger.Info("book deleted", logger.Int64("id", id))
		if !res.Persisted {
			// The client still needs to learn the save is pending.
			writeResult(w, res)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type moveRequest struct {
	Section domain.Section `json:"section"`
}

func MoveBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req moveRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := d.Library.Move(r.Context(), id, req.Section)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeResult(w, res)
	}
}

type rateRequest struct {
	Stars int `json:"stars"`
}

func RateBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req rateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := d.Library.Rate(r.Context(), id, req.Stars)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeResult(w, res)
	}
}

type progressRequest struct {
	CurrentPage int `json:"currentPage"`
}

func UpdateProgress(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req progressRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := d.Library.UpdateProgress(r.Context(), id, req.CurrentPage)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeResult(w, res)
	}
}

// SaveDetails backs the details dialog: progress (reading books only) and
// notes in one request.
func SaveDetails(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req library.Details
		if !decodeJSON(w, r, &req) {
			return
		}
		res, err := d.Library.SaveDetails(r.Context(), id, req)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeResult(w, res)
	}
}

type coverRequest struct {
	Cover string `json:"cover"`
}

func UpdateCover(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req coverRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		writeResult(w, d.Library.UpdateCover(r.Context(), id, strings.TrimSpace(req.Cover)))
	}
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func UpdateNotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookID(w, r)
		if !ok {
			return
		}
		var req notesRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		writeResult(w, d.Library.UpdateNotes(r.Context(), id, req.Notes))
	}
}

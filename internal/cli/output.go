package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/library"
)

const (
	titleWidth  = 30
	authorWidth = 25
)

func printBooks(w io.Writer, books []domain.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books.")
		return
	}

	fmt.Fprintf(w, "%-14s %-30s %-25s %-18s %s\n", "ID", "Title", "Author", "Section", "")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, b := range books {
		fmt.Fprintf(w, "%-14d %s %s %s %s\n",
			b.ID,
			pad(b.Title, titleWidth),
			pad(b.Author, authorWidth),
			pad(b.Section.Label(), 18),
			extra(b))
	}
	fmt.Fprintf(w, "\n%d book(s)\n", len(books))
}

func printBook(w io.Writer, b domain.Book) {
	cover := b.Cover
	if cover == "" {
		cover = "(placeholder)"
	}
	fmt.Fprintf(w, "ID:       %d\n", b.ID)
	fmt.Fprintf(w, "Title:    %s\n", b.Title)
	fmt.Fprintf(w, "Author:   %s\n", b.Author)
	fmt.Fprintf(w, "Section:  %s (%s)\n", b.Section.Label(), b.Section)
	if e := extra(b); e != "" {
		fmt.Fprintf(w, "%-9s %s\n", label(b)+":", e)
	}
	fmt.Fprintf(w, "Cover:    %s\n", cover)
	if b.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", b.Notes)
	}
}

func label(b domain.Book) string {
	switch domain.KindOf(b.Section) {
	case domain.KindProgress:
		return "Progress"
	case domain.KindRating:
		return "Rating"
	default:
		return ""
	}
}

// extra renders the attribute the book's section displays.
func extra(b domain.Book) string {
	switch a := domain.ExtraAttributes(b).(type) {
	case domain.Progress:
		if pct, ok := a.Percent(); ok {
			return fmt.Sprintf("%d/%d (%d%%)", a.Current, a.Total, pct)
		}
		return fmt.Sprintf("page %d", a.Current)
	case domain.Rating:
		return stars(a.Stars)
	default:
		return ""
	}
}

func stars(n int) string {
	switch {
	case n == 0:
		return "not rated"
	case n < 0 || n > 5:
		return fmt.Sprintf("%d stars", n)
	default:
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	}
}

// pad truncates or right-pads s to width runes so long titles keep the
// columns aligned.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}

// report prints the outcome of a mutation.
func report(w io.Writer, done string, r library.Result) error {
	switch r.Status {
	case library.StatusNotFound:
		return fmt.Errorf("book %d not found", r.Book.ID)
	case library.StatusNoop:
		fmt.Fprintf(w, "Book %d: nothing to change.\n", r.Book.ID)
	case library.StatusClamped:
		fmt.Fprintf(w, "Book %d %s (value adjusted to fit).\n", r.Book.ID, done)
	default:
		fmt.Fprintf(w, "Book %d %s.\n", r.Book.ID, done)
	}
	if !r.Persisted {
		fmt.Fprintln(w, "Warning: storage is unavailable, the change is not saved yet.")
	}
	return nil
}

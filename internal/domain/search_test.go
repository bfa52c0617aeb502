package domain

import "testing"

func TestMatches(t *testing.T) {
	dune := Book{ID: 2, Title: "Dune", Author: "Frank Herbert"}
	cien := Book{ID: 1, Title: "Cien años de soledad", Author: "Gabriel García Márquez"}

	tests := []struct {
		name  string
		book  Book
		query string
		want  bool
	}{
		{name: "empty query", book: dune, query: "", want: true},
		{name: "title lowercase", book: dune, query: "dune", want: true},
		{name: "title uppercase", book: dune, query: "DUNE", want: true},
		{name: "author substring", book: dune, query: "herb", want: true},
		{name: "no match", book: dune, query: "xyz", want: false},
		{name: "latin-1 title", book: cien, query: "AÑOS", want: true},
		{name: "latin-1 author", book: cien, query: "garcía", want: true},
		// "i" + combining acute accent.
		{name: "decomposed accent", book: cien, query: "garci\u0301a", want: true},
		{name: "accent is significant", book: cien, query: "garcia", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.book, tt.query); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.book.Title, tt.query, got, tt.want)
			}
		})
	}
}

func TestVisibilityAndFilter(t *testing.T) {
	books := []Book{
		{ID: 1, Title: "Cien años de soledad", Author: "Gabriel García Márquez"},
		{ID: 2, Title: "Elantris", Author: "Brandon Sanderson"},
		{ID: 3, Title: "Dune", Author: "Frank Herbert"},
	}

	vis := Visibility(books, "san")
	if len(vis) != 3 {
		t.Fatalf("Visibility() len = %d, want 3", len(vis))
	}
	if vis[1] || !vis[2] || vis[3] {
		t.Errorf("Visibility(san) = %v", vis)
	}

	all := Visibility(books, "")
	for id, ok := range all {
		if !ok {
			t.Errorf("book %d hidden under empty query", id)
		}
	}

	got := Filter(books, "E")
	// Cien años de soledad (de), Elantris, Dune, Frank Herbert
	if len(got) != 3 {
		t.Fatalf("Filter(E) len = %d, want 3", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("Filter() did not preserve order: %v", got)
	}
}

func TestParseThemeAndToggle(t *testing.T) {
	if th, err := ParseTheme(" Dark "); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(Dark) = %v, %v", th, err)
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("ParseTheme(sepia) should fail")
	}
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle() should flip light and dark")
	}
}

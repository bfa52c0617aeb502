package domain

import (
	"errors"
	"testing"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Section
		wantErr bool
	}{
		{name: "reading", input: "leyendo-ahora", want: SectionReading},
		{name: "upcoming", input: "proximas-lecturas", want: SectionUpcoming},
		{name: "finished", input: "libros-terminados", want: SectionFinished},
		{name: "wishlist", input: "lista-deseos", want: SectionWishlist},
		{name: "case and spaces", input: "  Lista-Deseos ", want: SectionWishlist},
		{name: "unknown", input: "papelera", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSection(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSection) {
					t.Fatalf("ParseSection(%q) error = %v, want ErrUnknownSection", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSection(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSectionsOrder(t *testing.T) {
	got := Sections()
	want := []Section{SectionReading, SectionUpcoming, SectionFinished, SectionWishlist}
	if len(got) != len(want) {
		t.Fatalf("Sections() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sections()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Returned slice is a copy.
	got[0] = "mutated"
	if Sections()[0] != SectionReading {
		t.Error("Sections() should return a fresh slice")
	}
}

func TestMoveTargetsExcludeCurrent(t *testing.T) {
	for _, s := range Sections() {
		targets := s.MoveTargets()
		if len(targets) != 3 {
			t.Errorf("%s.MoveTargets() len = %d, want 3", s, len(targets))
		}
		for _, tgt := range targets {
			if tgt == s {
				t.Errorf("%s.MoveTargets() contains itself", s)
			}
		}
	}
}

func TestSectionLabel(t *testing.T) {
	if got := SectionUpcoming.Label(); got != "Próximas Lecturas" {
		t.Errorf("Label() = %q", got)
	}
	if got := Section("x").Label(); got != "x" {
		t.Errorf("Label() for unknown = %q, want raw identifier", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := map[Section]AttributeKind{
		SectionReading:  KindProgress,
		SectionUpcoming: KindNone,
		SectionFinished: KindRating,
		SectionWishlist: KindNone,
		Section("nope"): KindNone,
	}
	for sec, want := range tests {
		if got := KindOf(sec); got != want {
			t.Errorf("KindOf(%q) = %v, want %v", sec, got, want)
		}
	}
}

func TestExtraAttributes(t *testing.T) {
	reading := Book{Section: SectionReading, CurrentPage: 180, TotalPages: 432, Rating: 3}
	if got, ok := ExtraAttributes(reading).(Progress); !ok || got.Current != 180 || got.Total != 432 {
		t.Errorf("ExtraAttributes(reading) = %#v", ExtraAttributes(reading))
	}

	finished := Book{Section: SectionFinished, CurrentPage: 10, Rating: 4}
	if got, ok := ExtraAttributes(finished).(Rating); !ok || got.Stars != 4 {
		t.Errorf("ExtraAttributes(finished) = %#v", ExtraAttributes(finished))
	}

	wish := Book{Section: SectionWishlist, CurrentPage: 10, Rating: 4}
	if _, ok := ExtraAttributes(wish).(None); !ok {
		t.Errorf("ExtraAttributes(wishlist) = %#v, want None", ExtraAttributes(wish))
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name   string
		p      Progress
		want   int
		wantOK bool
	}{
		{name: "partial", p: Progress{Current: 180, Total: 432}, want: 42, wantOK: true},
		{name: "rounds up", p: Progress{Current: 501, Total: 688}, want: 73, wantOK: true},
		{name: "done", p: Progress{Current: 622, Total: 622}, want: 100, wantOK: true},
		{name: "unknown total", p: Progress{Current: 50, Total: 0}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.p.Percent()
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Percent() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{page: 9999, total: 622, want: 622},
		{page: 100, total: 622, want: 100},
		{page: 9999, total: 0, want: 9999},
		{page: -5, total: 622, want: 0},
		{page: -5, total: 0, want: 0},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

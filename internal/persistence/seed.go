package persistence

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// seedEntry is the YAML shape of one seed book.
type seedEntry struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Cover       string `yaml:"cover,omitempty"`
	Section     string `yaml:"section"`
	CurrentPage int    `yaml:"currentPage"`
	TotalPages  int    `yaml:"totalPages"`
	Notes       string `yaml:"notes,omitempty"`
	Rating      int    `yaml:"rating,omitempty"`
}

// DefaultSeed returns the built-in library.
func DefaultSeed() []domain.Book {
	books, err := ParseSeed(defaultSeed)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return books
}

// LoadSeedFile reads a YAML seed from path.
func LoadSeedFile(path string) ([]domain.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML list of books and checks ids and sections.
func ParseSeed(data []byte) ([]domain.Book, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	books := make([]domain.Book, 0, len(entries))
	seen := make(map[int64]bool, len(entries))
	for i, e := range entries {
		if e.ID <= 0 {
			return nil, fmt.Errorf("seed entry %d: id must be positive", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("seed entry %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = true

		section, err := domain.ParseSection(e.Section)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}

		books = append(books, domain.Book{
			ID:          e.ID,
			Title:       e.Title,
			Author:      e.Author,
			Cover:       e.Cover,
			Section:     section,
			CurrentPage: domain.ClampPage(e.CurrentPage, e.TotalPages),
			TotalPages:  max(e.TotalPages, 0),
			Notes:       e.Notes,
			Rating:      e.Rating,
		})
	}
	return books, nil
}

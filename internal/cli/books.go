package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}

func parseInt(what, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return n, nil
}

func newListCommand(s *session) *cobra.Command {
	var section, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered by section or text",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&section, "section", "s", "", "only books on this section")
	cmd.Flags().StringVarP(&query, "query", "q", "", "only books whose title or author matches")

	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, _ []string) error {
		books := s.lib.All()
		if section != "" {
			sec, err := domain.ParseSection(section)
			if err != nil {
				return err
			}
			books = s.lib.InSection(sec)
		}
		if query != "" {
			books = domain.Filter(books, query)
		}
		printBooks(out(cmd), books)
		return nil
	})
	return cmd
}

func newSearchCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find books by title or author, ignoring case",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		printBooks(out(cmd), s.lib.Search(strings.Join(args, " ")))
		return nil
	})
	return cmd
}

func newShowCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show every detail of a book",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		b, ok := s.lib.FindByID(id)
		if !ok {
			return fmt.Errorf("book %d not found", id)
		}
		printBook(out(cmd), b)
		return nil
	})
	return cmd
}

func newAddCommand(s *session) *cobra.Command {
	var nb domain.NewBook
	var section string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&nb.Title, "title", "", "book title")
	cmd.Flags().StringVar(&nb.Author, "author", "", "book author")
	cmd.Flags().StringVar(&nb.Cover, "cover", "", "cover image URI")
	cmd.Flags().StringVar(&section, "section", string(domain.DefaultSection), "section to shelve the book on")
	cmd.Flags().IntVar(&nb.TotalPages, "pages", 0, "total number of pages, 0 when unknown")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")

	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, _ []string) error {
		nb.Section = domain.Section(section)
		r, err := s.lib.Add(cmd.Context(), nb)
		if err != nil {
			return err
		}
		return report(out(cmd), "added to "+r.Book.Section.Label(), r)
	})
	return cmd
}

func newMoveCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move ID SECTION",
		Short: "Move a book to another section, resetting progress and rating",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := s.lib.Move(cmd.Context(), id, domain.Section(args[1]))
		if err != nil {
			return err
		}
		return report(out(cmd), "moved to "+r.Book.Section.Label(), r)
	})
	return cmd
}

func newRateCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate ID STARS",
		Short: "Set the star rating of a finished book, 0 clears it",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stars, err := parseInt("rating", args[1])
		if err != nil {
			return err
		}
		r, err := s.lib.Rate(cmd.Context(), id, stars)
		if err != nil {
			return err
		}
		return report(out(cmd), "rated "+ratingText(r.Book.Rating), r)
	})
	return cmd
}

func ratingText(n int) string {
	if n == 0 {
		return "(cleared)"
	}
	return stars(n)
}

func newProgressCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress ID PAGE",
		Short: "Record the current page of a book",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		page, err := parseInt("page", args[1])
		if err != nil {
			return err
		}
		r, err := s.lib.UpdateProgress(cmd.Context(), id, page)
		if err != nil {
			return err
		}
		return report(out(cmd), fmt.Sprintf("now at page %d", r.Book.CurrentPage), r)
	})
	return cmd
}

func newNotesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes ID [TEXT...]",
		Short: "Replace the notes of a book, no text clears them",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r := s.lib.UpdateNotes(cmd.Context(), id, strings.Join(args[1:], " "))
		return report(out(cmd), "notes saved", r)
	})
	return cmd
}

func newCoverCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover ID [URI]",
		Short: "Replace the cover image, no URI restores the placeholder",
		Args:  cobra.RangeArgs(1, 2),
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		uri := ""
		if len(args) == 2 {
			uri = strings.TrimSpace(args[1])
		}
		r := s.lib.UpdateCover(cmd.Context(), id, uri)
		return report(out(cmd), "cover updated", r)
	})
	return cmd
}

func newDeleteCommand(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		b, ok := s.lib.FindByID(id)
		if !ok {
			return fmt.Errorf("book %d not found", id)
		}

		if !yes {
			if !s.terminal() {
				return fmt.Errorf("refusing to delete book %d without --yes when stdin is not a terminal", id)
			}
			fmt.Fprintf(out(cmd), "Delete %q by %s? [y/N] ", b.Title, b.Author)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Fprintln(out(cmd), "Cancelled.")
				return nil
			}
		}

		return report(out(cmd), "deleted", s.lib.Delete(cmd.Context(), id))
	})
	return cmd
}

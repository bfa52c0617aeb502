package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

func newSectionsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the sections and how many books each holds",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, _ []string) error {
		w := out(cmd)
		fmt.Fprintf(w, "%-18s %-20s %-9s %5s\n", "Section", "Label", "Shows", "Books")
		for _, sec := range domain.Sections() {
			fmt.Fprintf(w, "%-18s %-20s %-9s %5d\n",
				sec, sec.Label(), domain.KindOf(sec), len(s.lib.InSection(sec)))
		}
		return nil
	})
	return cmd
}

func newThemeCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the saved theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
	}
	cmd.RunE = s.withLibrary(func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			fmt.Fprintln(out(cmd), s.adapter.LoadTheme(ctx))
			return nil
		}

		if args[0] == "toggle" {
			t, err := s.adapter.ToggleTheme(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Theme set to %s.\n", t)
			return nil
		}

		t, err := domain.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := s.adapter.SaveTheme(ctx, t); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Theme set to %s.\n", t)
		return nil
	})
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(out(cmd), "shelfctl", version.String())
		},
	}
}

// Package cli implements shelfctl, a terminal front end over the library store.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSnakeDoc/shelf/internal/app"
	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/library"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/persistence"
	"github.com/MrSnakeDoc/shelf/internal/utils"
)

// session holds what a command needs once storage is open.
type session struct {
	kv      persistence.KV
	ownsKV  bool
	adapter *persistence.Adapter
	lib     *library.Store
	log     logger.Logger

	verbose  bool
	terminal func() bool
}

// Option customizes the root command.
type Option func(*session)

// WithStorage makes the commands use kv instead of the configured backend.
// The caller keeps ownership of kv.
func WithStorage(kv persistence.KV) Option {
	return func(s *session) { s.kv = kv }
}

// WithTerminal overrides the stdin terminal check used by delete.
func WithTerminal(isTerminal func() bool) Option {
	return func(s *session) { s.terminal = isTerminal }
}

// NewRootCommand builds the shelfctl command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	s := &session{
		log: logger.NewNop(),
		terminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	for _, o := range opts {
		o(s)
	}

	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Manage your personal book library from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log storage activity to stderr")

	root.AddCommand(
		newListCommand(s),
		newSearchCommand(s),
		newShowCommand(s),
		newAddCommand(s),
		newMoveCommand(s),
		newRateCommand(s),
		newProgressCommand(s),
		newNotesCommand(s),
		newCoverCommand(s),
		newDeleteCommand(s),
		newSectionsCommand(s),
		newThemeCommand(s),
		newVersionCommand(),
	)
	return root
}

// Execute runs shelfctl against the process arguments.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// withLibrary opens the library before fn and closes it afterwards, whether
// or not fn succeeds.
func (s *session) withLibrary(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := s.open(cmd.Context()); err != nil {
			return err
		}
		defer func() {
			if cerr := s.close(cmd.Context()); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

// open loads configuration and the library on first use.
func (s *session) open(ctx context.Context) error {
	if s.lib != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if s.verbose {
		s.log = logger.New(cfg.LogLevel, cfg.PrettyLog)
	}

	if s.kv == nil {
		kv, err := app.OpenStorage(ctx, cfg, s.log)
		if err != nil {
			return err
		}
		s.kv = kv
		s.ownsKV = true
	}

	adapter, err := app.NewAdapter(cfg, s.kv, s.log)
	if err != nil {
		return err
	}
	s.adapter = adapter
	s.lib = library.Open(ctx, adapter,
		library.WithStrict(cfg.Strict),
		library.WithLogger(s.log))
	return nil
}

// close retries a pending save once and releases storage.
func (s *session) close(ctx context.Context) error {
	if s.lib == nil {
		return nil
	}

	var err error
	if s.lib.Dirty() {
		if ferr := s.lib.Flush(ctx); ferr != nil {
			err = errors.New("the last change could not be saved")
		}
	}
	if s.ownsKV {
		utils.MustClose(s.kv, s.log, "storage")
		s.kv = nil
	}
	s.lib = nil
	return err
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

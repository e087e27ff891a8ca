package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/notes"
	"github.com/idilsaglam/notes/internal/store/backend"
	"github.com/idilsaglam/notes/internal/ui"
)

// Options wires the runner to its environment. Nil fields fall back to the
// process streams.
type Options struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// usageError marks failures that exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return usageError{msg: fmt.Sprintf(format, a...)}
}

type runner struct {
	opt Options

	configPath string
	backend    string
	theme      string
	verbose    bool

	cfg config.Config
	log *slog.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	return RunContext(context.Background(), args, opt)
}

func RunContext(ctx context.Context, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.In == nil {
		opt.In = os.Stdin
	}

	r := &runner{opt: opt}
	root := r.rootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Out)
	root.SetErr(opt.Err)
	root.SetIn(opt.In)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(opt.Err, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(opt.Err, ui.Current().Muted.Render("Hint: run `notes --help` for usage"))
		return 2
	}
	return 1
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notes",
		Short: "A terminal board for short, color-tagged notes",
		Long: `notes keeps short text notes on a board of colored cards.
Run it without a subcommand to open the interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&r.configPath, "config", "", "config file (default $NOTES_HOME/config.toml)")
	pf.StringVar(&r.backend, "backend", "", "storage backend: file, bolt, redis or memory")
	pf.StringVar(&r.theme, "theme", "", "color theme: classic, neon or mono")
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		r.uiCmd(),
		r.addCmd(),
		r.lsCmd(),
		r.showCmd(),
		r.editCmd(),
		r.colorCmd(),
		r.rmCmd(),
		r.exportCmd(),
		r.configCmd(),
		r.authCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides, and installs the theme
// and the stderr logger.
func (r *runner) setup() error {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return err
	}
	if r.backend != "" {
		cfg.Storage.Backend = r.backend
	}
	if r.theme != "" {
		cfg.UI.Theme = r.theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}
	r.cfg = cfg
	ui.SetTheme(cfg.Theme())

	level, err := r.level()
	if err != nil {
		return err
	}
	r.log = logging.New(r.opt.Err, level)
	return nil
}

func (r *runner) level() (slog.Level, error) {
	if r.verbose {
		return slog.LevelDebug, nil
	}
	return logging.ParseLevel(r.cfg.LogLevel())
}

// open builds the configured slot and a controller rendering into view.
// The returned func closes the slot.
func (r *runner) open(ctx context.Context, view notes.View, log *slog.Logger) (*notes.Controller, func(), error) {
	slot, err := backend.Open(ctx, r.cfg)
	if err != nil {
		return nil, nil, err
	}
	closeSlot := func() {
		if err := slot.Close(); err != nil {
			log.Warn("close storage", "err", err)
		}
	}
	ctrl, err := notes.New(ctx, slot, view,
		notes.WithKey(r.cfg.StorageKey()),
		notes.WithDefaultColor(r.cfg.DefaultColor()),
		notes.WithLogger(log),
	)
	if err != nil {
		closeSlot()
		return nil, nil, fmt.Errorf("load notes: %w", err)
	}
	log.Debug("storage opened", "backend", r.cfg.Backend(), "notes", ctrl.Len())
	return ctrl, closeSlot, nil
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || n < 1 {
		return 0, usagef("not a note id: %s", s)
	}
	return n, nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: notes %s", usage)
		}
		return nil
	}
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/notes/internal/auth"
	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/store/backend"
	"github.com/idilsaglam/notes/internal/ui"
)

func (r *runner) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth <login|logout|status|check>",
		Short: "Manage the Redis storage password",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown auth subcommand: %s", args[0])
			}
			return usagef("usage: notes auth <login|logout|status|check>")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Store the Redis password (read from stdin)",
			Args:  exactArgs(0, "auth login"),
			RunE:  func(cmd *cobra.Command, args []string) error { return r.authLogin() },
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored Redis password",
			Args:  exactArgs(0, "auth logout"),
			RunE:  func(cmd *cobra.Command, args []string) error { return r.authLogout() },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the Redis password comes from",
			Args:  exactArgs(0, "auth status"),
			RunE:  func(cmd *cobra.Command, args []string) error { return r.authStatus() },
		},
		&cobra.Command{
			Use:   "check",
			Short: "Connect to the configured Redis server",
			Args:  exactArgs(0, "auth check"),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := r.cfg
				cfg.Storage.Backend = config.BackendRedis
				slot, err := backend.Open(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer slot.Close()
				ui.OK(r.opt.Out, "connected to "+cfg.RedisAddr())
				return nil
			},
		},
	)
	return cmd
}

func (r *runner) authLogin() error {
	fmt.Fprint(r.opt.Out, "Redis password: ")
	password, err := readLine(r.opt.In)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if err := auth.Save(password); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	fmt.Fprintln(r.opt.Out)
	ui.OK(r.opt.Out, "password saved")
	return nil
}

func (r *runner) authLogout() error {
	c, _ := auth.Load()
	if c != nil && c.Source == auth.SourceEnv {
		ui.OK(r.opt.Out, "password is provided by NOTES_REDIS_PASSWORD (nothing to delete)")
		return nil
	}
	if err := auth.Delete(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	ui.OK(r.opt.Out, "password removed")
	return nil
}

func (r *runner) authStatus() error {
	c, err := auth.Load()
	if err != nil {
		return err
	}
	if c == nil {
		fmt.Fprintln(r.opt.Out, ui.Current().Muted.Render("no password stored"))
		fmt.Fprintln(r.opt.Out, "Run: notes auth login")
		return nil
	}
	fmt.Fprintf(r.opt.Out, "source: %s\n", c.Source)
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(r.opt.Out, "saved: %s\n", c.CreatedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintln(r.opt.Out, "env override: NOTES_REDIS_PASSWORD")
	return nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}

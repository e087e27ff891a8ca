package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/tui"
	"github.com/idilsaglam/notes/internal/ui"
)

const (
	defaultWidth   = 80
	listLabelWidth = 60
)

// discard is the view for one-shot commands; they read the collection back
// from the controller once they are done.
type discard struct{}

func (discard) Show([]model.Note) {}

func (r *runner) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive board (default)",
		Args:  exactArgs(0, "ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runUI(cmd.Context())
		},
	}
}

// runUI owns the terminal, so logs go to the log file instead of stderr.
func (r *runner) runUI(ctx context.Context) error {
	path, err := r.cfg.LogFile()
	if err != nil {
		return err
	}
	level, err := r.level()
	if err != nil {
		return err
	}
	log, f, err := logging.OpenFile(path, level)
	if err != nil {
		return err
	}
	defer f.Close()

	board := tui.NewBoard()
	ctrl, closeSlot, err := r.open(ctx, board, log)
	if err != nil {
		return err
	}
	defer closeSlot()

	m := tui.New(ctx, ctrl, board, tui.Options{
		HideDelay: r.cfg.HideDelay(),
		Logger:    log,
	})
	log.Info("board opened", "backend", r.cfg.Backend(), "notes", ctrl.Len())
	return tui.Run(ctx, m)
}

func (r *runner) addCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "add [--title T] <text...>",
		Short: "Add a note",
		Example: `  notes add "Buy milk"
  notes add --title Groceries milk, eggs, bread`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if (model.Note{Title: title, Text: text}).Empty() {
				return usagef("add: empty note")
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			n, _, err := ctrl.Create(cmd.Context(), title, text)
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(r.opt.Out, fmt.Sprintf("added note #%d", n.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	return cmd
}

func (r *runner) lsCmd() *cobra.Command {
	var (
		asJSON bool
		cards  bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List notes",
		Args:  exactArgs(0, "ls [--json|--cards]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			list := ctrl.Notes()
			if list == nil {
				list = []model.Note{}
			}

			switch {
			case asJSON:
				return writeJSON(r.opt.Out, list)
			case cards:
				fmt.Fprintln(r.opt.Out, ui.Board(list, ui.BoardOptions{Width: termWidth()}).View)
			default:
				fmt.Fprintln(r.opt.Out, ui.Panel(listLines(list)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON form")
	cmd.Flags().BoolVar(&cards, "cards", false, "print notes as colored cards")
	return cmd
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a note as Markdown",
		Args:  exactArgs(1, "show <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			n, ok := ctrl.Get(id)
			if !ok {
				return errNoNote(id)
			}
			t := ui.Current()
			fmt.Fprintln(r.opt.Out, t.Muted.Render(fmt.Sprintf("#%d  %s %s", n.ID, t.SymSwatch, n.Color)))
			fmt.Fprintln(r.opt.Out, ui.Markdown(ui.NoteMarkdown(n.Title, n.Text), termWidth()))
			return nil
		},
	}
}

func (r *runner) editCmd() *cobra.Command {
	var title, text string
	cmd := &cobra.Command{
		Use:   "edit <id> [--title T] [--text X]",
		Short: "Change a note's title or text",
		Args:  exactArgs(1, "edit <id> [--title T] [--text X]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			titleSet, textSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("text")
			if !titleSet && !textSet {
				return usagef("edit: nothing to change, pass --title or --text")
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			n, ok := ctrl.Get(id)
			if !ok {
				return errNoNote(id)
			}
			if titleSet {
				n.Title = title
			}
			if textSet {
				n.Text = text
			}
			if _, err := ctrl.Update(cmd.Context(), id, n.Title, n.Text); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(r.opt.Out, fmt.Sprintf("updated note #%d", id))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVar(&text, "text", "", "new text")
	return cmd
}

func (r *runner) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <id> <color>",
		Short: "Tag a note with a color",
		Long:  "Tag a note with a color. Colors: " + colorNames() + ".",
		Args:  exactArgs(2, "color <id> <color>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			color, err := model.ParseColor(args[1])
			if err != nil {
				return usagef("%v (one of %s)", err, colorNames())
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			found, err := ctrl.UpdateColor(cmd.Context(), id, color)
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			if !found {
				return errNoNote(id)
			}
			ui.OK(r.opt.Out, fmt.Sprintf("note #%d is now %s", id, color))
			return nil
		},
	}
}

func (r *runner) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			removed, err := ctrl.Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			if removed == 0 {
				return errNoNote(id)
			}
			ui.OK(r.opt.Out, fmt.Sprintf("removed note #%d", id))
			return nil
		},
	}
}

func (r *runner) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  exactArgs(0, "config"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := r.cfg.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = r.opt.Out.Write(b)
			return err
		},
	}
}

func errNoNote(id int) error {
	return fmt.Errorf("no note #%d (run `notes ls` to see ids)", id)
}

func listLines(list []model.Note) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s", t.Title.Render("Notes"), t.Muted.Render(countLabel(len(list))))
	lines := []string{header, ""}
	if len(list) == 0 {
		lines = append(lines, ui.Placeholder())
	}
	for _, n := range list {
		label := n.Title
		if label == "" {
			label = firstLine(n.Text)
		}
		label = ui.Truncate(label, listLabelWidth)
		dot := t.SymSwatch
		if c, ok := t.PaperFor(n.Color); ok {
			dot = t.Accent.Foreground(c).Render(dot)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%3s", "#"+strconv.Itoa(n.ID))), dot, label))
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `notes add \"Buy milk\"`"))
	return lines
}

func countLabel(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	return s
}

func colorNames() string {
	names := make([]string, len(model.Palette))
	for i, c := range model.Palette {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

// termWidth honours $COLUMNS when the shell exports it.
func termWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultWidth
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

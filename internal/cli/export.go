package cli

import (
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/notes/internal/model"
)

// document is the top-level table TOML needs around the list.
type document struct {
	Notes []model.Note `toml:"notes" yaml:"notes"`
}

func (r *runner) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [--format json|yaml|toml]",
		Short: "Dump every note to stdout",
		Args:  exactArgs(0, "export [--format json|yaml|toml]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "json", "yaml", "yml", "toml":
			default:
				return usagef("export: unknown format %q (json, yaml or toml)", format)
			}
			ctrl, closeSlot, err := r.open(cmd.Context(), discard{}, r.log)
			if err != nil {
				return err
			}
			defer closeSlot()
			list := ctrl.Notes()
			if list == nil {
				list = []model.Note{}
			}
			r.log.Debug("export", "format", format, "notes", len(list))
			return export(r.opt.Out, format, list)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or toml")
	return cmd
}

func export(w io.Writer, format string, list []model.Note) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Notes: list}); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		b, err := toml.Marshal(document{Notes: list})
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return writeJSON(w, list)
}

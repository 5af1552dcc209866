package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"l14tables/pkg/css"
	"l14tables/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <input.html>",
		Short: "Render the tables of a document to PNG or PDF.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			def, err := render.ParseFormat(a.cfg.Render.Format)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(def)
			}
			format := def
			if !cmd.Flags().Changed("format") {
				if format, err = render.FormatFromPath(output, def); err != nil {
					return err
				}
			}

			bg, ok := css.ParseColor(a.cfg.Render.Background)
			if !ok {
				return fmt.Errorf("render.background: bad color %q", a.cfg.Render.Background)
			}

			m := a.measurer()
			tables, err := a.layoutFile(input, m)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			err = render.Write(f, tables, format, render.Options{
				Width:      a.cfg.Render.Width,
				Height:     a.cfg.Render.Height,
				Background: bg,
				BaseDir:    filepath.Dir(input),
				Measurer:   m,
				Logger:     a.logger.Named("render"),
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			a.logger.Info("Rendered tables",
				zap.String("input", input),
				zap.String("output", output),
				zap.String("format", string(format)),
				zap.Int("tables", len(tables)))
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d table(s) from %s to %s\n", len(tables), input, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().String("format", "", "output format (png|pdf); inferred from --output when omitted")
	cmd.Flags().String("background", "", "page background color")
	return cmd
}

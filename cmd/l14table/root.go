package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"l14tables/pkg/config"
	"l14tables/pkg/css"
	"l14tables/pkg/html"
	"l14tables/pkg/layout"
	"l14tables/pkg/observability"
	"l14tables/pkg/text"
)

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "l14table",
		Short:         "Lay out and render HTML tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cfgFile)
			if err != nil {
				return err
			}
			if err := bindFlags(cmd, v); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			a.v, a.cfg, a.logger = v, cfg, observability.GetLogger()
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	cmd.PersistentFlags().Int("width", 0, "viewport width in px")
	cmd.PersistentFlags().Int("height", 0, "viewport height in px")
	cmd.PersistentFlags().String("default-border-collapse", "", "border model for tables that declare none (separate|collapse)")

	cmd.AddCommand(newRenderCmd(a), newBordersCmd(a))
	return cmd
}

// flagKeys maps flag names to the viper keys they override.
var flagKeys = map[string]string{
	"width":                   "render.width",
	"height":                  "render.height",
	"default-border-collapse": "layout.default_border_collapse",
	"format":                  "render.format",
	"background":              "render.background",
}

// bindFlags binds the flags the user actually set, so unset flags leave
// file and environment values alone.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// measurer returns the text measurer for the configured fonts.
func (a *app) measurer() *text.Measurer {
	fonts := text.DefaultFontConfig()
	if a.cfg.Render.FontFile != "" {
		fonts.Regular = a.cfg.Render.FontFile
	}
	if a.cfg.Render.BoldFile != "" {
		fonts.Bold = a.cfg.Render.BoldFile
	}
	return text.NewMeasurer(fonts)
}

// layoutFile parses and lays out every outermost table of the document at path.
func (a *app) layoutFile(path string, m *text.Measurer) ([]*layout.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	doc, err := html.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	le := layout.NewLayoutEngine(float64(a.cfg.Render.Width), float64(a.cfg.Render.Height)).
		WithLogger(a.logger.Named("layout")).
		WithMeasurer(m)
	if strings.EqualFold(a.cfg.Layout.DefaultBorderCollapse, string(css.BorderCollapseCollapse)) {
		le.SetDefaultBorderCollapse(css.BorderCollapseCollapse)
	}
	le.SetDebugBorders(a.cfg.Layout.DebugBorders)

	tables, err := le.Layout(doc)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", filepath.Base(path), err)
	}
	return tables, nil
}

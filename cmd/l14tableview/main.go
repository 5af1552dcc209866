// Command l14tableview opens an HTML document and shows its tables as laid
// out and painted by the raster renderer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"l14tables/pkg/config"
	"l14tables/pkg/css"
	"l14tables/pkg/html"
	"l14tables/pkg/layout"
	"l14tables/pkg/observability"
	"l14tables/pkg/render"
	"l14tables/pkg/text"
)

func main() {
	cfgFile := flag.String("config", "", "config file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	observability.InitializeLogger(cfg.Logger)
	defer observability.Sync()
	logger := observability.GetLogger()

	a := app.New()
	w := a.NewWindow("l14table viewer")
	w.Resize(fyne.NewSize(float32(cfg.Render.Width), float32(cfg.Render.Height)+80))

	canvasImg := canvas.NewImageFromImage(render.NewRenderer(cfg.Render.Width, cfg.Render.Height).Image())
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("Enter the path of an HTML file and press Enter")
	collapse := widget.NewCheck("Collapse by default", nil)
	collapse.SetChecked(strings.EqualFold(cfg.Layout.DefaultBorderCollapse, string(css.BorderCollapseCollapse)))

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("tables.html")
	load := func(path string) {
		status.SetText("Loading " + path + "...")
		go func() {
			r, n, err := renderFile(cfg, logger, path, collapse.Checked)
			fyne.Do(func() {
				if err != nil {
					logger.Error("Render failed", zap.String("path", path), zap.Error(err))
					status.SetText("Error: " + err.Error())
					return
				}
				canvasImg.Image = r.Image()
				canvasImg.Refresh()
				status.SetText(fmt.Sprintf("%s: %d table(s)", path, n))
				w.SetTitle("l14table viewer - " + filepath.Base(path))
			})
		}()
	}
	pathEntry.OnSubmitted = load
	collapse.OnChanged = func(bool) {
		if pathEntry.Text != "" {
			load(pathEntry.Text)
		}
	}

	topBar := container.NewBorder(nil, nil, nil, collapse, pathEntry)
	w.SetContent(container.NewBorder(topBar, status, nil, nil, container.NewScroll(canvasImg)))
	w.Canvas().Focus(pathEntry)

	if flag.NArg() > 0 {
		pathEntry.SetText(flag.Arg(0))
		load(flag.Arg(0))
	}
	w.ShowAndRun()
}

// renderFile lays out and paints the document at path.
func renderFile(cfg *config.Config, logger *zap.Logger, path string, collapse bool) (*render.Renderer, int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	doc, err := html.Parse(string(src))
	if err != nil {
		return nil, 0, fmt.Errorf("parse: %w", err)
	}

	fonts := text.DefaultFontConfig()
	if cfg.Render.FontFile != "" {
		fonts.Regular = cfg.Render.FontFile
	}
	if cfg.Render.BoldFile != "" {
		fonts.Bold = cfg.Render.BoldFile
	}
	m := text.NewMeasurer(fonts)

	le := layout.NewLayoutEngine(float64(cfg.Render.Width), float64(cfg.Render.Height)).
		WithLogger(logger.Named("layout")).
		WithMeasurer(m)
	if collapse {
		le.SetDefaultBorderCollapse(css.BorderCollapseCollapse)
	}
	le.SetDebugBorders(cfg.Layout.DebugBorders)
	tables, err := le.Layout(doc)
	if err != nil {
		return nil, 0, err
	}

	bg, ok := css.ParseColor(cfg.Render.Background)
	if !ok {
		bg = css.White
	}
	r := render.NewRenderer(cfg.Render.Width, cfg.Render.Height)
	r.SetBaseDir(filepath.Dir(path))
	r.SetLogger(logger.Named("render"))
	r.SetMeasurer(m)
	r.Render(tables, bg)
	return r, len(tables), nil
}

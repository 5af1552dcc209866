package visualtest

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
	"l14tables/pkg/layout"
	"l14tables/pkg/render"
)

// RenderHTML lays out the tables of htmlContent and paints them on a white
// page of the given size. basePath resolves relative background images.
func RenderHTML(htmlContent string, width, height int, basePath string) (image.Image, error) {
	doc, err := html.Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	engine := layout.NewLayoutEngine(float64(width), float64(height))
	tables, err := engine.Layout(doc)
	if err != nil {
		return nil, fmt.Errorf("layout error: %w", err)
	}

	renderer := render.NewRenderer(width, height)
	renderer.SetBaseDir(basePath)
	renderer.Render(tables, css.White)
	return renderer.Image(), nil
}

// RenderHTMLToFile renders HTML content to a PNG file
func RenderHTMLToFile(htmlContent, outputPath string, width, height int) error {
	img, err := RenderHTML(htmlContent, width, height, "")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// RefTest renders a test document and a reference document that should look
// the same, and compares them.
func RefTest(testHTML, refHTML string, width, height int, opts CompareOptions) (*CompareResult, error) {
	actual, err := RenderHTML(testHTML, width, height, "")
	if err != nil {
		return nil, fmt.Errorf("test document: %w", err)
	}
	expected, err := RenderHTML(refHTML, width, height, "")
	if err != nil {
		return nil, fmt.Errorf("reference document: %w", err)
	}
	return Compare(actual, expected, opts)
}

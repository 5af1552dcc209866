package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"l14tables/pkg/css"
	"l14tables/pkg/images"
	"l14tables/pkg/layout"
	"l14tables/pkg/text"
)

// Renderer paints laid out tables into an RGBA image with gg.
type Renderer struct {
	context  *gg.Context
	measurer *text.Measurer
	images   *images.ImageCache
	baseDir  string
	logger   *zap.Logger
	clips    []layout.Rect
}

var _ layout.OutputDevice = (*Renderer)(nil)

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		context:  gg.NewContext(width, height),
		measurer: text.Default(),
		images:   images.NewImageCache(),
		logger:   zap.NewNop(),
	}
}

// SetBaseDir sets the directory relative background image paths resolve
// against.
func (r *Renderer) SetBaseDir(dir string) { r.baseDir = dir }

func (r *Renderer) SetLogger(logger *zap.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

func (r *Renderer) SetMeasurer(m *text.Measurer) {
	if m != nil {
		r.measurer = m
	}
}

// Render clears the canvas to background and paints every table.
func (r *Renderer) Render(tables []*layout.Table, background css.Color) {
	r.context.SetRGBA(background.RGBA())
	r.context.Clear()
	for _, t := range tables {
		t.Paint(r)
	}
}

// PaintBackground fills bounds with the background color, then tiles the
// background image from the top-left of imageContainer, clipped to bounds.
func (r *Renderer) PaintBackground(style *css.Style, bounds, imageContainer layout.Rect) {
	if bounds.Empty() {
		return
	}
	if c, ok := style.GetBackgroundColor(); ok {
		r.context.SetRGBA(c.RGBA())
		r.context.DrawRectangle(bounds.X, bounds.Y, bounds.Width, bounds.Height)
		r.context.Fill()
	}
	if ref, ok := style.GetBackgroundImage(); ok {
		r.drawBackgroundImage(ref, style.GetBackgroundRepeat(), bounds, imageContainer)
	}
}

func (r *Renderer) drawBackgroundImage(ref string, repeat css.BackgroundRepeat, bounds, container layout.Rect) {
	img, err := r.images.Load(images.Resolve(r.baseDir, ref))
	if err != nil {
		r.logger.Debug("background image skipped", zap.String("ref", ref), zap.Error(err))
		return
	}
	size := img.Bounds().Size()

	r.PushClip(bounds)
	for _, tile := range tiles(repeat, bounds, container, float64(size.X), float64(size.Y)) {
		r.context.DrawImage(img, int(tile.X), int(tile.Y))
	}
	r.PopClip()
}

// PushClip restricts painting to bounds, intersected with the current clip.
// gg's Pop keeps the clip mask, so the stack is kept here and the mask is
// rebuilt from its top.
func (r *Renderer) PushClip(bounds layout.Rect) {
	if clip, ok := r.clip(); ok {
		bounds = intersect(bounds, clip)
	}
	r.clips = append(r.clips, bounds)
	r.applyClip()
}

func (r *Renderer) PopClip() {
	if len(r.clips) == 0 {
		return
	}
	r.clips = r.clips[:len(r.clips)-1]
	r.applyClip()
}

func (r *Renderer) clip() (layout.Rect, bool) {
	if len(r.clips) == 0 {
		return layout.Rect{}, false
	}
	return r.clips[len(r.clips)-1], true
}

func (r *Renderer) applyClip() {
	r.context.ResetClip()
	if clip, ok := r.clip(); ok {
		r.context.DrawRectangle(clip.X, clip.Y, clip.Width, clip.Height)
		r.context.Clip()
	}
}

// PaintBorder paints each visible side as a mitered trapezoid.
func (r *Renderer) PaintBorder(border css.BorderPropertySet, bounds layout.Rect) {
	for _, side := range sides {
		b := border.Side(side)
		if !b.Visible() {
			continue
		}
		r.context.SetRGBA(b.Color.RGBA())
		if b.Style == css.BorderStyleSolid {
			q := trapezoid(bounds, border.Widths(), side)
			r.context.MoveTo(q[0].X, q[0].Y)
			for _, p := range q[1:] {
				r.context.LineTo(p.X, p.Y)
			}
			r.context.ClosePath()
			r.context.Fill()
			continue
		}
		r.drawBorderSide(sideRect(bounds, b.Width, side), b, side)
	}
}

// PaintCollapsedBorder paints one side of a collapsed border as a band
// along that edge of bounds. Corners overlap with the neighbouring sides,
// so the paint order decides which border shows there.
func (r *Renderer) PaintCollapsedBorder(border css.BorderPropertySet, bounds layout.Rect, side css.Side) {
	b := border.Side(side)
	if !b.Visible() {
		return
	}
	r.context.SetRGBA(b.Color.RGBA())
	r.drawBorderSide(sideRect(bounds, b.Width, side), b, side)
}

// drawBorderSide draws a single border side with a specific style
func (r *Renderer) drawBorderSide(rect layout.Rect, b css.BorderSide, side css.Side) {
	horizontal := side == css.SideTop || side == css.SideBottom
	switch b.Style {
	case css.BorderStyleDashed, css.BorderStyleDotted:
		r.context.SetLineWidth(b.Width)
		r.context.SetDash(dashPattern(b.Style, b.Width)...)
		if horizontal {
			r.context.DrawLine(rect.X, rect.Y+rect.Height/2, rect.X+rect.Width, rect.Y+rect.Height/2)
		} else {
			r.context.DrawLine(rect.X+rect.Width/2, rect.Y, rect.X+rect.Width/2, rect.Y+rect.Height)
		}
		r.context.Stroke()
		r.context.SetDash()

	case css.BorderStyleDouble:
		for _, band := range doubleBands(rect, horizontal) {
			r.context.DrawRectangle(band.X, band.Y, band.Width, band.Height)
			r.context.Fill()
		}

	case css.BorderStyleGroove, css.BorderStyleRidge, css.BorderStyleInset, css.BorderStyleOutset:
		for _, band := range shadedBands(rect, b, side) {
			r.context.SetRGBA(band.color.RGBA())
			r.context.DrawRectangle(band.rect.X, band.rect.Y, band.rect.Width, band.rect.Height)
			r.context.Fill()
		}

	default:
		r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		r.context.Fill()
	}
}

// DrawText draws s with its baseline at y. gg draws glyphs without the clip
// mask, so clipped text goes through a layer the size of the clip.
func (r *Renderer) DrawText(s string, x, y float64, style *css.Style) {
	if s == "" {
		return
	}
	clip, ok := r.clip()
	if !ok {
		r.drawString(r.context, s, x, y, style)
		return
	}
	if clip.Empty() {
		return
	}
	x0, y0 := math.Floor(clip.X), math.Floor(clip.Y)
	layer := gg.NewContext(int(math.Ceil(clip.Right())-x0), int(math.Ceil(clip.Bottom())-y0))
	r.drawString(layer, s, x-x0, y-y0, style)
	r.context.DrawImage(layer.Image(), int(x0), int(y0))
}

func (r *Renderer) drawString(dc *gg.Context, s string, x, y float64, style *css.Style) {
	size, bold := style.GetFontSize(), style.GetFontWeight() == css.FontWeightBold
	face, scale := r.measurer.Face(size, bold)

	dc.Push()
	dc.SetRGBA(style.GetColor().RGBA())
	dc.SetFontFace(face)
	dc.Translate(x, y)
	dc.Scale(scale, scale)
	dc.DrawString(s, 0, 0)
	dc.Pop()
}

// Image returns the rendered image.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// EncodePNG writes the rendered image as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.context.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Renderer) SavePNG(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

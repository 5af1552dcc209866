package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"go.uber.org/zap"

	"l14tables/pkg/css"
	"l14tables/pkg/images"
	"l14tables/pkg/layout"
	"l14tables/pkg/text"
)

// pxToMM converts CSS pixels (96 per inch) to millimetres.
const pxToMM = 25.4 / 96

// pxToPt converts CSS pixels to points.
const pxToPt = 72.0 / 96

// fallbackFont is the system font used when no font file is configured.
const fallbackFont = "sans-serif"

// PDFDevice paints laid out tables as vector graphics with tdewolff/canvas
// and writes them as a single PDF page. Layout coordinates are CSS pixels.
type PDFDevice struct {
	canvas  *canvas.Canvas
	ctx     *canvas.Context
	fonts   text.FontConfig
	images  *images.ImageCache
	baseDir string
	logger  *zap.Logger
	clips   []layout.Rect

	fontOnce sync.Once
	family   *canvas.FontFamily
	fontErr  error
}

var _ layout.OutputDevice = (*PDFDevice)(nil)

func NewPDFDevice(width, height float64) *PDFDevice {
	c := canvas.New(width*pxToMM, height*pxToMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &PDFDevice{
		canvas: c,
		ctx:    ctx,
		fonts:  text.DefaultFontConfig(),
		images: images.NewImageCache(),
		logger: zap.NewNop(),
	}
}

func (d *PDFDevice) SetBaseDir(dir string) { d.baseDir = dir }

func (d *PDFDevice) SetLogger(logger *zap.Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// SetFonts sets the font files used for text. It must be called before the
// first DrawText.
func (d *PDFDevice) SetFonts(fonts text.FontConfig) { d.fonts = fonts }

// Render fills the page with background and paints every table.
func (d *PDFDevice) Render(tables []*layout.Table, background css.Color) {
	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.SetFillColor(toColor(background))
	d.ctx.DrawPath(0, 0, canvas.Rectangle(d.canvas.W, d.canvas.H))
	for _, t := range tables {
		t.Paint(d)
	}
}

// PushClip restricts painting to bounds. The page has no clip path, so each
// primitive is cut to the current clip before it is drawn.
func (d *PDFDevice) PushClip(bounds layout.Rect) {
	if clip, ok := d.clip(); ok {
		bounds = intersect(bounds, clip)
	}
	d.clips = append(d.clips, bounds)
}

func (d *PDFDevice) PopClip() {
	if len(d.clips) > 0 {
		d.clips = d.clips[:len(d.clips)-1]
	}
}

func (d *PDFDevice) clip() (layout.Rect, bool) {
	if len(d.clips) == 0 {
		return layout.Rect{}, false
	}
	return d.clips[len(d.clips)-1], true
}

func (d *PDFDevice) fillRect(r layout.Rect, c css.Color) {
	if clip, ok := d.clip(); ok {
		r = intersect(r, clip)
	}
	if r.Empty() {
		return
	}
	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.SetFillColor(toColor(c))
	d.ctx.DrawPath(r.X*pxToMM, r.Y*pxToMM, canvas.Rectangle(r.Width*pxToMM, r.Height*pxToMM))
}

// PaintBackground fills bounds with the background color and tiles the
// background image from imageContainer. Tiles are cropped to bounds and the
// current clip.
func (d *PDFDevice) PaintBackground(style *css.Style, bounds, imageContainer layout.Rect) {
	if bounds.Empty() {
		return
	}
	if c, ok := style.GetBackgroundColor(); ok {
		d.fillRect(bounds, c)
	}
	ref, ok := style.GetBackgroundImage()
	if !ok {
		return
	}
	img, err := d.images.Load(images.Resolve(d.baseDir, ref))
	if err != nil {
		d.logger.Debug("background image skipped", zap.String("ref", ref), zap.Error(err))
		return
	}
	size := img.Bounds().Size()
	w, h := float64(size.X), float64(size.Y)
	area := bounds
	if clip, ok := d.clip(); ok {
		area = intersect(area, clip)
	}
	for _, tile := range tiles(style.GetBackgroundRepeat(), bounds, imageContainer, w, h) {
		visible := intersect(layout.Rect{X: tile.X, Y: tile.Y, Width: w, Height: h}, area)
		if visible.Empty() {
			continue
		}
		sub := crop(img, image.Rect(
			int(visible.X-tile.X), int(visible.Y-tile.Y),
			int(visible.Right()-tile.X), int(visible.Bottom()-tile.Y),
		))
		d.ctx.DrawImage(visible.X*pxToMM, visible.Y*pxToMM, sub, canvas.DPMM(1/pxToMM))
	}
}

// PaintBorder paints each visible side; solid sides are mitered.
func (d *PDFDevice) PaintBorder(border css.BorderPropertySet, bounds layout.Rect) {
	for _, side := range sides {
		b := border.Side(side)
		if !b.Visible() {
			continue
		}
		if b.Style != css.BorderStyleSolid {
			d.drawBorderSide(sideRect(bounds, b.Width, side), b, side)
			continue
		}
		q := trapezoid(bounds, border.Widths(), side)
		poly := q[:]
		if clip, ok := d.clip(); ok {
			if poly = clipPolygon(poly, clip); poly == nil {
				continue
			}
		}
		p := &canvas.Path{}
		p.MoveTo(poly[0].X*pxToMM, poly[0].Y*pxToMM)
		for _, pt := range poly[1:] {
			p.LineTo(pt.X*pxToMM, pt.Y*pxToMM)
		}
		p.Close()
		d.ctx.SetStrokeColor(canvas.Transparent)
		d.ctx.SetFillColor(toColor(b.Color))
		d.ctx.DrawPath(0, 0, p)
	}
}

// PaintCollapsedBorder paints one side of a collapsed border along that edge
// of bounds.
func (d *PDFDevice) PaintCollapsedBorder(border css.BorderPropertySet, bounds layout.Rect, side css.Side) {
	b := border.Side(side)
	if !b.Visible() {
		return
	}
	d.drawBorderSide(sideRect(bounds, b.Width, side), b, side)
}

func (d *PDFDevice) drawBorderSide(rect layout.Rect, b css.BorderSide, side css.Side) {
	horizontal := side == css.SideTop || side == css.SideBottom
	switch b.Style {
	case css.BorderStyleDashed, css.BorderStyleDotted:
		from, to, at := rect.X, rect.Right(), rect.Y+rect.Height/2
		if !horizontal {
			from, to, at = rect.Y, rect.Bottom(), rect.X+rect.Width/2
		}
		// A clipped line keeps its dash phase.
		var skipped float64
		if clip, ok := d.clip(); ok {
			lo, hi, near, far := clip.X, clip.Right(), clip.Y, clip.Bottom()
			if !horizontal {
				lo, hi, near, far = clip.Y, clip.Bottom(), clip.X, clip.Right()
			}
			var visible bool
			from, to, skipped, visible = clipSpan(from, to, lo, hi)
			if !visible || at < near || at > far {
				return
			}
		}
		p := &canvas.Path{}
		if horizontal {
			p.MoveTo(from*pxToMM, at*pxToMM)
			p.LineTo(to*pxToMM, at*pxToMM)
		} else {
			p.MoveTo(at*pxToMM, from*pxToMM)
			p.LineTo(at*pxToMM, to*pxToMM)
		}
		dashes := dashPattern(b.Style, b.Width)
		for i := range dashes {
			dashes[i] *= pxToMM
		}
		d.ctx.SetFillColor(canvas.Transparent)
		d.ctx.SetStrokeColor(toColor(b.Color))
		d.ctx.SetStrokeWidth(b.Width * pxToMM)
		d.ctx.SetDashes(skipped*pxToMM, dashes...)
		d.ctx.DrawPath(0, 0, p)
		d.ctx.SetDashes(0)

	case css.BorderStyleDouble:
		for _, band := range doubleBands(rect, horizontal) {
			d.fillRect(band, b.Color)
		}

	case css.BorderStyleGroove, css.BorderStyleRidge, css.BorderStyleInset, css.BorderStyleOutset:
		for _, band := range shadedBands(rect, b, side) {
			d.fillRect(band.rect, band.color)
		}

	default:
		d.fillRect(rect, b.Color)
	}
}

// DrawText draws s with its baseline at y. Without a usable font the text is
// skipped.
func (d *PDFDevice) DrawText(s string, x, y float64, style *css.Style) {
	if s == "" {
		return
	}
	family, err := d.fontFamily()
	if err != nil {
		d.logger.Debug("text skipped", zap.String("text", s), zap.Error(err))
		return
	}
	fontStyle := canvas.FontRegular
	if style.GetFontWeight() == css.FontWeightBold {
		fontStyle = canvas.FontBold
	}
	face := family.Face(style.GetFontSize()*pxToPt, toColor(style.GetColor()), fontStyle, canvas.FontNormal)
	if clip, ok := d.clip(); ok {
		if s = clipText(s, x, y, clip, func(s string) float64 { return face.TextWidth(s) / pxToMM }); s == "" {
			return
		}
	}
	d.ctx.DrawText(x*pxToMM, y*pxToMM, canvas.NewTextLine(face, s, canvas.Left))
}

// clipText drops the trailing glyphs of s that would end past the right edge
// of clip, and all of s when its baseline or start lies outside clip.
func clipText(s string, x, y float64, clip layout.Rect, width func(string) float64) string {
	if y < clip.Y || y > clip.Bottom() || x < clip.X || x >= clip.Right() {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && x+width(string(runes)) > clip.Right() {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func (d *PDFDevice) fontFamily() (*canvas.FontFamily, error) {
	d.fontOnce.Do(func() {
		family := canvas.NewFontFamily("l14table")
		if d.fonts.Regular == "" {
			d.fontErr = family.LoadSystemFont(fallbackFont, canvas.FontRegular)
		} else {
			d.fontErr = family.LoadFontFile(d.fonts.Regular, canvas.FontRegular)
			if d.fontErr == nil && d.fonts.Bold != "" {
				d.fontErr = family.LoadFontFile(d.fonts.Bold, canvas.FontBold)
			}
		}
		if d.fontErr != nil {
			d.fontErr = fmt.Errorf("load font: %w", d.fontErr)
			return
		}
		d.family = family
	})
	return d.family, d.fontErr
}

// WritePDF writes the page as a PDF document.
func (d *PDFDevice) WritePDF(w io.Writer) error {
	writer := pdf.New(w, d.canvas.W, d.canvas.H, nil)
	d.canvas.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func toColor(c css.Color) color.Color {
	return canvas.RGBA(c.RGBA())
}

func intersect(a, b layout.Rect) layout.Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return layout.Rect{}
	}
	return layout.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// crop returns the part of img inside r, relative to img's origin.
func crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	if r == img.Bounds() {
		return img
	}
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

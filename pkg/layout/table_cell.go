package layout

import (
	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

// BorderSet returns the border the cell lays out with: the cached collapsed
// layout border when the table collapses borders, the cell's own border
// otherwise. A collapsed border that was never resolved reads as zero.
func (c *TableCell) BorderSet() css.BorderPropertySet {
	if c.Table.IsCollapseBorders() {
		if b, ok := c.CollapsedLayoutBorder(); ok {
			return b
		}
		return css.NoBorders
	}
	return c.Style().GetBorder()
}

// Border returns the widths of BorderSet.
func (c *TableCell) Border() css.BoxEdge {
	return c.BorderSet().Widths()
}

// calcDimensions refreshes the box's margin, border and padding. Cells have
// no margins.
func (c *TableCell) calcDimensions() {
	if c.IsSkipWhenCollapsingMargins() {
		c.Box.Margin = css.BoxEdge{}
	}
	c.Box.Border = c.Border()
	c.Box.Padding = c.Style().GetPadding()
}

// OuterStyleWidth returns the declared width plus horizontal border and
// padding. Auto and percentage widths are returned unchanged.
func (c *TableCell) OuterStyleWidth() css.Length {
	result := c.Style().AsLength("width")
	if result.IsVariable() || result.IsPercent() {
		return result
	}
	border := c.Border()
	padding := c.Style().GetPadding()
	result.Value += border.Horizontal() + padding.Horizontal()
	return result
}

// OuterStyleOrColWidth is OuterStyleWidth, falling back to the width of the
// cell's column element for a single-column cell with an auto width.
func (c *TableCell) OuterStyleOrColWidth() css.Length {
	result := c.OuterStyleWidth()
	if c.ColSpan > 1 || !result.IsVariable() {
		return result
	}
	if col := c.Table.ColElement(c.col); col != nil {
		result = col.Box.Style.AsLength("width")
	}
	return result
}

// SetLayoutWidth assigns the cell's border-box width.
func (c *TableCell) SetLayoutWidth(width float64) {
	c.calcDimensions()
	c.Box.Width = max(0, width-c.Box.LeftMBP()-c.Box.RightMBP())
}

// IsAutoHeight reports a height that does not constrain the row.
func (c *TableCell) IsAutoHeight() bool {
	return c.Style().IsAutoHeight() || !c.Style().HasAbsoluteUnit("height")
}

// CalcBaseline returns the baseline of the first line of content, or the top
// of the content area when the cell has no lines.
func (c *TableCell) CalcBaseline() float64 {
	if len(c.Box.LineBoxes) > 0 {
		lb := c.Box.LineBoxes[0]
		return lb.Y + lb.BaselineY
	}
	return c.Box.ContentBox().Y
}

// MoveContent shifts the cell's content and floats vertically, leaving the
// cell box itself in place.
func (c *TableCell) MoveContent(deltaY float64) {
	if deltaY == 0 {
		return
	}
	for _, child := range c.Box.Children {
		child.shift(deltaY)
	}
	c.floats.PerformFloatOperation(func(floater *Box) {
		floater.shift(deltaY)
	})
	for _, lb := range c.Box.LineBoxes {
		lb.Y += deltaY
	}
}

// VerticalAlign returns top, middle or bottom, and baseline for every other
// keyword.
func (c *TableCell) VerticalAlign() css.VerticalAlign {
	return c.Style().GetVerticalAlign()
}

// IsFixedWidthAdvisoryOnly reports that a fixed cell width is a minimum
// rather than the used width, which is the case in the auto table layout.
func (c *TableCell) IsFixedWidthAdvisoryOnly() bool {
	return c.Table.Box.Style.GetTableLayout() == css.TableLayoutAuto
}

// IsSkipWhenCollapsingMargins is always true: cells take no part in margin
// collapsing.
func (c *TableCell) IsSkipWhenCollapsingMargins() bool {
	return true
}

// IsEmpty reports a cell with no element children and only whitespace text,
// the condition under which empty-cells: hide suppresses painting.
func (c *TableCell) IsEmpty() bool {
	n := c.Box.Node
	if n == nil {
		return true
	}
	for _, child := range n.Children {
		if child.Type == html.ElementNode || !child.IsWhitespace() {
			return false
		}
	}
	return true
}

func (c *TableCell) isPaintBackgroundsAndBorders() bool {
	return c.Style().IsShowEmptyCells() || !c.IsEmpty()
}

// PaintingBorderEdge returns the cell's border box.
func (c *TableCell) PaintingBorderEdge() Rect {
	return c.Box.BorderBox()
}

// PaintBackground paints, back to front, the column, row group, row and
// cell backgrounds over the cell's border box. Each layer tiles its image
// from its own box, so a row image runs continuously across its cells.
func (c *TableCell) PaintBackground(dev OutputDevice) {
	if !c.isPaintBackgroundsAndBorders() || !c.Style().IsVisible() {
		return
	}
	t := c.Table
	bounds := c.PaintingBorderEdge()

	if col := t.ColElement(c.col); col != nil {
		dev.PaintBackground(col.Box.Style, bounds, t.ColumnBounds(c.col))
	}

	hSpacing, vSpacing := t.HSpacing(), t.VSpacing()

	imageContainer := c.Section.Box.BorderBox()
	imageContainer.Y += vSpacing
	imageContainer.Height -= vSpacing
	imageContainer.X += hSpacing
	imageContainer.Width -= 2 * hSpacing
	dev.PaintBackground(c.Section.Box.Style, bounds, imageContainer)

	row := c.RowBox()
	imageContainer = row.Box.BorderBox()
	imageContainer.X += hSpacing
	imageContainer.Width -= 2 * hSpacing
	dev.PaintBackground(row.Box.Style, bounds, imageContainer)

	dev.PaintBackground(c.Style(), bounds, bounds)
}

// PaintBorder paints the separate-model border. Collapsed borders are
// painted by the table in one pass over de-duplicated segments.
func (c *TableCell) PaintBorder(dev OutputDevice) {
	if c.isPaintBackgroundsAndBorders() && !c.HasCollapsedPaintingBorder() {
		dev.PaintBorder(c.Style().GetBorder(), c.PaintingBorderEdge())
	}
}

// PaintCollapsedBorder paints one side of the full-width collapsed border.
func (c *TableCell) PaintCollapsedBorder(dev OutputDevice, side css.Side) {
	border, ok := c.CollapsedPaintingBorder()
	if !ok {
		return
	}
	dev.PaintCollapsedBorder(border, c.CollapsedBorderBounds(), side)
}

// CollapsedBorderBounds grows the border box so that each full painted
// border straddles its grid line: the half already reserved inside the cell
// plus the neighbour's half outside it.
func (c *TableCell) CollapsedBorderBounds() Rect {
	bounds := c.PaintingBorderEdge()
	border, ok := c.CollapsedPaintingBorder()
	if !ok {
		return bounds
	}
	top, right := int(border.Top.Width), int(border.Right.Width)
	bottom, left := int(border.Bottom.Width), int(border.Left.Width)

	bounds.X -= float64(left / 2)
	bounds.Y -= float64(top / 2)
	bounds.Width += float64(left/2 + (right+1)/2)
	bounds.Height += float64(top/2 + (bottom+1)/2)
	return bounds
}

// PaintingClipEdge is the area cell painting is clipped to.
func (c *TableCell) PaintingClipEdge() Rect {
	if c.HasCollapsedPaintingBorder() {
		return c.CollapsedBorderBounds()
	}
	return c.PaintingBorderEdge()
}

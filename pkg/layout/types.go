package layout

import (
	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

// Role is the table role a box plays. Table-specific behavior hangs off the
// role and the variant data on Box rather than separate box types.
type Role int

const (
	RoleBlock Role = iota
	RoleText
	RoleTable
	RoleRowGroup
	RoleRow
	RoleColumn
	RoleColumnGroup
	RoleCell
)

func (r Role) String() string {
	switch r {
	case RoleText:
		return "text"
	case RoleTable:
		return "table"
	case RoleRowGroup:
		return "row-group"
	case RoleRow:
		return "row"
	case RoleColumn:
		return "column"
	case RoleColumnGroup:
		return "column-group"
	case RoleCell:
		return "cell"
	}
	return "block"
}

// Box is a node of the box tree. X and Y locate the border box; Width and
// Height are the content size.
type Box struct {
	Node     *html.Node
	Style    *css.Style
	Role     Role
	X        float64
	Y        float64
	Width    float64 // Content width
	Height   float64 // Content height
	Margin   css.BoxEdge
	Padding  css.BoxEdge
	Border   css.BoxEdge
	Children []*Box
	Parent   *Box

	// Text holds the run of a RoleText box.
	Text string

	// Line boxes for block containers with inline content
	LineBoxes []*LineBox

	// Cell is set for RoleCell boxes.
	Cell *TableCell
}

func newBox(node *html.Node, style *css.Style, role Role) *Box {
	if style == nil {
		style = css.NewStyle()
	}
	return &Box{Node: node, Style: style, Role: role}
}

// AddChild appends child and sets its parent.
func (b *Box) AddChild(child *Box) {
	child.Parent = b
	b.Children = append(b.Children, child)
}

// BorderBox returns the box's border edge rectangle.
func (b *Box) BorderBox() Rect {
	return Rect{
		X:      b.X,
		Y:      b.Y,
		Width:  b.Border.Left + b.Padding.Left + b.Width + b.Padding.Right + b.Border.Right,
		Height: b.Border.Top + b.Padding.Top + b.Height + b.Padding.Bottom + b.Border.Bottom,
	}
}

// ContentBox returns the box's content edge rectangle.
func (b *Box) ContentBox() Rect {
	return Rect{
		X:      b.X + b.Border.Left + b.Padding.Left,
		Y:      b.Y + b.Border.Top + b.Padding.Top,
		Width:  b.Width,
		Height: b.Height,
	}
}

// LeftMBP is the left margin, border and padding.
func (b *Box) LeftMBP() float64 { return b.Margin.Left + b.Border.Left + b.Padding.Left }

func (b *Box) RightMBP() float64 { return b.Margin.Right + b.Border.Right + b.Padding.Right }

// shift moves b and its whole subtree vertically.
func (b *Box) shift(dy float64) {
	b.Y += dy
	for _, lb := range b.LineBoxes {
		lb.Y += dy
	}
	for _, c := range b.Children {
		c.shift(dy)
	}
}

// Rect represents a rectangular region
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports a rectangle with no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// LineBox represents a line of inline content
type LineBox struct {
	Y         float64 // Y position of the line box
	Height    float64 // Height of the line box
	Boxes     []*Box  // Inline-level boxes on this line
	BaselineY float64 // Y position of the alphabetic baseline (relative to line top)
}

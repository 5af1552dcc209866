package layout

import (
	"sort"

	"l14tables/pkg/css"
)

// Precedence ranks the owner of a border for conflict resolution. Higher
// ranks win when width and style are equal.
type Precedence int

const (
	PrecedenceTable    Precedence = 6
	PrecedenceColumn   Precedence = 7
	PrecedenceRowGroup Precedence = 8
	PrecedenceRow      Precedence = 9
	PrecedenceCell     Precedence = 10
)

func (p Precedence) String() string {
	switch p {
	case PrecedenceTable:
		return "table"
	case PrecedenceColumn:
		return "column"
	case PrecedenceRowGroup:
		return "row-group"
	case PrecedenceRow:
		return "row"
	case PrecedenceCell:
		return "cell"
	}
	return "none"
}

// CollapsedBorderValue is one contender for a collapsed border edge. The zero
// value is NoBorder, which does not exist. Values are comparable and are used
// directly as de-duplication keys.
type CollapsedBorderValue struct {
	Style      css.BorderStyle
	Width      int
	Color      css.Color
	Precedence Precedence
	exists     bool
}

// NoBorder is the result at an edge suppressed by a hidden border.
var NoBorder = CollapsedBorderValue{}

func NewCollapsedBorderValue(style css.BorderStyle, width int, color css.Color, precedence Precedence) CollapsedBorderValue {
	return CollapsedBorderValue{Style: style, Width: width, Color: color, Precedence: precedence, exists: true}
}

// Exists reports whether the value contributes a border at all.
func (v CollapsedBorderValue) Exists() bool { return v.exists }

// Hidden reports border-style: hidden.
func (v CollapsedBorderValue) Hidden() bool { return v.exists && v.Style == css.BorderStyleHidden }

// Visible reports a border that paints something.
func (v CollapsedBorderValue) Visible() bool {
	return v.exists && v.Width > 0 && v.Style != css.BorderStyleNone && v.Style != css.BorderStyleHidden
}

// withWidth returns a copy of v with a different width.
func (v CollapsedBorderValue) withWidth(w int) CollapsedBorderValue {
	v.Width = w
	return v
}

func (v CollapsedBorderValue) side() css.BorderSide {
	return css.BorderSide{Style: v.Style, Width: float64(v.Width), Color: v.Color}
}

func borderValue(b css.BorderSide, p Precedence) CollapsedBorderValue {
	return NewCollapsedBorderValue(b.Style, int(b.Width), b.Color, p)
}

func borderTop(s *css.Style, p Precedence) CollapsedBorderValue {
	return borderValue(s.GetBorder().Top, p)
}

func borderRight(s *css.Style, p Precedence) CollapsedBorderValue {
	return borderValue(s.GetBorder().Right, p)
}

func borderBottom(s *css.Style, p Precedence) CollapsedBorderValue {
	return borderValue(s.GetBorder().Bottom, p)
}

func borderLeft(s *css.Style, p Precedence) CollapsedBorderValue {
	return borderValue(s.GetBorder().Left, p)
}

// styleRank orders border styles for equal-width conflicts; lower wins.
// none and hidden never reach the ranking.
var styleRank = [...]int{
	css.BorderStyleDouble: 1,
	css.BorderStyleSolid:  2,
	css.BorderStyleDashed: 3,
	css.BorderStyleDotted: 4,
	css.BorderStyleRidge:  5,
	css.BorderStyleOutset: 6,
	css.BorderStyleGroove: 7,
	css.BorderStyleInset:  8,
}

// CompareBorders resolves the conflict between two borders meeting at an
// edge (CSS 2.1 §17.6.2.1):
//
//  1. a border that does not exist never wins;
//  2. hidden on either side suppresses the edge entirely;
//  3. none loses to anything else;
//  4. the wider border wins;
//  5. on equal width, styles rank double, solid, dashed, dotted, ridge,
//     outset, groove, inset;
//  6. otherwise the higher precedence wins and b1 wins ties.
//
// When nullOnEqual is set, a tie at step 6 is inconclusive and ok is false.
func CompareBorders(b1, b2 CollapsedBorderValue, nullOnEqual bool) (result CollapsedBorderValue, ok bool) {
	if !b2.Exists() {
		return b1, true
	}
	if !b1.Exists() {
		return b2, true
	}

	if b1.Style == css.BorderStyleHidden || b2.Style == css.BorderStyleHidden {
		return NoBorder, true
	}

	if b2.Style == css.BorderStyleNone {
		return b1, true
	}
	if b1.Style == css.BorderStyleNone {
		return b2, true
	}

	if b1.Width != b2.Width {
		if b1.Width > b2.Width {
			return b1, true
		}
		return b2, true
	}

	if b1.Style != b2.Style {
		if styleRank[b1.Style] < styleRank[b2.Style] {
			return b1, true
		}
		return b2, true
	}

	if nullOnEqual && b1.Precedence == b2.Precedence {
		return CollapsedBorderValue{}, false
	}
	if b1.Precedence >= b2.Precedence {
		return b1, true
	}
	return b2, true
}

func compareBorders(b1, b2 CollapsedBorderValue) CollapsedBorderValue {
	result, _ := CompareBorders(b1, b2, false)
	return result
}

// collapsedLeftBorder resolves the cell's left edge against, in order, the
// cell to the left (or the row and row group in the first column), the
// column elements on both sides of the grid line and finally the table.
func (c *TableCell) collapsedLeftBorder() CollapsedBorderValue {
	t := c.Table
	result := borderLeft(c.Style(), PrecedenceCell)

	if prev := t.CellLeft(c); prev != nil {
		result = compareBorders(result, borderRight(prev.Style(), PrecedenceCell))
		if !result.Exists() {
			return result
		}
	} else if c.col == 0 {
		result = compareBorders(result, borderLeft(c.RowBox().Box.Style, PrecedenceRow))
		if !result.Exists() {
			return result
		}
		result = compareBorders(result, borderLeft(c.Section.Box.Style, PrecedenceRowGroup))
		if !result.Exists() {
			return result
		}
	}

	if colElt := t.ColElement(c.col); colElt != nil {
		result = compareBorders(result, borderLeft(colElt.Box.Style, PrecedenceColumn))
		if !result.Exists() {
			return result
		}
	}

	if c.col > 0 {
		if colElt := t.ColElement(c.col - 1); colElt != nil {
			result = compareBorders(result, borderRight(colElt.Box.Style, PrecedenceColumn))
			if !result.Exists() {
				return result
			}
		}
	}

	if c.col == 0 {
		result = compareBorders(result, borderLeft(t.Box.Style, PrecedenceTable))
	}
	return result
}

// collapsedRightBorder mirrors collapsedLeftBorder on the cell's last
// spanned column.
func (c *TableCell) collapsedRightBorder() CollapsedBorderValue {
	t := c.Table
	lastCol := c.col + c.ColSpan - 1
	inLastColumn := t.ColToEffCol(lastCol) == t.NumEffCols()-1

	result := borderRight(c.Style(), PrecedenceCell)

	if !inLastColumn {
		if next := t.CellRight(c); next != nil {
			result = compareBorders(result, borderLeft(next.Style(), PrecedenceCell))
			if !result.Exists() {
				return result
			}
		}
	} else {
		result = compareBorders(result, borderRight(c.RowBox().Box.Style, PrecedenceRow))
		if !result.Exists() {
			return result
		}
		result = compareBorders(result, borderRight(c.Section.Box.Style, PrecedenceRowGroup))
		if !result.Exists() {
			return result
		}
	}

	if colElt := t.ColElement(lastCol); colElt != nil {
		result = compareBorders(result, borderRight(colElt.Box.Style, PrecedenceColumn))
		if !result.Exists() {
			return result
		}
	}

	if !inLastColumn {
		if colElt := t.ColElement(lastCol + 1); colElt != nil {
			result = compareBorders(result, borderLeft(colElt.Box.Style, PrecedenceColumn))
		}
	} else {
		result = compareBorders(result, borderRight(t.Box.Style, PrecedenceTable))
	}
	return result
}

// collapsedTopBorder resolves the cell's top edge against the cell above,
// the rows on both sides of the grid line, the row groups at a section
// boundary and, for the table's first row, the column and the table.
func (c *TableCell) collapsedTopBorder() CollapsedBorderValue {
	t := c.Table
	result := borderTop(c.Style(), PrecedenceCell)

	prev := t.CellAbove(c)
	if prev != nil {
		result = compareBorders(result, borderBottom(prev.Style(), PrecedenceCell))
		if !result.Exists() {
			return result
		}
	}

	result = compareBorders(result, borderTop(c.RowBox().Box.Style, PrecedenceRow))
	if !result.Exists() {
		return result
	}

	if prev != nil {
		var prevRow *Row
		if prev.Section == c.Section {
			prevRow = c.RowBox().PreviousRow()
		} else {
			prevRow = prev.Section.LastRow()
		}
		if prevRow != nil {
			result = compareBorders(result, borderBottom(prevRow.Box.Style, PrecedenceRow))
			if !result.Exists() {
				return result
			}
		}
	}

	currSection := c.Section
	if c.row == 0 {
		result = compareBorders(result, borderTop(currSection.Box.Style, PrecedenceRowGroup))
		if !result.Exists() {
			return result
		}

		currSection = t.SectionAbove(currSection, false)
		if currSection != nil {
			result = compareBorders(result, borderBottom(currSection.Box.Style, PrecedenceRowGroup))
			if !result.Exists() {
				return result
			}
		}
	}

	if currSection == nil {
		if colElt := t.ColElement(c.col); colElt != nil {
			result = compareBorders(result, borderTop(colElt.Box.Style, PrecedenceColumn))
			if !result.Exists() {
				return result
			}
		}
		result = compareBorders(result, borderTop(t.Box.Style, PrecedenceTable))
	}
	return result
}

// collapsedBottomBorder mirrors collapsedTopBorder on the cell's last
// spanned row.
func (c *TableCell) collapsedBottomBorder() CollapsedBorderValue {
	t := c.Table
	result := borderBottom(c.Style(), PrecedenceCell)

	next := t.CellBelow(c)
	if next != nil {
		result = compareBorders(result, borderTop(next.Style(), PrecedenceCell))
		if !result.Exists() {
			return result
		}
	}

	result = compareBorders(result, borderBottom(c.RowBox().Box.Style, PrecedenceRow))
	if !result.Exists() {
		return result
	}

	if next != nil {
		result = compareBorders(result, borderTop(next.RowBox().Box.Style, PrecedenceRow))
		if !result.Exists() {
			return result
		}
	}

	currSection := c.Section
	if c.row+c.RowSpan >= currSection.NumRows() {
		result = compareBorders(result, borderBottom(currSection.Box.Style, PrecedenceRowGroup))
		if !result.Exists() {
			return result
		}

		currSection = t.SectionBelow(currSection, false)
		if currSection != nil {
			result = compareBorders(result, borderTop(currSection.Box.Style, PrecedenceRowGroup))
			if !result.Exists() {
				return result
			}
		}
	}

	if currSection == nil {
		if colElt := t.ColElement(c.col); colElt != nil {
			result = compareBorders(result, borderBottom(colElt.Box.Style, PrecedenceColumn))
			if !result.Exists() {
				return result
			}
		}
		result = compareBorders(result, borderBottom(t.Box.Style, PrecedenceTable))
	}
	return result
}

// CalcCollapsedBorder resolves all four edges and caches the painting border
// set (full widths) and the layout border set. The layout set keeps half of
// each shared border on this cell's side of the grid line; the odd pixel goes
// to top and left.
func (c *TableCell) CalcCollapsedBorder() {
	top := c.collapsedTopBorder()
	right := c.collapsedRightBorder()
	bottom := c.collapsedBottomBorder()
	left := c.collapsedLeftBorder()

	c.collapsedPaintingBorder = &css.BorderPropertySet{
		Top:    top.side(),
		Right:  right.side(),
		Bottom: bottom.side(),
		Left:   left.side(),
	}
	c.collapsedLayoutBorder = &css.BorderPropertySet{
		Top:    top.withWidth((top.Width + 1) / 2).side(),
		Right:  right.withWidth(right.Width / 2).side(),
		Bottom: bottom.withWidth(bottom.Width / 2).side(),
		Left:   left.withWidth((left.Width + 1) / 2).side(),
	}

	c.collapsedBorderTop = top
	c.collapsedBorderRight = right
	c.collapsedBorderBottom = bottom
	c.collapsedBorderLeft = left
}

// ResetCollapsedBorder drops the cached resolution, e.g. after the grid
// changed.
func (c *TableCell) ResetCollapsedBorder() {
	c.collapsedPaintingBorder = nil
	c.collapsedLayoutBorder = nil
	c.collapsedBorderTop = NoBorder
	c.collapsedBorderRight = NoBorder
	c.collapsedBorderBottom = NoBorder
	c.collapsedBorderLeft = NoBorder
}

func (c *TableCell) CollapsedBorderTop() CollapsedBorderValue { return c.collapsedBorderTop }
func (c *TableCell) CollapsedBorderRight() CollapsedBorderValue { return c.collapsedBorderRight }
func (c *TableCell) CollapsedBorderBottom() CollapsedBorderValue { return c.collapsedBorderBottom }
func (c *TableCell) CollapsedBorderLeft() CollapsedBorderValue { return c.collapsedBorderLeft }

// CollapsedBorder returns the resolved value for one side.
func (c *TableCell) CollapsedBorder(side css.Side) CollapsedBorderValue {
	switch side {
	case css.SideTop:
		return c.collapsedBorderTop
	case css.SideRight:
		return c.collapsedBorderRight
	case css.SideBottom:
		return c.collapsedBorderBottom
	}
	return c.collapsedBorderLeft
}

// HasCollapsedPaintingBorder reports whether CalcCollapsedBorder has run.
func (c *TableCell) HasCollapsedPaintingBorder() bool {
	return c.collapsedPaintingBorder != nil
}

// CollapsedPaintingBorder returns the full-width border set, if computed.
func (c *TableCell) CollapsedPaintingBorder() (css.BorderPropertySet, bool) {
	if c.collapsedPaintingBorder == nil {
		return css.NoBorders, false
	}
	return *c.collapsedPaintingBorder, true
}

// CollapsedLayoutBorder returns the half-width border set, if computed.
func (c *TableCell) CollapsedLayoutBorder() (css.BorderPropertySet, bool) {
	if c.collapsedLayoutBorder == nil {
		return css.NoBorders, false
	}
	return *c.collapsedLayoutBorder, true
}

// CollapsedBorderSide is one side of one cell to be painted in the collapsed
// border pass.
type CollapsedBorderSide struct {
	Cell *TableCell
	Side css.Side
}

// Value returns the resolved border painted by s.
func (s CollapsedBorderSide) Value() CollapsedBorderValue {
	return s.Cell.CollapsedBorder(s.Side)
}

// borderKey identifies a painted border segment: the grid line it lies on,
// the span of grid units it covers and the resolved value.
type borderKey struct {
	Vertical bool
	Line     int
	From, To int
	Value    CollapsedBorderValue
}

// CollapsedBorderSet records the border segments already emitted.
type CollapsedBorderSet map[borderKey]struct{}

func NewCollapsedBorderSet() CollapsedBorderSet {
	return make(CollapsedBorderSet)
}

func (c *TableCell) borderKey(side css.Side) borderKey {
	row, col := c.AbsRow(), c.col
	switch side {
	case css.SideTop:
		return borderKey{Line: row, From: col, To: col + c.ColSpan, Value: c.collapsedBorderTop}
	case css.SideBottom:
		return borderKey{Line: row + c.RowSpan, From: col, To: col + c.ColSpan, Value: c.collapsedBorderBottom}
	case css.SideLeft:
		return borderKey{Vertical: true, Line: col, From: row, To: row + c.RowSpan, Value: c.collapsedBorderLeft}
	}
	return borderKey{Vertical: true, Line: col + c.ColSpan, From: row, To: row + c.RowSpan, Value: c.collapsedBorderRight}
}

// AddCollapsedBorders appends the cell's resolved borders, top, right, bottom
// then left, skipping values that do not exist or that an adjacent cell has
// already emitted for the same segment.
func (c *TableCell) AddCollapsedBorders(all CollapsedBorderSet, borders []CollapsedBorderSide) []CollapsedBorderSide {
	for _, side := range []css.Side{css.SideTop, css.SideRight, css.SideBottom, css.SideLeft} {
		key := c.borderKey(side)
		if !key.Value.Exists() {
			continue
		}
		if _, seen := all[key]; seen {
			continue
		}
		all[key] = struct{}{}
		borders = append(borders, CollapsedBorderSide{Cell: c, Side: side})
	}
	return borders
}

// CollectCollapsedBorders returns every collapsed border segment of the
// table in cell order. Cells must have been resolved with
// CalcCollapsedBorder.
func (t *Table) CollectCollapsedBorders() []CollapsedBorderSide {
	all := NewCollapsedBorderSet()
	var borders []CollapsedBorderSide
	for _, cell := range t.Cells() {
		if !cell.HasCollapsedPaintingBorder() {
			continue
		}
		borders = cell.AddCollapsedBorders(all, borders)
	}
	return borders
}

// sortForPainting orders borders so that stronger ones are painted last and
// win where segments overlap at grid corners.
func sortForPainting(borders []CollapsedBorderSide) {
	sort.SliceStable(borders, func(i, j int) bool {
		a, b := borders[i].Value(), borders[j].Value()
		winner, ok := CompareBorders(a, b, true)
		return ok && winner == b && winner != a
	})
}

// CollapsedBordersInPaintOrder is CollectCollapsedBorders sorted the way
// Paint draws them, weakest first.
func (t *Table) CollapsedBordersInPaintOrder() []CollapsedBorderSide {
	borders := t.CollectCollapsedBorders()
	sortForPainting(borders)
	return borders
}

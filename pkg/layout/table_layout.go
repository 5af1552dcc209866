package layout

import (
	"go.uber.org/zap"

	"l14tables/pkg/css"
)

// LayoutTable runs the structural pass over a built table with its border
// box at (x, y): collapsed borders are resolved once the grid is complete,
// then column widths, cell content, row heights, positions and vertical
// alignment follow.
func (le *LayoutEngine) LayoutTable(t *Table, x, y, availableWidth float64) {
	tb := t.Box
	mode, declared := tb.Style.GetBorderCollapse()
	if !declared {
		mode = le.defaultCollapse
	}
	t.collapse = mode == css.BorderCollapseCollapse

	cells := t.Cells()
	tb.X, tb.Y = x, y
	tb.Margin = css.BoxEdge{}
	if t.IsCollapseBorders() {
		for _, c := range cells {
			c.CalcCollapsedBorder()
			if le.debugBorders {
				le.logCollapsedBorders(c)
			}
		}
		tb.Border = t.collapsedTableBorder()
		tb.Padding = css.BoxEdge{}
	} else {
		for _, c := range cells {
			c.ResetCollapsedBorder()
		}
		tb.Border = tb.Style.GetBorderWidth()
		tb.Padding = tb.Style.GetPadding()
	}
	for _, c := range cells {
		c.calcDimensions()
	}

	hSpacing, vSpacing := t.HSpacing(), t.VSpacing()

	// Columns
	t.ColumnWidths = le.calculateColumnWidths(t, availableWidth-tb.Border.Horizontal()-tb.Padding.Horizontal())
	contentX := x + tb.Border.Left + tb.Padding.Left
	t.ColumnX = make([]float64, len(t.ColumnWidths))
	cx := contentX
	for i, w := range t.ColumnWidths {
		cx += hSpacing
		t.ColumnX[i] = cx
		cx += w
	}
	if len(t.ColumnWidths) > 0 {
		cx += hSpacing
	}
	tb.Width = cx - contentX

	// Cell content at the final widths
	for _, c := range cells {
		c.SetLayoutWidth(t.spannedWidth(c.col, c.ColSpan))
		c.Box.X = t.ColumnX[c.col]
		le.layoutCellContent(c)
	}

	// Rows
	le.calculateRowHeights(t)
	contentY := y + tb.Border.Top + tb.Padding.Top
	cy := contentY
	rows := 0
	for _, s := range t.Sections {
		s.Box.X, s.Box.Y, s.Box.Width = contentX, cy, tb.Width
		for _, r := range s.Rows {
			cy += vSpacing
			r.Box.X, r.Box.Y = contentX, cy
			r.Box.Width, r.Box.Height = tb.Width, r.Height
			cy += r.Height
			rows++
		}
		s.Box.Height = cy - s.Box.Y
	}
	if rows > 0 {
		cy += vSpacing
	}
	tb.Height = cy - contentY

	for _, c := range cells {
		le.positionCell(c)
	}

	le.logger.Debug("table laid out",
		zap.Int("rows", t.NumRows()),
		zap.Int("cols", t.NumEffCols()),
		zap.Bool("collapse", t.IsCollapseBorders()),
		zap.Float64("width", tb.BorderBox().Width),
		zap.Float64("height", tb.BorderBox().Height))
}

func (le *LayoutEngine) logCollapsedBorders(c *TableCell) {
	for _, side := range []css.Side{css.SideTop, css.SideRight, css.SideBottom, css.SideLeft} {
		v := c.CollapsedBorder(side)
		le.logger.Debug("collapsed border resolved",
			zap.Int("row", c.AbsRow()),
			zap.Int("col", c.col),
			zap.Stringer("side", side),
			zap.Bool("exists", v.Exists()),
			zap.Stringer("style", v.Style),
			zap.Int("width", v.Width),
			zap.Stringer("precedence", v.Precedence))
	}
}

// collapsedTableBorder gives the table box the outer half of the widest
// collapsed border on each side; the cells reserve the other half.
func (t *Table) collapsedTableBorder() css.BoxEdge {
	var top, right, bottom, left int
	last := t.NumRows() - 1
	for _, c := range t.Cells() {
		if c.AbsRow() == 0 {
			top = max(top, c.collapsedBorderTop.Width)
		}
		if c.AbsRow()+c.RowSpan-1 == last {
			bottom = max(bottom, c.collapsedBorderBottom.Width)
		}
		if c.col == 0 {
			left = max(left, c.collapsedBorderLeft.Width)
		}
		if c.col+c.ColSpan == t.NumEffCols() {
			right = max(right, c.collapsedBorderRight.Width)
		}
	}
	return css.BoxEdge{
		Top:    float64(top / 2),
		Right:  float64((right + 1) / 2),
		Bottom: float64((bottom + 1) / 2),
		Left:   float64(left / 2),
	}
}

// spannedWidth is the border-box width of span columns starting at col,
// including the spacing between them.
func (t *Table) spannedWidth(col, span int) float64 {
	w := 0.0
	for i := col; i < col+span && i < len(t.ColumnWidths); i++ {
		if i > col {
			w += t.HSpacing()
		}
		w += t.ColumnWidths[i]
	}
	return w
}

// calculateColumnWidths determines column widths. Auto layout sizes columns
// from content and treats fixed widths as minimums; fixed layout with an
// explicit table width uses declared widths as they are.
func (le *LayoutEngine) calculateColumnWidths(t *Table, availableWidth float64) []float64 {
	numCols := t.NumEffCols()
	if numCols == 0 {
		return nil
	}
	totalSpacing := t.HSpacing() * float64(numCols+1)

	tableWidth := 0.0
	switch w := t.Box.Style.AsLength("width"); {
	case w.IsFixed():
		tableWidth = w.Value - t.Box.Border.Horizontal() - t.Box.Padding.Horizontal()
	case w.IsPercent():
		tableWidth = availableWidth * w.Value / 100
	}

	if t.Box.Style.GetTableLayout() == css.TableLayoutFixed && tableWidth > 0 {
		return t.fixedColumnWidths(tableWidth - totalSpacing)
	}

	minWidths := make([]float64, numCols)
	maxWidths := make([]float64, numCols)
	declared := make([]float64, numCols)
	hasDeclared := make([]bool, numCols)

	cells := t.Cells()
	for _, c := range cells {
		if c.ColSpan != 1 {
			continue
		}
		cmin, cmax := le.cellIntrinsicWidths(c)
		minWidths[c.col] = max(minWidths[c.col], cmin)
		maxWidths[c.col] = max(maxWidths[c.col], cmax)

		var w float64
		switch l := c.OuterStyleOrColWidth(); {
		case l.IsFixed():
			w = l.Value
		case l.IsPercent() && tableWidth > 0:
			w = (tableWidth - totalSpacing) * l.Value / 100
		default:
			continue
		}
		if !c.IsFixedWidthAdvisoryOnly() || w > declared[c.col] {
			declared[c.col] = w
		}
		hasDeclared[c.col] = true
	}

	// Spanning cells widen the columns they cover evenly.
	for _, c := range cells {
		if c.ColSpan == 1 {
			continue
		}
		cmin, cmax := le.cellIntrinsicWidths(c)
		spacing := t.HSpacing() * float64(c.ColSpan-1)
		growEvenly(minWidths[c.col:c.col+c.ColSpan], cmin-spacing)
		growEvenly(maxWidths[c.col:c.col+c.ColSpan], cmax-spacing)
	}

	// An advisory width is a floor under the content minimum.
	columnWidths := make([]float64, numCols)
	for i := range columnWidths {
		columnWidths[i] = minWidths[i]
		if hasDeclared[i] {
			columnWidths[i] = max(declared[i], minWidths[i])
			maxWidths[i] = columnWidths[i]
		}
	}

	target := tableWidth
	if target == 0 {
		// Shrink-to-fit: preferred widths, capped at the available width
		target = min(sum(maxWidths)+totalSpacing, availableWidth)
	}
	remaining := target - totalSpacing - sum(columnWidths)
	if remaining <= 0 {
		return columnWidths
	}

	// Grow auto columns toward their preferred widths.
	want := 0.0
	for i := range columnWidths {
		if !hasDeclared[i] {
			want += maxWidths[i] - columnWidths[i]
		}
	}
	if want > 0 {
		grow := min(remaining, want)
		for i := range columnWidths {
			if !hasDeclared[i] {
				columnWidths[i] += grow * (maxWidths[i] - columnWidths[i]) / want
			}
		}
		remaining -= grow
	}
	if remaining <= 0 || tableWidth == 0 {
		return columnWidths
	}

	// An explicit table width leaves space over: hand it to auto columns in
	// proportion to their width, or to every column when all are declared.
	targets := make([]int, 0, numCols)
	for i := range columnWidths {
		if !hasDeclared[i] {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		for i := range columnWidths {
			targets = append(targets, i)
		}
	}
	total := 0.0
	for _, i := range targets {
		total += columnWidths[i]
	}
	for _, i := range targets {
		if total > 0 {
			columnWidths[i] += remaining * columnWidths[i] / total
		} else {
			columnWidths[i] += remaining / float64(len(targets))
		}
	}
	return columnWidths
}

// fixedColumnWidths implements table-layout: fixed. Widths come from column
// elements and the first row; columns without one share what is left.
func (t *Table) fixedColumnWidths(contentWidth float64) []float64 {
	numCols := t.NumEffCols()
	widths := make([]float64, numCols)
	set := make([]bool, numCols)

	for i := 0; i < numCols; i++ {
		if col := t.ColElement(i); col != nil {
			if l := col.Box.Style.AsLength("width"); l.IsFixed() {
				widths[i], set[i] = l.Value, true
			}
		}
	}
	if t.NumRows() > 0 {
		var first *Row
		for _, s := range t.Sections {
			if s.NumRows() > 0 {
				first = s.Rows[0]
				break
			}
		}
		for _, c := range first.Cells {
			l := c.OuterStyleWidth()
			if !l.IsFixed() {
				continue
			}
			per := (l.Value - t.HSpacing()*float64(c.ColSpan-1)) / float64(c.ColSpan)
			for i := c.col; i < c.col+c.ColSpan; i++ {
				if !set[i] {
					widths[i], set[i] = per, true
				}
			}
		}
	}

	unset := 0
	for i := range widths {
		if !set[i] {
			unset++
		}
	}
	if unset > 0 {
		perCol := max(0, (contentWidth-sum(widths))/float64(unset))
		for i := range widths {
			if !set[i] {
				widths[i] = perCol
			}
		}
	}
	return widths
}

// calculateRowHeights sizes every row from its cells: the content height or
// declared height plus border and padding, baseline-aligned cells sharing a
// baseline, and rowspans distributing any shortfall onto their last row.
func (le *LayoutEngine) calculateRowHeights(t *Table) {
	for _, s := range t.Sections {
		for _, r := range s.Rows {
			h := 0.0
			if l := r.Box.Style.AsLength("height"); l.IsFixed() {
				h = l.Value
			}

			r.baseline = 0
			for _, c := range r.Cells {
				if c.RowSpan == 1 && c.VerticalAlign() == css.VerticalAlignBaseline {
					r.baseline = max(r.baseline, c.CalcBaseline())
				}
			}
			for _, c := range r.Cells {
				if c.RowSpan != 1 {
					continue
				}
				need := c.requiredHeight()
				if c.VerticalAlign() == css.VerticalAlignBaseline {
					need = max(need, r.baseline+need-c.CalcBaseline())
				}
				h = max(h, need)
			}
			r.Height = h
		}

		for _, r := range s.Rows {
			for _, c := range r.Cells {
				if c.RowSpan == 1 {
					continue
				}
				if short := c.requiredHeight() - s.spannedHeight(c.row, c.RowSpan); short > 0 {
					s.Rows[c.row+c.RowSpan-1].Height += short
				}
			}
		}
	}

	// A declared table height is a minimum; the last row takes the rest.
	if l := t.Box.Style.AsLength("height"); l.IsFixed() && t.NumRows() > 0 {
		content := l.Value - t.Box.Border.Vertical() - t.Box.Padding.Vertical()
		total := t.VSpacing() * float64(t.NumRows()+1)
		var last *Row
		for _, s := range t.Sections {
			for _, r := range s.Rows {
				total += r.Height
				last = r
			}
		}
		if content > total {
			last.Height += content - total
		}
	}
}

// requiredHeight is the border-box height the cell's content needs.
func (c *TableCell) requiredHeight() float64 {
	h := c.contentHeight
	if !c.IsAutoHeight() {
		h = max(h, c.Style().AsLength("height").Value)
	}
	return h + c.Box.Border.Vertical() + c.Box.Padding.Vertical()
}

// spannedHeight is the height of span rows starting at row, including the
// spacing between them.
func (s *Section) spannedHeight(row, span int) float64 {
	h := 0.0
	for i := row; i < row+span && i < len(s.Rows); i++ {
		if i > row {
			h += s.Table.VSpacing()
		}
		h += s.Rows[i].Height
	}
	return h
}

// positionCell sizes the cell to its rows and moves its content into place
// according to vertical-align.
func (le *LayoutEngine) positionCell(c *TableCell) {
	r := c.RowBox()
	height := c.Section.spannedHeight(c.row, c.RowSpan)
	baseline := c.CalcBaseline()

	c.Box.Y = r.Box.Y
	c.Box.Height = max(0, height-c.Box.Border.Vertical()-c.Box.Padding.Vertical())

	offset := 0.0
	extra := c.Box.Height - c.contentHeight
	switch c.VerticalAlign() {
	case css.VerticalAlignMiddle:
		offset = extra / 2
	case css.VerticalAlignBottom:
		offset = extra
	case css.VerticalAlignBaseline:
		if c.RowSpan == 1 {
			offset = r.baseline - baseline
		}
	}
	c.MoveContent(r.Box.Y + max(0, offset))
}

// growEvenly raises the widths in cols so that they sum to at least need.
func growEvenly(cols []float64, need float64) {
	if short := need - sum(cols); short > 0 {
		for i := range cols {
			cols[i] += short / float64(len(cols))
		}
	}
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}

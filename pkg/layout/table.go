package layout

import (
	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

// SpanningCell marks grid slots that are covered by a row or column span of a
// cell originating elsewhere. It never takes part in border resolution.
var SpanningCell = &TableCell{}

// Table is the arena that owns the structural boxes of one table. Sections,
// rows and cells hold direct references to their owners, assigned once when
// the grid is built.
type Table struct {
	Box      *Box
	Sections []*Section // visual order: header group, bodies, footer group

	// Column elements (col, or colgroup without col children), each covering
	// Span grid columns.
	ColElements []*Column

	numCols  int
	styles   map[*html.Node]*css.Style
	collapse bool // effective border model, see IsCollapseBorders

	// Filled by the structural layout pass.
	ColumnWidths []float64
	ColumnX      []float64
}

// Section is a row group. Anonymous sections have a nil Box.Node.
type Section struct {
	Box       *Box
	Table     *Table
	Index     int
	Rows      []*Row
	RowOffset int // absolute grid row of Rows[0]

	owners [][]*TableCell // every occupied slot holds the originating cell
	spans  []*TableCell   // cells whose rowspan reaches rows not built yet
}

// Row is a table row within a section.
type Row struct {
	Box     *Box
	Section *Section
	Index   int
	Cells   []*TableCell // cells originating in this row, in column order
	Height  float64

	baseline float64 // shared by baseline-aligned cells, from the row top
}

// Column is a col or colgroup element.
type Column struct {
	Box  *Box
	Span int
}

// TableCell is the variant data of a RoleCell box.
type TableCell struct {
	Box     *Box
	Table   *Table
	Section *Section
	RowSpan int
	ColSpan int

	row int // within Section
	col int

	floats        FloatManager
	contentHeight float64

	collapsedBorderTop    CollapsedBorderValue
	collapsedBorderRight  CollapsedBorderValue
	collapsedBorderBottom CollapsedBorderValue
	collapsedBorderLeft   CollapsedBorderValue

	collapsedPaintingBorder *css.BorderPropertySet
	collapsedLayoutBorder   *css.BorderPropertySet
}

func (c *TableCell) Row() int { return c.row }
func (c *TableCell) SetRow(row int) { c.row = row }
func (c *TableCell) Col() int { return c.col }
func (c *TableCell) SetCol(col int) { c.col = col }
func (c *TableCell) Style() *css.Style { return c.Box.Style }

// AbsRow is the cell's row in the whole table grid.
func (c *TableCell) AbsRow() int { return c.Section.RowOffset + c.row }

// RowBox returns the row the cell originates in.
func (c *TableCell) RowBox() *Row { return c.Section.Rows[c.row] }

// Floats returns the cell's float manager.
func (c *TableCell) Floats() *FloatManager { return &c.floats }

// IsCollapseBorders reports whether the table uses the collapsing border
// model. It follows the declared border-collapse until layout, which also
// applies the engine default to tables that declare none.
func (t *Table) IsCollapseBorders() bool {
	return t.collapse
}

// NumEffCols is the number of effective columns. Every grid column is its
// own effective column, so this is the width of the widest row.
func (t *Table) NumEffCols() int { return t.numCols }

// ColToEffCol maps an absolute column to its effective column.
func (t *Table) ColToEffCol(col int) int {
	if col >= t.numCols {
		return t.numCols - 1
	}
	return col
}

// NumRows is the number of grid rows across all sections.
func (t *Table) NumRows() int {
	n := 0
	for _, s := range t.Sections {
		n += s.NumRows()
	}
	return n
}

// Cells returns every cell in visual order.
func (t *Table) Cells() []*TableCell {
	var out []*TableCell
	for _, s := range t.Sections {
		for _, r := range s.Rows {
			out = append(out, r.Cells...)
		}
	}
	return out
}

// StyleOf returns the computed style of a node inside the table.
func (t *Table) StyleOf(n *html.Node) *css.Style {
	if s := t.styles[n]; s != nil {
		return s
	}
	return css.NewStyle()
}

func (s *Section) NumRows() int { return len(s.Rows) }

// LastRow returns the section's last row, or nil when it is empty.
func (s *Section) LastRow() *Row {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[len(s.Rows)-1]
}

// CellAt returns the grid slot at (row, col): the cell originating there,
// SpanningCell for a covered slot, or nil for an empty one.
func (s *Section) CellAt(row, col int) *TableCell {
	c := s.OwnerAt(row, col)
	if c == nil || (c.row == row && c.col == col) {
		return c
	}
	return SpanningCell
}

// OwnerAt returns the cell occupying (row, col), whether it originates there
// or spans it, or nil for an empty slot.
func (s *Section) OwnerAt(row, col int) *TableCell {
	if row < 0 || row >= len(s.owners) || col < 0 || col >= len(s.owners[row]) {
		return nil
	}
	return s.owners[row][col]
}

// PreviousRow returns the row before r in the same section.
func (r *Row) PreviousRow() *Row {
	if r.Index == 0 {
		return nil
	}
	return r.Section.Rows[r.Index-1]
}

// SectionAbove returns the section before s. With skipEmpty, sections
// without rows are passed over.
func (t *Table) SectionAbove(s *Section, skipEmpty bool) *Section {
	for i := s.Index - 1; i >= 0; i-- {
		if !skipEmpty || t.Sections[i].NumRows() > 0 {
			return t.Sections[i]
		}
	}
	return nil
}

// SectionBelow returns the section after s. With skipEmpty, sections
// without rows are passed over.
func (t *Table) SectionBelow(s *Section, skipEmpty bool) *Section {
	for i := s.Index + 1; i < len(t.Sections); i++ {
		if !skipEmpty || t.Sections[i].NumRows() > 0 {
			return t.Sections[i]
		}
	}
	return nil
}

// CellLeft returns the cell left of c in c's first row, or nil in the first
// column.
func (t *Table) CellLeft(c *TableCell) *TableCell {
	effCol := t.ColToEffCol(c.col)
	if effCol == 0 {
		return nil
	}
	return c.Section.OwnerAt(c.row, effCol-1)
}

// CellRight returns the cell right of c's last spanned column, or nil in the
// last effective column.
func (t *Table) CellRight(c *TableCell) *TableCell {
	effCol := c.col + c.ColSpan
	if effCol >= t.NumEffCols() {
		return nil
	}
	return c.Section.OwnerAt(c.row, effCol)
}

// CellAbove returns the cell above c's first column, crossing into the
// nearest non-empty section above when c is in its section's first row.
func (t *Table) CellAbove(c *TableCell) *TableCell {
	section, rAbove := c.Section, c.row-1
	if c.row == 0 {
		section = t.SectionAbove(c.Section, true)
		if section == nil {
			return nil
		}
		rAbove = section.NumRows() - 1
	}
	return section.OwnerAt(rAbove, t.ColToEffCol(c.col))
}

// CellBelow returns the cell below c's last spanned row, crossing into the
// nearest non-empty section below.
func (t *Table) CellBelow(c *TableCell) *TableCell {
	section, rBelow := c.Section, c.row+c.RowSpan
	if rBelow >= c.Section.NumRows() {
		section = t.SectionBelow(c.Section, true)
		if section == nil {
			return nil
		}
		rBelow = 0
	}
	return section.OwnerAt(rBelow, t.ColToEffCol(c.col))
}

// ColElement returns the column element covering grid column col, or nil.
func (t *Table) ColElement(col int) *Column {
	if col < 0 {
		return nil
	}
	c := 0
	for _, ce := range t.ColElements {
		c += ce.Span
		if col < c {
			return ce
		}
	}
	return nil
}

// ColumnBounds returns the band of the table's content area occupied by
// column col. It is zero until the table has been laid out.
func (t *Table) ColumnBounds(col int) Rect {
	if col < 0 || col >= len(t.ColumnX) {
		return Rect{}
	}
	content := t.Box.ContentBox()
	return Rect{X: t.ColumnX[col], Y: content.Y, Width: t.ColumnWidths[col], Height: content.Height}
}

// HSpacing returns the horizontal border-spacing, zero when borders collapse.
func (t *Table) HSpacing() float64 {
	if t.IsCollapseBorders() {
		return 0
	}
	return t.Box.Style.GetBorderHSpacing()
}

// VSpacing returns the vertical border-spacing, zero when borders collapse.
func (t *Table) VSpacing() float64 {
	if t.IsCollapseBorders() {
		return 0
	}
	return t.Box.Style.GetBorderVSpacing()
}

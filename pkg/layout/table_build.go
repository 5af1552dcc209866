package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

// ErrNoTable is returned when a node is not a table.
var ErrNoTable = errors.New("no table element")

// maxSpan caps rowspan/colspan the way HTML parsers do.
const maxSpan = 1000

// BuildTable builds the table model for a table element: row groups, rows,
// cells and column elements, with every cell's row and column assigned once
// the grid slot is known. styles holds the computed style of every element.
func BuildTable(node *html.Node, styles map[*html.Node]*css.Style) (*Table, error) {
	if node == nil || node.Type != html.ElementNode {
		return nil, ErrNoTable
	}
	style := styles[node]
	if node.TagName != "table" && (style == nil || style.GetDisplay() != css.DisplayTable) {
		return nil, fmt.Errorf("%w: <%s>", ErrNoTable, node.TagName)
	}

	t := &Table{Box: newBox(node, style, RoleTable), styles: styles}
	t.collapse = t.Box.Style.IsCollapseBorders()
	var (
		head, foot *Section
		bodies     []*Section
		anon       *Section // receives rows and cells placed directly in the table
	)
	for _, child := range node.ElementChildren() {
		childStyle := t.StyleOf(child)
		switch tableDisplay(child, childStyle) {
		case css.DisplayTableHeaderGroup:
			anon = nil
			s := t.buildSection(child, childStyle)
			if head == nil {
				head = s
			} else {
				bodies = append(bodies, s)
			}
		case css.DisplayTableFooterGroup:
			anon = nil
			s := t.buildSection(child, childStyle)
			if foot == nil {
				foot = s
			} else {
				bodies = append(bodies, s)
			}
		case css.DisplayTableRowGroup:
			anon = nil
			bodies = append(bodies, t.buildSection(child, childStyle))
		case css.DisplayTableColumnGroup:
			t.addColumnGroup(child, childStyle)
		case css.DisplayTableColumn:
			t.addColumn(t.Box, child, childStyle)
		case css.DisplayTableRow:
			if anon == nil {
				anon = t.newSection(nil, nil)
				bodies = append(bodies, anon)
			}
			anon.addRow(child, childStyle)
		case css.DisplayNone:
		default:
			// CSS 2.1 §17.2.1: cells and stray content get an anonymous row
			if anon == nil {
				anon = t.newSection(nil, nil)
				bodies = append(bodies, anon)
			}
			anon.anonymousRow().addCell(child, childStyle)
		}
	}

	if head != nil {
		t.Sections = append(t.Sections, head)
	}
	t.Sections = append(t.Sections, bodies...)
	if foot != nil {
		t.Sections = append(t.Sections, foot)
	}

	offset := 0
	for i, s := range t.Sections {
		s.Index = i
		s.RowOffset = offset
		s.finish()
		offset += s.NumRows()
		t.Box.AddChild(s.Box)
	}
	for _, s := range t.Sections {
		s.padGrid(t.numCols)
	}
	return t, nil
}

// FindTables returns the outermost table elements below root.
func FindTables(root *html.Node, styles map[*html.Node]*css.Style) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for _, c := range n.ElementChildren() {
			s := styles[c]
			if c.TagName == "table" || (s != nil && s.GetDisplay() == css.DisplayTable) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// tableDisplay returns the table role of n. Table tags keep their role even
// when an author stylesheet changes display.
func tableDisplay(n *html.Node, style *css.Style) css.DisplayType {
	switch n.TagName {
	case "thead":
		return css.DisplayTableHeaderGroup
	case "tbody":
		return css.DisplayTableRowGroup
	case "tfoot":
		return css.DisplayTableFooterGroup
	case "tr":
		return css.DisplayTableRow
	case "td", "th":
		return css.DisplayTableCell
	case "col":
		return css.DisplayTableColumn
	case "colgroup":
		return css.DisplayTableColumnGroup
	case "caption", "script", "style":
		return css.DisplayNone
	}
	return style.GetDisplay()
}

func (t *Table) newSection(node *html.Node, style *css.Style) *Section {
	return &Section{Box: newBox(node, style, RoleRowGroup), Table: t}
}

func (t *Table) buildSection(node *html.Node, style *css.Style) *Section {
	s := t.newSection(node, style)
	for _, child := range node.ElementChildren() {
		childStyle := t.StyleOf(child)
		switch tableDisplay(child, childStyle) {
		case css.DisplayTableRow:
			s.addRow(child, childStyle)
		case css.DisplayNone:
		default:
			s.anonymousRow().addCell(child, childStyle)
		}
	}
	return s
}

func (t *Table) addColumnGroup(node *html.Node, style *css.Style) {
	group := newBox(node, style, RoleColumnGroup)
	t.Box.AddChild(group)

	cols := 0
	for _, child := range node.ElementChildren() {
		childStyle := t.StyleOf(child)
		if tableDisplay(child, childStyle) == css.DisplayTableColumn {
			t.addColumn(group, child, childStyle)
			cols++
		}
	}
	if cols == 0 {
		t.ColElements = append(t.ColElements, &Column{Box: group, Span: spanAttr(node, "span")})
	}
}

func (t *Table) addColumn(parent *Box, node *html.Node, style *css.Style) {
	box := newBox(node, style, RoleColumn)
	parent.AddChild(box)
	t.ColElements = append(t.ColElements, &Column{Box: box, Span: spanAttr(node, "span")})
}

func (s *Section) addRow(node *html.Node, style *css.Style) *Row {
	r := &Row{Box: newBox(node, style, RoleRow), Section: s, Index: len(s.Rows)}
	s.Box.AddChild(r.Box)
	s.Rows = append(s.Rows, r)
	s.ensureRow(r.Index)

	for _, cellNode := range node.ElementChildren() {
		cellStyle := s.Table.StyleOf(cellNode)
		if tableDisplay(cellNode, cellStyle) != css.DisplayTableCell {
			continue
		}
		r.addCell(cellNode, cellStyle)
	}
	return r
}

// anonymousRow returns the open anonymous row at the end of s, creating one
// when the last row came from markup.
func (s *Section) anonymousRow() *Row {
	if last := s.LastRow(); last != nil && last.Box.Node == nil {
		return last
	}
	r := &Row{Box: newBox(nil, nil, RoleRow), Section: s, Index: len(s.Rows)}
	s.Box.AddChild(r.Box)
	s.Rows = append(s.Rows, r)
	s.ensureRow(r.Index)
	return r
}

func (r *Row) addCell(node *html.Node, style *css.Style) *TableCell {
	s := r.Section
	t := s.Table

	// Skip columns occupied by rowspan from previous rows
	col := 0
	for s.CellAt(r.Index, col) != nil {
		col++
	}

	rowspan := spanAttr(node, "rowspan")
	if v, ok := node.GetAttribute("rowspan"); ok && strings.TrimSpace(v) == "0" {
		// rowspan=0 extends to the end of the row group; finish() clamps it.
		rowspan = maxSpan
	}
	cell := &TableCell{
		Table:   t,
		Section: s,
		RowSpan: rowspan,
		ColSpan: spanAttr(node, "colspan"),
	}
	cell.Box = newBox(node, style, RoleCell)
	cell.Box.Cell = cell
	cell.SetRow(r.Index)
	cell.SetCol(col)
	r.Box.AddChild(cell.Box)
	r.Cells = append(r.Cells, cell)

	// Later rows pick the cell up from s.spans as they are added.
	for dc := 0; dc < cell.ColSpan; dc++ {
		s.setSlot(r.Index, col+dc, cell)
	}
	if cell.RowSpan > 1 {
		s.spans = append(s.spans, cell)
	}
	t.numCols = max(t.numCols, col+cell.ColSpan)
	return cell
}

// ensureRow grows the grid to hold row, occupying the new slots of cells
// spanning down from earlier rows.
func (s *Section) ensureRow(row int) {
	for len(s.owners) <= row {
		n := len(s.owners)
		s.owners = append(s.owners, nil)
		live := s.spans[:0]
		for _, c := range s.spans {
			if c.row+c.RowSpan <= n {
				continue
			}
			for dc := 0; dc < c.ColSpan; dc++ {
				s.setSlot(n, c.col+dc, c)
			}
			if c.row+c.RowSpan > n+1 {
				live = append(live, c)
			}
		}
		s.spans = live
	}
}

func (s *Section) setSlot(row, col int, cell *TableCell) {
	for len(s.owners[row]) <= col {
		s.owners[row] = append(s.owners[row], nil)
	}
	s.owners[row][col] = cell
}

// finish closes the section. A rowspan never reaches past the end of its
// row group.
func (s *Section) finish() {
	n := len(s.Rows)
	s.spans = nil
	for _, r := range s.Rows {
		for _, c := range r.Cells {
			c.RowSpan = min(c.RowSpan, n-c.row)
		}
	}
}

func (s *Section) padGrid(numCols int) {
	for i := range s.owners {
		if pad := numCols - len(s.owners[i]); pad > 0 {
			s.owners[i] = append(s.owners[i], make([]*TableCell, pad)...)
		}
	}
}

// spanAttr reads a positive span attribute, defaulting to 1.
func spanAttr(node *html.Node, name string) int {
	if node == nil {
		return 1
	}
	v, ok := node.GetAttribute(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxSpan)
}

package layout

import (
	"strings"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

type itemKind int

const (
	itemText  itemKind = iota // run of inline text
	itemBreak                 // block boundary or <br>
	itemFloat                 // floated element
)

// cellItem is one piece of a cell's flattened content.
type cellItem struct {
	kind  itemKind
	text  string
	node  *html.Node
	style *css.Style
}

// collectItems flattens the content below node. Inline elements contribute
// their text, block elements add breaks around theirs, floats are kept whole.
func (t *Table) collectItems(node *html.Node, items []cellItem) []cellItem {
	if node == nil {
		return items
	}
	for _, child := range node.Children {
		if child.Type == html.TextNode {
			items = append(items, cellItem{kind: itemText, text: child.Text})
			continue
		}
		style := t.StyleOf(child)
		display := style.GetDisplay()
		if display == css.DisplayNone {
			continue
		}
		if side := style.GetFloat(); side != css.FloatNone {
			items = append(items, cellItem{kind: itemFloat, node: child, style: style})
			continue
		}
		if child.TagName == "br" {
			items = append(items, cellItem{kind: itemBreak})
			continue
		}
		block := display != css.DisplayInline && display != css.DisplayInlineBlock
		if block {
			items = append(items, cellItem{kind: itemBreak})
		}
		items = t.collectItems(child, items)
		if block {
			items = append(items, cellItem{kind: itemBreak})
		}
	}
	return items
}

// paragraphs groups text items into the runs between breaks, skipping
// floats.
func paragraphs(items []cellItem) []string {
	var out []string
	var sb strings.Builder
	flush := func() {
		if s := strings.Join(strings.Fields(sb.String()), " "); s != "" {
			out = append(out, s)
		}
		sb.Reset()
	}
	for _, it := range items {
		switch it.kind {
		case itemText:
			sb.WriteString(it.text)
		default:
			flush()
		}
	}
	flush()
	return out
}

func fontOf(style *css.Style) (size float64, bold bool) {
	return style.GetFontSize(), style.GetFontWeight() == css.FontWeightBold
}

// cellIntrinsicWidths returns the min-content and max-content border-box
// widths of a cell. Borders and padding must already be computed.
func (le *LayoutEngine) cellIntrinsicWidths(c *TableCell) (minWidth, maxWidth float64) {
	size, bold := fontOf(c.Style())
	items := c.Table.collectItems(c.Box.Node, nil)
	for _, p := range paragraphs(items) {
		w, _ := le.measurer.Measure(p, size, bold)
		maxWidth = max(maxWidth, w)
		minWidth = max(minWidth, le.measurer.LongestWord(p, size, bold))
	}

	floats := 0.0
	for _, it := range items {
		if it.kind != itemFloat {
			continue
		}
		fmin, fmax := le.floatIntrinsicWidths(it)
		floats += fmax
		minWidth = max(minWidth, fmin)
	}
	maxWidth += floats

	mbp := c.Box.LeftMBP() + c.Box.RightMBP()
	return minWidth + mbp, maxWidth + mbp
}

func (le *LayoutEngine) floatIntrinsicWidths(it cellItem) (minWidth, maxWidth float64) {
	mbp := it.style.GetMargin().Horizontal() + it.style.GetPadding().Horizontal() + it.style.GetBorderWidth().Horizontal()
	if w := it.style.AsLength("width"); w.IsFixed() {
		return w.Value + mbp, w.Value + mbp
	}
	size, bold := fontOf(it.style)
	txt := strings.Join(strings.Fields(it.node.TextContent()), " ")
	w, _ := le.measurer.Measure(txt, size, bold)
	return le.measurer.LongestWord(txt, size, bold) + mbp, w + mbp
}

// layoutCellContent lays out the cell's content as line boxes inside the
// content area, with the cell's border box at y = 0. The table pass later
// moves the content into place with MoveContent.
func (le *LayoutEngine) layoutCellContent(c *TableCell) {
	box := c.Box
	box.Children = nil
	box.LineBoxes = nil
	c.floats = FloatManager{}
	box.Y = 0

	content := box.ContentBox()
	y := content.Y
	var pending strings.Builder
	flush := func() {
		y = le.layoutParagraph(c, box, content, pending.String(), y)
		pending.Reset()
	}

	for _, it := range c.Table.collectItems(box.Node, nil) {
		switch it.kind {
		case itemText:
			pending.WriteString(it.text)
		case itemBreak:
			flush()
		case itemFloat:
			flush()
			le.placeFloat(c, content, it, y)
		}
	}
	flush()

	c.contentHeight = max(y, c.floats.Bottom()) - content.Y
}

// layoutParagraph breaks s into lines that avoid the cell's floats and
// returns the y below the last line.
func (le *LayoutEngine) layoutParagraph(c *TableCell, parent *Box, content Rect, s string, y float64) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return y
	}
	style := parent.Style
	size, bold := fontOf(style)
	lineHeight := style.GetLineHeight()
	_, fontHeight := le.measurer.Measure("", size, bold)
	baseline := (lineHeight-fontHeight)/2 + le.measurer.Ascent(size, bold)
	align := style.GetTextAlign()

	for len(words) > 0 {
		left, right := c.floats.Offsets(y, lineHeight, content.X, content.Right())
		avail := content.Width - left - right

		n := 1
		lineWidth, _ := le.measurer.Measure(words[0], size, bold)
		for n < len(words) {
			w, _ := le.measurer.Measure(strings.Join(words[:n+1], " "), size, bold)
			if w > avail {
				break
			}
			n, lineWidth = n+1, w
		}

		x := content.X + left
		switch align {
		case "right":
			x += avail - lineWidth
		case "center":
			x += (avail - lineWidth) / 2
		}

		tb := &Box{
			Style:  style,
			Role:   RoleText,
			Text:   strings.Join(words[:n], " "),
			X:      x,
			Y:      y,
			Width:  lineWidth,
			Height: lineHeight,
		}
		parent.AddChild(tb)
		parent.LineBoxes = append(parent.LineBoxes, &LineBox{
			Y:         y,
			Height:    lineHeight,
			Boxes:     []*Box{tb},
			BaselineY: baseline,
		})

		words = words[n:]
		y += lineHeight
	}
	return y
}

// placeFloat lays out a floated element as a block of its own text and
// registers it with the cell's float manager at y.
func (le *LayoutEngine) placeFloat(c *TableCell, content Rect, it cellItem, y float64) {
	fb := newBox(it.node, it.style, RoleBlock)
	fb.Margin = it.style.GetMargin()
	fb.Padding = it.style.GetPadding()
	fb.Border = it.style.GetBorderWidth()
	fb.Parent = c.Box

	_, maxWidth := le.floatIntrinsicWidths(it)
	outer := min(maxWidth, content.Width)
	fb.Width = max(0, outer-fb.LeftMBP()-fb.RightMBP())

	side := it.style.GetFloat()
	left, right := c.floats.Offsets(y, 1, content.X, content.Right())
	if side == css.FloatLeft {
		fb.X = content.X + left + fb.Margin.Left
	} else {
		fb.X = content.Right() - right - fb.Margin.Right - fb.Border.Horizontal() - fb.Padding.Horizontal() - fb.Width
	}
	fb.Y = y + fb.Margin.Top

	inner := fb.ContentBox()
	txt := strings.Join(strings.Fields(it.node.TextContent()), " ")
	// A float is its own formatting context, so its lines ignore the cell's floats.
	end := le.layoutParagraph(&TableCell{}, fb, inner, txt, inner.Y)
	fb.Height = end - inner.Y
	if h := it.style.AsLength("height"); h.IsFixed() {
		fb.Height = h.Value
	}

	c.floats.AddFloat(fb, side)
}

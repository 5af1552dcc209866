package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

func layoutTable(t *testing.T, markup string) *Table {
	t.Helper()
	tbl := buildTable(t, markup)
	NewLayoutEngine(800, 600).LayoutTable(tbl, 10, 20, 780)
	return tbl
}

func TestLayoutTable_SeparateColumns(t *testing.T) {
	tbl := layoutTable(t, `<table><tr>`+
		`<td style="width: 40px">a</td><td style="width: 60px">b</td>`+
		`</tr></table>`)

	assert.Equal(t, []float64{40, 60}, tbl.ColumnWidths)
	assert.Equal(t, []float64{12, 54}, tbl.ColumnX, "columns start after the 2px spacing")
	assert.Equal(t, 106.0, tbl.Box.BorderBox().Width)

	a, b := cellAt(t, tbl, 0, 0), cellAt(t, tbl, 0, 1)
	assert.Equal(t, 12.0, a.Box.X)
	assert.Equal(t, 54.0, b.Box.X)
	assert.Equal(t, 40.0, a.Box.BorderBox().Width)

	lineHeight := 16 * 1.2
	row := tbl.Sections[0].Rows[0]
	assert.InDelta(t, lineHeight, row.Height, 1e-9)
	assert.InDelta(t, 22.0, row.Box.Y, 1e-9)
	assert.InDelta(t, 2+lineHeight+2, tbl.Box.BorderBox().Height, 1e-9)
	assert.InDelta(t, 22.0, a.Box.Y, 1e-9)
}

func TestLayoutTable_CollapsedBorders(t *testing.T) {
	tbl := layoutTable(t, `<table style="border-collapse: collapse; border: 4px solid"><tr>`+
		`<td style="border: 2px solid; width: 30px">a</td><td style="border: 2px solid; width: 30px">b</td>`+
		`</tr></table>`)

	assert.Zero(t, tbl.HSpacing())
	assert.Zero(t, tbl.VSpacing())
	assert.Equal(t, css.BoxEdge{Top: 2, Right: 2, Bottom: 2, Left: 2}, tbl.Box.Border)
	assert.Equal(t, css.BoxEdge{}, tbl.Box.Padding)

	a, b := cellAt(t, tbl, 0, 0), cellAt(t, tbl, 0, 1)
	for _, c := range []*TableCell{a, b} {
		require.True(t, c.HasCollapsedPaintingBorder())
		assert.Equal(t, 4, c.CollapsedBorderTop().Width)
		assert.Equal(t, 4, c.CollapsedBorderBottom().Width)
	}
	assert.Equal(t, 4, a.CollapsedBorderLeft().Width)
	assert.Equal(t, 2, a.CollapsedBorderRight().Width)

	// Each grid line's width is split between the boxes on either side.
	assert.Equal(t, css.BoxEdge{Top: 2, Right: 1, Bottom: 2, Left: 2}, a.Box.Border)
	assert.Equal(t, css.BoxEdge{Top: 2, Right: 2, Bottom: 2, Left: 1}, b.Box.Border)
	assert.Equal(t, tbl.Box.X+tbl.Box.Border.Left, a.Box.X)
	assert.Equal(t, a.Box.BorderBox().Right(), b.Box.X)
}

func TestLayoutTable_SeparateResetsCollapsed(t *testing.T) {
	tbl := buildTable(t, `<table style="border: 3px solid; padding: 5px"><tr><td style="border: 1px solid">a</td></tr></table>`)
	c := cellAt(t, tbl, 0, 0)
	c.CalcCollapsedBorder()

	NewLayoutEngine(800, 600).LayoutTable(tbl, 0, 0, 800)
	assert.False(t, c.HasCollapsedPaintingBorder())
	assert.Equal(t, css.BoxEdge{Top: 1, Right: 1, Bottom: 1, Left: 1}, c.Box.Border)
	assert.Equal(t, css.BoxEdge{Top: 3, Right: 3, Bottom: 3, Left: 3}, tbl.Box.Border)
	assert.Equal(t, css.BoxEdge{Top: 5, Right: 5, Bottom: 5, Left: 5}, tbl.Box.Padding)
	assert.Equal(t, 0.0+3+5+2, tbl.ColumnX[0])
}

func TestLayoutTable_DefaultBorderCollapse(t *testing.T) {
	markup := `<table><tr><td style="border: 2px solid">a</td></tr></table>`

	le := NewLayoutEngine(800, 600)
	le.SetDefaultBorderCollapse(css.BorderCollapseCollapse)

	tbl := buildTable(t, markup)
	le.LayoutTable(tbl, 0, 0, 800)
	assert.True(t, tbl.IsCollapseBorders())
	assert.True(t, cellAt(t, tbl, 0, 0).HasCollapsedPaintingBorder())

	declared := buildTable(t, `<table style="border-collapse: separate"><tr><td>a</td></tr></table>`)
	le.LayoutTable(declared, 0, 0, 800)
	assert.False(t, declared.IsCollapseBorders(), "a declared value is kept")
}

func TestLayoutTable_DefaultBorderCollapseLeavesStyle(t *testing.T) {
	tbl := buildTable(t, `<table><tr><td style="border: 2px solid">a</td></tr></table>`)

	collapsing := NewLayoutEngine(800, 600)
	collapsing.SetDefaultBorderCollapse(css.BorderCollapseCollapse)
	collapsing.LayoutTable(tbl, 0, 0, 800)
	require.True(t, tbl.IsCollapseBorders())

	_, declared := tbl.Box.Style.GetBorderCollapse()
	assert.False(t, declared, "the engine default is not written into the style")

	separate := NewLayoutEngine(800, 600)
	separate.LayoutTable(tbl, 0, 0, 800)
	assert.False(t, tbl.IsCollapseBorders(), "a later layout applies its own default")
	assert.False(t, cellAt(t, tbl, 0, 0).HasCollapsedPaintingBorder())
	assert.Equal(t, css.BoxEdge{Top: 2, Right: 2, Bottom: 2, Left: 2}, cellAt(t, tbl, 0, 0).Box.Border)
}

func TestLayoutTable_VerticalAlign(t *testing.T) {
	tbl := layoutTable(t, `<table style="border-spacing: 0"><tr>`+
		`<td>a<br>b</td>`+
		`<td style="vertical-align: top">c</td>`+
		`<td style="vertical-align: middle">d</td>`+
		`<td style="vertical-align: bottom">e</td>`+
		`</tr></table>`)

	lineHeight := 16 * 1.2
	row := tbl.Sections[0].Rows[0]
	require.InDelta(t, 2*lineHeight, row.Height, 1e-9)

	lineY := func(col int) float64 {
		c := cellAt(t, tbl, 0, col)
		require.NotEmpty(t, c.Box.LineBoxes)
		return c.Box.LineBoxes[0].Y
	}
	assert.InDelta(t, row.Box.Y, lineY(0), 1e-9)
	assert.InDelta(t, row.Box.Y, lineY(1), 1e-9)
	assert.InDelta(t, row.Box.Y+lineHeight/2, lineY(2), 1e-9)
	assert.InDelta(t, row.Box.Y+lineHeight, lineY(3), 1e-9)

	for col := 0; col < 4; col++ {
		c := cellAt(t, tbl, 0, col)
		assert.InDelta(t, row.Height, c.Box.BorderBox().Height, 1e-9, "cell %d fills its row", col)
	}
}

func TestLayoutTable_Baseline(t *testing.T) {
	tbl := layoutTable(t, `<table style="border-spacing: 0"><tr>`+
		`<td style="vertical-align: baseline; padding-top: 10px">a</td>`+
		`<td style="vertical-align: baseline">b</td>`+
		`</tr></table>`)

	a, b := cellAt(t, tbl, 0, 0), cellAt(t, tbl, 0, 1)
	baseline := func(c *TableCell) float64 {
		lb := c.Box.LineBoxes[0]
		return lb.Y + lb.BaselineY
	}
	assert.InDelta(t, baseline(a), baseline(b), 1e-9, "baseline cells share a baseline")
}

func TestLayoutTable_RowspanGrowsLastRow(t *testing.T) {
	tbl := layoutTable(t, `<table style="border-spacing: 0">`+
		`<tr><td rowspan="2" style="height: 100px">a</td><td>b</td></tr>`+
		`<tr><td>c</td></tr></table>`)

	lineHeight := 16 * 1.2
	rows := tbl.Sections[0].Rows
	assert.InDelta(t, lineHeight, rows[0].Height, 1e-9)
	assert.InDelta(t, 100-lineHeight, rows[1].Height, 1e-9)
	assert.InDelta(t, 100.0, cellAt(t, tbl, 0, 0).Box.BorderBox().Height, 1e-9)
}

func TestLayoutTable_FixedLayout(t *testing.T) {
	tbl := layoutTable(t, `<table style="table-layout: fixed; width: 206px"><tr>`+
		`<td style="width: 50px">a</td><td>b</td>`+
		`</tr><tr><td style="width: 500px">c</td><td>d</td></tr></table>`)

	assert.Equal(t, []float64{50, 150}, tbl.ColumnWidths)
	assert.Equal(t, 206.0, tbl.Box.BorderBox().Width)
}

func TestLayoutTable_ExplicitWidthDistributes(t *testing.T) {
	tbl := layoutTable(t, `<table style="width: 306px"><tr>`+
		`<td style="width: 100px">a</td><td style="width: 100px">b</td>`+
		`</tr></table>`)

	assert.InDeltaSlice(t, []float64{150, 150}, tbl.ColumnWidths, 1e-9)
	assert.InDelta(t, 306.0, tbl.Box.BorderBox().Width, 1e-9)
}

func TestLayoutTable_TableHeight(t *testing.T) {
	tbl := layoutTable(t, `<table style="height: 100px; border-spacing: 0"><tr><td>a</td></tr><tr><td>b</td></tr></table>`)
	rows := tbl.Sections[0].Rows
	assert.InDelta(t, 16*1.2, rows[0].Height, 1e-9)
	assert.InDelta(t, 100-16*1.2, rows[1].Height, 1e-9)
	assert.InDelta(t, 100.0, tbl.Box.BorderBox().Height, 1e-9)
}

func TestLayoutTable_FloatsMoveWithContent(t *testing.T) {
	tbl := layoutTable(t, `<table style="border-spacing: 0"><tr>`+
		`<td style="vertical-align: top"><span style="float: left; width: 20px; height: 10px">f</span>text</td>`+
		`</tr></table>`)

	c := cellAt(t, tbl, 0, 0)
	floats := c.Floats().Floats()
	require.Len(t, floats, 1)
	f := floats[0].Box
	assert.InDelta(t, c.Box.ContentBox().Y, f.Y, 1e-9)
	assert.GreaterOrEqual(t, c.Box.LineBoxes[0].Boxes[0].X, f.BorderBox().Right())
}

func TestLayoutEngine_Layout(t *testing.T) {
	doc, err := html.Parse(`<table><tr><td>a</td></tr></table><table><tr><td>b</td></tr></table>`)
	require.NoError(t, err)

	tables, err := NewLayoutEngine(800, 600).Layout(doc)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, tableGap, tables[0].Box.Y)
	assert.InDelta(t, tables[0].Box.BorderBox().Bottom()+tableGap, tables[1].Box.Y, 1e-9)

	empty, err := html.Parse(`<p>no tables</p>`)
	require.NoError(t, err)
	_, err = NewLayoutEngine(800, 600).Layout(empty)
	assert.ErrorIs(t, err, ErrNoTable)
}

package layout

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
)

func TestBuildTable_SectionOrder(t *testing.T) {
	tbl := buildTable(t, `<table>`+
		`<tfoot><tr><td>f</td></tr></tfoot>`+
		`<tbody><tr><td>b1</td></tr><tr><td>b2</td></tr></tbody>`+
		`<thead><tr><td>h</td></tr></thead>`+
		`</table>`)

	require.Len(t, tbl.Sections, 3)
	assert.Equal(t, "thead", tbl.Sections[0].Box.Node.TagName)
	assert.Equal(t, "tbody", tbl.Sections[1].Box.Node.TagName)
	assert.Equal(t, "tfoot", tbl.Sections[2].Box.Node.TagName)

	assert.Equal(t, []int{0, 1, 3}, []int{tbl.Sections[0].RowOffset, tbl.Sections[1].RowOffset, tbl.Sections[2].RowOffset})
	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, 1, tbl.NumEffCols())

	for i, s := range tbl.Sections {
		assert.Equal(t, i, s.Index)
		assert.Same(t, tbl, s.Table)
	}
}

func TestBuildTable_Spans(t *testing.T) {
	tbl := buildTable(t, `<table>`+
		`<tr><td rowspan="2">a</td><td>b</td><td>c</td></tr>`+
		`<tr><td colspan="2">d</td></tr>`+
		`<tr><td>e</td></tr>`+
		`</table>`)

	s := tbl.Sections[0]
	a, d, e := cellAt(t, tbl, 0, 0), cellAt(t, tbl, 1, 1), cellAt(t, tbl, 2, 0)
	assert.Equal(t, 2, a.RowSpan)
	assert.Equal(t, 2, d.ColSpan)
	assert.Equal(t, 3, tbl.NumEffCols())

	assert.Same(t, SpanningCell, s.CellAt(1, 0))
	assert.Same(t, a, s.OwnerAt(1, 0))
	assert.Same(t, SpanningCell, s.CellAt(1, 2))
	assert.Same(t, d, s.OwnerAt(1, 2))
	assert.Nil(t, s.CellAt(2, 1), "short rows leave empty slots")

	assert.Same(t, a, tbl.CellLeft(d))
	assert.Nil(t, tbl.CellRight(d))
	assert.Same(t, a, tbl.CellAbove(e))
	assert.Same(t, e, tbl.CellBelow(a))

	for _, c := range tbl.Cells() {
		assert.NotSame(t, SpanningCell, c)
	}
}

func TestBuildTable_RowspanClamped(t *testing.T) {
	tbl := buildTable(t, `<table>`+
		`<tbody><tr><td rowspan="5">a</td><td>b</td></tr><tr><td>c</td></tr></tbody>`+
		`<tbody><tr><td rowspan="0">d</td></tr><tr><td>e</td></tr><tr><td>f</td></tr></tbody>`+
		`</table>`)

	assert.Equal(t, 2, cellAt(t, tbl, 0, 0).RowSpan, "rowspan stops at the end of the row group")
	assert.Equal(t, 3, cellAt(t, tbl, 2, 0).RowSpan, "rowspan=0 spans the rest of the row group")
	assert.Equal(t, 2, tbl.Sections[0].NumRows())
	assert.Equal(t, 3, tbl.Sections[1].NumRows())
	assert.Equal(t, 5, tbl.NumRows())
}

func TestBuildTable_WideRowspanZero(t *testing.T) {
	const rows = 40
	markup := "<table>" + strings.Repeat(`<tr><td rowspan="0" colspan="1000">x</td></tr>`, rows) + "</table>"

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	tbl := buildTable(t, markup)
	runtime.ReadMemStats(&after)

	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(128<<20),
		"the grid only holds rows the section actually has")

	assert.Equal(t, rows, tbl.NumRows())
	assert.Equal(t, rows*1000, tbl.NumEffCols(), "each row starts right of every cell spanning into it")
	s := tbl.Sections[0]
	require.Len(t, s.owners, rows)
	for i, r := range s.Rows {
		require.Len(t, r.Cells, 1)
		c := r.Cells[0]
		assert.Equal(t, rows-i, c.RowSpan)
		assert.Equal(t, i*1000, c.Col())
		assert.Same(t, c, s.CellAt(i, i*1000))
		assert.Same(t, c, s.OwnerAt(rows-1, i*1000+999))
	}
	assert.Same(t, SpanningCell, s.CellAt(rows-1, 0))
	assert.Nil(t, s.CellAt(0, 1000), "nothing spans up into earlier rows")
}

func TestBuildTable_Columns(t *testing.T) {
	tbl := buildTable(t, `<table>`+
		`<colgroup span="2" style="width: 30px"></colgroup>`+
		`<colgroup><col id="x"><col id="y" span="2"></colgroup>`+
		`<tr><td>1</td><td>2</td><td>3</td><td>4</td><td>5</td><td>6</td></tr>`+
		`</table>`)

	require.Len(t, tbl.ColElements, 3)
	group := tbl.ColElements[0]
	assert.Equal(t, RoleColumnGroup, group.Box.Role)
	assert.Equal(t, 2, group.Span)

	assert.Same(t, group, tbl.ColElement(0))
	assert.Same(t, group, tbl.ColElement(1))
	id, _ := tbl.ColElement(2).Box.Node.GetAttribute("id")
	assert.Equal(t, "x", id)
	id, _ = tbl.ColElement(3).Box.Node.GetAttribute("id")
	assert.Equal(t, "y", id)
	assert.Same(t, tbl.ColElement(3), tbl.ColElement(4))
	assert.Nil(t, tbl.ColElement(5))
	assert.Nil(t, tbl.ColElement(-1))
}

func TestBuildTable_DisplayTable(t *testing.T) {
	doc, err := html.Parse(`<style>
		.t { display: table }
		.r { display: table-row }
		.c { display: table-cell }
	</style><div class="t"><div class="r"><div class="c">a</div><div class="c">b</div></div><span class="c">c</span></div>`)
	require.NoError(t, err)
	styles := css.ApplyStylesToDocument(doc)

	nodes := FindTables(doc.Root, styles)
	require.Len(t, nodes, 1)
	tbl, err := BuildTable(nodes[0], styles)
	require.NoError(t, err)

	require.Len(t, tbl.Sections, 1)
	assert.Nil(t, tbl.Sections[0].Box.Node, "rows outside a row group get an anonymous one")
	assert.Equal(t, 2, tbl.NumRows(), "a stray cell gets an anonymous row")
	assert.Equal(t, 2, tbl.NumEffCols())
}

func TestBuildTable_NotATable(t *testing.T) {
	doc, err := html.Parse(`<div>x</div>`)
	require.NoError(t, err)
	styles := css.ApplyStylesToDocument(doc)

	_, err = BuildTable(doc.Root.Find("div"), styles)
	assert.True(t, errors.Is(err, ErrNoTable))

	_, err = BuildTable(nil, styles)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestFindTables_Outermost(t *testing.T) {
	doc, err := html.Parse(`<table id="a"><tr><td><table id="inner"><tr><td>x</td></tr></table></td></tr></table><p><table id="b"></table></p>`)
	require.NoError(t, err)
	styles := css.ApplyStylesToDocument(doc)

	nodes := FindTables(doc.Root, styles)
	require.Len(t, nodes, 2)
	id, _ := nodes[0].GetAttribute("id")
	assert.Equal(t, "a", id)
	id, _ = nodes[1].GetAttribute("id")
	assert.Equal(t, "b", id)
}

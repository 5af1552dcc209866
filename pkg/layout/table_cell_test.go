package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14tables/pkg/css"
)

func TestTableCell_OuterStyleWidth(t *testing.T) {
	tbl := buildTable(t, `<table><tr>`+
		`<td style="width: 50px; padding: 0 5px; border: 2px solid">a</td>`+
		`<td style="width: 25%; padding: 4px">b</td>`+
		`<td style="padding: 4px">c</td>`+
		`</tr></table>`)

	fixed := cellAt(t, tbl, 0, 0).OuterStyleWidth()
	assert.True(t, fixed.IsFixed())
	assert.Equal(t, 64.0, fixed.Value)

	pct := cellAt(t, tbl, 0, 1).OuterStyleWidth()
	assert.True(t, pct.IsPercent())
	assert.Equal(t, 25.0, pct.Value, "percentages are returned unchanged")

	assert.True(t, cellAt(t, tbl, 0, 2).OuterStyleWidth().IsVariable())
}

func TestTableCell_OuterStyleOrColWidth(t *testing.T) {
	tbl := buildTable(t, `<table><col style="width: 80px"><col style="width: 90px">`+
		`<tr><td>a</td><td style="width: 10px">b</td></tr>`+
		`<tr><td colspan="2">c</td></tr></table>`)

	a := cellAt(t, tbl, 0, 0).OuterStyleOrColWidth()
	assert.Equal(t, css.Length{Value: 80, Kind: css.LengthFixed}, a)

	b := cellAt(t, tbl, 0, 1).OuterStyleOrColWidth()
	assert.Equal(t, 10.0, b.Value, "the cell's own width wins over its column")

	assert.True(t, cellAt(t, tbl, 1, 0).OuterStyleOrColWidth().IsVariable(), "spanning cells take no column hint")
}

func TestTableCell_BorderSet(t *testing.T) {
	markup := `<tr><td style="border: 3px solid; padding: 1px 2px">a</td></tr></table>`

	separate := cellAt(t, buildTable(t, `<table>`+markup), 0, 0)
	assert.Equal(t, css.BoxEdge{Top: 3, Right: 3, Bottom: 3, Left: 3}, separate.Border())

	collapsed := cellAt(t, buildTable(t, `<table style="border-collapse: collapse">`+markup), 0, 0)
	collapsed.CalcCollapsedBorder()
	assert.Equal(t, css.BoxEdge{Top: 2, Right: 1, Bottom: 1, Left: 2}, collapsed.Border())

	collapsed.SetLayoutWidth(40)
	assert.Equal(t, css.BoxEdge{}, collapsed.Box.Margin)
	assert.Equal(t, css.BoxEdge{Top: 1, Right: 2, Bottom: 1, Left: 2}, collapsed.Box.Padding)
	assert.Equal(t, 40.0-2-2-1-2, collapsed.Box.Width)
	assert.Equal(t, 40.0, collapsed.Box.BorderBox().Width)

	collapsed.SetLayoutWidth(3)
	assert.Zero(t, collapsed.Box.Width)
}

func TestTableCell_CalcBaseline(t *testing.T) {
	c := &TableCell{Box: newBox(nil, nil, RoleCell)}
	c.Box.Y = 4
	c.Box.Border = css.BoxEdge{Top: 2}
	c.Box.Padding = css.BoxEdge{Top: 3}
	assert.Equal(t, 9.0, c.CalcBaseline(), "no lines falls back to the content top")

	c.Box.LineBoxes = []*LineBox{{Y: 10, Height: 12, BaselineY: 8}, {Y: 22, Height: 12, BaselineY: 8}}
	assert.Equal(t, 18.0, c.CalcBaseline())
}

func TestTableCell_MoveContent(t *testing.T) {
	c := &TableCell{Box: newBox(nil, nil, RoleCell)}
	c.Box.Y = 100

	child := newBox(nil, nil, RoleBlock)
	child.Y = 5
	grandchild := newBox(nil, nil, RoleText)
	grandchild.Y = 6
	child.AddChild(grandchild)
	c.Box.AddChild(child)
	c.Box.LineBoxes = []*LineBox{{Y: 5}}

	floater := newBox(nil, nil, RoleBlock)
	floater.Y = 7
	c.Floats().AddFloat(floater, css.FloatLeft)

	c.MoveContent(10)
	assert.Equal(t, 100.0, c.Box.Y, "the cell box stays put")
	assert.Equal(t, 15.0, child.Y)
	assert.Equal(t, 16.0, grandchild.Y)
	assert.Equal(t, 17.0, floater.Y)
	assert.Equal(t, 15.0, c.Box.LineBoxes[0].Y)

	c.MoveContent(-15)
	assert.Equal(t, 0.0, child.Y)
	assert.Equal(t, 2.0, floater.Y)
}

func TestTableCell_VerticalAlign(t *testing.T) {
	tbl := buildTable(t, `<table><tr>`+
		`<td style="vertical-align: top">a</td>`+
		`<td style="vertical-align: bottom">b</td>`+
		`<td>c</td>`+
		`<td style="vertical-align: text-top">d</td>`+
		`</tr></table>`)

	assert.Equal(t, css.VerticalAlignTop, cellAt(t, tbl, 0, 0).VerticalAlign())
	assert.Equal(t, css.VerticalAlignBottom, cellAt(t, tbl, 0, 1).VerticalAlign())
	assert.Equal(t, css.VerticalAlignMiddle, cellAt(t, tbl, 0, 2).VerticalAlign(), "cells default to middle")
	assert.Equal(t, css.VerticalAlignBaseline, cellAt(t, tbl, 0, 3).VerticalAlign())
}

func TestTableCell_Flags(t *testing.T) {
	tbl := buildTable(t, `<table><tr>`+
		`<td style="height: 40px">a</td><td style="height: 50%">b</td><td>c</td>`+
		`</tr></table>`)
	assert.False(t, cellAt(t, tbl, 0, 0).IsAutoHeight())
	assert.True(t, cellAt(t, tbl, 0, 1).IsAutoHeight())
	assert.True(t, cellAt(t, tbl, 0, 2).IsAutoHeight())

	c := cellAt(t, tbl, 0, 0)
	assert.True(t, c.IsFixedWidthAdvisoryOnly())
	assert.True(t, c.IsSkipWhenCollapsingMargins())

	fixed := buildTable(t, `<table style="table-layout: fixed"><tr><td>a</td></tr></table>`)
	assert.False(t, cellAt(t, fixed, 0, 0).IsFixedWidthAdvisoryOnly())
}

func TestTableCell_IsEmpty(t *testing.T) {
	tbl := buildTable(t, `<table><tr>`+
		`<td> </td><td></td><td>x</td><td><span></span></td>`+
		`</tr></table>`)
	assert.True(t, cellAt(t, tbl, 0, 0).IsEmpty())
	assert.True(t, cellAt(t, tbl, 0, 1).IsEmpty())
	assert.False(t, cellAt(t, tbl, 0, 2).IsEmpty())
	assert.False(t, cellAt(t, tbl, 0, 3).IsEmpty())
}

func TestTableCell_CollapsedBorderBounds(t *testing.T) {
	tbl := buildTable(t, `<table style="border-collapse: collapse"><tr>`+
		`<td style="border: 3px solid">a</td></tr></table>`)
	c := cellAt(t, tbl, 0, 0)
	c.Box.X, c.Box.Y = 10, 20
	c.Box.Width, c.Box.Height = 30, 40

	assert.Equal(t, c.PaintingBorderEdge(), c.PaintingClipEdge(), "no collapsed border yet")

	c.CalcCollapsedBorder()
	c.calcDimensions()
	edge := c.PaintingBorderEdge()
	require.Equal(t, Rect{X: 10, Y: 20, Width: 33, Height: 43}, edge)

	want := Rect{X: 9, Y: 19, Width: 33 + 1 + 2, Height: 43 + 1 + 2}
	assert.Equal(t, want, c.CollapsedBorderBounds())
	assert.Equal(t, want, c.PaintingClipEdge())
}

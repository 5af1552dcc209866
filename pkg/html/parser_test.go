package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CollectsStylesheets(t *testing.T) {
	doc, err := Parse(`<html><head><style>td { border: 1px solid }</style></head>
<body><table><tr><td>a</td></tr></table></body></html>`)
	require.NoError(t, err)
	require.Len(t, doc.Stylesheets, 1)
	assert.Contains(t, doc.Stylesheets[0], "td {")
	assert.Nil(t, doc.Root.Find("style"), "style elements are not part of the tree")
}

func TestParse_ImpliedRowGroup(t *testing.T) {
	doc, err := Parse(`<table><tr><td>a</td><td>b</td></tr></table>`)
	require.NoError(t, err)

	table := doc.Root.Find("table")
	require.NotNil(t, table)
	children := table.ElementChildren()
	require.Len(t, children, 1)
	assert.Equal(t, "tbody", children[0].TagName)
	assert.Len(t, table.FindAll("td"), 2)
}

func TestParse_Attributes(t *testing.T) {
	doc, err := Parse(`<table><tr><td ROWSPAN="2" style="color: red">x</td></tr></table>`)
	require.NoError(t, err)

	td := doc.Root.Find("td")
	require.NotNil(t, td)
	rowspan, ok := td.GetAttribute("rowspan")
	assert.True(t, ok)
	assert.Equal(t, "2", rowspan)
	style, _ := td.GetAttribute("style")
	assert.Equal(t, "color: red", style)
	assert.Same(t, td, td.Children[0].Parent)
}

func TestNode_TextContentAndWhitespace(t *testing.T) {
	n := &Node{Type: ElementNode, TagName: "td"}
	n.AppendText("  ")
	assert.True(t, n.Children[0].IsWhitespace())

	span := &Node{Type: ElementNode, TagName: "span"}
	span.AppendText("hello")
	n.AddChild(span)
	n.AppendText(" world")
	assert.Equal(t, "  hello world", n.TextContent())
	assert.Len(t, n.ElementChildren(), 1)
}

func TestNode_GetAttributeWithoutAttributes(t *testing.T) {
	n := &Node{Type: ElementNode, TagName: "col"}
	_, ok := n.GetAttribute("span")
	assert.False(t, ok)
}

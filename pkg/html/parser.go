package html

import (
	"fmt"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Parse parses an HTML document. The HTML5 tree builder supplies implied
// elements (html, body, tbody), so a bare <tr> inside <table> ends up in a
// row group just as a browser would place it.
func Parse(src string) (*Document, error) {
	return ParseReader(strings.NewReader(src))
}

func ParseReader(r io.Reader) (*Document, error) {
	root, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		convertNode(doc, doc.Root, c)
	}
	return doc, nil
}

func convertNode(doc *Document, parent *Node, n *nethtml.Node) {
	switch n.Type {
	case nethtml.TextNode:
		parent.AppendText(n.Data)

	case nethtml.ElementNode:
		if n.Data == "style" {
			doc.Stylesheets = append(doc.Stylesheets, textOf(n))
			return
		}
		if n.Data == "script" {
			return
		}
		node := &Node{
			Type:     ElementNode,
			TagName:  strings.ToLower(n.Data),
			Children: make([]*Node, 0),
		}
		if len(n.Attr) > 0 {
			node.Attributes = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				node.Attributes[strings.ToLower(a.Key)] = a.Val
			}
		}
		parent.AddChild(node)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			convertNode(doc, node, c)
		}
	}
}

func textOf(n *nethtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

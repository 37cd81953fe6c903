package seatmap

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultFormID is the id of the host booking form hidden fields are
// written into.
const DefaultFormID = "bookingForm"

// Document is the markup a widget renders into.  It is either a minimal
// fragment built by NewDocument or a full host page parsed with
// ParseDocument.
type Document struct {
	root *html.Node
}

// NewDocument builds a fragment holding an empty container and, when formID
// is non-empty, a host form.
func NewDocument(containerID, formID string) *Document {
	root := newElement("div", "seatmap-host")
	container := newElement("div", "seat-map")
	setAttr(container, "id", containerID)
	root.AppendChild(container)
	if formID != "" {
		form := newElement("form", "")
		setAttr(form, "id", formID)
		setAttr(form, "method", "post")
		root.AppendChild(form)
	}
	return &Document{root: root}
}

// ParseDocument parses a host page.
func ParseDocument(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: n}, nil
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := getAttr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" if rendering fails.
func (d *Document) String() string {
	var b bytes.Buffer
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// RenderNode renders a single node and its subtree.
func RenderNode(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b bytes.Buffer
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

func newElement(tag, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if class != "" {
		setAttr(n, "class", class)
	}
	return n
}

func appendText(n *html.Node, text string) {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key && n.Attr[i].Namespace == "" {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := getAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !walk(c, fn) {
			return false
		}
		c = next
	}
	return true
}

// findAll collects the element nodes under n matching pred.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

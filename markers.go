package obsidian2html

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markerPattern matches a marker span at the start of a text node:
// "{.name}" with one class name, the exact shape Preprocess emits after
// a rewritten embed.
var markerPattern = regexp.MustCompile(`^\{\.([A-Za-z][A-Za-z0-9-]*)\}`)

// markerTransformer folds a {.class} text span trailing a link or image
// into a class attribute on that node, removing the span. Marker text
// anywhere else passes through as ordinary text.
type markerTransformer struct{}

func (t *markerTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var targets []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, enter bool) (ast.WalkStatus, error) {
		if !enter {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindLink, ast.KindImage:
			targets = append(targets, n)
		}
		return ast.WalkContinue, nil
	})

	for _, n := range targets {
		attachMarker(n, source)
	}
}

// attachMarker moves a marker span immediately following node onto node's
// class attribute.
func attachMarker(node ast.Node, source []byte) {
	next, ok := node.NextSibling().(*ast.Text)
	if !ok {
		return
	}

	seg := next.Segment
	m := markerPattern.FindSubmatchIndex(seg.Value(source))
	if m == nil {
		return
	}

	addClass(node, seg.Value(source)[m[2]:m[3]])

	rest := seg.WithStart(seg.Start + m[1])
	if rest.Len() > 0 {
		next.Segment = rest
	} else {
		parent := node.Parent()
		parent.RemoveChild(parent, next)
	}
}

// addClass appends class to the node's class attribute. Adding a class
// the node already has is a no-op, so repeated passes cannot stack
// duplicates.
func addClass(node ast.Node, class []byte) {
	v, ok := node.AttributeString("class")
	if !ok {
		node.SetAttributeString("class", class)
		return
	}

	var current []byte
	switch x := v.(type) {
	case []byte:
		current = x
	case string:
		current = []byte(x)
	}
	if hasClass(current, class) {
		return
	}

	merged := make([]byte, 0, len(current)+1+len(class))
	merged = append(merged, current...)
	merged = append(merged, ' ')
	merged = append(merged, class...)
	node.SetAttributeString("class", merged)
}

// hasClass reports whether the space-separated class list contains class.
func hasClass(list, class []byte) bool {
	for _, c := range bytes.Fields(list) {
		if bytes.Equal(c, class) {
			return true
		}
	}
	return false
}

// classOf returns the node's class attribute as bytes, nil when absent.
func classOf(node ast.Node) []byte {
	v, ok := node.AttributeString("class")
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case []byte:
		return x
	case string:
		return []byte(x)
	}
	return nil
}

package notesrc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func markdownLines(data []byte) ([]string, error) {
	decoded, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	src := []byte(decoded)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var lines []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			lines = append(lines, strings.Split(inlineText(n, src), "\n")...)
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				lines = append(lines, strings.TrimRight(string(seg.Value(src)), "\r\n"))
			}
			return ast.WalkSkipChildren, nil
		case east.KindTableHeader, east.KindTableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if cell := strings.TrimSpace(inlineText(c, src)); cell != "" {
					cells = append(cells, cell)
				}
			}
			lines = append(lines, strings.Join(cells, ": "))
			return ast.WalkSkipChildren, nil
		case ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return lines, err
}

// inlineText concatenates the text under n. Soft and hard line breaks
// become newlines.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				b.Write(c.Segment.Value(src))
				if c.SoftLineBreak() || c.HardLineBreak() {
					b.WriteByte('\n')
				}
			case *ast.String:
				b.Write(c.Value)
			case *ast.AutoLink:
				b.Write(c.Label(src))
			case *ast.RawHTML:
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimRight(b.String(), "\n")
}

package notesrc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func htmlLines(data []byte) ([]string, error) {
	decoded, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(decoded))
	if err != nil {
		return nil, err
	}
	w := &htmlWalker{}
	w.walk(doc)
	w.flush()
	return w.lines, nil
}

type htmlWalker struct {
	lines []string
	cur   bytes.Buffer
	pre   int
	space bool
}

func (w *htmlWalker) flush() {
	if line := strings.TrimSpace(w.cur.String()); line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
	w.space = false
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		switch n.Data {
		case "br":
			w.flush()
			return
		case "tr":
			w.flush()
			w.row(n)
			return
		case "pre":
			w.flush()
			w.pre++
			defer func() { w.pre-- }()
		}
		if isBlockElement(n.Data) {
			w.flush()
			defer w.flush()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *htmlWalker) text(data string) {
	if w.pre > 0 {
		parts := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
		for i, part := range parts {
			if i > 0 {
				w.lines = append(w.lines, strings.TrimRight(w.cur.String(), " \t"))
				w.cur.Reset()
			}
			w.cur.WriteString(part)
		}
		return
	}
	fields := strings.Fields(data)
	if len(fields) == 0 {
		w.space = w.cur.Len() > 0
		return
	}
	if w.cur.Len() > 0 && (w.space || startsWithSpace(data)) {
		w.cur.WriteByte(' ')
	}
	w.cur.WriteString(strings.Join(fields, " "))
	w.space = endsWithSpace(data)
}

func (w *htmlWalker) row(tr *html.Node) {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		if cell := strings.Join(strings.Fields(textContent(c)), " "); cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) > 0 {
		w.lines = append(w.lines, strings.Join(cells, ": "))
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
		b.WriteByte(' ')
	}
	return b.String()
}

func shouldSkipElement(tag string) bool {
	switch tag {
	case "script", "style", "head", "noscript", "template", "svg", "iframe":
		return true
	}
	return false
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol",
		"blockquote", "section", "article", "header", "footer", "main", "nav",
		"aside", "table", "thead", "tbody", "tfoot", "dl", "dt", "dd", "hr",
		"figure", "figcaption", "pre", "body":
		return true
	}
	return false
}

func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\r\n", rune(s[0]))
}

func endsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\r\n", rune(s[len(s)-1]))
}

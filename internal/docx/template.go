// Package docx renders {{Placeholder}} substitutions into .docx files.
//
// A .docx is a zip archive whose main content lives in word/document.xml.
// Only that part is touched: scalar placeholders are replaced inside
// paragraph text, a paragraph consisting of a single fragment placeholder is
// swapped for the fragment's block elements, and every other archive part is
// written back byte-for-byte.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

// Context carries the values substituted into one template: scalar fields by
// placeholder name, plus block fragments that replace a whole placeholder
// paragraph. Placeholders with no entry are left untouched.
type Context struct {
	Fields    map[string]string
	Fragments map[string]Fragment
}

// Template is one .docx opened for rendering. Open once per output document;
// Render mutates the document tree in place.
type Template struct {
	entries []zipEntry
	doc     *etree.Document
}

type zipEntry struct {
	name string
	data []byte
}

// OpenTemplate reads the archive into memory and parses the document part.
func OpenTemplate(path string) (*Template, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	t := &Template{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read %s from %s: %w", f.Name, path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s from %s: %w", f.Name, path, err)
		}
		t.entries = append(t.entries, zipEntry{name: f.Name, data: data})
		if f.Name == documentPart {
			t.doc = etree.NewDocument()
			if err := t.doc.ReadFromBytes(data); err != nil {
				return nil, fmt.Errorf("parse %s in %s: %w", documentPart, path, err)
			}
		}
	}
	if t.doc == nil {
		return nil, fmt.Errorf("%s: missing %s", path, documentPart)
	}
	return t, nil
}

// Render applies the context to every paragraph in the document, including
// paragraphs nested inside tables.
func (t *Template) Render(ctx Context) error {
	if t.doc.FindElement("//w:body") == nil {
		return errors.New("document has no w:body")
	}
	for _, p := range t.doc.FindElements("//w:p") {
		renderParagraph(p, ctx)
	}
	return nil
}

// Save writes the rendered document to path, preserving all untouched
// archive parts in their original order.
func (t *Template) Save(path string) error {
	rendered, err := t.doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", documentPart, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	zw := zip.NewWriter(f)
	for _, e := range t.entries {
		w, err := zw.Create(e.name)
		if err != nil {
			f.Close()
			return fmt.Errorf("write %s to %s: %w", e.name, path, err)
		}
		data := e.data
		if e.name == documentPart {
			data = rendered
		}
		if _, err := w.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("write %s to %s: %w", e.name, path, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return f.Close()
}

// PlainText returns the document text with one line per paragraph. Intended
// for inspection and tests, not round-tripping.
func (t *Template) PlainText() string {
	var b strings.Builder
	for _, p := range t.doc.FindElements("//w:p") {
		for _, el := range p.FindElements(".//w:t") {
			b.WriteString(el.Text())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderParagraph joins the text of all runs in the paragraph before
// matching, so placeholders Word has split across runs are still found. On a
// scalar substitution the joined result lands in the first run and the rest
// are emptied, keeping the first run's formatting.
func renderParagraph(p *etree.Element, ctx Context) {
	texts := p.FindElements(".//w:t")
	if len(texts) == 0 {
		return
	}
	var joined strings.Builder
	for _, el := range texts {
		joined.WriteString(el.Text())
	}
	s := joined.String()
	if !strings.Contains(s, "{{") {
		return
	}

	// A paragraph that is exactly one placeholder may stand for a fragment.
	if name, ok := solePlaceholder(s); ok {
		if frag, ok := ctx.Fragments[name]; ok {
			replaceParagraph(p, frag)
			return
		}
	}

	replaced := s
	for name, value := range ctx.Fields {
		replaced = strings.ReplaceAll(replaced, "{{"+name+"}}", value)
	}
	if replaced == s {
		return
	}
	texts[0].SetText(replaced)
	texts[0].CreateAttr("xml:space", "preserve")
	for _, el := range texts[1:] {
		el.SetText("")
	}
}

func solePlaceholder(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return "", false
	}
	name := strings.TrimSpace(s[2 : len(s)-2])
	if name == "" || strings.Contains(name, "{{") || strings.Contains(name, "}}") {
		return "", false
	}
	return name, true
}

func replaceParagraph(p *etree.Element, frag Fragment) {
	parent := p.Parent()
	if parent == nil {
		return
	}
	idx := p.Index()
	parent.RemoveChild(p)
	for i, block := range frag.blocks() {
		parent.InsertChildAt(idx+i, block)
	}
}

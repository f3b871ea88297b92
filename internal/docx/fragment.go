package docx

import "github.com/beevik/etree"

// Fragment is block-level document content substituted for a placeholder
// paragraph. Fragments are plain data: the OOXML elements are built fresh on
// every insertion, so one fragment can safely be reused across templates.
type Fragment interface {
	blocks() []*etree.Element
}

// ParagraphFragment renders as a single plain paragraph. Used for the
// empty-state text when a customer has no goods rows.
type ParagraphFragment struct {
	Text string
}

func (f ParagraphFragment) blocks() []*etree.Element {
	return []*etree.Element{paragraph(f.Text, false)}
}

// TableFragment renders as a bordered table: one bold header row followed by
// the data rows. Rows shorter than the header are padded with empty cells.
type TableFragment struct {
	Header []string
	Rows   [][]string
}

func (f TableFragment) blocks() []*etree.Element {
	tbl := etree.NewElement("w:tbl")
	pr := tbl.CreateElement("w:tblPr")
	style := pr.CreateElement("w:tblStyle")
	style.CreateAttr("w:val", "TableGrid")
	borders := pr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
	}

	tbl.AddChild(f.row(f.Header, true))
	for _, cells := range f.Rows {
		tbl.AddChild(f.row(cells, false))
	}
	return []*etree.Element{tbl}
}

func (f TableFragment) row(cells []string, header bool) *etree.Element {
	tr := etree.NewElement("w:tr")
	for i := 0; i < len(f.Header); i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		tc := tr.CreateElement("w:tc")
		tc.AddChild(paragraph(text, header))
	}
	return tr
}

func paragraph(text string, bold bool) *etree.Element {
	p := etree.NewElement("w:p")
	r := p.CreateElement("w:r")
	if bold {
		rpr := r.CreateElement("w:rPr")
		rpr.CreateElement("w:b")
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
	return p
}

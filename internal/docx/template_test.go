package docx_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqtran/docx-merger/internal/docx"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentXMLTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s</w:body></w:document>`

// writeDocx builds a minimal .docx whose body holds the given paragraphs.
func writeDocx(t *testing.T, path, bodyXML string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", fmt.Sprintf(documentXMLTmpl, bodyXML)},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestRenderScalarPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.docx")
	writeDocx(t, path, para("Xin chào {{TênKH}}!"))

	tpl, err := docx.OpenTemplate(path)
	require.NoError(t, err)
	require.NoError(t, tpl.Render(docx.Context{
		Fields: map[string]string{"TênKH": "Nguyễn Văn A"},
	}))

	assert.Contains(t, tpl.PlainText(), "Xin chào Nguyễn Văn A!")
}

func TestRenderPlaceholderSplitAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.docx")
	// Word often splits a placeholder over several runs.
	body := `<w:p><w:r><w:t>Mã: {{Mã</w:t></w:r><w:r><w:t>KH}}</w:t></w:r></w:p>`
	writeDocx(t, path, body)

	tpl, err := docx.OpenTemplate(path)
	require.NoError(t, err)
	require.NoError(t, tpl.Render(docx.Context{
		Fields: map[string]string{"MãKH": "001"},
	}))

	text := tpl.PlainText()
	assert.Contains(t, text, "Mã: 001")
	assert.NotContains(t, text, "{{")
}

func TestRenderUnknownPlaceholderLeftUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.docx")
	writeDocx(t, path, para("{{KhôngTồnTại}}"))

	tpl, err := docx.OpenTemplate(path)
	require.NoError(t, err)
	require.NoError(t, tpl.Render(docx.Context{
		Fields: map[string]string{"TênKH": "A"},
	}))

	assert.Contains(t, tpl.PlainText(), "{{KhôngTồnTại}}")
}

func TestRenderTableFragment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.docx")
	writeDocx(t, path, para("Danh sách:")+para("{{BảngHàngHoá}}")+para("Hết."))

	tpl, err := docx.OpenTemplate(path)
	require.NoError(t, err)
	frag := docx.TableFragment{
		Header: []string{"Tên hàng", "Số lượng", "Đơn giá", "Thành tiền"},
		Rows: [][]string{
			{"Bút bi", "2", "500", "1.000"},
			{"Vở", "1", "1.000", "1.200"},
		},
	}
	require.NoError(t, tpl.Render(docx.Context{
		Fragments: map[string]docx.Fragment{"BảngHàngHoá": frag},
	}))

	out := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, tpl.Save(out))

	doc := documentXML(t, out)
	assert.Equal(t, 3, strings.Count(doc, "<w:tr>"), "header plus two data rows")
	assert.NotContains(t, doc, "{{BảngHàngHoá}}")
	assert.Contains(t, doc, "Bút bi")
	assert.Contains(t, doc, "1.200")
	// The surrounding paragraphs survive in order around the table.
	assert.Less(t, strings.Index(doc, "Danh sách:"), strings.Index(doc, "<w:tbl>"))
	assert.Less(t, strings.Index(doc, "<w:tbl>"), strings.Index(doc, "Hết."))
}

func TestFragmentReuseAcrossTemplates(t *testing.T) {
	dir := t.TempDir()
	frag := docx.TableFragment{
		Header: []string{"A", "B", "C", "D"},
		Rows:   [][]string{{"1", "2", "3", "4"}},
	}
	// The same fragment value rendered into two templates must produce
	// identical tables; insertion never consumes the fragment.
	for _, name := range []string{"t1.docx", "t2.docx"} {
		path := filepath.Join(dir, name)
		writeDocx(t, path, para("{{Bảng}}"))
		tpl, err := docx.OpenTemplate(path)
		require.NoError(t, err)
		require.NoError(t, tpl.Render(docx.Context{
			Fragments: map[string]docx.Fragment{"Bảng": frag},
		}))
		out := filepath.Join(dir, "out_"+name)
		require.NoError(t, tpl.Save(out))
		assert.Equal(t, 2, strings.Count(documentXML(t, out), "<w:tr>"))
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tpl.docx")
	writeDocx(t, path, para("Chủ hộ: {{TênKH}}"))

	tpl, err := docx.OpenTemplate(path)
	require.NoError(t, err)
	require.NoError(t, tpl.Render(docx.Context{
		Fields: map[string]string{"TênKH": "Trần Thị B"},
	}))

	out := filepath.Join(dir, "out.docx")
	require.NoError(t, tpl.Save(out))

	reopened, err := docx.OpenTemplate(out)
	require.NoError(t, err)
	assert.Contains(t, reopened.PlainText(), "Chủ hộ: Trần Thị B")

	// Untouched archive parts are carried over.
	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}

func TestOpenTemplateMissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(contentTypesXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = docx.OpenTemplate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

// documentXML extracts word/document.xml from a saved archive.
func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("word/document.xml not found in %s", path)
	return ""
}

package merge

import (
	"github.com/hqtran/docx-merger/internal/dataset"
	"github.com/hqtran/docx-merger/internal/docx"
)

// emptyItemsText is shown instead of a table when a customer has no goods
// rows; a zero-row table would look like a rendering bug.
const emptyItemsText = "Không có hàng hoá."

// itemTableHeader is canonical: the display labels do not depend on which
// source-column spelling was matched.
var itemTableHeader = []string{"Tên hàng", "Số lượng", "Đơn giá", "Thành tiền"}

// BuildItemTable renders a customer's goods rows into an embeddable
// fragment: the fixed four-column header plus one row per item in source
// order. Cell values go through the formatter for their column; an
// unresolved column yields empty cells. The fragment does not depend on any
// template, so it is built once per customer and shared.
func BuildItemTable(items []dataset.Record, cols dataset.ItemColumns) docx.Fragment {
	if len(items) == 0 {
		return docx.ParagraphFragment{Text: emptyItemsText}
	}

	derive := cols.DeriveTotal()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		total := ""
		switch {
		case derive:
			qty := coerceNumber(item.Get(cols.Quantity))
			price := coerceNumber(item.Get(cols.UnitPrice))
			total = FormatCurrency(qty.Mul(price).String())
		case cols.Total != "":
			total = FormatCurrency(item.Get(cols.Total))
		}
		rows = append(rows, []string{
			item.Get(cols.Name),
			FormatInt(item.Get(cols.Quantity)),
			FormatCurrency(item.Get(cols.UnitPrice)),
			total,
		})
	}
	return docx.TableFragment{Header: itemTableHeader, Rows: rows}
}

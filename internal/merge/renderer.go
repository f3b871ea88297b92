package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hqtran/docx-merger/internal/dataset"
	"github.com/hqtran/docx-merger/internal/docx"
)

// Placeholder names the templates are expected to use.
const (
	phCustomerName = "TênKH"
	phBirthDate    = "NgàySinh"
	phAddress      = "ĐịaChỉ"
	phPhone        = "SốĐiệnThoại"
	phCustomerID   = "MãKH"
	phItemTable    = "BảngHàngHoá"
)

// renderCustomer produces every (customer, template) artifact for one
// profile row. Per-template failures are logged and counted but do not stop
// the remaining templates for the same customer.
func (b *Batch) renderCustomer(rec dataset.Record, wb *dataset.Workbook, templates []string, sum *Summary) {
	customerID := rec.Get(wb.ProfileCols.ID)
	customerName := rec.Get(wb.ProfileCols.Name)

	folder := strings.Trim(Sanitize(customerID)+"_"+Sanitize(customerName), "_")
	outDir := filepath.Join(b.cfg.OutputDir, folder)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		b.log.Error().Err(err).Str("customer", customerID).Msg("create customer folder")
		sum.RenderErrors += len(templates)
		return
	}

	items := wb.GoodsFor(customerID)
	fragment := BuildItemTable(items, wb.GoodsCols)

	ctx := docx.Context{
		Fields: map[string]string{
			phCustomerName: customerName,
			phBirthDate:    FormatDate(rec.Get(wb.ProfileCols.BirthDate), b.cfg.DateFormat),
			phAddress:      strings.TrimSpace(rec.Get(wb.ProfileCols.Address)),
			phPhone:        rec.Get(wb.ProfileCols.Phone),
			phCustomerID:   customerID,
		},
		Fragments: map[string]docx.Fragment{
			phItemTable: fragment,
		},
	}

	for _, tplPath := range templates {
		outName := templateStem(tplPath) + "__" + Sanitize(customerID) + filepath.Ext(tplPath)
		outPath := filepath.Join(outDir, outName)
		if err := renderOne(tplPath, ctx, outPath); err != nil {
			b.log.Error().Err(err).
				Str("template", filepath.Base(tplPath)).
				Str("customer", customerID).
				Msg("render failed, continuing with next template")
			sum.RenderErrors++
			continue
		}
		sum.FilesWritten++
		b.log.Info().Str("file", outPath).Msg("written")
	}
}

func renderOne(tplPath string, ctx docx.Context, outPath string) error {
	tpl, err := docx.OpenTemplate(tplPath)
	if err != nil {
		return err
	}
	if err := tpl.Render(ctx); err != nil {
		return fmt.Errorf("render %s: %w", tplPath, err)
	}
	return tpl.Save(outPath)
}

func templateStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

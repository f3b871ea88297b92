package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the fully loaded dataset: both sheets, their resolved columns,
// and a goods index grouped by customer id. It is read once and treated as
// immutable for the rest of the run.
type Workbook struct {
	Profile     *Table
	Goods       *Table
	ProfileCols ProfileColumns
	GoodsCols   ItemColumns

	goodsByID map[string][]Record
}

// Load opens the workbook, resolves the two required sheets and the profile
// sheet's required columns, and indexes the goods rows by customer id.
// Resolution failures are fatal; they surface as *SchemaError.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets, err := ResolveSheets(f.GetSheetList())
	if err != nil {
		return nil, err
	}

	profile, err := readSheet(f, sheets.Profile)
	if err != nil {
		return nil, err
	}
	goods, err := readSheet(f, sheets.Goods)
	if err != nil {
		return nil, err
	}

	profileCols, err := resolveProfileColumns(profile.Columns)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{
		Profile:     profile,
		Goods:       goods,
		ProfileCols: profileCols,
		GoodsCols:   resolveItemColumns(goods.Columns),
	}
	wb.indexGoods()
	return wb, nil
}

// GoodsFor returns the goods rows belonging to the given customer id, in
// source order. Ids are compared as opaque strings, never parsed as numbers,
// so leading zeros and non-numeric ids survive the join.
func (wb *Workbook) GoodsFor(customerID string) []Record {
	return wb.goodsByID[customerID]
}

// indexGoods groups the goods rows by customer id once, replacing a
// per-customer linear scan. When the goods sheet has no identifiable
// customer-id column every lookup yields an empty set.
func (wb *Workbook) indexGoods() {
	wb.goodsByID = make(map[string][]Record)
	if wb.GoodsCols.CustomerID == "" {
		return
	}
	for i := 0; i < wb.Goods.Len(); i++ {
		rec := wb.Goods.Record(i)
		id := rec.Get(wb.GoodsCols.CustomerID)
		wb.goodsByID[id] = append(wb.goodsByID[id], rec)
	}
}

func readSheet(f *excelize.File, name string) (*Table, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return NewTable(name, nil, nil), nil
	}
	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = strings.TrimSpace(c)
	}
	return NewTable(name, header, rows[1:]), nil
}

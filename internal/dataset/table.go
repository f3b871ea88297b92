package dataset

// Table holds one sheet read into memory: the literal column headers in sheet
// order plus the data rows, each padded to the header width.
type Table struct {
	Name     string
	Columns  []string
	Rows     [][]string
	colIndex map[string]int
}

// NewTable builds a Table and its column lookup. Rows shorter than the header
// are padded so every cell access is in range.
func NewTable(name string, columns []string, rows [][]string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := idx[c]; !ok {
			idx[c] = i
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(columns) {
			row = append(row, make([]string, len(columns)-len(row))...)
		}
		padded[i] = row
	}
	return &Table{Name: name, Columns: columns, Rows: padded, colIndex: idx}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Record returns a view over row i.
func (t *Table) Record(i int) Record { return Record{table: t, row: i} }

// Record is a read-only view over one table row, addressed by literal column
// name.
type Record struct {
	table *Table
	row   int
}

// Get returns the cell under the given literal column name, or "" when the
// column is empty or absent. Callers resolve fuzzy names to literal ones
// first (see PickColumn); Get itself is exact.
func (r Record) Get(column string) string {
	if column == "" || r.table == nil {
		return ""
	}
	i, ok := r.table.colIndex[column]
	if !ok || i >= len(r.table.Rows[r.row]) {
		return ""
	}
	return r.table.Rows[r.row][i]
}

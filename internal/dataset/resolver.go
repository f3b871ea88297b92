package dataset

import "strings"

// Candidate spellings for each logical column, in priority order. The first
// candidate whose normalized key matches an available column wins, so the
// canonical accented spelling is always preferred over its variants.
var (
	customerIDCandidates = []string{"Mã KH", "Ma KH", "MaKH", "Mã khách hàng", "Ma khach hang"}
	fullNameCandidates   = []string{"Họ tên", "Ho ten", "Họ Tên", "HoTen", "Họ và tên"}
	birthDateCandidates  = []string{"Ngày sinh", "Ngay sinh", "Ngày Sinh", "NgaySinh"}
	addressCandidates    = []string{"Địa chỉ", "Dia chi", "Địa Chỉ", "DiaChi"}
	phoneCandidates      = []string{"Số điện thoại", "So dien thoai", "SĐT", "SDT", "Điện thoại"}

	itemNameCandidates  = []string{"Tên hàng", "Ten hang", "Ten hàng", "Tên Hàng", "TênHH", "TenHH"}
	quantityCandidates  = []string{"Số lượng", "So luong", "Số Lượng", "SL", "SoLuong"}
	unitPriceCandidates = []string{"Đơn giá", "Don gia", "Đơn Giá", "DonGia"}
	lineTotalCandidates = []string{"Thành tiền", "Thanh tien", "Thành Tiền", "ThanhTien"}
)

// SheetNames holds the literal names of the two required sheets.
type SheetNames struct {
	Profile string // "Hồ sơ" under any accent/case/spacing variant
	Goods   string // "Hàng hoá" under any accent/case/spacing variant
}

// ResolveSheets scans sheet names in their listed order and locates the
// profile and goods sheets. A sheet matches "profile" when its normalized key
// contains "hoso"; it matches "goods" when the key contains "hanghoa" or,
// as a broader fallback, both the "hang" and "hoa" tokens. The first match
// per category wins.
func ResolveSheets(names []string) (SheetNames, error) {
	var found SheetNames
	for _, name := range names {
		key := NormalizeKey(name)
		if found.Profile == "" && strings.Contains(key, "hoso") {
			found.Profile = name
		}
		if found.Goods == "" && matchesGoods(key) {
			found.Goods = name
		}
	}
	if found.Profile == "" {
		return found, &SchemaError{Kind: "sheet", Missing: "Hồ sơ", Available: names}
	}
	if found.Goods == "" {
		return found, &SchemaError{Kind: "sheet", Missing: "Hàng hoá", Available: names}
	}
	return found, nil
}

func matchesGoods(key string) bool {
	if strings.Contains(key, "hanghoa") {
		return true
	}
	// Two-token fallback covers spaced and reordered spellings.
	return strings.Contains(key, "hang") && strings.Contains(key, "hoa")
}

// PickColumn resolves a logical column against the available headers: the
// available names are normalized once into a lookup, then the candidates are
// tried in priority order. Candidate order encodes semantic priority — the
// winner is the earliest candidate present, not the earliest available column.
func PickColumn(available []string, candidates ...string) (string, bool) {
	byKey := make(map[string]string, len(available))
	for _, col := range available {
		key := NormalizeKey(col)
		if _, ok := byKey[key]; !ok {
			byKey[key] = col
		}
	}
	for _, cand := range candidates {
		if col, ok := byKey[NormalizeKey(cand)]; ok {
			return col, true
		}
	}
	return "", false
}

// ProfileColumns holds the resolved literal column names of the profile
// sheet. ID and Name are required; the rest may be empty when absent.
type ProfileColumns struct {
	ID        string
	Name      string
	BirthDate string
	Address   string
	Phone     string
}

// ItemColumns holds the resolved literal column names of the goods sheet.
// Any field may be empty when no spelling variant matched. When Total is
// empty but Quantity and UnitPrice are both present, the line total is
// derived as their product.
type ItemColumns struct {
	CustomerID string
	Name       string
	Quantity   string
	UnitPrice  string
	Total      string
}

// DeriveTotal reports whether line totals must be computed from quantity and
// unit price instead of read from a source column.
func (c ItemColumns) DeriveTotal() bool {
	return c.Total == "" && c.Quantity != "" && c.UnitPrice != ""
}

func resolveProfileColumns(columns []string) (ProfileColumns, error) {
	var cols ProfileColumns
	var ok bool
	if cols.ID, ok = PickColumn(columns, customerIDCandidates...); !ok {
		return cols, &SchemaError{Kind: "column", Missing: "Mã KH", Available: columns}
	}
	if cols.Name, ok = PickColumn(columns, fullNameCandidates...); !ok {
		return cols, &SchemaError{Kind: "column", Missing: "Họ tên", Available: columns}
	}
	cols.BirthDate, _ = PickColumn(columns, birthDateCandidates...)
	cols.Address, _ = PickColumn(columns, addressCandidates...)
	cols.Phone, _ = PickColumn(columns, phoneCandidates...)
	return cols, nil
}

func resolveItemColumns(columns []string) ItemColumns {
	var cols ItemColumns
	cols.CustomerID, _ = PickColumn(columns, customerIDCandidates...)
	cols.Name, _ = PickColumn(columns, itemNameCandidates...)
	cols.Quantity, _ = PickColumn(columns, quantityCandidates...)
	cols.UnitPrice, _ = PickColumn(columns, unitPriceCandidates...)
	cols.Total, _ = PickColumn(columns, lineTotalCandidates...)
	return cols
}

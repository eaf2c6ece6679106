package ingest

// ColumnMap binds a source spreadsheet header to a canonical field name.
// An empty Canonical drops the column entirely.
type ColumnMap struct {
	Header    string
	Canonical string
}

// columnMapping is the fixed header dictionary for bid spreadsheets.
// Order matters: projection emits fields in declaration order.
var columnMapping = []ColumnMap{
	{"번호", ""}, // auto-increment display column, ignored
	{"타입", "bid_type"},
	{"참가마감", "participation_deadline"},
	{"투찰마감", "bid_deadline"},
	{"입찰일", "bid_date"},
	{"발주기관", "organization"},
	{"공고명", "title"},
	{"공고번호", "bid_number"},
	{"업종", "industry"},
	{"지역", "region"},
	{"추정가격", "estimated_price"},
	{"기초금액", "base_price"},
	{"1순위업체", "first_rank_company"},
	{"낙찰금액", "winning_price"},
	{"기초/낙찰", "base_winning_rate"},
	{"추정/낙찰", "estimated_winning_rate"},
}

// requiredFields are the canonical columns a batch cannot do without
var requiredFields = []string{"title", "bid_number"}

// dateFields are normalized to ISO dates
var dateFields = map[string]bool{
	"participation_deadline": true,
	"bid_deadline":           true,
	"bid_date":               true,
}

// numericFields are normalized to floats
var numericFields = map[string]bool{
	"estimated_price":        true,
	"base_price":             true,
	"winning_price":          true,
	"base_winning_rate":      true,
	"estimated_winning_rate": true,
}

// headerFor returns the original spreadsheet header for a canonical field
func headerFor(canonical string) string {
	for _, m := range columnMapping {
		if m.Canonical == canonical {
			return m.Header
		}
	}
	return ""
}

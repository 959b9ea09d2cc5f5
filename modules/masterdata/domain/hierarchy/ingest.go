package hierarchy

// ParsedRow is one spreadsheet data row after column mapping. Rows are
// never persisted; they exist between extraction and merge.
type ParsedRow struct {
	IndustrySegment string   `json:"industrySegment"`
	DomainGroup     string   `json:"domainGroup"`
	Category        string   `json:"category"`
	SubCategory     string   `json:"subCategory"`
	RowNumber       int      `json:"rowNumber"`
	IsValid         bool     `json:"isValid"`
	Errors          []string `json:"errors,omitempty"`
}

// HasMinimumData reports whether the row can contribute to the
// hierarchy at all: segment and group are required, category and
// sub-category are recommended.
func (r ParsedRow) HasMinimumData() bool {
	return r.IndustrySegment != "" && r.DomainGroup != ""
}

// Map is the nested intermediate representation between ingestion and
// merge: segment name -> group name -> category name -> sub-category
// names.
type Map map[string]map[string]map[string][]string

func NewMap() Map {
	return make(Map)
}

// Add records one row's names, creating intermediate keys on first
// sight. Sub-category de-duplication here is case-sensitive; the
// case-insensitive pass happens in the merge engine.
func (m Map) Add(segment, group, category, subCategory string) {
	if segment == "" || group == "" {
		return
	}
	if m[segment] == nil {
		m[segment] = make(map[string]map[string][]string)
	}
	if m[segment][group] == nil {
		m[segment][group] = make(map[string][]string)
	}
	if category == "" {
		return
	}
	if _, ok := m[segment][group][category]; !ok {
		m[segment][group][category] = []string{}
	}
	if subCategory == "" {
		return
	}
	for _, existing := range m[segment][group][category] {
		if existing == subCategory {
			return
		}
	}
	m[segment][group][category] = append(m[segment][group][category], subCategory)
}

func (m Map) IsEmpty() bool {
	return len(m) == 0
}

// ProcessingResult aggregates what ingestion saw. Errors and warnings
// are returned as data for the UI; they never abort the other rows.
type ProcessingResult struct {
	TotalRows int      `json:"totalRows"`
	ValidRows int      `json:"validRows"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
}

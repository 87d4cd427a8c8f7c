package core

import (
	"sort"

	"maganghub-radar/internal/maganghub"
)

// CategoryNonIT is the default label for records the classifier did not
// match.
const CategoryNonIT = "NON-IT"

// SortVacancies orders records for presentation: best odds first, ties
// broken by larger quota. The sort is stable so equal records keep their
// fetch order.
func SortVacancies(records []maganghub.Vacancy) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Odds != records[j].Odds {
			return records[i].Odds > records[j].Odds
		}
		return records[i].Quota > records[j].Quota
	})
}

// ApplyCategories merges classifier output onto the records by id. Records
// absent from the mapping get the NON-IT default.
func ApplyCategories(records []maganghub.Vacancy, categories map[string]string) {
	for i := range records {
		if cat, ok := categories[records[i].ID]; ok && cat != "" {
			records[i].Category = cat
			continue
		}
		records[i].Category = CategoryNonIT
	}
}

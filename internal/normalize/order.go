package normalize

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/ppiankov/surveyreport/internal/model"
	"golang.org/x/text/unicode/norm"
)

// TopOccupations is how many occupations the occupation ordering keeps
const TopOccupations = 10

// IncomeBracketRanks orders the monthly income brackets of the questionnaire
var IncomeBracketRanks = map[string]int{
	"Menos de ₡200,000":         1,
	"Entre ₡250,000 y ₡350,000": 2,
	"Entre ₡360,000 y ₡450,000": 3,
	"Entre ₡450,000 y ₡600,000": 4,
	"Más de ₡600,000":           5,
}

var firstNumber = regexp.MustCompile(`\d+`)

// OrderFor returns the display order of the distinct non-null values of a role.
// A nil result means the role has no explicit order and charts use first-seen
// order.
func OrderFor(role model.Role, records model.CanonicalRecordSet) []string {
	switch role {
	case model.RoleAgeBracket:
		return orderByFirstNumber(distinct(role, records))
	case model.RoleEducationLevel:
		return orderByFrequency(role, records, 0)
	case model.RoleOccupation:
		return orderByFrequency(role, records, TopOccupations)
	case model.RoleMonthlyIncomeBracket:
		return orderByRank(distinct(role, records), IncomeBracketRanks)
	}
	return nil
}

// Counts tallies a role in the given order. With a nil order every non-null
// value is counted in first-seen order; otherwise values outside the order are
// dropped.
func Counts(role model.Role, records model.CanonicalRecordSet, order []string) []model.CategoryCount {
	tally := make(map[string]int)
	for _, rec := range records {
		v := rec.Get(role)
		if v.IsNull() {
			continue
		}
		tally[v.String]++
	}

	if order == nil {
		order = distinct(role, records)
	}

	out := make([]model.CategoryCount, 0, len(order))
	for _, label := range order {
		if n, ok := tally[label]; ok {
			out = append(out, model.CategoryCount{Label: label, Count: n})
		}
	}
	return out
}

// distinct lists the non-null values of a role in first-seen order
func distinct(role model.Role, records model.CanonicalRecordSet) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		v := rec.Get(role)
		if v.IsNull() || seen[v.String] {
			continue
		}
		seen[v.String] = true
		out = append(out, v.String)
	}
	return out
}

func orderByFirstNumber(labels []string) []string {
	key := func(s string) int {
		m := firstNumber.FindString(s)
		if m == "" {
			return 0
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0
		}
		return n
	}
	out := append([]string{}, labels...)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

// orderByFrequency sorts by descending count, ties kept in first-seen order.
// limit <= 0 keeps everything.
func orderByFrequency(role model.Role, records model.CanonicalRecordSet, limit int) []string {
	counts := Counts(role, records, nil)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Label
	}
	return out
}

// orderByRank keeps only labels found in ranks, ascending by rank
func orderByRank(labels []string, ranks map[string]int) []string {
	type ranked struct {
		label string
		rank  int
	}
	var known []ranked
	for _, l := range labels {
		if r, ok := lookupRank(ranks, l); ok {
			known = append(known, ranked{label: l, rank: r})
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return known[i].rank < known[j].rank
	})
	out := make([]string, len(known))
	for i, k := range known {
		out[i] = k.label
	}
	return out
}

func lookupRank(ranks map[string]int, label string) (int, bool) {
	if r, ok := ranks[label]; ok {
		return r, true
	}
	// Spreadsheets sometimes store accents decomposed.
	composed := norm.NFC.String(label)
	for k, r := range ranks {
		if norm.NFC.String(k) == composed {
			return r, true
		}
	}
	return 0, false
}

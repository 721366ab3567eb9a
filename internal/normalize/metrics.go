package normalize

import (
	"strings"

	"github.com/ppiankov/surveyreport/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultAffirmative is the indigenous identity answer counted as "yes"
const DefaultAffirmative = "sí"

// ComputeMetrics derives the title-page figures from the record set.
//
// The indigenous percentage uses the full record count as denominator; null
// answers count as not affirmative. Null sex values are left out of the
// breakdown. An empty set yields zero metrics.
func ComputeMetrics(records model.CanonicalRecordSet, affirmative string) model.SummaryMetrics {
	metrics := model.SummaryMetrics{
		Total:     len(records),
		SexCounts: []model.CategoryCount{},
	}
	if len(records) == 0 {
		return metrics
	}
	if affirmative == "" {
		affirmative = DefaultAffirmative
	}

	affirmed := 0
	for _, rec := range records {
		v := rec.IndigenousIdentity
		if !v.IsNull() && IsAffirmative(v.String, affirmative) {
			affirmed++
		}
	}
	metrics.IndigenousPercent = 100 * float64(affirmed) / float64(len(records))
	metrics.SexCounts = Counts(model.RoleSex, records, nil)

	return metrics
}

// IsAffirmative reports whether an answer matches the marker, ignoring case,
// surrounding whitespace and Unicode composition.
func IsAffirmative(answer, marker string) bool {
	f := newFolder()
	return f.key(answer) == f.key(marker)
}

// folder builds comparison keys. A cases.Caser keeps state, so each caller
// gets its own.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) key(s string) string {
	return f.caser.String(norm.NFC.String(strings.TrimSpace(s)))
}

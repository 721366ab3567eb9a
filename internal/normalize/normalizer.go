package normalize

import (
	"fmt"

	"github.com/ppiankov/surveyreport/internal/model"
)

// Normalize projects the six role columns of every row, cleans their labels
// and returns one canonical record per row, in row order.
//
// The role map is validated against the table first; a contract violation is
// returned as *model.ConfigurationError and no records are produced.
func Normalize(raw *model.RawTable, roles model.ColumnRoleMap) (model.CanonicalRecordSet, error) {
	if raw == nil {
		return nil, fmt.Errorf("normalize: nil table")
	}
	if err := roles.Validate(raw.ColumnCount()); err != nil {
		return nil, err
	}

	records := make(model.CanonicalRecordSet, len(raw.Rows))
	for i := range raw.Rows {
		rec := model.CanonicalRecord{Row: i}
		for _, role := range model.Roles() {
			rec.Set(role, CleanLabel(raw.At(i, roles[role])))
		}
		records[i] = rec
	}

	return records, nil
}

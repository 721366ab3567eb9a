package model

import "fmt"

// Role is the logical name of one of the six projected survey fields
type Role string

const (
	RoleSex                  Role = "sex"
	RoleAgeBracket           Role = "age_bracket"
	RoleEducationLevel       Role = "education_level"
	RoleOccupation           Role = "occupation"
	RoleMonthlyIncomeBracket Role = "monthly_income_bracket"
	RoleIndigenousIdentity   Role = "indigenous_identity"
)

// Roles returns every role in projection order
func Roles() []Role {
	return []Role{
		RoleSex,
		RoleAgeBracket,
		RoleEducationLevel,
		RoleOccupation,
		RoleMonthlyIncomeBracket,
		RoleIndigenousIdentity,
	}
}

// ParseRole resolves a role name
func ParseRole(name string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// ColumnRoleMap maps each role to a zero-based column index
type ColumnRoleMap map[Role]int

// DefaultColumnRoleMap returns the positional contract of the municipal survey sheet
func DefaultColumnRoleMap() ColumnRoleMap {
	return ColumnRoleMap{
		RoleSex:                  3,
		RoleAgeBracket:           4,
		RoleEducationLevel:       5,
		RoleOccupation:           6,
		RoleMonthlyIncomeBracket: 7,
		RoleIndigenousIdentity:   9,
	}
}

// Validate checks that every role is mapped to a distinct column that exists
// in a table of columnCount columns.
func (m ColumnRoleMap) Validate(columnCount int) error {
	seen := make(map[int]Role, len(m))
	for _, role := range Roles() {
		idx, ok := m[role]
		if !ok {
			return &ConfigurationError{Role: role, Index: -1, Columns: columnCount, Reason: "role not mapped"}
		}
		if idx < 0 || idx >= columnCount {
			return &ConfigurationError{Role: role, Index: idx, Columns: columnCount, Reason: "column index out of range"}
		}
		if other, dup := seen[idx]; dup {
			return &ConfigurationError{
				Role:    role,
				Index:   idx,
				Columns: columnCount,
				Reason:  fmt.Sprintf("column already mapped to %s", other),
			}
		}
		seen[idx] = role
	}
	return nil
}

// String renders the mapping in projection order
func (m ColumnRoleMap) String() string {
	s := ""
	for i, r := range Roles() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", r, m[r])
	}
	return s
}

// CanonicalRecord holds one respondent's six cleaned values
type CanonicalRecord struct {
	Row                  int  `json:"row"` // zero-based data row in the source table
	Sex                  Cell `json:"sex"`
	AgeBracket           Cell `json:"age_bracket"`
	EducationLevel       Cell `json:"education_level"`
	Occupation           Cell `json:"occupation"`
	MonthlyIncomeBracket Cell `json:"monthly_income_bracket"`
	IndigenousIdentity   Cell `json:"indigenous_identity"`
}

// Get returns the value held for a role
func (r CanonicalRecord) Get(role Role) Cell {
	switch role {
	case RoleSex:
		return r.Sex
	case RoleAgeBracket:
		return r.AgeBracket
	case RoleEducationLevel:
		return r.EducationLevel
	case RoleOccupation:
		return r.Occupation
	case RoleMonthlyIncomeBracket:
		return r.MonthlyIncomeBracket
	case RoleIndigenousIdentity:
		return r.IndigenousIdentity
	}
	return Cell{}
}

// Set stores the value for a role
func (r *CanonicalRecord) Set(role Role, c Cell) {
	switch role {
	case RoleSex:
		r.Sex = c
	case RoleAgeBracket:
		r.AgeBracket = c
	case RoleEducationLevel:
		r.EducationLevel = c
	case RoleOccupation:
		r.Occupation = c
	case RoleMonthlyIncomeBracket:
		r.MonthlyIncomeBracket = c
	case RoleIndigenousIdentity:
		r.IndigenousIdentity = c
	}
}

// CanonicalRecordSet is the normalized table, in source row order
type CanonicalRecordSet []CanonicalRecord

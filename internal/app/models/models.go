package models

import "fmt"

// Role is the per-request caller classification. It is derived once from the
// identity record's flags and checked everywhere a gate applies, instead of
// scattering is_staff/is_superuser comparisons through handlers.
type Role int

const (
	RoleAnonymous Role = iota
	RoleStudent
	RoleStaff
	RoleSuperuser
)

// String returns the role name
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleStaff:
		return "staff"
	case RoleSuperuser:
		return "superuser"
	default:
		return "anonymous"
	}
}

// AtLeast reports whether the role meets the given bar. Superuser implies
// staff, staff implies student.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// CompetitionLevel is the enumerated scope of an achievement's competition.
type CompetitionLevel string

const (
	CompetitionCollege       CompetitionLevel = "college"
	CompetitionUniversity    CompetitionLevel = "university"
	CompetitionState         CompetitionLevel = "state"
	CompetitionNational      CompetitionLevel = "national"
	CompetitionInternational CompetitionLevel = "international"
)

// CompetitionLevels returns all levels in display order
func CompetitionLevels() []CompetitionLevel {
	return []CompetitionLevel{
		CompetitionCollege,
		CompetitionUniversity,
		CompetitionState,
		CompetitionNational,
		CompetitionInternational,
	}
}

// ParseCompetitionLevel validates a raw form value against the enumeration
func ParseCompetitionLevel(s string) (CompetitionLevel, error) {
	switch CompetitionLevel(s) {
	case CompetitionCollege, CompetitionUniversity, CompetitionState, CompetitionNational, CompetitionInternational:
		return CompetitionLevel(s), nil
	}
	return "", fmt.Errorf("unknown competition level: %q", s)
}

// Display returns the human-readable label for the level
func (c CompetitionLevel) Display() string {
	switch c {
	case CompetitionCollege:
		return "College Level"
	case CompetitionUniversity:
		return "University Level"
	case CompetitionState:
		return "State Level"
	case CompetitionNational:
		return "National Level"
	case CompetitionInternational:
		return "International Level"
	default:
		return string(c)
	}
}

package program

import "gorm.io/gorm"

// Program groups members under a contribution scheme owned by a branch.
type Program struct {
	gorm.Model
	BranchID    uint   `json:"branchId" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	AgeBrackets []ProgramAgeBracket `json:"ageBrackets" gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE"`
}

// ProgramAgeBracket maps an age range to a fixed contribution amount and
// availment period. A nil MaxAge means the range is open-ended upward.
type ProgramAgeBracket struct {
	gorm.Model
	ProgramID          uint    `json:"programId" gorm:"not null;index"`
	MinAge             int     `json:"minAge" gorm:"not null"`
	MaxAge             *int    `json:"maxAge"`
	ContributionAmount float64 `json:"contributionAmount" gorm:"not null"`
	AvailmentPeriod    int     `json:"availmentPeriod" gorm:"not null;default:0"`
}

// Contains reports whether age falls inside the bracket's range.
func (b ProgramAgeBracket) Contains(age int) bool {
	if age < b.MinAge {
		return false
	}
	return b.MaxAge == nil || age <= *b.MaxAge
}

// overlaps reports whether two brackets share any age.
func overlaps(a, b ProgramAgeBracket) bool {
	if b.MaxAge != nil && *b.MaxAge < a.MinAge {
		return false
	}
	if a.MaxAge != nil && *a.MaxAge < b.MinAge {
		return false
	}
	return true
}

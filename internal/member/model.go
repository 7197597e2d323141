package member

import (
	"time"

	"gorm.io/gorm"
)

// Member statuses. Members are never hard-deleted in the normal flow; status
// carries the lifecycle.
const (
	StatusAlive    = "Alive"
	StatusDeceased = "Deceased"
	StatusVoid     = "Void"
	StatusKicked   = "Kicked"
)

// Member is an enrolled cooperative member.
type Member struct {
	gorm.Model
	FirstName     string     `json:"firstName" gorm:"not null"`
	LastName      string     `json:"lastName" gorm:"not null"`
	MiddleName    string     `json:"middleName"`
	BirthDate     *time.Time `json:"birthDate"`
	ContactNumber string     `json:"contactNumber"`
	Status        string     `json:"status" gorm:"not null;default:'Alive';index"`

	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`

	MembershipFeePaid     bool       `json:"membershipFeePaid" gorm:"not null;default:false"`
	MembershipFeeAmount   float64    `json:"membershipFeeAmount" gorm:"not null;default:0"`
	MembershipFeePaidDate *time.Time `json:"membershipFeePaidDate"`

	LastContributionDate *time.Time `json:"lastContributionDate"`
	NextDueDate          *time.Time `json:"nextDueDate"`

	FieldWorkerID *uint `json:"fieldWorkerId" gorm:"index"`
	ProgramID     *uint `json:"programId" gorm:"index"`
}

// ValidStatus reports whether s is a known member status.
func ValidStatus(s string) bool {
	switch s {
	case StatusAlive, StatusDeceased, StatusVoid, StatusKicked:
		return true
	}
	return false
}

// Age returns the member's age in full years at the given time, or -1 when the
// birth date is unknown.
func (m *Member) Age(at time.Time) int {
	if m.BirthDate == nil {
		return -1
	}
	age := at.Year() - m.BirthDate.Year()
	if at.YearDay() < m.BirthDate.YearDay() {
		age--
	}
	return age
}

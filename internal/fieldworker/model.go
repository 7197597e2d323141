package fieldworker

import "gorm.io/gorm"

// FieldWorker is a staff member collecting contributions from an assigned set
// of members within a branch. MemberCount and the two collection totals are
// denormalized aggregates maintained by the write paths that change them,
// never recomputed from source rows.
type FieldWorker struct {
	gorm.Model
	BranchID      uint   `json:"branchId" gorm:"not null;index"`
	FirstName     string `json:"firstName" gorm:"not null"`
	LastName      string `json:"lastName" gorm:"not null"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`

	MemberCount                   int     `json:"memberCount" gorm:"not null;default:0"`
	TotalMembershipFeeCollection  float64 `json:"totalMembershipFeeCollection" gorm:"not null;default:0"`
	TotalMonthlyPaymentCollection float64 `json:"totalMonthlyPaymentCollection" gorm:"not null;default:0"`
}

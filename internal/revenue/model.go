package revenue

import (
	"time"

	"gorm.io/gorm"
)

// Revenue is an income record attributed to a branch.
type Revenue struct {
	gorm.Model
	BranchID    uint      `json:"branchId" gorm:"not null;index"`
	Source      string    `json:"source" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	RevenueDate time.Time `json:"revenueDate" gorm:"not null"`
	Notes       string    `json:"notes"`
}

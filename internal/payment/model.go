package payment

import (
	"time"

	"gorm.io/gorm"
)

// Payment is one monthly contribution event for a member. Rows are immutable
// after creation in the normal flow.
type Payment struct {
	gorm.Model
	MemberID uint `json:"memberId" gorm:"not null;index"`

	Amount      float64   `json:"amount" gorm:"not null"`
	PaymentDate time.Time `json:"paymentDate" gorm:"not null;index"`
	PeriodStart time.Time `json:"periodStart" gorm:"not null"`
	NextPayment time.Time `json:"nextPayment" gorm:"not null"`

	IsLate            bool    `json:"isLate" gorm:"not null;default:false"`
	LateFeePercentage float64 `json:"lateFeePercentage" gorm:"not null;default:0"`
	LateFeeAmount     float64 `json:"lateFeeAmount" gorm:"not null;default:0"`
	TotalAmount       float64 `json:"totalAmount" gorm:"not null"`

	ReferenceNumber string `json:"referenceNumber" gorm:"size:64"`
	Notes           string `json:"notes"`
}

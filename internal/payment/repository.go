package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordInput carries the caller-supplied fields for one contribution.
type RecordInput struct {
	MemberID          uint
	Amount            float64
	PaymentDate       *time.Time
	ReferenceNumber   string
	Notes             string
	LateFeePercentage *float64
}

// Repository wraps database operations for Payment.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Record persists one contribution: the payment row, the member's
// last-contribution date, and the assigned field worker's running monthly
// total, all inside one transaction; any step failing rolls the whole write
// back.
func (r *Repository) Record(in RecordInput) (*Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", utils.ErrValidation)
	}

	var p Payment
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var m member.Member
		if err := tx.First(&m, in.MemberID).Error; err != nil {
			return fmt.Errorf("%w: member %d", utils.ErrNotFound, in.MemberID)
		}

		date := time.Now()
		if in.PaymentDate != nil {
			date = *in.PaymentDate
		}
		ref := in.ReferenceNumber
		if ref == "" {
			ref = uuid.NewString()
		}

		p = Payment{
			MemberID:        m.ID,
			Amount:          in.Amount,
			PaymentDate:     date,
			ReferenceNumber: ref,
			Notes:           in.Notes,
		}
		Compute(&p, in.LateFeePercentage)

		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		// NextDueDate on the member is tracked separately; the payment row
		// carries the period fields.
		if err := tx.Model(&m).Update("last_contribution_date", p.PaymentDate).Error; err != nil {
			return err
		}

		if m.FieldWorkerID != nil {
			if err := fieldworker.AddMonthlyCollection(tx, *m.FieldWorkerID, p.TotalAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByID(id uint) (*Payment, error) {
	var p Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListByMember(memberID uint) ([]Payment, error) {
	var payments []Payment
	err := r.DB.Where("member_id = ?", memberID).Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

// LatestForMember returns the member's most recent payment by payment date,
// or nil when the member has never paid.
func (r *Repository) LatestForMember(memberID uint) (*Payment, error) {
	var p Payment
	err := r.DB.Where("member_id = ?", memberID).Order("payment_date DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

package member

import (
	"fmt"
	"time"

	"github.com/coopworks/api-membership/internal/barangay"
	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/utils"
	"gorm.io/gorm"
)

// Repository wraps database operations for Member, including the counter
// maintenance that keeps field worker and barangay aggregates in step with
// member writes. Every multi-row write runs in a single transaction.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) FindByID(id uint) (*Member, error) {
	var m Member
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListAll() ([]Member, error) {
	var members []Member
	err := r.DB.Order("last_name, first_name").Find(&members).Error
	return members, err
}

func (r *Repository) ListByStatus(status string) ([]Member, error) {
	var members []Member
	err := r.DB.Where("status = ?", status).Order("last_name, first_name").Find(&members).Error
	return members, err
}

func (r *Repository) ListByFieldWorker(workerID uint) ([]Member, error) {
	var members []Member
	err := r.DB.Where("field_worker_id = ?", workerID).Order("last_name, first_name").Find(&members).Error
	return members, err
}

func (m *Member) location() barangay.Location {
	return barangay.Location{
		Region:   m.Region,
		Province: m.Province,
		City:     m.City,
		Barangay: m.Barangay,
	}
}

func hasLocation(m *Member) bool {
	return m.Region != "" && m.Province != "" && m.City != "" && m.Barangay != ""
}

func workerExists(tx *gorm.DB, id uint) error {
	var fw fieldworker.FieldWorker
	if err := tx.First(&fw, id).Error; err != nil {
		return fmt.Errorf("%w: field worker %d", utils.ErrNotFound, id)
	}
	return nil
}

// Create inserts a member and shifts the assigned field worker's member count
// and the barangay count for the member's location, all in one transaction.
func (r *Repository) Create(m *Member) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if m.FieldWorkerID != nil {
			if err := workerExists(tx, *m.FieldWorkerID); err != nil {
				return err
			}
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if m.FieldWorkerID != nil {
			if err := fieldworker.AdjustMemberCount(tx, *m.FieldWorkerID, 1); err != nil {
				return err
			}
		}
		if hasLocation(m) {
			if _, err := barangay.AdjustTx(tx, m.location(), 1); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update applies new field values to a member. A field worker reassignment
// decrements the previous worker's count and increments the new one's inside
// the same transaction; a location change moves the barangay count likewise.
func (r *Repository) Update(id uint, req *UpsertRequest) (*Member, error) {
	var updated *Member
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var m Member
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}

		prevWorker := m.FieldWorkerID
		prevLocated := hasLocation(&m)
		prevLocation := m.location()

		m.FirstName = req.FirstName
		m.LastName = req.LastName
		m.MiddleName = req.MiddleName
		m.BirthDate = req.BirthDate
		m.ContactNumber = req.ContactNumber
		m.Region = req.Region
		m.Province = req.Province
		m.City = req.City
		m.Barangay = req.Barangay
		m.FieldWorkerID = req.FieldWorkerID
		m.ProgramID = req.ProgramID
		if req.Status != "" {
			if !ValidStatus(req.Status) {
				return fmt.Errorf("%w: unknown status %q", utils.ErrValidation, req.Status)
			}
			m.Status = req.Status
		}

		if workerChanged(prevWorker, m.FieldWorkerID) {
			if prevWorker != nil {
				if err := fieldworker.AdjustMemberCount(tx, *prevWorker, -1); err != nil {
					return err
				}
			}
			if m.FieldWorkerID != nil {
				if err := workerExists(tx, *m.FieldWorkerID); err != nil {
					return err
				}
				if err := fieldworker.AdjustMemberCount(tx, *m.FieldWorkerID, 1); err != nil {
					return err
				}
			}
		}

		if prevLocation != m.location() {
			if prevLocated {
				if err := barangay.ReleaseTx(tx, prevLocation); err != nil {
					return err
				}
			}
			if hasLocation(&m) {
				if _, err := barangay.AdjustTx(tx, m.location(), 1); err != nil {
					return err
				}
			}
		}

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		updated = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func workerChanged(prev, next *uint) bool {
	if prev == nil && next == nil {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return *prev != *next
}

// Delete soft-deletes a member and releases its counter contributions.
func (r *Repository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var m Member
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&m).Error; err != nil {
			return err
		}
		if m.FieldWorkerID != nil {
			if err := fieldworker.AdjustMemberCount(tx, *m.FieldWorkerID, -1); err != nil {
				return err
			}
		}
		if hasLocation(&m) {
			if err := barangay.ReleaseTx(tx, m.location()); err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordMembershipFee marks the one-time membership fee as paid and adds the
// amount to the assigned field worker's running fee total.
func (r *Repository) RecordMembershipFee(id uint, amount float64, paidDate *time.Time) (*Member, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", utils.ErrValidation)
	}

	var updated *Member
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var m Member
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if m.MembershipFeePaid {
			return fmt.Errorf("%w: membership fee already paid", utils.ErrInvalidState)
		}

		date := time.Now()
		if paidDate != nil {
			date = *paidDate
		}
		m.MembershipFeePaid = true
		m.MembershipFeeAmount = amount
		m.MembershipFeePaidDate = &date
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		if m.FieldWorkerID != nil {
			if err := fieldworker.AddMembershipFeeCollection(tx, *m.FieldWorkerID, amount); err != nil {
				return err
			}
		}
		updated = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

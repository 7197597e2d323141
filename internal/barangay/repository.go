package barangay

import (
	"errors"
	"fmt"

	"github.com/coopworks/api-membership/internal/utils"
	"gorm.io/gorm"
)

// Repository wraps database operations for barangay member counts.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) ListAll() ([]BarangayMember, error) {
	var rows []BarangayMember
	err := r.DB.Order("region, province, city, barangay").Find(&rows).Error
	return rows, err
}

// Adjust shifts a location's member count by delta inside its own
// transaction. Creating a missing row requires delta >= 0; a resulting
// negative count rolls the transaction back with ErrInvalidState.
func (r *Repository) Adjust(loc Location, delta int) (*BarangayMember, error) {
	if !loc.valid() {
		return nil, fmt.Errorf("%w: incomplete location tuple", utils.ErrValidation)
	}

	var row *BarangayMember
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		row, txErr = AdjustTx(tx, loc, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// AdjustTx is Adjust running inside the caller's transaction. Member lifecycle
// writes use it so the count moves atomically with the member row.
func AdjustTx(tx *gorm.DB, loc Location, delta int) (*BarangayMember, error) {
	var row BarangayMember
	err := tx.Where("region = ? AND province = ? AND city = ? AND barangay = ?",
		loc.Region, loc.Province, loc.City, loc.Barangay).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if delta < 0 {
			return nil, fmt.Errorf("%w: cannot reduce count for unrecorded barangay", utils.ErrInvalidState)
		}
		row = BarangayMember{
			Region:      loc.Region,
			Province:    loc.Province,
			City:        loc.City,
			Barangay:    loc.Barangay,
			MemberCount: delta,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}

	if row.MemberCount+delta < 0 {
		return nil, fmt.Errorf("%w: member count would become negative", utils.ErrInvalidState)
	}
	if err := tx.Model(&row).Update("member_count", gorm.Expr("member_count + ?", delta)).Error; err != nil {
		return nil, err
	}
	row.MemberCount += delta
	return &row, nil
}

// ReleaseTx decrements a location's count when a member leaves it. Unlike
// AdjustTx it tolerates drift: a missing row is a no-op and a zero count
// stays at zero, so member updates never fail over a stale aggregate.
func ReleaseTx(tx *gorm.DB, loc Location) error {
	var row BarangayMember
	err := tx.Where("region = ? AND province = ? AND city = ? AND barangay = ?",
		loc.Region, loc.Province, loc.City, loc.Barangay).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if row.MemberCount == 0 {
		return nil
	}
	return tx.Model(&row).Update("member_count", gorm.Expr("member_count - 1")).Error
}

package fieldworker

import "gorm.io/gorm"

// Repository wraps database operations for FieldWorker.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(fw *FieldWorker) error {
	return r.DB.Create(fw).Error
}

func (r *Repository) FindByID(id uint) (*FieldWorker, error) {
	var fw FieldWorker
	if err := r.DB.First(&fw, id).Error; err != nil {
		return nil, err
	}
	return &fw, nil
}

func (r *Repository) ListAll() ([]FieldWorker, error) {
	var workers []FieldWorker
	err := r.DB.Find(&workers).Error
	return workers, err
}

func (r *Repository) ListByBranch(branchID uint) ([]FieldWorker, error) {
	var workers []FieldWorker
	err := r.DB.Where("branch_id = ?", branchID).Find(&workers).Error
	return workers, err
}

func (r *Repository) Update(fw *FieldWorker) error {
	return r.DB.Save(fw).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&FieldWorker{}, id).Error
}

// AddMonthlyCollection atomically adds amount to the worker's running monthly
// payment total. Must run inside the caller's transaction.
func AddMonthlyCollection(tx *gorm.DB, workerID uint, amount float64) error {
	return tx.Model(&FieldWorker{}).Where("id = ?", workerID).
		Update("total_monthly_payment_collection",
			gorm.Expr("total_monthly_payment_collection + ?", amount)).Error
}

// AddMembershipFeeCollection atomically adds amount to the worker's running
// membership fee total. Must run inside the caller's transaction.
func AddMembershipFeeCollection(tx *gorm.DB, workerID uint, amount float64) error {
	return tx.Model(&FieldWorker{}).Where("id = ?", workerID).
		Update("total_membership_fee_collection",
			gorm.Expr("total_membership_fee_collection + ?", amount)).Error
}

// AdjustMemberCount atomically shifts the worker's member count by delta.
// Must run inside the caller's transaction.
func AdjustMemberCount(tx *gorm.DB, workerID uint, delta int) error {
	return tx.Model(&FieldWorker{}).Where("id = ?", workerID).
		Update("member_count", gorm.Expr("member_count + ?", delta)).Error
}

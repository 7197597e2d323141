package revenue

import "gorm.io/gorm"

// Repository wraps database operations for Revenue.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(rev *Revenue) error {
	return r.DB.Create(rev).Error
}

func (r *Repository) FindByID(id uint) (*Revenue, error) {
	var rev Revenue
	if err := r.DB.First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *Repository) ListByBranch(branchID uint) ([]Revenue, error) {
	var list []Revenue
	err := r.DB.Where("branch_id = ?", branchID).Order("revenue_date DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListAll() ([]Revenue, error) {
	var list []Revenue
	err := r.DB.Order("revenue_date DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(rev *Revenue) error {
	return r.DB.Save(rev).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Revenue{}, id).Error
}

// TotalByBranch sums revenue amounts for one branch.
func (r *Repository) TotalByBranch(branchID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&Revenue{}).
		Where("branch_id = ?", branchID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

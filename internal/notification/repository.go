package notification

import "gorm.io/gorm"

// Repository wraps database operations for Notification.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(n *Notification) error {
	return r.DB.Create(n).Error
}

func (r *Repository) ListAll(limit int) ([]Notification, error) {
	var list []Notification
	q := r.DB.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) ListByMember(memberID uint) ([]Notification, error) {
	var list []Notification
	err := r.DB.Where("member_id = ?", memberID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Notification{}, id).Error
}

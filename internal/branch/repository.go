package branch

import "gorm.io/gorm"

type Repository interface {
	Save(db *gorm.DB, b *Branch) error
	FindByID(db *gorm.DB, id uint) (*Branch, error)
	ListAll(db *gorm.DB) ([]Branch, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, b *Branch) error {
	return db.Save(b).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Branch, error) {
	var b Branch
	err := db.Preload("FieldWorkers").
		Preload("Programs.AgeBrackets").
		Preload("Revenues").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Branch, error) {
	var branches []Branch
	err := db.Preload("FieldWorkers").Find(&branches).Error
	return branches, err
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Branch{}, id).Error
}

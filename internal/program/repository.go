package program

import (
	"errors"
	"fmt"

	"github.com/coopworks/api-membership/internal/utils"
	"gorm.io/gorm"
)

// Repository wraps database operations for programs and their age brackets.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Program) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*Program, error) {
	var p Program
	if err := r.DB.Preload("AgeBrackets").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListAll() ([]Program, error) {
	var programs []Program
	err := r.DB.Preload("AgeBrackets").Find(&programs).Error
	return programs, err
}

func (r *Repository) ListByBranch(branchID uint) ([]Program, error) {
	var programs []Program
	err := r.DB.Preload("AgeBrackets").Where("branch_id = ?", branchID).Find(&programs).Error
	return programs, err
}

func (r *Repository) Update(p *Program) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Program{}, id).Error
}

// AddBracket validates the new bracket against the program's existing ones and
// inserts it. Overlapping ranges within one program are rejected so that
// ResolveBracket always has at most one match.
func (r *Repository) AddBracket(programID uint, b *ProgramAgeBracket) error {
	if b.MaxAge != nil && *b.MaxAge < b.MinAge {
		return fmt.Errorf("%w: maxAge is below minAge", utils.ErrValidation)
	}
	if b.MinAge < 0 {
		return fmt.Errorf("%w: minAge must not be negative", utils.ErrValidation)
	}

	var existing []ProgramAgeBracket
	if err := r.DB.Where("program_id = ?", programID).Find(&existing).Error; err != nil {
		return err
	}
	for _, other := range existing {
		if overlaps(*b, other) {
			return fmt.Errorf("%w: age range overlaps bracket %d", utils.ErrValidation, other.ID)
		}
	}

	b.ProgramID = programID
	return r.DB.Create(b).Error
}

func (r *Repository) DeleteBracket(programID, bracketID uint) error {
	res := r.DB.Where("program_id = ?", programID).Delete(&ProgramAgeBracket{}, bracketID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResolveBracket finds the bracket of a program containing the given age.
func (r *Repository) ResolveBracket(programID uint, age int) (*ProgramAgeBracket, error) {
	var b ProgramAgeBracket
	err := r.DB.
		Where("program_id = ? AND min_age <= ? AND (max_age IS NULL OR max_age >= ?)", programID, age, age).
		Order("min_age").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no bracket for age %d", utils.ErrNotFound, age)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

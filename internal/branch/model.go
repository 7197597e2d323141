package branch

import (
	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/program"
	"github.com/coopworks/api-membership/internal/revenue"
	"gorm.io/gorm"
)

// Branch is an office of the cooperative owning field workers, programs and
// revenue records.
type Branch struct {
	gorm.Model
	Name          string `json:"name" gorm:"unique;not null"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`

	FieldWorkers []fieldworker.FieldWorker `json:"fieldWorkers,omitempty" gorm:"foreignKey:BranchID"`
	Programs     []program.Program         `json:"programs,omitempty" gorm:"foreignKey:BranchID"`
	Revenues     []revenue.Revenue         `json:"revenues,omitempty" gorm:"foreignKey:BranchID"`
}

package barangay

import "gorm.io/gorm"

// BarangayMember is an aggregate row counting members per unique
// (region, province, city, barangay) tuple. The count never goes negative.
type BarangayMember struct {
	gorm.Model
	Region      string `json:"region" gorm:"not null;uniqueIndex:idx_location"`
	Province    string `json:"province" gorm:"not null;uniqueIndex:idx_location"`
	City        string `json:"city" gorm:"not null;uniqueIndex:idx_location"`
	Barangay    string `json:"barangay" gorm:"not null;uniqueIndex:idx_location"`
	MemberCount int    `json:"memberCount" gorm:"not null;default:0"`
}

// Location identifies one barangay row.
type Location struct {
	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`
}

func (l Location) valid() bool {
	return l.Region != "" && l.Province != "" && l.City != "" && l.Barangay != ""
}

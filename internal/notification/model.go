package notification

import "gorm.io/gorm"

// Notification kinds.
const (
	KindReminder = "reminder"
	KindSystem   = "system"
)

// Notification is a fire-and-forget record of a system event, optionally
// tied to a member.
type Notification struct {
	gorm.Model
	MemberID *uint  `json:"memberId" gorm:"index"`
	Kind     string `json:"kind" gorm:"not null;default:'system'"`
	Title    string `json:"title" gorm:"not null"`
	Message  string `json:"message"`
}

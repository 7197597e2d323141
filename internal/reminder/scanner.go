package reminder

import (
	"time"

	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/payment"
	"gorm.io/gorm"
)

// DefaultMonthsOverdue is the lookback window for the overdue scan.
const DefaultMonthsOverdue = 3

// OverdueMember is one scan hit.
type OverdueMember struct {
	Member            member.Member `json:"member"`
	LastPaymentDate   *time.Time    `json:"lastPaymentDate"`
	LastPaymentAmount float64       `json:"lastPaymentAmount"`
	MonthsSincePaid   int           `json:"monthsSincePaid"`
}

// Scanner finds alive members whose latest contribution predates the cutoff.
type Scanner struct {
	Members  *member.Repository
	Payments *payment.Repository
}

func NewScanner(db *gorm.DB) *Scanner {
	return &Scanner{
		Members:  member.NewRepository(db),
		Payments: payment.NewRepository(db),
	}
}

// Scan returns members with status Alive and either no payment at all or a
// latest payment older than monthsOverdue calendar months.
func (s *Scanner) Scan(monthsOverdue int, now time.Time) ([]OverdueMember, error) {
	if monthsOverdue <= 0 {
		monthsOverdue = DefaultMonthsOverdue
	}
	cutoff := now.AddDate(0, -monthsOverdue, 0)

	members, err := s.Members.ListByStatus(member.StatusAlive)
	if err != nil {
		return nil, err
	}

	var overdue []OverdueMember
	for _, m := range members {
		latest, err := s.Payments.LatestForMember(m.ID)
		if err != nil {
			return nil, err
		}

		if latest == nil {
			overdue = append(overdue, OverdueMember{Member: m})
			continue
		}
		if latest.PaymentDate.Before(cutoff) {
			date := latest.PaymentDate
			overdue = append(overdue, OverdueMember{
				Member:            m,
				LastPaymentDate:   &date,
				LastPaymentAmount: latest.Amount,
				MonthsSincePaid:   monthsBetween(latest.PaymentDate, now),
			})
		}
	}
	return overdue, nil
}

// monthsBetween counts full calendar months from one date to a later one,
// consistent with how the next payment date is advanced.
func monthsBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	months := (y2-y1)*12 + int(m2) - int(m1)
	if d2 < d1 {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

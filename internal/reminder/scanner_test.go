package reminder

import (
	"testing"
	"time"

	"github.com/coopworks/api-membership/internal/barangay"
	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/notification"
	"github.com/coopworks/api-membership/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&fieldworker.FieldWorker{},
		&barangay.BarangayMember{},
		&member.Member{},
		&payment.Payment{},
		&notification.Notification{},
	))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, status, contact string) *member.Member {
	t.Helper()
	m := member.Member{FirstName: "Juan", LastName: "Santos", Status: status, ContactNumber: contact}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func seedPayment(t *testing.T, db *gorm.DB, memberID uint, when time.Time, amount float64) {
	t.Helper()
	p := payment.Payment{
		MemberID:    memberID,
		Amount:      amount,
		PaymentDate: when,
		PeriodStart: when,
		NextPayment: when.AddDate(0, 1, 0),
		TotalAmount: amount,
	}
	require.NoError(t, db.Create(&p).Error)
}

var scanNow = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func TestScan_IncludesStaleAliveMember(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusAlive, "09170000001")
	seedPayment(t, db, m.ID, scanNow.AddDate(0, -4, 0), 350)

	overdue, err := NewScanner(db).Scan(3, scanNow)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, m.ID, overdue[0].Member.ID)
	assert.Equal(t, 350.0, overdue[0].LastPaymentAmount)
	assert.Equal(t, 4, overdue[0].MonthsSincePaid)
}

func TestScan_ExcludesDeceasedMember(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusDeceased, "09170000002")
	seedPayment(t, db, m.ID, scanNow.AddDate(0, -4, 0), 350)

	overdue, err := NewScanner(db).Scan(3, scanNow)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestScan_IncludesMemberWithNoPayments(t *testing.T) {
	db := newTestDB(t)
	seedMember(t, db, member.StatusAlive, "09170000003")

	overdue, err := NewScanner(db).Scan(3, scanNow)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Nil(t, overdue[0].LastPaymentDate)
}

func TestScan_ExcludesRecentPayer(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusAlive, "09170000004")
	seedPayment(t, db, m.ID, scanNow.AddDate(0, -1, 0), 350)

	overdue, err := NewScanner(db).Scan(3, scanNow)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestMonthsBetween(t *testing.T) {
	from := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, monthsBetween(from, from))
	assert.Equal(t, 0, monthsBetween(from, from.AddDate(0, 0, 20)))
	assert.Equal(t, 1, monthsBetween(from, time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, monthsBetween(from, time.Date(2026, time.April, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, monthsBetween(from, time.Date(2027, time.April, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, monthsBetween(from, from.AddDate(0, 0, -5)))
}

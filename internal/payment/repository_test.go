package payment

import (
	"testing"
	"time"

	"github.com/coopworks/api-membership/internal/barangay"
	"github.com/coopworks/api-membership/internal/fieldworker"
	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/utils"
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
		&member.Member{},
		&barangay.BarangayMember{},
		&Payment{},
	))
	return db
}

func seedWorkerAndMember(t *testing.T, db *gorm.DB) (*fieldworker.FieldWorker, *member.Member) {
	t.Helper()
	fw := fieldworker.FieldWorker{BranchID: 1, FirstName: "Liza", LastName: "Reyes"}
	require.NoError(t, db.Create(&fw).Error)

	m := member.Member{FirstName: "Juan", LastName: "Santos", Status: member.StatusAlive, FieldWorkerID: &fw.ID}
	require.NoError(t, db.Create(&m).Error)
	return &fw, &m
}

func TestRecord_PersistsDerivedFields(t *testing.T) {
	db := newTestDB(t)
	_, m := seedWorkerAndMember(t, db)
	repo := NewRepository(db)

	when := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	p, err := repo.Record(RecordInput{MemberID: m.ID, Amount: 1000, PaymentDate: &when})
	require.NoError(t, err)

	assert.True(t, p.IsLate)
	assert.Equal(t, 15.0, p.LateFeePercentage)
	assert.Equal(t, 150.0, p.LateFeeAmount)
	assert.Equal(t, 1150.0, p.TotalAmount)
	assert.Equal(t, when, p.PeriodStart.UTC())
	assert.Equal(t, when.AddDate(0, 1, 0), p.NextPayment.UTC())
	assert.NotEmpty(t, p.ReferenceNumber)
}

func TestRecord_UpdatesMemberLastContribution(t *testing.T) {
	db := newTestDB(t)
	_, m := seedWorkerAndMember(t, db)
	repo := NewRepository(db)

	when := time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC)
	_, err := repo.Record(RecordInput{MemberID: m.ID, Amount: 300, PaymentDate: &when})
	require.NoError(t, err)

	var got member.Member
	require.NoError(t, db.First(&got, m.ID).Error)
	require.NotNil(t, got.LastContributionDate)
	assert.Equal(t, when, got.LastContributionDate.UTC())
	assert.Nil(t, got.NextDueDate, "recording a payment must not touch the member's due date")
}

func TestRecord_IncrementsAssignedWorkerOnly(t *testing.T) {
	db := newTestDB(t)
	fw, m := seedWorkerAndMember(t, db)
	other := fieldworker.FieldWorker{BranchID: 1, FirstName: "Mara", LastName: "Cruz"}
	require.NoError(t, db.Create(&other).Error)

	when := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	_, err := NewRepository(db).Record(RecordInput{MemberID: m.ID, Amount: 1000, PaymentDate: &when})
	require.NoError(t, err)

	var gotAssigned, gotOther fieldworker.FieldWorker
	require.NoError(t, db.First(&gotAssigned, fw.ID).Error)
	require.NoError(t, db.First(&gotOther, other.ID).Error)
	assert.Equal(t, 1150.0, gotAssigned.TotalMonthlyPaymentCollection)
	assert.Zero(t, gotOther.TotalMonthlyPaymentCollection)
}

func TestRecord_NoWorkerAssigned(t *testing.T) {
	db := newTestDB(t)
	m := member.Member{FirstName: "Nena", LastName: "Dizon", Status: member.StatusAlive}
	require.NoError(t, db.Create(&m).Error)

	when := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	p, err := NewRepository(db).Record(RecordInput{MemberID: m.ID, Amount: 200, PaymentDate: &when})
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.TotalAmount)
}

func TestRecord_MemberNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewRepository(db).Record(RecordInput{MemberID: 999, Amount: 100})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRecord_RejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	_, m := seedWorkerAndMember(t, db)
	_, err := NewRepository(db).Record(RecordInput{MemberID: m.ID, Amount: 0})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestLatestForMember(t *testing.T) {
	db := newTestDB(t)
	_, m := seedWorkerAndMember(t, db)
	repo := NewRepository(db)

	latest, err := repo.LatestForMember(m.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	older := time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC)
	_, err = repo.Record(RecordInput{MemberID: m.ID, Amount: 100, PaymentDate: &older})
	require.NoError(t, err)
	_, err = repo.Record(RecordInput{MemberID: m.ID, Amount: 200, PaymentDate: &newer})
	require.NoError(t, err)

	latest, err = repo.LatestForMember(m.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 200.0, latest.Amount)
}

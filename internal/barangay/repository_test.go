package barangay

import (
	"net/http"
	"net/http/httptest"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&BarangayMember{}))
	return db
}

var testLoc = Location{Region: "01", Province: "0128", City: "012801", Barangay: "012801001"}

func TestAdjust_CreatesRowForPositiveDelta(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	row, err := repo.Adjust(testLoc, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, row.MemberCount)
}

func TestAdjust_NegativeDeltaOnMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Adjust(testLoc, -1)
	assert.ErrorIs(t, err, utils.ErrInvalidState)

	var n int64
	require.NoError(t, db.Model(&BarangayMember{}).Count(&n).Error)
	assert.Zero(t, n, "failed adjust must not create a row")
}

func TestAdjust_NeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Adjust(testLoc, 2)
	require.NoError(t, err)

	_, err = repo.Adjust(testLoc, -3)
	assert.ErrorIs(t, err, utils.ErrInvalidState)

	var row BarangayMember
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 2, row.MemberCount, "count unchanged after rollback")
}

func TestAdjust_AccumulatesOnExistingRow(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.Adjust(testLoc, 2)
	require.NoError(t, err)
	row, err := repo.Adjust(testLoc, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, row.MemberCount)
}

func TestAdjust_RejectsIncompleteTuple(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.Adjust(Location{Region: "01"}, 1)
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestDuplicateLocationIsValidationError(t *testing.T) {
	db := newTestDB(t)

	first := BarangayMember{Region: testLoc.Region, Province: testLoc.Province, City: testLoc.City, Barangay: testLoc.Barangay}
	require.NoError(t, db.Create(&first).Error)

	dup := BarangayMember{Region: testLoc.Region, Province: testLoc.Province, City: testLoc.City, Barangay: testLoc.Barangay}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	rec := httptest.NewRecorder()
	utils.RespondError(rec, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReleaseTx_DecrementsExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Adjust(testLoc, 2)
	require.NoError(t, err)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ReleaseTx(tx, testLoc)
	}))

	var row BarangayMember
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 1, row.MemberCount)
}

func TestReleaseTx_MissingRowIsNoOp(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ReleaseTx(tx, testLoc)
	}))

	var n int64
	require.NoError(t, db.Model(&BarangayMember{}).Count(&n).Error)
	assert.Zero(t, n, "release of an unrecorded barangay creates nothing")
}

func TestReleaseTx_ClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Adjust(testLoc, 0)
	require.NoError(t, err)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ReleaseTx(tx, testLoc)
	}))

	var row BarangayMember
	require.NoError(t, db.First(&row).Error)
	assert.Zero(t, row.MemberCount)
}

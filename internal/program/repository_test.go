package program

import (
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
	require.NoError(t, db.AutoMigrate(&Program{}, &ProgramAgeBracket{}))
	return db
}

func intPtr(n int) *int { return &n }

func seedProgram(t *testing.T, repo *Repository) *Program {
	t.Helper()
	p := Program{BranchID: 1, Name: "Mutual Aid"}
	require.NoError(t, repo.Create(&p))
	require.NoError(t, repo.AddBracket(p.ID, &ProgramAgeBracket{
		MinAge: 18, MaxAge: intPtr(40), ContributionAmount: 100, AvailmentPeriod: 6,
	}))
	require.NoError(t, repo.AddBracket(p.ID, &ProgramAgeBracket{
		MinAge: 41, MaxAge: intPtr(60), ContributionAmount: 150, AvailmentPeriod: 6,
	}))
	require.NoError(t, repo.AddBracket(p.ID, &ProgramAgeBracket{
		MinAge: 61, ContributionAmount: 200, AvailmentPeriod: 12,
	}))
	return &p
}

func TestResolveBracket_RangeContainment(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p := seedProgram(t, repo)

	b, err := repo.ResolveBracket(p.ID, 18)
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.ContributionAmount)

	b, err = repo.ResolveBracket(p.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.ContributionAmount)

	b, err = repo.ResolveBracket(p.ID, 41)
	require.NoError(t, err)
	assert.Equal(t, 150.0, b.ContributionAmount)
}

func TestResolveBracket_OpenEndedMax(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p := seedProgram(t, repo)

	b, err := repo.ResolveBracket(p.ID, 95)
	require.NoError(t, err)
	assert.Equal(t, 200.0, b.ContributionAmount)
}

func TestResolveBracket_NoMatch(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p := seedProgram(t, repo)

	_, err := repo.ResolveBracket(p.ID, 17)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAddBracket_RejectsOverlap(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p := seedProgram(t, repo)

	err := repo.AddBracket(p.ID, &ProgramAgeBracket{
		MinAge: 35, MaxAge: intPtr(45), ContributionAmount: 120,
	})
	assert.ErrorIs(t, err, utils.ErrValidation)

	// An open-ended bracket overlaps everything above its min.
	err = repo.AddBracket(p.ID, &ProgramAgeBracket{
		MinAge: 50, ContributionAmount: 300,
	})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestAddBracket_RejectsInvertedRange(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p := Program{BranchID: 1, Name: "Empty"}
	require.NoError(t, repo.Create(&p))

	err := repo.AddBracket(p.ID, &ProgramAgeBracket{MinAge: 30, MaxAge: intPtr(20)})
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestBracketContains(t *testing.T) {
	closed := ProgramAgeBracket{MinAge: 18, MaxAge: intPtr(40)}
	assert.False(t, closed.Contains(17))
	assert.True(t, closed.Contains(18))
	assert.True(t, closed.Contains(40))
	assert.False(t, closed.Contains(41))

	open := ProgramAgeBracket{MinAge: 61}
	assert.True(t, open.Contains(61))
	assert.True(t, open.Contains(120))
	assert.False(t, open.Contains(60))
}

func TestBracketsDoNotCrossPrograms(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	p1 := seedProgram(t, repo)

	p2 := Program{BranchID: 1, Name: "Burial Assist"}
	require.NoError(t, repo.Create(&p2))
	// Same range as p1's first bracket is fine on a different program.
	require.NoError(t, repo.AddBracket(p2.ID, &ProgramAgeBracket{
		MinAge: 18, MaxAge: intPtr(40), ContributionAmount: 75,
	}))

	b, err := repo.ResolveBracket(p2.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 75.0, b.ContributionAmount)

	b, err = repo.ResolveBracket(p1.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.ContributionAmount)
}

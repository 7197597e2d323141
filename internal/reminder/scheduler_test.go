package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/coopworks/api-membership/internal/member"
	"github.com/coopworks/api-membership/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSMS struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSMS) Send(recipient, message string) error {
	if f.failFor[recipient] {
		return errors.New("gateway down")
	}
	f.sent = append(f.sent, recipient)
	return nil
}

func newTestScheduler(db *gorm.DB, sms notification.SMSSender) *Scheduler {
	return &Scheduler{
		Scanner:       NewScanner(db),
		Notifications: notification.NewRepository(db),
		SMS:           sms,
		Hour:          8,
		Location:      time.UTC,
		MonthsOverdue: DefaultMonthsOverdue,
		DispatchDelay: 0,
		dedupe:        newDedupeLog(),
		stop:          make(chan struct{}),
	}
}

func TestRun_SendsAndRecordsReminders(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusAlive, "09170000001")
	seedPayment(t, db, m.ID, time.Now().AddDate(0, -5, 0), 350)

	sms := &fakeSMS{}
	s := newTestScheduler(db, sms)

	result, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, RunResult{Scanned: 1, Sent: 1}, result)
	assert.Equal(t, []string{"09170000001"}, sms.sent)

	var n notification.Notification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, notification.KindReminder, n.Kind)
	require.NotNil(t, n.MemberID)
	assert.Equal(t, m.ID, *n.MemberID)
}

func TestRun_DeduplicatesWithinSameDay(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusAlive, "09170000001")
	seedPayment(t, db, m.ID, time.Now().AddDate(0, -5, 0), 350)

	sms := &fakeSMS{}
	s := newTestScheduler(db, sms)

	_, err := s.Run()
	require.NoError(t, err)
	result, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, RunResult{Scanned: 1, Skipped: 1}, result)
	assert.Len(t, sms.sent, 1)
}

func TestRun_SkipsMembersWithoutContact(t *testing.T) {
	db := newTestDB(t)
	seedMember(t, db, member.StatusAlive, "")

	sms := &fakeSMS{}
	result, err := newTestScheduler(db, sms).Run()
	require.NoError(t, err)
	assert.Equal(t, RunResult{Scanned: 1, Skipped: 1}, result)
	assert.Empty(t, sms.sent)
}

func TestRun_FailuresDoNotHaltBatch(t *testing.T) {
	db := newTestDB(t)
	bad := seedMember(t, db, member.StatusAlive, "09170000009")
	good := seedMember(t, db, member.StatusAlive, "09170000010")
	seedPayment(t, db, bad.ID, time.Now().AddDate(0, -5, 0), 350)
	seedPayment(t, db, good.ID, time.Now().AddDate(0, -5, 0), 350)

	sms := &fakeSMS{failFor: map[string]bool{"09170000009": true}}
	result, err := newTestScheduler(db, sms).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"09170000010"}, sms.sent)
}

func TestRun_FailedSendRetrySameDay(t *testing.T) {
	db := newTestDB(t)
	m := seedMember(t, db, member.StatusAlive, "09170000001")
	seedPayment(t, db, m.ID, time.Now().AddDate(0, -5, 0), 350)

	sms := &fakeSMS{failFor: map[string]bool{"09170000001": true}}
	s := newTestScheduler(db, sms)

	result, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, RunResult{Scanned: 1, Failed: 1}, result)

	// Gateway recovers; a manual trigger the same day reaches the member.
	sms.failFor = nil
	result, err = s.Run()
	require.NoError(t, err)
	assert.Equal(t, RunResult{Scanned: 1, Sent: 1}, result)
	assert.Equal(t, []string{"09170000001"}, sms.sent)
}

func TestDedupeLog(t *testing.T) {
	d := newDedupeLog()
	now := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)

	assert.False(t, d.Seen(1, now))
	d.Mark(1, now)
	assert.True(t, d.Seen(1, now))
	assert.False(t, d.Seen(2, now))

	// A new calendar day is a fresh key.
	assert.False(t, d.Seen(1, now.AddDate(0, 0, 1)))
	d.Mark(2, now)
	d.Mark(1, now.AddDate(0, 0, 1))

	d.Prune(now.Add(30 * time.Hour))
	assert.Equal(t, 1, d.len(), "entries older than 24h evicted")
}

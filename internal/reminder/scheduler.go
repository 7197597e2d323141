package reminder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/coopworks/api-membership/internal/notification"
	"gorm.io/gorm"
)

// ErrAlreadyRunning is returned when a trigger lands while a run is active.
var ErrAlreadyRunning = errors.New("reminder run already in progress")

// RunResult summarizes one reminder run.
type RunResult struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Scheduler fires the overdue scan once a day at a fixed wall-clock hour and
// dispatches one SMS reminder per overdue member. Runs are not reentrant: a
// trigger during an active run returns ErrAlreadyRunning.
type Scheduler struct {
	Scanner       *Scanner
	Notifications *notification.Repository
	SMS           notification.SMSSender

	Hour          int
	Location      *time.Location
	MonthsOverdue int
	DispatchDelay time.Duration

	dedupe  *dedupeLog
	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler builds a scheduler from REMINDER_HOUR (default 8) and
// REMINDER_TZ (default Asia/Manila).
func NewScheduler(db *gorm.DB, sms notification.SMSSender) *Scheduler {
	hour := 8
	if s := os.Getenv("REMINDER_HOUR"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 23 {
			hour = n
		}
	}
	loc, err := time.LoadLocation(os.Getenv("REMINDER_TZ"))
	if err != nil || os.Getenv("REMINDER_TZ") == "" {
		loc, err = time.LoadLocation("Asia/Manila")
		if err != nil {
			loc = time.UTC
		}
	}

	return &Scheduler{
		Scanner:       NewScanner(db),
		Notifications: notification.NewRepository(db),
		SMS:           sms,
		Hour:          hour,
		Location:      loc,
		MonthsOverdue: DefaultMonthsOverdue,
		DispatchDelay: time.Second,
		dedupe:        newDedupeLog(),
		stop:          make(chan struct{}),
	}
}

// Start launches the daily loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
	slog.Info("reminder scheduler started", "hour", s.Hour, "tz", s.Location.String())
}

// Stop shuts the loop down and waits for it to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()
	for {
		wait := time.Until(s.nextFire(time.Now().In(s.Location)))
		select {
		case <-s.stop:
			return
		case <-time.After(wait):
			if _, err := s.Run(); err != nil && !errors.Is(err, ErrAlreadyRunning) {
				slog.Error("scheduled reminder run failed", "error", err)
			}
		}
	}
}

// nextFire returns the next occurrence of the configured hour.
func (s *Scheduler) nextFire(now time.Time) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, 0, 0, 0, s.Location)
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// Run executes one scan-and-dispatch pass. Individual send failures are
// recorded and counted without halting the batch.
func (s *Scheduler) Run() (RunResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return RunResult{}, ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	now := time.Now().In(s.Location)
	s.dedupe.Prune(now)

	overdue, err := s.Scanner.Scan(s.MonthsOverdue, now)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{Scanned: len(overdue)}
	for i, o := range overdue {
		if o.Member.ContactNumber == "" {
			result.Skipped++
			continue
		}
		if s.dedupe.Seen(o.Member.ID, now) {
			result.Skipped++
			continue
		}

		if i > 0 && s.DispatchDelay > 0 {
			time.Sleep(s.DispatchDelay)
		}

		msg := reminderMessage(o)
		if err := s.SMS.Send(o.Member.ContactNumber, msg); err != nil {
			slog.Warn("reminder dispatch failed",
				"memberId", o.Member.ID, "error", err)
			result.Failed++
			continue
		}
		s.dedupe.Mark(o.Member.ID, now)

		memberID := o.Member.ID
		n := notification.Notification{
			MemberID: &memberID,
			Kind:     notification.KindReminder,
			Title:    "Contribution reminder sent",
			Message:  msg,
		}
		if err := s.Notifications.Create(&n); err != nil {
			slog.Warn("could not record reminder notification",
				"memberId", o.Member.ID, "error", err)
		}
		result.Sent++
	}

	slog.Info("reminder run finished",
		"scanned", result.Scanned, "sent", result.Sent,
		"failed", result.Failed, "skipped", result.Skipped)
	return result, nil
}

func reminderMessage(o OverdueMember) string {
	name := o.Member.FirstName
	if o.LastPaymentDate == nil {
		return fmt.Sprintf("Hi %s, our records show no contribution payment on file yet. Please visit your branch to settle your monthly contribution.", name)
	}
	return fmt.Sprintf("Hi %s, your last contribution was on %s (%d month(s) ago). Please settle your monthly contribution to keep your membership active.",
		name, o.LastPaymentDate.Format("Jan 2, 2006"), o.MonthsSincePaid)
}

package reminder

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coopworks/api-membership/internal/utils"
)

// Handler exposes the scanner and the manual run trigger.
type Handler struct {
	Scheduler *Scheduler
}

func NewHandler(s *Scheduler) *Handler {
	return &Handler{Scheduler: s}
}

// Overdue returns the current overdue set (?months=N, default 3).
// GET /api/notifications/overdue
func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	months := DefaultMonthsOverdue
	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}
		months = n
	}

	overdue, err := h.Scheduler.Scanner.Scan(months, time.Now().In(h.Scheduler.Location))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, overdue)
}

// Run triggers a reminder pass immediately.
// POST /api/notifications/reminders/run
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.Scheduler.Run()
	if err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

package payment

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/coopworks/api-membership/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB   *gorm.DB
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository(db)}
}

type recordRequest struct {
	Amount            float64    `json:"amount"`
	PaymentDate       *time.Time `json:"paymentDate"`
	ReferenceNumber   string     `json:"referenceNumber"`
	Notes             string     `json:"notes"`
	LateFeePercentage *float64   `json:"lateFeePercentage"`
}

// Record creates a contribution payment for a member.
// POST /api/members/{id}/payments
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.Record(RecordInput{
		MemberID:          uint(memberID),
		Amount:            req.Amount,
		PaymentDate:       req.PaymentDate,
		ReferenceNumber:   req.ReferenceNumber,
		Notes:             req.Notes,
		LateFeePercentage: req.LateFeePercentage,
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// ListByMember returns a member's payments, newest first.
// GET /api/members/{id}/payments
func (h *Handler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}
	payments, err := h.Repo.ListByMember(uint(memberID))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, payments)
}

// Get returns one payment by ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

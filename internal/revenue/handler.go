package revenue

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

type upsertRequest struct {
	BranchID    uint       `json:"branchId"`
	Source      string     `json:"source"`
	Amount      float64    `json:"amount"`
	RevenueDate *time.Time `json:"revenueDate"`
	Notes       string     `json:"notes"`
}

// Create records a revenue entry.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.BranchID == 0 || req.Source == "" || req.Amount <= 0 {
		http.Error(w, "branchId, source and a positive amount are required", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.RevenueDate != nil {
		date = *req.RevenueDate
	}

	rev := Revenue{
		BranchID:    req.BranchID,
		Source:      req.Source,
		Amount:      req.Amount,
		RevenueDate: date,
		Notes:       req.Notes,
	}
	if err := h.Repo.Create(&rev); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, rev)
}

// List returns revenue entries, optionally filtered by branch.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if branchID := r.URL.Query().Get("branchId"); branchID != "" {
		id, err := strconv.Atoi(branchID)
		if err != nil {
			http.Error(w, "invalid branchId", http.StatusBadRequest)
			return
		}
		list, err := h.Repo.ListByBranch(uint(id))
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// Update changes a revenue entry.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	rev, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if req.Source != "" {
		rev.Source = req.Source
	}
	if req.Amount > 0 {
		rev.Amount = req.Amount
	}
	if req.RevenueDate != nil {
		rev.RevenueDate = *req.RevenueDate
	}
	rev.Notes = req.Notes

	if err := h.Repo.Update(rev); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rev)
}

// Total returns the summed revenue for one branch.
// GET /api/revenue/total?branchId=N
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("branchId"))
	if err != nil {
		http.Error(w, "invalid branchId", http.StatusBadRequest)
		return
	}
	total, err := h.Repo.TotalByBranch(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"branchId": id,
		"total":    total,
	})
}

// Delete removes a revenue entry.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

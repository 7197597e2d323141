package fieldworker

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	BranchID      uint   `json:"branchId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// Create registers a new field worker under a branch.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.BranchID == 0 || req.FirstName == "" || req.LastName == "" {
		http.Error(w, "branchId, firstName and lastName are required", http.StatusBadRequest)
		return
	}

	fw := FieldWorker{
		BranchID:      req.BranchID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := h.Repo.Create(&fw); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, fw)
}

// List returns all field workers, optionally filtered by branch.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if branchID := r.URL.Query().Get("branchId"); branchID != "" {
		id, err := strconv.Atoi(branchID)
		if err != nil {
			http.Error(w, "invalid branchId", http.StatusBadRequest)
			return
		}
		workers, err := h.Repo.ListByBranch(uint(id))
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, workers)
		return
	}

	workers, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, workers)
}

// Get returns one field worker by ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	fw, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, fw)
}

// Update changes a field worker's profile fields. The denormalized counters
// are not writable through this endpoint.
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

	fw, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if req.BranchID != 0 {
		fw.BranchID = req.BranchID
	}
	fw.FirstName = req.FirstName
	fw.LastName = req.LastName
	fw.ContactNumber = req.ContactNumber
	fw.Address = req.Address

	if err := h.Repo.Update(fw); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, fw)
}

// Delete removes a field worker.
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

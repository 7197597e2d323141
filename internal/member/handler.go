package member

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

// Create registers a new member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		http.Error(w, "firstName and lastName are required", http.StatusBadRequest)
		return
	}
	status := req.Status
	if status == "" {
		status = StatusAlive
	}
	if !ValidStatus(status) {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	m := Member{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		MiddleName:    req.MiddleName,
		BirthDate:     req.BirthDate,
		ContactNumber: req.ContactNumber,
		Status:        status,
		Region:        req.Region,
		Province:      req.Province,
		City:          req.City,
		Barangay:      req.Barangay,
		FieldWorkerID: req.FieldWorkerID,
		ProgramID:     req.ProgramID,
	}
	if err := h.Repo.Create(&m); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, m)
}

// List returns members, filterable by status or field worker.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		if !ValidStatus(status) {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
		members, err := h.Repo.ListByStatus(status)
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, members)
		return
	}

	if workerID := q.Get("fieldWorkerId"); workerID != "" {
		id, err := strconv.Atoi(workerID)
		if err != nil {
			http.Error(w, "invalid fieldWorkerId", http.StatusBadRequest)
			return
		}
		members, err := h.Repo.ListByFieldWorker(uint(id))
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, members)
		return
	}

	members, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, members)
}

// Get returns one member by ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

// Update rewrites a member's fields, shifting worker and barangay counters
// when the assignment or location changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		http.Error(w, "firstName and lastName are required", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.Update(uint(id), &req)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

// Delete soft-deletes a member.
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

// RecordMembershipFee marks the one-time membership fee as paid.
func (h *Handler) RecordMembershipFee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req MembershipFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.RecordMembershipFee(uint(id), req.Amount, req.PaidDate)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

package branch

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coopworks/api-membership/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler wraps the DB and repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type upsertRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
}

// Create registers a new branch.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	b := Branch{Name: req.Name, Address: req.Address, ContactNumber: req.ContactNumber}
	if err := h.Repository.Save(h.DB, &b); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, b)
}

// List returns all branches with their field workers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Repository.ListAll(h.DB)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, branches)
}

// Get returns one branch with workers, programs and revenue preloaded.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	b, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

// Update changes a branch's fields.
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

	b, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if req.Name != "" {
		b.Name = req.Name
	}
	b.Address = req.Address
	b.ContactNumber = req.ContactNumber

	if err := h.Repository.Save(h.DB, b); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

// Delete removes a branch.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

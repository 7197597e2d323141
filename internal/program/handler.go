package program

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

type createProgramRequest struct {
	BranchID    uint   `json:"branchId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type bracketRequest struct {
	MinAge             int     `json:"minAge"`
	MaxAge             *int    `json:"maxAge"`
	ContributionAmount float64 `json:"contributionAmount"`
	AvailmentPeriod    int     `json:"availmentPeriod"`
}

// Create registers a new program.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.BranchID == 0 || req.Name == "" {
		http.Error(w, "branchId and name are required", http.StatusBadRequest)
		return
	}

	p := Program{BranchID: req.BranchID, Name: req.Name, Description: req.Description}
	if err := h.Repo.Create(&p); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// List returns all programs with their brackets.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, programs)
}

// Get returns one program by ID.
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

// Update changes a program's name and description.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req createProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	p.Description = req.Description
	if err := h.Repo.Update(p); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// Delete removes a program and its brackets.
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

// AddBracket attaches an age bracket to a program.
func (h *Handler) AddBracket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	var req bracketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		utils.RespondError(w, err)
		return
	}

	b := ProgramAgeBracket{
		MinAge:             req.MinAge,
		MaxAge:             req.MaxAge,
		ContributionAmount: req.ContributionAmount,
		AvailmentPeriod:    req.AvailmentPeriod,
	}
	if err := h.Repo.AddBracket(uint(id), &b); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, b)
}

// DeleteBracket detaches an age bracket from a program.
func (h *Handler) DeleteBracket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid program ID", http.StatusBadRequest)
		return
	}
	bracketID, err := strconv.Atoi(vars["bracketId"])
	if err != nil {
		http.Error(w, "invalid bracket ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.DeleteBracket(uint(id), uint(bracketID)); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveBracket returns the bracket matching ?age=N for a program.
func (h *Handler) ResolveBracket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil || age < 0 {
		http.Error(w, "invalid age", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.ResolveBracket(uint(id), age)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}

package barangay

import (
	"encoding/json"
	"net/http"

	"github.com/coopworks/api-membership/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB   *gorm.DB
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository(db)}
}

type adjustRequest struct {
	Location
	Delta int `json:"delta"`
}

// List returns all barangay count rows.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rows)
}

// Adjust applies an explicit count correction to one location.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	row, err := h.Repo.Adjust(req.Location, req.Delta)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, row)
}

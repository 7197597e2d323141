// Package geo proxies the public geographic-code lookup service so the front
// end can resolve region/province/city/barangay codes without CORS trouble.
// Pure pass-through: no caching, no transformation.
package geo

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
)

type Handler struct {
	BaseURL string
	Client  *http.Client
}

func NewHandler() *Handler {
	return &Handler{
		BaseURL: os.Getenv("GEO_BASE_URL"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Proxy forwards GET /api/geo/{path} to the upstream service.
func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	if h.BaseURL == "" {
		http.Error(w, "geo service not configured", http.StatusBadGateway)
		return
	}

	upstream := h.BaseURL + "/" + mux.Vars(r)["path"]
	if r.URL.RawQuery != "" {
		upstream += "?" + r.URL.RawQuery
	}

	resp, err := h.Client.Get(upstream)
	if err != nil {
		http.Error(w, "geo service unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/internal/utils"
	"github.com/MKhiriev/go-uid-panel/models"
)

type plansResponse struct {
	Plans []models.Plan `json:"plans"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.buildInfo, http.StatusOK)
}

// plans lists the purchasable tiers. The free plan is not listed.
func (h *Handler) plans(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, plansResponse{Plans: service.Plans()}, http.StatusOK)
}

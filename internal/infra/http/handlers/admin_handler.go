package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/http/middleware"
	"github.com/propertypro/leads-backend/internal/usecase"
)

type AdminHandler struct {
	Admin *usecase.AdministerLeadsUseCase
}

func NewAdminHandler(admin *usecase.AdministerLeadsUseCase) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

// HandleListLeads handles GET /api/admin/leads.
func (h *AdminHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Admin.List(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, false, "Failed to fetch leads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"leads":   leads,
	})
}

// HandleUpdateLead handles PUT /api/admin/leads/{id}.
func (h *AdminHandler) HandleUpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid JSON")
		return
	}

	lead, err := h.Admin.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			respondMessage(w, http.StatusNotFound, false, "Lead not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, false, "Failed to update lead")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lead":    lead,
	})
}

// HandleDeleteLead handles DELETE /api/admin/leads/{id}.
func (h *AdminHandler) HandleDeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Admin.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			respondMessage(w, http.StatusNotFound, false, "Lead not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, false, "Failed to delete lead")
		return
	}

	respondMessage(w, http.StatusOK, true, "Lead deleted successfully")
}

// HandleGetSettings handles GET /api/admin/settings.
func (h *AdminHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"settings": h.Admin.GetSettings(r.Context()),
	})
}

// HandlePutSettings handles PUT /api/admin/settings. The body replaces
// the settings wholesale.
func (h *AdminHandler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid JSON")
		return
	}

	h.Admin.PutSettings(r.Context(), settings)
	respondMessage(w, http.StatusOK, true, "Settings updated successfully")
}

// HandleTestSMTP handles POST /api/admin/test-smtp.
func (h *AdminHandler) HandleTestSMTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.TestSMTP(r.Context()); err != nil {
		middleware.RecordEmailSent("smtp_test", "error")
		respondMessage(w, http.StatusInternalServerError, false, "SMTP test failed: "+err.Error())
		return
	}

	middleware.RecordEmailSent("smtp_test", "ok")
	respondMessage(w, http.StatusOK, true, "Test email sent successfully")
}

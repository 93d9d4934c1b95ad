package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/propertypro/leads-backend/internal/infra/http/middleware"
	"github.com/propertypro/leads-backend/internal/usecase"
)

type CampaignHandler struct {
	SendCampaign *usecase.SendCampaignUseCase
}

func NewCampaignHandler(sendCampaign *usecase.SendCampaignUseCase) *CampaignHandler {
	return &CampaignHandler{SendCampaign: sendCampaign}
}

// HandleSendCampaign handles POST /api/admin/send-campaign.
func (h *CampaignHandler) HandleSendCampaign(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid JSON")
		return
	}

	out, err := h.SendCampaign.Execute(r.Context(), input)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, false, "Failed to send campaign: "+err.Error())
		return
	}

	middleware.RecordCampaignRecipients(out.Matched)
	middleware.RecordEmailSent("campaign", "ok")

	if len(out.Failures) > 0 {
		middleware.RecordEmailSent("campaign", "error")
		failed := make([]string, 0, len(out.Failures))
		for _, f := range out.Failures {
			failed = append(failed, f.Email)
		}
		msg := fmt.Sprintf("Failed to send campaign: %d of %d sends rejected (%s)",
			len(out.Failures), out.Matched, strings.Join(failed, ", "))
		respondMessage(w, http.StatusInternalServerError, false, msg)
		return
	}

	respondMessage(w, http.StatusOK, true,
		fmt.Sprintf("Campaign sent to %d recipients", out.Matched))
}

package handler

import "frontier/internal/hazard/models"

// HazardResponse is a report plus presentation tones for its severity and status.
type HazardResponse struct {
	ID           string      `json:"id"`
	Location     string      `json:"location"`
	Type         string      `json:"type"`
	Severity     string      `json:"severity"`
	Description  string      `json:"description"`
	Status       string      `json:"status"`
	ReportedBy   string      `json:"reportedBy"`
	Date         string      `json:"date"`
	SeverityTone models.Tone `json:"severityTone"`
	StatusTone   models.Tone `json:"statusTone"`
}

type ListResponse struct {
	Hazards []HazardResponse `json:"hazards"`
	Total   int              `json:"total"`
}

func FromHazard(h *models.HazardReport) HazardResponse {
	return HazardResponse{
		ID:           h.ID,
		Location:     h.Location,
		Type:         string(h.Type),
		Severity:     string(h.Severity),
		Description:  h.Description,
		Status:       string(h.Status),
		ReportedBy:   h.ReportedBy,
		Date:         h.Date,
		SeverityTone: models.ToneOf(string(h.Severity)),
		StatusTone:   models.ToneOf(string(h.Status)),
	}
}

func FromHazards(hazards []*models.HazardReport) ListResponse {
	out := ListResponse{Hazards: make([]HazardResponse, 0, len(hazards)), Total: len(hazards)}
	for _, h := range hazards {
		out.Hazards = append(out.Hazards, FromHazard(h))
	}
	return out
}

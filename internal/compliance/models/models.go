package models

import (
	hazardmodels "frontier/internal/hazard/models"
)

// InspectionOverdue is the only inspection status the dashboard counts.
const InspectionOverdue = "Overdue"

// ScopeAllPolicies marks an acknowledgment rate computed across every policy
// and every user rather than one policy version.
const ScopeAllPolicies = "all_policies"

// RecentHazardLimit caps Dashboard.RecentHazards.
const RecentHazardLimit = 3

// Inspection is a scheduled site inspection. The engine only reads these.
type Inspection struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Location string `json:"location"`
	DueDate  string `json:"dueDate"`
	Status   string `json:"status"`
}

// ExternalInputs are figures supplied by other subsystems. Nil means unknown.
type ExternalInputs struct {
	TrainingCompliance    *float64
	DaysSinceLastIncident *int
}

// Dashboard is the at-a-glance metric set.
type Dashboard struct {
	OpenHazards           int                          `json:"openHazards"`
	OverdueItems          int                          `json:"overdueItems"`
	TrainingCompliance    *float64                     `json:"trainingCompliance"`
	DaysSinceLastIncident *int                         `json:"daysSinceLastIncident"`
	RecentHazards         []*hazardmodels.HazardReport `json:"recentHazards"`
}

// AuditReport is a point-in-time summary over the full collections.
type AuditReport struct {
	LeadershipCommitment LeadershipCommitment `json:"leadershipCommitment"`
	HazardAssessment     HazardAssessment     `json:"hazardAssessment"`
}

// LeadershipCommitment is audit element A.
type LeadershipCommitment struct {
	Acknowledgments    int     `json:"acknowledgments"`
	Users              int     `json:"users"`
	AcknowledgmentRate float64 `json:"acknowledgmentRate"`
	Scope              string  `json:"scope"`
}

// HazardAssessment is audit element B. OpenHazards counts status Open only.
type HazardAssessment struct {
	TotalHazards    int `json:"totalHazards"`
	OpenHazards     int `json:"openHazards"`
	CriticalHazards int `json:"criticalHazards"`
}

// ComputeDashboard counts Open and Investigating hazards as open.
func ComputeDashboard(hazards []*hazardmodels.HazardReport, inspections []*Inspection, in ExternalInputs) *Dashboard {
	d := &Dashboard{
		TrainingCompliance:    in.TrainingCompliance,
		DaysSinceLastIncident: in.DaysSinceLastIncident,
		RecentHazards:         make([]*hazardmodels.HazardReport, 0, RecentHazardLimit),
	}
	for _, h := range hazards {
		if h.Status.IsActive() {
			d.OpenHazards++
		}
		if len(d.RecentHazards) < RecentHazardLimit {
			d.RecentHazards = append(d.RecentHazards, h)
		}
	}
	for _, i := range inspections {
		if i.Status == InspectionOverdue {
			d.OverdueItems++
		}
	}
	return d
}

// ComputeAuditReport builds both elements. With no users the rate is 0.
func ComputeAuditReport(hazards []*hazardmodels.HazardReport, acknowledgments, users int) *AuditReport {
	r := &AuditReport{
		LeadershipCommitment: LeadershipCommitment{
			Acknowledgments: acknowledgments,
			Users:           users,
			Scope:           ScopeAllPolicies,
		},
		HazardAssessment: HazardAssessment{TotalHazards: len(hazards)},
	}
	if users > 0 {
		r.LeadershipCommitment.AcknowledgmentRate = float64(acknowledgments) / float64(users)
	}
	for _, h := range hazards {
		if h.Status == hazardmodels.StatusOpen {
			r.HazardAssessment.OpenHazards++
		}
		if h.Severity == hazardmodels.SeverityCritical {
			r.HazardAssessment.CriticalHazards++
		}
	}
	return r
}

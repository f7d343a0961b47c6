package app

import (
	"context"
	"fmt"

	compliancemodels "frontier/internal/compliance/models"
	hazardmodels "frontier/internal/hazard/models"
	"frontier/pkg/requestcontext"
)

// SeedUserID owns the demo records written by Seed.
const SeedUserID = "frontier-seed"

var seedInspections = []*compliancemodels.Inspection{
	{ID: "insp-fire-extinguishers", Type: "Fire Extinguishers", Location: "Warehouse A", DueDate: "2025-03-15", Status: "Overdue"},
	{ID: "insp-forklift-daily", Type: "Forklift Daily Check", Location: "Loading Dock", DueDate: "2025-04-01", Status: "Scheduled"},
	{ID: "insp-first-aid", Type: "First Aid Kits", Location: "Office Block", DueDate: "2025-04-10", Status: "Scheduled"},
}

var seedHazard = hazardmodels.CreateInput{
	Location:    "Loading Dock",
	Type:        string(hazardmodels.TypeUnsafeCondition),
	Severity:    string(hazardmodels.SeverityMedium),
	Description: "Pallet wrap debris across the walkway near bay 2",
}

// Seed writes demo inspections and, when no hazards exist yet, one demo hazard.
// Running it again is a no-op.
func (a *App) Seed(ctx context.Context) error {
	if _, err := a.Inspections.Seed(ctx, seedInspections); err != nil {
		return fmt.Errorf("seed inspections: %w", err)
	}

	existing, err := a.Hazards.List(ctx)
	if err != nil {
		return fmt.Errorf("list hazards: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	ctx = requestcontext.WithIdentity(ctx, SeedUserID, "safety@frontier.local")
	if _, err := a.Hazards.Create(ctx, seedHazard); err != nil {
		return fmt.Errorf("seed hazard: %w", err)
	}
	return nil
}

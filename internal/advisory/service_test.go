package advisory

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks HazardGetter,Analyzer,AuditPublisher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontier/internal/advisory/mocks"
	hazardmodels "frontier/internal/hazard/models"
	dErrors "frontier/pkg/domain-errors"
)

func TestAnalyzeHazard(t *testing.T) {
	stored := &hazardmodels.HazardReport{
		ID:          "h-1",
		Location:    "Dock 3",
		Severity:    hazardmodels.SeverityHigh,
		Description: "Slippery stairs",
		Status:      hazardmodels.StatusOpen,
	}

	t.Run("passes the stored hazard to the analyzer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		hazards := mocks.NewMockHazardGetter(ctrl)
		analyzer := mocks.NewMockAnalyzer(ctrl)
		publisher := mocks.NewMockAuditPublisher(ctrl)
		hazards.EXPECT().Get(gomock.Any(), "h-1").Return(stored, nil)
		analyzer.EXPECT().Analyze(gomock.Any(), "Slippery stairs", "Dock 3", "High").Return("advice", nil)
		publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		got, err := NewService(hazards, analyzer, WithAuditPublisher(publisher)).AnalyzeHazard(context.Background(), "h-1")
		require.NoError(t, err)
		assert.Equal(t, &Advice{HazardID: "h-1", Analysis: "advice"}, got)
	})

	t.Run("missing hazard is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		hazards := mocks.NewMockHazardGetter(ctrl)
		hazards.EXPECT().Get(gomock.Any(), "nope").Return(nil, dErrors.New(dErrors.CodeNotFound, "hazard not found"))

		_, err := NewService(hazards, mocks.NewMockAnalyzer(ctrl)).AnalyzeHazard(context.Background(), "nope")
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("uncoded analyzer failure becomes unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		hazards := mocks.NewMockHazardGetter(ctrl)
		analyzer := mocks.NewMockAnalyzer(ctrl)
		hazards.EXPECT().Get(gomock.Any(), "h-1").Return(stored, nil)
		analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

		_, err := NewService(hazards, analyzer).AnalyzeHazard(context.Background(), "h-1")
		assert.True(t, dErrors.Is(err, dErrors.CodeAdvisoryUnavailable))
		assert.Equal(t, hazardmodels.StatusOpen, stored.Status)
	})
}

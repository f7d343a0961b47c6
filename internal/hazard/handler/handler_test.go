package handler

//go:generate mockgen -source=handler.go -destination=mocks/hazard-mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"frontier/internal/hazard/handler/mocks"
	"frontier/internal/hazard/models"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/testutil"
)

type HazardHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHazardHandlerSuite(t *testing.T) {
	suite.Run(t, new(HazardHandlerSuite))
}

func (s *HazardHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func sample() *models.HazardReport {
	return &models.HazardReport{
		ID:          "h-1",
		Location:    "Dock 3",
		Type:        models.TypeEquipmentIssue,
		Severity:    models.SeverityCritical,
		Description: "Forklift brakes failing",
		Status:      models.StatusOpen,
		ReportedBy:  "Sam",
		Date:        "2025-04-01",
	}
}

func (s *HazardHandlerSuite) do(req *http.Request) (*HazardResponse, int) {
	rr := testutil.DoRequest(s.router, testutil.WithIdentity(req, "uid-1", "sam@example.com"))
	if rr.Code >= 300 {
		return nil, rr.Code
	}
	return testutil.UnmarshalResponse[HazardResponse](s.T(), rr), rr.Code
}

func (s *HazardHandlerSuite) TestCreate() {
	s.Run("created report carries tones", func() {
		s.service.EXPECT().Create(gomock.Any(), models.CreateInput{
			Location:    "Dock 3",
			Type:        "Equipment Issue",
			Severity:    "Critical",
			Description: "Forklift brakes failing",
		}).Return(sample(), nil)

		resp, code := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards", CreateRequest{
			Location:    "Dock 3",
			Type:        "Equipment Issue",
			Severity:    "Critical",
			Description: "Forklift brakes failing",
		}))
		s.Require().Equal(http.StatusCreated, code)
		s.Equal("h-1", resp.ID)
		s.Equal(models.ToneDanger, resp.SeverityTone)
		s.Equal(models.ToneInfo, resp.StatusTone)
	})

	s.Run("unknown field is a bad request", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards",
			`{"location":"Dock 3","type":"Near Miss","severity":"Low","description":"x","status":"Closed"}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("bad severity is rejected before the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards", CreateRequest{
			Location:    "Dock 3",
			Type:        "Near Miss",
			Severity:    "Extreme",
			Description: "Slip",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *HazardHandlerSuite) TestGetAndList() {
	s.Run("missing hazard is 404", func() {
		s.service.EXPECT().Get(gomock.Any(), "nope").Return(nil, dErrors.New(dErrors.CodeNotFound, "hazard not found"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/hazards/nope", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	s.Run("list wraps reports with a total", func() {
		s.service.EXPECT().List(gomock.Any()).Return([]*models.HazardReport{sample(), sample()}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/hazards", nil))
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
		s.Equal(2, resp.Total)
		s.Len(resp.Hazards, 2)
	})

	s.Run("empty list encodes as an empty array", func() {
		s.service.EXPECT().List(gomock.Any()).Return(nil, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/hazards", nil))
		s.Require().Equal(http.StatusOK, rr.Code)
		s.JSONEq(`{"hazards":[],"total":0}`, rr.Body.String())
	})
}

func (s *HazardHandlerSuite) TestTransition() {
	s.Run("applied transition returns the report", func() {
		moved := sample()
		moved.Status = models.StatusInvestigating
		s.service.EXPECT().Transition(gomock.Any(), "h-1", "Investigating").Return(moved, nil)

		resp, code := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards/h-1/transition",
			TransitionRequest{Status: " Investigating "}))
		s.Require().Equal(http.StatusOK, code)
		s.Equal("Investigating", resp.Status)
		s.Equal(models.ToneWarning, resp.StatusTone)
	})

	s.Run("illegal edge is a conflict", func() {
		s.service.EXPECT().Transition(gomock.Any(), "h-1", "Open").
			Return(nil, dErrors.New(dErrors.CodeInvalidTransition, "cannot move hazard from Open to Open"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards/h-1/transition",
			TransitionRequest{Status: "Open"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidTransition))
	})

	s.Run("missing status is a validation error", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/hazards/h-1/transition", `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

package lifecycle

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ackhandler "frontier/internal/acknowledgment/handler"
	"frontier/internal/advisory"
	"frontier/internal/app"
	compliancehandler "frontier/internal/compliance/handler"
	compliancemodels "frontier/internal/compliance/models"
	hazardhandler "frontier/internal/hazard/handler"
	"frontier/internal/platform/config"
	"frontier/internal/storage/memory"
	audit "frontier/pkg/platform/audit"
	auditrecords "frontier/pkg/platform/audit/store/records"
	"frontier/pkg/testutil"
)

type cannedAnalyzer struct{}

func (cannedAnalyzer) Analyze(_ context.Context, description, _, _ string) (string, error) {
	return "Root cause: " + description, nil
}

type harness struct {
	t       *testing.T
	engine  *app.App
	records *memory.Store
	tokens  map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	training := 94.0
	cfg.Dashboard.TrainingCompliance = &training

	records := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := app.New(&cfg, records, logger, app.WithAnalyzer(cannedAnalyzer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = engine.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		require.NoError(t, engine.Close())
	})

	require.NoError(t, engine.Seed(context.Background()))

	h := &harness{t: t, engine: engine, records: records, tokens: map[string]string{}}
	for uid, email := range map[string]string{"uid-sam": "sam@example.com", "uid-lee": "lee@example.com"} {
		token, err := engine.Tokens.Issue(uid, email, time.Hour)
		require.NoError(t, err)
		h.tokens[uid] = token
	}
	return h
}

func (h *harness) do(uid, method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(h.t, method, path, body)
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+h.tokens[uid])
	}
	return testutil.DoRequest(h.engine.Router, req)
}

func (h *harness) report(uid string, req hazardhandler.CreateRequest) *hazardhandler.HazardResponse {
	rr := h.do(uid, http.MethodPost, "/hazards", req)
	require.Equal(h.t, http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[hazardhandler.HazardResponse](h.t, rr)
}

func (h *harness) transition(uid, id, status string) *httptest.ResponseRecorder {
	return h.do(uid, http.MethodPost, "/hazards/"+id+"/transition", hazardhandler.TransitionRequest{Status: status})
}

func TestUnauthenticatedCallsAreRejected(t *testing.T) {
	h := newHarness(t)

	rr := h.do("", http.MethodGet, "/hazards", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = h.do("", http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHazardAndComplianceLifecycle(t *testing.T) {
	h := newHarness(t)

	ramp := h.report("uid-sam", hazardhandler.CreateRequest{
		Location:    "Warehouse B",
		Type:        "Unsafe Condition",
		Severity:    "High",
		Description: "Oil on the loading ramp",
	})
	assert.Equal(t, "Open", ramp.Status)
	assert.Equal(t, "sam@example.com", ramp.ReportedBy)

	guard := h.report("uid-lee", hazardhandler.CreateRequest{
		Location:    "Press Shop",
		Type:        "Equipment Issue",
		Severity:    "Critical",
		Description: "Guard missing on press 4",
	})

	rr := h.transition("uid-sam", ramp.ID, "Investigating")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = h.transition("uid-sam", ramp.ID, "Open")
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "invalid_transition")
	rr = h.transition("uid-lee", guard.ID, "Closed")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = h.transition("uid-lee", guard.ID, "Resolved")
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation")

	rr = h.do("uid-sam", http.MethodGet, "/hazards/"+guard.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := testutil.UnmarshalResponse[hazardhandler.HazardResponse](t, rr)
	assert.Equal(t, "Closed", got.Status)
	assert.Equal(t, guard.Description, got.Description)
	assert.Equal(t, guard.Date, got.Date)

	rr = h.do("uid-sam", http.MethodGet, "/hazards", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, testutil.UnmarshalResponse[hazardhandler.ListResponse](t, rr).Total)

	for range 2 {
		rr = h.do("uid-sam", http.MethodPost, "/policies/whs-2025/acknowledgments", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
	rr = h.do("uid-lee", http.MethodGet, "/policies/whs-2025/acknowledgments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, testutil.UnmarshalResponse[ackhandler.ListResponse](t, rr).Acknowledgments, 1)

	rr = h.do("uid-lee", http.MethodGet, "/policies/whs-2025/acknowledgments/me", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, testutil.UnmarshalResponse[ackhandler.StatusResponse](t, rr).Acknowledged)

	rr = h.do("uid-sam", http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dash := testutil.UnmarshalResponse[compliancemodels.Dashboard](t, rr)
	// Seeded hazard is Open, ramp is Investigating, guard is Closed.
	assert.Equal(t, 2, dash.OpenHazards)
	assert.Equal(t, 1, dash.OverdueItems)
	require.NotNil(t, dash.TrainingCompliance)
	assert.InDelta(t, 94.0, *dash.TrainingCompliance, 0.001)
	assert.Nil(t, dash.DaysSinceLastIncident)
	assert.Len(t, dash.RecentHazards, 3)

	// Provisioning runs off the request path.
	require.Eventually(t, func() bool {
		rr := h.do("uid-sam", http.MethodGet, "/reports/audit", nil)
		if rr.Code != http.StatusOK {
			return false
		}
		return testutil.UnmarshalResponse[compliancehandler.AuditReportResponse](t, rr).LeadershipCommitment.Users == 2
	}, 2*time.Second, 10*time.Millisecond)

	rr = h.do("uid-sam", http.MethodGet, "/reports/audit", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	report := testutil.UnmarshalResponse[compliancehandler.AuditReportResponse](t, rr)
	assert.Equal(t, 1, report.LeadershipCommitment.Acknowledgments)
	assert.InDelta(t, 0.5, report.LeadershipCommitment.AcknowledgmentRate, 0.0001)
	assert.Equal(t, 3, report.HazardAssessment.TotalHazards)
	assert.Equal(t, 1, report.HazardAssessment.OpenHazards)
	assert.Equal(t, 1, report.HazardAssessment.CriticalHazards)
	assert.NotEmpty(t, report.GeneratedAt)

	rr = h.do("uid-lee", http.MethodPost, "/hazards/"+guard.ID+"/advisory", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	advice := testutil.UnmarshalResponse[advisory.Advice](t, rr)
	assert.Equal(t, guard.ID, advice.HazardID)
	assert.Contains(t, advice.Analysis, "Guard missing on press 4")

	tally := func() map[string]int {
		events, err := auditrecords.New(h.records).ListByUser(context.Background(), "uid-sam")
		require.NoError(t, err)
		actions := map[string]int{}
		for _, e := range events {
			actions[e.Action]++
		}
		return actions
	}
	require.Eventually(t, func() bool {
		return tally()[string(audit.EventUserProvisioned)] == 1
	}, 2*time.Second, 10*time.Millisecond)
	actions := tally()
	assert.Equal(t, 1, actions[string(audit.EventHazardReported)])
	assert.Equal(t, 1, actions[string(audit.EventHazardTransitioned)])
	assert.Equal(t, 2, actions[string(audit.EventPolicyAcknowledged)])
}

func TestSeedIsIdempotent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Seed(context.Background()))

	rr := h.do("uid-sam", http.MethodGet, "/hazards", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, testutil.UnmarshalResponse[hazardhandler.ListResponse](t, rr).Total)

	rr = h.do("uid-sam", http.MethodGet, "/inspections", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, testutil.UnmarshalResponse[compliancehandler.InspectionListResponse](t, rr).Inspections, 3)
}

package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"counsel/internal/advisor"
	"counsel/internal/advisor/handler/mocks"
	"counsel/internal/domain"
	"counsel/internal/history"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) newTestHandler() (*chi.Mux, *mocks.MockService) {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	New(mockService, logger, nil).Register(router)
	return router, mockService
}

func (s *HandlerSuite) postAdvise(router http.Handler, body string) *httptest.ResponseRecorder {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/advise", body)
	return testutil.DoRequest(router, req)
}

func sampleResult() *domain.Result {
	return &domain.Result{
		ID: id.NewAdviceID(),
		Recommendations: []domain.Recommendation{{
			ID:         id.NewRecommendationID(),
			Type:       domain.TypeStrategy,
			Title:      "Concentrate growth bets",
			Confidence: 0.75,
			Impact:     domain.ImpactHigh,
			Urgency:    domain.UrgencyMedium,
			Category:   "growth",
			Reasoning:  "because",
		}},
		Analysis: domain.Analysis{
			Summary: "1 recommendation",
			Risk:    domain.RiskAssessment{Level: domain.RiskLow},
			Opportunity: domain.OpportunityAssessment{
				Level: domain.OpportunityMedium, Timeline: domain.TimelineMediumTerm,
			},
		},
		Reasoning:  "Analyzed ...",
		Confidence: 0.75,
		Metadata: domain.Metadata{
			AnalysisMethod: "weighted-multi-criteria",
			ProcessingTime: 3 * time.Millisecond,
			Timestamp:      time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

// =============================================================================
// POST /advise
// =============================================================================

func (s *HandlerSuite) TestHandleAdvise() {
	s.Run("structured request reaches the service", func() {
		router, mockService := s.newTestHandler()
		result := sampleResult()

		mockService.EXPECT().
			Advise(gomock.Any(), gomock.Any(), advisor.Options{MaxRecommendations: 3}).
			DoAndReturn(func(_ any, q advisor.Query, _ advisor.Options) (*domain.Result, error) {
				s.Require().NotNil(q.Context)
				s.Equal("business", q.Context.Domain)
				s.Equal("grow revenue", q.Context.Objective)
				return result, nil
			})

		w := s.postAdvise(router, `{
			"context": {"domain": "business", "objective": "grow revenue"},
			"options": {"max_recommendations": 3}
		}`)

		testutil.AssertStatusOK(s.T(), w)
		resp := testutil.UnmarshalResponse[AdviseResponse](s.T(), w)
		s.Equal(result.ID.String(), resp.ID)
		s.Len(resp.Recommendations, 1)
		s.InDelta(3.0, resp.Metadata.ProcessingTimeMS, 1e-9)
	})

	s.Run("free text request", func() {
		router, mockService := s.newTestHandler()
		mockService.EXPECT().
			Advise(gomock.Any(), advisor.Query{Text: "improve efficiency"}, advisor.Options{}).
			Return(sampleResult(), nil)

		w := s.postAdvise(router, `{"text": "improve efficiency"}`)
		testutil.AssertStatusOK(s.T(), w)
	})

	s.Run("invalid JSON is a bad request", func() {
		router, _ := s.newTestHandler()
		w := s.postAdvise(router, `{`)
		testutil.AssertStatus(s.T(), w, http.StatusBadRequest)
	})

	s.Run("empty body shapes fail validation", func() {
		router, _ := s.newTestHandler()
		w := s.postAdvise(router, `{}`)
		testutil.AssertStatus(s.T(), w, http.StatusUnprocessableEntity)
	})

	s.Run("out of range options fail validation", func() {
		router, _ := s.newTestHandler()
		w := s.postAdvise(router, `{"text": "x", "options": {"confidence_threshold": 1.5}}`)
		testutil.AssertStatus(s.T(), w, http.StatusUnprocessableEntity)
	})

	s.Run("service errors map to their status", func() {
		router, mockService := s.newTestHandler()
		mockService.EXPECT().
			Advise(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "objective is required"))

		w := s.postAdvise(router, `{"text": "x"}`)
		testutil.AssertStatus(s.T(), w, http.StatusUnprocessableEntity)
	})
}

// =============================================================================
// GET /advise/history
// =============================================================================

func (s *HandlerSuite) TestHandleHistory() {
	s.Run("returns summarized entries", func() {
		router, mockService := s.newTestHandler()
		result := sampleResult()
		mockService.EXPECT().History(2).Return([]history.Entry{{
			ID:        result.ID,
			Context:   domain.Context{Domain: domain.DomainBusiness, Objective: "grow revenue"},
			Result:    *result,
			CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		}})

		req := testutil.NewRequest(s.T(), http.MethodGet, "/advise/history?limit=2")
		w := testutil.DoRequest(router, req)

		testutil.AssertStatusOK(s.T(), w)
		resp := testutil.UnmarshalResponse[HistoryResponse](s.T(), w)
		s.Require().Len(resp.Entries, 1)
		s.Equal(result.ID.String(), resp.Entries[0].ID)
		s.Equal("business", resp.Entries[0].Domain)
		s.Equal(1, resp.Entries[0].Recommendations)
		s.Equal("low", resp.Entries[0].RiskLevel)
	})

	s.Run("default limit when unspecified", func() {
		router, mockService := s.newTestHandler()
		mockService.EXPECT().History(history.DefaultCapacity).Return(nil)

		req := testutil.NewRequest(s.T(), http.MethodGet, "/advise/history")
		w := testutil.DoRequest(router, req)
		testutil.AssertStatusOK(s.T(), w)
	})

	s.Run("bad limit rejected", func() {
		router, _ := s.newTestHandler()
		for _, limit := range []string{"0", "-1", "abc"} {
			req := testutil.NewRequest(s.T(), http.MethodGet, "/advise/history?limit="+limit)
			w := testutil.DoRequest(router, req)
			testutil.AssertStatus(s.T(), w, http.StatusUnprocessableEntity)
		}
	})
}

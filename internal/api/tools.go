package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
	"debthelp-backend/internal/tools"
	"debthelp-backend/pkg/api"
)

// ToolService backs the self-service tools: persisted tool sessions with
// consent tracking, plus the stateless calculators themselves.
type ToolService struct {
	db *gorm.DB
}

func NewToolService(db *gorm.DB) *ToolService {
	return &ToolService{db: db}
}

func (s *ToolService) AddRoutes(r chi.Router) {
	r.Route("/tools", func(r chi.Router) {
		r.Post("/sessions", RestHandler(s.SaveSession))
		r.Get("/sessions/{session_id}", RestHandler(s.GetSession))
		r.Put("/sessions/{session_id}/data", RestHandler(s.UpdateSessionData))
		r.Put("/sessions/{session_id}/consent", RestHandler(s.UpdateConsent))

		r.Post("/debt-calculator/payoff", RestHandler(s.EstimatePayoff))
		r.Get("/budget/categories", RestHandler(s.GetBudgetCategories))
		r.Post("/budget/summary", RestHandler(s.SummarizeBudget))
		r.Get("/quiz/questions", RestHandler(s.GetQuizQuestions))
		r.Post("/quiz/score", RestHandler(s.ScoreQuiz))
	})
}

func validToolName(name string) bool {
	switch name {
	case database.ToolDebtCalculator, database.ToolBudgetPlanner, database.ToolDebtQuiz:
		return true
	}
	return false
}

func (s *ToolService) SaveSession(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SaveToolSessionRequest](r)
	if err != nil {
		return nil, err
	}

	if !validToolName(req.ToolName) {
		return nil, CodedErrorf(http.StatusBadRequest, "unknown tool name '%s'", req.ToolName)
	}

	session := database.ToolSession{
		Id:          uuid.New(),
		ToolName:    req.ToolName,
		SessionData: datatypes.JSON(req.SessionData),
		Consented:   req.Consented,
		UserAgent:   req.UserAgent,
	}
	if req.UserID != nil {
		session.UserId = uuid.NullUUID{UUID: *req.UserID, Valid: true}
	}

	if err := s.db.WithContext(r.Context()).Create(&session).Error; err != nil {
		slog.Error("error creating tool session", "tool", req.ToolName, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to save tool session")
	}

	return api.SaveToolSessionResponse{SessionID: session.Id}, nil
}

func (s *ToolService) GetSession(r *http.Request) (any, error) {
	sessionId, err := URLParamUUID(r, "session_id")
	if err != nil {
		return nil, err
	}

	var session database.ToolSession
	if err := s.db.WithContext(r.Context()).First(&session, "id = ?", sessionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "tool session not found")
		}
		slog.Error("error fetching tool session", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving tool session")
	}

	return toolSessionToAPI(session), nil
}

func (s *ToolService) UpdateSessionData(r *http.Request) (any, error) {
	sessionId, err := URLParamUUID(r, "session_id")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.UpdateToolDataRequest](r)
	if err != nil {
		return nil, err
	}

	return nil, s.updateSession(r, sessionId, map[string]any{
		"session_data": datatypes.JSON(req.SessionData),
		"updated_at":   time.Now().UTC(),
	})
}

func (s *ToolService) UpdateConsent(r *http.Request) (any, error) {
	sessionId, err := URLParamUUID(r, "session_id")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.UpdateConsentRequest](r)
	if err != nil {
		return nil, err
	}

	return nil, s.updateSession(r, sessionId, map[string]any{
		"consented":  req.Consented,
		"updated_at": time.Now().UTC(),
	})
}

func (s *ToolService) updateSession(r *http.Request, sessionId uuid.UUID, updates map[string]any) error {
	res := s.db.WithContext(r.Context()).Model(&database.ToolSession{}).Where("id = ?", sessionId).Updates(updates)
	if res.Error != nil {
		slog.Error("error updating tool session", "session_id", sessionId, "error", res.Error)
		return CodedErrorf(http.StatusInternalServerError, "failed to update tool session")
	}
	if res.RowsAffected == 0 {
		return CodedErrorf(http.StatusNotFound, "tool session not found")
	}
	return nil
}

func (s *ToolService) EstimatePayoff(r *http.Request) (any, error) {
	req, err := ParseRequest[api.PayoffRequest](r)
	if err != nil {
		return nil, err
	}

	debts := make([]tools.Debt, len(req.Debts))
	for i, d := range req.Debts {
		if d.Balance < 0 || d.MinPayment < 0 || d.InterestRate < 0 {
			return nil, CodedErrorf(http.StatusBadRequest, "debt '%s' has negative values", d.Name)
		}
		debts[i] = tools.Debt{
			Name:         d.Name,
			Balance:      d.Balance,
			MinPayment:   d.MinPayment,
			InterestRate: d.InterestRate,
		}
	}

	est, err := tools.EstimatePayoff(debts, req.ExtraPayment)
	if err != nil {
		if errors.Is(err, tools.ErrPaymentTooLow) {
			return nil, CodedErrorf(http.StatusUnprocessableEntity, "monthly payment does not cover accruing interest")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "error estimating payoff")
	}

	return api.PayoffResponse{
		Months:              est.Months,
		TotalDebt:           est.TotalDebt,
		TotalMinPayments:    est.TotalMinPayments,
		AverageInterestRate: est.AverageInterestRate,
	}, nil
}

func (s *ToolService) GetBudgetCategories(r *http.Request) (any, error) {
	return tools.BudgetCategories(), nil
}

func (s *ToolService) SummarizeBudget(r *http.Request) (any, error) {
	req, err := ParseRequest[api.BudgetSummaryRequest](r)
	if err != nil {
		return nil, err
	}

	items := make([]tools.BudgetItem, len(req.Items))
	for i, item := range req.Items {
		if item.Type != tools.BudgetIncome && item.Type != tools.BudgetExpense {
			return nil, CodedErrorf(http.StatusBadRequest, "item '%s' has unknown type '%s'", item.Name, item.Type)
		}
		items[i] = tools.BudgetItem{
			Name:     item.Name,
			Amount:   item.Amount,
			Category: item.Category,
			Type:     item.Type,
		}
	}

	return tools.SummarizeBudget(items), nil
}

func (s *ToolService) GetQuizQuestions(r *http.Request) (any, error) {
	return tools.QuizQuestions(), nil
}

// ScoreQuiz grades the submission and, when consent was given, records a
// debt_quiz tool session with the answers and outcome.
func (s *ToolService) ScoreQuiz(r *http.Request) (any, error) {
	req, err := ParseRequest[api.QuizScoreRequest](r)
	if err != nil {
		return nil, err
	}

	questions := tools.QuizQuestions()
	if len(req.Answers) != len(questions) {
		return nil, CodedErrorf(http.StatusBadRequest, "expected %d answers, got %d", len(questions), len(req.Answers))
	}

	result := tools.ScoreQuiz(req.Answers)

	if req.Consented {
		payload, err := json.Marshal(map[string]any{
			"answers":         req.Answers,
			"total_points":    result.TotalPoints,
			"severity":        result.Severity,
			"questions_count": len(questions),
		})
		if err != nil {
			slog.Error("error marshalling quiz session data", "error", err)
		} else {
			session := database.ToolSession{
				Id:          uuid.New(),
				ToolName:    database.ToolDebtQuiz,
				SessionData: payload,
				Consented:   true,
				UserAgent:   req.UserAgent,
			}
			if req.UserID != nil {
				session.UserId = uuid.NullUUID{UUID: *req.UserID, Valid: true}
			}
			if err := s.db.WithContext(r.Context()).Create(&session).Error; err != nil {
				slog.Error("error saving quiz tool session", "error", err)
			}
		}
	}

	return result, nil
}

func toolSessionToAPI(session database.ToolSession) api.ToolSession {
	resp := api.ToolSession{
		ID:          session.Id,
		ToolName:    session.ToolName,
		SessionData: json.RawMessage(session.SessionData),
		Consented:   session.Consented,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	if session.UserId.Valid {
		userId := session.UserId.UUID
		resp.UserID = &userId
	}
	return resp
}

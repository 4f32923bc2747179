package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"debthelp-backend/internal/chat"
	"debthelp-backend/pkg/api"
)

type ChatService struct {
	responder *chat.Responder
}

func NewChatService(db *gorm.DB, completer chat.Completer, historyWindow int) *ChatService {
	return &ChatService{
		responder: chat.NewResponder(db, completer, historyWindow),
	}
}

func (s *ChatService) AddRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", RestHandler(s.SendMessage))
		r.Get("/history", RestHandler(s.GetHistory))
	})
}

func (s *ChatService) SendMessage(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ChatRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Message) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "message is required")
	}

	reply, err := s.responder.Respond(r.Context(), req.Message, req.SessionID)
	if err != nil {
		if errors.Is(err, chat.ErrNotConfigured) {
			return nil, CodedErrorf(http.StatusInternalServerError, "AI assistant is not configured")
		}
		slog.Error("chat request failed", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to get AI response")
	}

	return api.ChatResponse{Response: reply.Response, SessionID: reply.SessionToken}, nil
}

func (s *ChatService) GetHistory(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.ChatHistoryParams](r)
	if err != nil {
		return nil, err
	}

	if params.SessionID == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "session_id is required")
	}

	history, err := s.responder.History(r.Context(), params.SessionID)
	if err != nil {
		if errors.Is(err, chat.ErrUnknownSession) {
			return nil, CodedErrorf(http.StatusNotFound, "unknown session")
		}
		slog.Error("error fetching chat history", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving chat history")
	}

	resp := make([]api.ChatHistoryItem, 0, len(history))
	for _, msg := range history {
		resp = append(resp, api.ChatHistoryItem{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return resp, nil
}

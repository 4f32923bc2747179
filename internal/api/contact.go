package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
	"debthelp-backend/internal/notify"
	"debthelp-backend/pkg/api"
)

type ContactService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

// NewContactService accepts a nil notifier when no webhook is configured.
func NewContactService(db *gorm.DB, notifier notify.Notifier) *ContactService {
	return &ContactService{db: db, notifier: notifier}
}

func (s *ContactService) AddRoutes(r chi.Router) {
	r.Post("/contact", RestHandler(s.SubmitContact))
}

func (s *ContactService) SubmitContact(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ContactRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "name and message are required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, CodedErrorf(http.StatusBadRequest, "a valid email is required")
	}

	msg := database.ContactMessage{
		Id:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := s.db.WithContext(r.Context()).Create(&msg).Error; err != nil {
		slog.Error("error saving contact message", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to save message")
	}

	// The submission is stored; notification delivery is best effort.
	if s.notifier != nil {
		if err := s.notifier.ContactReceived(r.Context(), msg.Name, msg.Email, msg.Subject); err != nil {
			slog.Error("error forwarding contact notification", "contact_id", msg.Id, "error", err)
		}
	}

	return api.ContactResponse{ID: msg.Id}, nil
}

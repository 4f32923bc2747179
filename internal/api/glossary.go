package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
	"debthelp-backend/pkg/api"
)

type GlossaryService struct {
	db *gorm.DB
}

func NewGlossaryService(db *gorm.DB) *GlossaryService {
	return &GlossaryService{db: db}
}

func (s *GlossaryService) AddRoutes(r chi.Router) {
	r.Get("/glossary", RestHandler(s.GetTerms))
}

func (s *GlossaryService) GetTerms(r *http.Request) (any, error) {
	var terms []database.GlossaryTerm
	if err := s.db.WithContext(r.Context()).Order("id ASC").Find(&terms).Error; err != nil {
		slog.Error("error fetching glossary terms", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving glossary")
	}

	resp := make([]api.GlossaryTerm, 0, len(terms))
	for _, term := range terms {
		resp = append(resp, api.GlossaryTerm{Term: term.Term, Definition: term.Definition})
	}

	return resp, nil
}

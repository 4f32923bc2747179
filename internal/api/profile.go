package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
	"debthelp-backend/pkg/api"
)

// ProfileService manages user profiles. Authentication itself is delegated
// to the external identity provider; the user id in the URL is the opaque
// identity it minted.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) AddRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/{user_id}", RestHandler(s.GetProfile))
		r.Put("/{user_id}", RestHandler(s.UpsertProfile))
	})
}

func (s *ProfileService) GetProfile(r *http.Request) (any, error) {
	userId, err := URLParamUUID(r, "user_id")
	if err != nil {
		return nil, err
	}

	var profile database.Profile
	if err := s.db.WithContext(r.Context()).First(&profile, "user_id = ?", userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "profile not found")
		}
		slog.Error("error fetching profile", "user_id", userId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving profile")
	}

	return profileToAPI(profile), nil
}

func (s *ProfileService) UpsertProfile(r *http.Request) (any, error) {
	userId, err := URLParamUUID(r, "user_id")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.ProfileRequest](r)
	if err != nil {
		return nil, err
	}

	if req.UserType != database.UserTypeIndividual && req.UserType != database.UserTypeCompany {
		return nil, CodedErrorf(http.StatusBadRequest, "user_type must be '%s' or '%s'", database.UserTypeIndividual, database.UserTypeCompany)
	}

	ctx := r.Context()

	var profile database.Profile
	err = s.db.WithContext(ctx).First(&profile, "user_id = ?", userId).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = database.Profile{Id: uuid.New(), UserId: userId}
	case err != nil:
		slog.Error("error fetching profile for update", "user_id", userId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error retrieving profile")
	}

	profile.UserType = req.UserType
	profile.FirstName = nullString(req.FirstName)
	profile.LastName = nullString(req.LastName)
	profile.Phone = nullString(req.Phone)
	profile.CompanyName = nullString(req.CompanyName)
	profile.CvrNumber = nullString(req.CvrNumber)
	profile.CompanyAddress = nullString(req.CompanyAddress)
	profile.ContactPerson = nullString(req.ContactPerson)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		slog.Error("error saving profile", "user_id", userId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to save profile")
	}

	return profileToAPI(profile), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func displayName(profile database.Profile) string {
	if profile.UserType == database.UserTypeIndividual {
		return strings.TrimSpace(profile.FirstName.String + " " + profile.LastName.String)
	}
	return profile.CompanyName.String
}

func profileToAPI(profile database.Profile) api.Profile {
	return api.Profile{
		ID:             profile.Id,
		UserID:         profile.UserId,
		UserType:       profile.UserType,
		FirstName:      profile.FirstName.String,
		LastName:       profile.LastName.String,
		Phone:          profile.Phone.String,
		CompanyName:    profile.CompanyName.String,
		CvrNumber:      profile.CvrNumber.String,
		CompanyAddress: profile.CompanyAddress.String,
		ContactPerson:  profile.ContactPerson.String,
		DisplayName:    displayName(profile),
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}

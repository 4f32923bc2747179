package api_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	backend "debthelp-backend/internal/api"
	"debthelp-backend/internal/database"
	"debthelp-backend/pkg/api"
)

const testAdminKey = "test-admin-key"

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func adminRouter(db *gorm.DB) chi.Router {
	router := chi.NewRouter()
	backend.NewAdminService(db, testAdminKey).AddRoutes(router)
	return router
}

func adminRequest(t *testing.T, router chi.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuthRequired(t *testing.T) {
	db := createDB(t)
	router := adminRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthUnconfigured(t *testing.T) {
	db := createDB(t)
	router := chi.NewRouter()
	backend.NewAdminService(db, "").AddRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminOverview(t *testing.T) {
	conversation := database.Conversation{Id: uuid.New(), SessionToken: uuid.NewString()}
	db := createDB(t,
		&database.Profile{Id: uuid.New(), UserId: uuid.New(), UserType: database.UserTypeIndividual},
		&conversation,
		&database.ChatMessage{ConversationId: conversation.Id, Role: database.RoleUser, Content: "hej"},
		&database.ToolSession{Id: uuid.New(), ToolName: database.ToolDebtQuiz, SessionData: datatypes.JSON(`{}`)},
		&database.ContactMessage{Id: uuid.New(), Name: "Mette", Email: "m@e.dk", Message: "hej"},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodGet, "/admin/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview api.AdminOverview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&overview))
	assert.EqualValues(t, 1, overview.Profiles)
	assert.EqualValues(t, 1, overview.Conversations)
	assert.EqualValues(t, 1, overview.Messages)
	assert.EqualValues(t, 1, overview.ToolSessions)
	assert.EqualValues(t, 1, overview.ContactMessages)
}

func TestAdminProfileSearch(t *testing.T) {
	db := createDB(t,
		&database.Profile{Id: uuid.New(), UserId: uuid.New(), UserType: database.UserTypeIndividual, FirstName: nullStr("Mette"), LastName: nullStr("Jensen")},
		&database.Profile{Id: uuid.New(), UserId: uuid.New(), UserType: database.UserTypeCompany, CompanyName: nullStr("Hansen ApS"), CvrNumber: nullStr("87654321")},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodGet, "/admin/profiles?search=Hansen")
	require.Equal(t, http.StatusOK, rec.Code)

	var profiles []api.Profile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Hansen ApS", profiles[0].CompanyName)

	rec = adminRequest(t, router, http.MethodGet, "/admin/profiles")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profiles))
	assert.Len(t, profiles, 2)
}

func TestAdminConversationsWithMessageCounts(t *testing.T) {
	conversation := database.Conversation{Id: uuid.New(), SessionToken: uuid.NewString()}
	db := createDB(t,
		&conversation,
		&database.ChatMessage{ConversationId: conversation.Id, Role: database.RoleUser, Content: "hej"},
		&database.ChatMessage{ConversationId: conversation.Id, Role: database.RoleAssistant, Content: "hej med dig"},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodGet, "/admin/conversations")
	require.Equal(t, http.StatusOK, rec.Code)

	var conversations []api.AdminConversation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conversations))
	require.Len(t, conversations, 1)
	assert.Equal(t, conversation.Id, conversations[0].ID)
	assert.EqualValues(t, 2, conversations[0].MessageCount)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	userId := uuid.New()
	conversation := database.Conversation{
		Id:           uuid.New(),
		UserId:       uuid.NullUUID{UUID: userId, Valid: true},
		SessionToken: uuid.NewString(),
	}
	otherConversation := database.Conversation{Id: uuid.New(), SessionToken: uuid.NewString()}
	db := createDB(t,
		&database.Profile{Id: uuid.New(), UserId: userId, UserType: database.UserTypeIndividual},
		&conversation,
		&otherConversation,
		&database.ChatMessage{ConversationId: conversation.Id, Role: database.RoleUser, Content: "hej"},
		&database.ChatMessage{ConversationId: otherConversation.Id, Role: database.RoleUser, Content: "anonym"},
		&database.ToolSession{Id: uuid.New(), UserId: uuid.NullUUID{UUID: userId, Valid: true}, ToolName: database.ToolDebtQuiz, SessionData: datatypes.JSON(`{}`)},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodDelete, fmt.Sprintf("/admin/users/%s", userId))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&database.Profile{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&database.ToolSession{}).Count(&count).Error)
	assert.Zero(t, count)

	// Data not owned by the user survives.
	require.NoError(t, db.Model(&database.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&database.ChatMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rec = adminRequest(t, router, http.MethodDelete, fmt.Sprintf("/admin/users/%s", uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteConversation(t *testing.T) {
	conversation := database.Conversation{Id: uuid.New(), SessionToken: uuid.NewString()}
	db := createDB(t,
		&conversation,
		&database.ChatMessage{ConversationId: conversation.Id, Role: database.RoleUser, Content: "hej"},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodDelete, fmt.Sprintf("/admin/conversations/%s", conversation.Id))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&database.Conversation{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&database.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count)

	rec = adminRequest(t, router, http.MethodDelete, fmt.Sprintf("/admin/conversations/%s", conversation.Id))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminExport(t *testing.T) {
	db := createDB(t,
		&database.Profile{Id: uuid.New(), UserId: uuid.New(), UserType: database.UserTypeIndividual, FirstName: nullStr("Mette")},
	)
	router := adminRouter(db)

	rec := adminRequest(t, router, http.MethodGet, "/admin/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
	"debthelp-backend/pkg/api"
)

// AdminService is the operator surface: overview counts, the collected
// user data tables, deletion, and an xlsx export of everything.
type AdminService struct {
	db       *gorm.DB
	adminKey string
}

func NewAdminService(db *gorm.DB, adminKey string) *AdminService {
	return &AdminService{db: db, adminKey: adminKey}
}

func (s *AdminService) AddRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(s.adminKey))

		r.Get("/overview", RestHandler(s.GetOverview))
		r.Get("/profiles", RestHandler(s.GetProfiles))
		r.Get("/tool-sessions", RestHandler(s.GetToolSessions))
		r.Get("/conversations", RestHandler(s.GetConversations))
		r.Get("/contact-messages", RestHandler(s.GetContactMessages))
		r.Get("/export", s.ExportWorkbook)

		r.Delete("/users/{user_id}", RestHandler(s.DeleteUser))
		r.Delete("/conversations/{conversation_id}", RestHandler(s.DeleteConversation))
		r.Delete("/tool-sessions/{session_id}", RestHandler(s.DeleteToolSession))
		r.Delete("/contact-messages/{message_id}", RestHandler(s.DeleteContactMessage))
	})
}

func (s *AdminService) GetOverview(r *http.Request) (any, error) {
	ctx := r.Context()
	var overview api.AdminOverview

	counts := []struct {
		model any
		dest  *int64
	}{
		{&database.Profile{}, &overview.Profiles},
		{&database.Conversation{}, &overview.Conversations},
		{&database.ChatMessage{}, &overview.Messages},
		{&database.ToolSession{}, &overview.ToolSessions},
		{&database.ContactMessage{}, &overview.ContactMessages},
	}

	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			slog.Error("error counting rows for admin overview", "error", err)
			return nil, CodedErrorf(http.StatusInternalServerError, "error computing overview")
		}
	}

	return overview, nil
}

func (s *AdminService) GetProfiles(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.AdminProfilesParams](r)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(r.Context()).Order("created_at DESC")
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR company_name LIKE ? OR cvr_number LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var profiles []database.Profile
	if err := query.Find(&profiles).Error; err != nil {
		slog.Error("error listing profiles", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing profiles")
	}

	resp := make([]api.Profile, 0, len(profiles))
	for _, profile := range profiles {
		resp = append(resp, profileToAPI(profile))
	}
	return resp, nil
}

func (s *AdminService) GetToolSessions(r *http.Request) (any, error) {
	var sessions []database.ToolSession
	if err := s.db.WithContext(r.Context()).Order("created_at DESC").Find(&sessions).Error; err != nil {
		slog.Error("error listing tool sessions", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing tool sessions")
	}

	resp := make([]api.ToolSession, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, toolSessionToAPI(session))
	}
	return resp, nil
}

func (s *AdminService) GetConversations(r *http.Request) (any, error) {
	ctx := r.Context()

	var conversations []database.Conversation
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&conversations).Error; err != nil {
		slog.Error("error listing conversations", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing conversations")
	}

	resp := make([]api.AdminConversation, 0, len(conversations))
	for _, conv := range conversations {
		var count int64
		if err := s.db.WithContext(ctx).Model(&database.ChatMessage{}).Where("conversation_id = ?", conv.Id).Count(&count).Error; err != nil {
			slog.Error("error counting conversation messages", "conversation_id", conv.Id, "error", err)
			return nil, CodedErrorf(http.StatusInternalServerError, "error listing conversations")
		}

		item := api.AdminConversation{
			ID:           conv.Id,
			SessionToken: conv.SessionToken,
			MessageCount: count,
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    conv.UpdatedAt,
		}
		if conv.UserId.Valid {
			userId := conv.UserId.UUID
			item.UserID = &userId
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *AdminService) GetContactMessages(r *http.Request) (any, error) {
	var messages []database.ContactMessage
	if err := s.db.WithContext(r.Context()).Order("created_at DESC").Find(&messages).Error; err != nil {
		slog.Error("error listing contact messages", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error listing contact messages")
	}

	resp := make([]api.ContactMessage, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, api.ContactMessage{
			ID:        msg.Id,
			Name:      msg.Name,
			Email:     msg.Email,
			Subject:   msg.Subject,
			Message:   msg.Message,
			CreatedAt: msg.CreatedAt,
		})
	}
	return resp, nil
}

// DeleteUser removes a user's profile together with everything they own:
// tool sessions, conversations and their messages.
func (s *AdminService) DeleteUser(r *http.Request) (any, error) {
	userId, err := URLParamUUID(r, "user_id")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(r.Context()).Transaction(func(txn *gorm.DB) error {
		res := txn.Delete(&database.Profile{}, "user_id = ?", userId)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var conversationIds []uuid.UUID
		if err := txn.Model(&database.Conversation{}).Where("user_id = ?", userId).Pluck("id", &conversationIds).Error; err != nil {
			return err
		}
		if len(conversationIds) > 0 {
			if err := txn.Delete(&database.ChatMessage{}, "conversation_id IN ?", conversationIds).Error; err != nil {
				return err
			}
			if err := txn.Delete(&database.Conversation{}, "id IN ?", conversationIds).Error; err != nil {
				return err
			}
		}

		return txn.Delete(&database.ToolSession{}, "user_id = ?", userId).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, CodedErrorf(http.StatusNotFound, "user not found")
		}
		slog.Error("error deleting user data", "user_id", userId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to delete user data")
	}

	return nil, nil
}

func (s *AdminService) DeleteConversation(r *http.Request) (any, error) {
	conversationId, err := URLParamUUID(r, "conversation_id")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(r.Context()).Transaction(func(txn *gorm.DB) error {
		if err := txn.Delete(&database.ChatMessage{}, "conversation_id = ?", conversationId).Error; err != nil {
			return err
		}

		res := txn.Delete(&database.Conversation{}, "id = ?", conversationId)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, CodedErrorf(http.StatusNotFound, "conversation not found")
		}
		slog.Error("error deleting conversation", "conversation_id", conversationId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to delete conversation")
	}

	return nil, nil
}

func (s *AdminService) DeleteToolSession(r *http.Request) (any, error) {
	sessionId, err := URLParamUUID(r, "session_id")
	if err != nil {
		return nil, err
	}
	return nil, s.deleteById(r, &database.ToolSession{}, sessionId, "tool session")
}

func (s *AdminService) DeleteContactMessage(r *http.Request) (any, error) {
	messageId, err := URLParamUUID(r, "message_id")
	if err != nil {
		return nil, err
	}
	return nil, s.deleteById(r, &database.ContactMessage{}, messageId, "contact message")
}

func (s *AdminService) deleteById(r *http.Request, model any, id uuid.UUID, what string) error {
	res := s.db.WithContext(r.Context()).Delete(model, "id = ?", id)
	if res.Error != nil {
		slog.Error("error deleting record", "type", what, "id", id, "error", res.Error)
		return CodedErrorf(http.StatusInternalServerError, "failed to delete %s", what)
	}
	if res.RowsAffected == 0 {
		return CodedErrorf(http.StatusNotFound, "%s not found", what)
	}
	return nil
}

// ExportWorkbook streams an xlsx workbook with one sheet per collected
// data set. This bypasses RestHandler since the body is not JSON.
func (s *AdminService) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var profiles []database.Profile
	var sessions []database.ToolSession
	var conversations []database.Conversation

	for _, q := range []error{
		s.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error,
		s.db.WithContext(ctx).Order("created_at ASC").Find(&sessions).Error,
		s.db.WithContext(ctx).Order("created_at ASC").Find(&conversations).Error,
	} {
		if q != nil {
			slog.Error("error loading data for export", "error", q)
			WriteJsonError(w, http.StatusInternalServerError, "error building export")
			return
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(name string, header []string, rows [][]any) error {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for col, title := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(name, cell, title); err != nil {
				return err
			}
		}
		for i, row := range rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				if err := f.SetCellValue(name, cell, value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	profileRows := make([][]any, 0, len(profiles))
	for _, p := range profiles {
		profileRows = append(profileRows, []any{
			p.UserId.String(), p.UserType, p.FirstName.String, p.LastName.String,
			p.CompanyName.String, p.CvrNumber.String, p.CreatedAt.Format(time.RFC3339),
		})
	}

	sessionRows := make([][]any, 0, len(sessions))
	for _, t := range sessions {
		userId := ""
		if t.UserId.Valid {
			userId = t.UserId.UUID.String()
		}
		sessionRows = append(sessionRows, []any{
			t.Id.String(), userId, t.ToolName, string(t.SessionData), t.Consented, t.CreatedAt.Format(time.RFC3339),
		})
	}

	conversationRows := make([][]any, 0, len(conversations))
	for _, c := range conversations {
		userId := ""
		if c.UserId.Valid {
			userId = c.UserId.UUID.String()
		}
		conversationRows = append(conversationRows, []any{
			c.Id.String(), userId, c.SessionToken, c.CreatedAt.Format(time.RFC3339),
		})
	}

	exports := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{"Profiles", []string{"User ID", "Type", "First Name", "Last Name", "Company", "CVR", "Created"}, profileRows},
		{"Tool Sessions", []string{"ID", "User ID", "Tool", "Data", "Consented", "Created"}, sessionRows},
		{"Conversations", []string{"ID", "User ID", "Session Token", "Created"}, conversationRows},
	}

	for _, sheet := range exports {
		if err := writeSheet(sheet.name, sheet.header, sheet.rows); err != nil {
			slog.Error("error writing export sheet", "sheet", sheet.name, "error", err)
			WriteJsonError(w, http.StatusInternalServerError, "error building export")
			return
		}
	}

	// Drop excelize's default sheet so the workbook opens on Profiles.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("error removing default sheet", "error", err)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=debthelp-export-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		slog.Error("error writing export workbook", "error", err)
	}
}

package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tool sessions

type SaveToolSessionRequest struct {
	UserID      *uuid.UUID      `json:"user_id,omitempty"`
	ToolName    string          `json:"tool_name"`
	SessionData json.RawMessage `json:"session_data"`
	Consented   bool            `json:"consented"`
	UserAgent   string          `json:"user_agent,omitempty"`
}

type SaveToolSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type UpdateToolDataRequest struct {
	SessionData json.RawMessage `json:"session_data"`
}

type UpdateConsentRequest struct {
	Consented bool `json:"consented"`
}

type ToolSession struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *uuid.UUID      `json:"user_id,omitempty"`
	ToolName    string          `json:"tool_name"`
	SessionData json.RawMessage `json:"session_data"`
	Consented   bool            `json:"consented"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Calculators

type Debt struct {
	Name         string  `json:"name"`
	Balance      float64 `json:"balance"`
	MinPayment   float64 `json:"min_payment"`
	InterestRate float64 `json:"interest_rate"`
}

type PayoffRequest struct {
	Debts        []Debt  `json:"debts"`
	ExtraPayment float64 `json:"extra_payment"`
}

type PayoffResponse struct {
	Months              float64 `json:"months"`
	TotalDebt           float64 `json:"total_debt"`
	TotalMinPayments    float64 `json:"total_min_payments"`
	AverageInterestRate float64 `json:"average_interest_rate"`
}

type BudgetItem struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
}

type BudgetSummaryRequest struct {
	Items []BudgetItem `json:"items"`
}

type QuizScoreRequest struct {
	Answers   []int      `json:"answers"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Consented bool       `json:"consented"`
	UserAgent string     `json:"user_agent,omitempty"`
}

// Glossary

type GlossaryTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Profiles

type ProfileRequest struct {
	UserType       string `json:"user_type"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	CvrNumber      string `json:"cvr_number,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	ContactPerson  string `json:"contact_person,omitempty"`
}

type Profile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	UserType       string    `json:"user_type"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	CvrNumber      string    `json:"cvr_number,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty"`
	ContactPerson  string    `json:"contact_person,omitempty"`
	DisplayName    string    `json:"display_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Contact

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID uuid.UUID `json:"id"`
}

// Admin

type AdminOverview struct {
	Profiles        int64 `json:"profiles"`
	Conversations   int64 `json:"conversations"`
	Messages        int64 `json:"messages"`
	ToolSessions    int64 `json:"tool_sessions"`
	ContactMessages int64 `json:"contact_messages"`
}

type AdminProfilesParams struct {
	Search string `schema:"search"`
}

type AdminConversation struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	SessionToken string     `json:"session_token"`
	MessageCount int64      `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

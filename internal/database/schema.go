package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser      string = "user"
	RoleAssistant string = "assistant"
)

// Conversation is a persisted chat thread. The session token is the only
// handle a client holds; anyone possessing it can read and append to the
// thread, so tokens are always minted server-side.
type Conversation struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserId uuid.NullUUID `gorm:"type:uuid;index"`

	SessionToken string `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []ChatMessage `gorm:"foreignKey:ConversationId;constraint:OnDelete:CASCADE"`
}

// ChatMessage rows are immutable once written and ordered by
// (created_at, id) within a conversation.
type ChatMessage struct {
	Id uint `gorm:"primaryKey"`

	ConversationId uuid.UUID `gorm:"type:uuid;index;not null"`

	Role    string `gorm:"size:20;not null"`
	Content string `gorm:"not null"`

	CreatedAt time.Time
}

const (
	UserTypeIndividual string = "individual"
	UserTypeCompany    string = "company"
)

type Profile struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Identity comes from the external auth provider.
	UserId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	UserType string `gorm:"size:20;not null;default:individual"`

	FirstName sql.NullString
	LastName  sql.NullString
	Phone     sql.NullString

	CompanyName    sql.NullString
	CvrNumber      sql.NullString
	CompanyAddress sql.NullString
	ContactPerson  sql.NullString

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	ToolDebtCalculator string = "debt_calculator"
	ToolBudgetPlanner  string = "budget_planner"
	ToolDebtQuiz       string = "debt_quiz"
)

// ToolSession records one use of a self-service tool. SessionData holds the
// tool's own JSON payload; rows are only reportable when Consented is true.
type ToolSession struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserId uuid.NullUUID `gorm:"type:uuid;index"`

	ToolName    string         `gorm:"size:40;not null;index"`
	SessionData datatypes.JSON `gorm:"type:jsonb"`
	Consented   bool           `gorm:"default:false"`

	IPAddress sql.NullString
	UserAgent string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactMessage struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"not null"`
	Email   string `gorm:"not null"`
	Subject string
	Message string `gorm:"not null"`

	CreatedAt time.Time
}

type GlossaryTerm struct {
	Id         uint   `gorm:"primaryKey"`
	Term       string `gorm:"uniqueIndex;not null"`
	Definition string `gorm:"not null"`
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"debthelp-backend/internal/database"
)

const DefaultHistoryWindow = 10

var (
	// ErrEmptyMessage is a client input error: the message was missing or
	// blank after trimming.
	ErrEmptyMessage = errors.New("message is required")

	// ErrNotConfigured means no completion backend is available. This is a
	// deployment problem, surfaced before any network or write happens.
	ErrNotConfigured = errors.New("chat model is not configured")

	// ErrUnknownSession is returned by History for a token that matches no
	// conversation.
	ErrUnknownSession = errors.New("unknown session")
)

// Responder runs one full chat request cycle: validate, resolve the
// session, persist the user message, load the history window, call the
// completion backend, persist the reply. It holds no per-request state;
// everything lives in the database.
type Responder struct {
	db        *gorm.DB
	completer Completer
	window    int
}

func NewResponder(db *gorm.DB, completer Completer, window int) *Responder {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &Responder{db: db, completer: completer, window: window}
}

type Reply struct {
	Response     string
	SessionToken string
}

func (r *Responder) Respond(ctx context.Context, message, sessionToken string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	if r.completer == nil {
		return Reply{}, ErrNotConfigured
	}

	conv, err := r.resolveConversation(ctx, sessionToken)
	if err != nil {
		return Reply{}, fmt.Errorf("resolving conversation: %w", err)
	}

	userMsg := database.ChatMessage{
		ConversationId: conv.Id,
		Role:           database.RoleUser,
		Content:        message,
	}
	if err := r.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return Reply{}, fmt.Errorf("saving user message: %w", err)
	}

	history, err := r.loadHistory(ctx, conv.Id)
	if err != nil {
		return Reply{}, fmt.Errorf("loading history: %w", err)
	}

	answer, err := r.completer.Complete(ctx, assemblePrompt(history))
	if err != nil {
		// The user message stays persisted; it will show up in the history
		// window of the next request on this session.
		return Reply{}, fmt.Errorf("getting completion: %w", err)
	}

	// The answer is already decided at this point, so a failed write is
	// logged but does not fail the request.
	assistantMsg := database.ChatMessage{
		ConversationId: conv.Id,
		Role:           database.RoleAssistant,
		Content:        answer,
	}
	if err := r.db.WithContext(ctx).Create(&assistantMsg).Error; err != nil {
		slog.Error("error saving assistant message", "conversation_id", conv.Id, "error", err)
	}

	return Reply{Response: answer, SessionToken: conv.SessionToken}, nil
}

// resolveConversation maps a session token to a conversation row,
// creating one if needed. An unknown token is not an error: the row it
// named may have been deleted by an operator, so we fall through to
// creation with the same token. A fresh token is minted only when the
// client sent none.
func (r *Responder) resolveConversation(ctx context.Context, token string) (database.Conversation, error) {
	if token != "" {
		var conv database.Conversation
		err := r.db.WithContext(ctx).Where("session_token = ?", token).First(&conv).Error
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("error fetching conversation, falling through to creation", "error", err)
		}
	} else {
		token = uuid.NewString()
	}

	conv := database.Conversation{Id: uuid.New(), SessionToken: token}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		// The token column is unique, so a concurrent request with the same
		// token may have created the row first. Reuse the winner's row.
		var existing database.Conversation
		if lookupErr := r.db.WithContext(ctx).Where("session_token = ?", token).First(&existing).Error; lookupErr == nil {
			return existing, nil
		}
		return database.Conversation{}, fmt.Errorf("creating conversation: %w", err)
	}

	return conv, nil
}

// loadHistory returns the most recent window of messages in ascending
// chronological order. The bound caps prompt size sent upstream, it is not
// a domain requirement.
func (r *Responder) loadHistory(ctx context.Context, conversationId uuid.UUID) ([]database.ChatMessage, error) {
	var recent []database.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("created_at DESC").
		Order("id DESC").
		Limit(r.window).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	slices.Reverse(recent)
	return recent, nil
}

// History returns the full ordered message log for a session token.
func (r *Responder) History(ctx context.Context, token string) ([]database.ChatMessage, error) {
	var conv database.Conversation
	err := r.db.WithContext(ctx).Where("session_token = ?", token).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownSession
		}
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}

	var history []database.ChatMessage
	err = r.db.WithContext(ctx).
		Where("conversation_id = ?", conv.Id).
		Order("created_at ASC").
		Order("id ASC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	return history, nil
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"unified-messaging-go/internal/model"
)

// ConversationRepository persists conversations keyed by their serialized
// participants.
type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *ConversationRepository) WithTx(tx *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: tx}
}

// FindOrCreate looks a conversation up by its participant key and creates it
// when absent. A concurrent creator winning the unique index race is handled
// by re-reading the winner's row, so callers always converge on one
// conversation per pair. The second return value reports whether a row was
// created by this call.
func (r *ConversationRepository) FindOrCreate(key string) (*model.Conversation, bool, error) {
	var conv model.Conversation
	err := r.db.Where("participants = ?", key).First(&conv).Error
	if err == nil {
		return &conv, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up conversation: %w", err)
	}

	now := time.Now().UTC()
	conv = model.Conversation{Participants: key, LastMessageAt: now}
	if err := r.db.Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-contact race; the winner's row is the conversation.
			if err := r.db.Where("participants = ?", key).First(&conv).Error; err != nil {
				return nil, false, fmt.Errorf("failed to re-read conversation after duplicate key: %w", err)
			}
			return &conv, false, nil
		}
		return nil, false, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, true, nil
}

// FindByID returns the conversation or nil when it does not exist.
func (r *ConversationRepository) FindByID(id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return &conv, nil
}

// List returns conversations ordered by recency. The id tie-break keeps
// pagination stable when two conversations share a last_message_at.
func (r *ConversationRepository) List(limit, offset int) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.Order("last_message_at DESC, id DESC").Limit(limit).Offset(offset).Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *ConversationRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&model.Conversation{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return total, nil
}

// Delete removes a conversation and all of its messages. The message delete
// is explicit so the cascade does not depend on foreign-key enforcement
// being enabled on the connection.
func (r *ConversationRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation messages: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Conversation{}).Error; err != nil {
			return fmt.Errorf("failed to delete conversation: %w", err)
		}
		return nil
	})
}

// TouchLastMessage refreshes the recency column after a message insert.
func (r *ConversationRepository) TouchLastMessage(id string, ts time.Time) error {
	err := r.db.Model(&model.Conversation{}).Where("id = ?", id).
		Updates(map[string]interface{}{"last_message_at": ts, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return fmt.Errorf("failed to update conversation recency: %w", err)
	}
	return nil
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"unified-messaging-go/internal/model"
)

// MessageRepository persists messages and enforces the
// (provider_type, provider_message_id) idempotency key.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message. A gorm.ErrDuplicatedKey from the unique provider
// message index is passed through wrapped so callers can detect retried
// webhook deliveries.
func (r *MessageRepository) Create(m *model.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindByID returns the message or nil when it does not exist.
func (r *MessageRepository) FindByID(id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}
	return &msg, nil
}

// FindByProviderMessageID resolves the stored row for a provider-assigned
// message identifier, or nil when none exists.
func (r *MessageRepository) FindByProviderMessageID(providerType model.ProviderType, providerMessageID string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where("provider_type = ? AND provider_message_id = ?", providerType, providerMessageID).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message by provider id: %w", err)
	}
	return &msg, nil
}

// ListByConversation returns messages in stable chronological order.
func (r *MessageRepository) ListByConversation(conversationID string, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// RecentByConversation returns the newest n messages, reordered ascending so
// the caller reads them chronologically.
func (r *MessageRepository) RecentByConversation(conversationID string, n int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("timestamp DESC, id DESC").Limit(n).Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// LastByConversation returns the newest message of a conversation, or nil.
func (r *MessageRepository) LastByConversation(conversationID string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("timestamp DESC, id DESC").First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) CountByConversation(conversationID string) (int64, error) {
	var total int64
	err := r.db.Model(&model.Message{}).Where("conversation_id = ?", conversationID).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return total, nil
}

func (r *MessageRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&model.Message{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return total, nil
}

// UpdateStatus transitions a message's delivery state. The error message is
// recorded on failure and cleared otherwise.
func (r *MessageRepository) UpdateStatus(id string, status model.MessageStatus, errorMessage *string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message for status update: %w", err)
	}

	msg.Status = status
	if status == model.MessageStatusFailed {
		msg.ErrorMessage = errorMessage
	} else {
		msg.ErrorMessage = nil
	}
	if err := r.db.Save(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	return &msg, nil
}

// IncrementRetry bumps the retry counter; the counter is tracked for external
// callers, no scheduler in this service consumes it.
func (r *MessageRepository) IncrementRetry(id string) error {
	err := r.db.Model(&model.Message{}).Where("id = ?", id).
		UpdateColumn("retry_count", gorm.Expr("retry_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}
	return nil
}

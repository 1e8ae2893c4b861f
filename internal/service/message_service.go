package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"unified-messaging-go/internal/apperr"
	"unified-messaging-go/internal/contact"
	"unified-messaging-go/internal/metrics"
	"unified-messaging-go/internal/model"
	"unified-messaging-go/internal/repository"
)

// MessageService is the ingestion pipeline: it validates a send/webhook
// payload, resolves the owning conversation, and persists the message.
type MessageService struct {
	db            *gorm.DB
	conversations *repository.ConversationRepository
	messages      *repository.MessageRepository
	metrics       *metrics.Metrics
	defaultLimit  int
}

func NewMessageService(db *gorm.DB, conversations *repository.ConversationRepository, messages *repository.MessageRepository, m *metrics.Metrics, defaultLimit int) *MessageService {
	return &MessageService{
		db:            db,
		conversations: conversations,
		messages:      messages,
		metrics:       m,
		defaultLimit:  defaultLimit,
	}
}

// SendMessage is the unified entry point for caller-initiated sends and
// provider webhook deliveries. Every validation check runs before the request
// is rejected, so a payload with two bad contacts reports two field errors.
func (s *MessageService) SendMessage(req *model.SendMessageRequest) (*model.MessageResponse, error) {
	start := time.Now()

	var fields []apperr.FieldError

	from, err := contact.Normalize(req.From)
	if err != nil {
		fields = append(fields, apperr.FieldError{Field: "from", Code: "invalid_contact", Message: err.Error()})
	}
	to, err := contact.Normalize(req.To)
	if err != nil {
		fields = append(fields, apperr.FieldError{Field: "to", Code: "invalid_contact", Message: err.Error()})
	}
	if from != "" && to != "" && from == to {
		fields = append(fields, apperr.FieldError{Field: "participants", Code: "participants_not_distinct", Message: "from and to must be different contacts"})
	}
	if strings.TrimSpace(req.Body) == "" && req.MessageType != model.MessageTypeMMS {
		fields = append(fields, apperr.FieldError{Field: "body", Code: "body_required", Message: "body must not be empty"})
	}
	if req.MessageType == model.MessageTypeMMS && len(req.Attachments) == 0 {
		fields = append(fields, apperr.FieldError{Field: "attachments", Code: "attachments_required", Message: "mms messages require at least one attachment"})
	}
	if !req.MessageType.Valid() {
		fields = append(fields, apperr.FieldError{Field: "message_type", Code: "invalid_message_type", Message: "message type must be one of sms, mms, email"})
	}
	if !req.Direction.Valid() {
		fields = append(fields, apperr.FieldError{Field: "direction", Code: "invalid_direction", Message: "direction must be inbound or outbound"})
	}
	switch req.ProviderType {
	case model.ProviderTypeSMS:
		if req.MessageType == model.MessageTypeEmail {
			fields = append(fields, apperr.FieldError{Field: "message_type", Code: "provider_mismatch", Message: "email messages cannot travel over the sms provider"})
		}
	case model.ProviderTypeEmail:
		if req.MessageType == model.MessageTypeSMS || req.MessageType == model.MessageTypeMMS {
			fields = append(fields, apperr.FieldError{Field: "message_type", Code: "provider_mismatch", Message: "sms and mms messages cannot travel over the email provider"})
		}
	default:
		fields = append(fields, apperr.FieldError{Field: "provider_type", Code: "invalid_provider_type", Message: "provider type must be sms or email"})
	}

	if len(fields) > 0 {
		s.metrics.ValidationFailures.Inc()
		return nil, apperr.Validation(fields)
	}

	status := model.MessageStatusPending
	if req.Direction == model.DirectionInbound {
		status = model.MessageStatusDelivered
	}

	var attachments datatypes.JSON
	if req.Attachments != nil {
		encoded, err := json.Marshal(req.Attachments)
		if err != nil {
			return nil, apperr.Internal("failed to serialize attachments", err)
		}
		attachments = datatypes.JSON(encoded)
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	key := contact.Key(from, to)

	var stored model.Message
	created := false
	duplicate := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		convRepo := s.conversations.WithTx(tx)
		msgRepo := s.messages.WithTx(tx)

		conv, convCreated, err := convRepo.FindOrCreate(key)
		if err != nil {
			return err
		}
		created = convCreated

		msg := model.Message{
			ConversationID:    conv.ID,
			ProviderType:      req.ProviderType,
			MessageType:       req.MessageType,
			ProviderMessageID: req.ProviderMessageID,
			Direction:         req.Direction,
			From:              from,
			To:                to,
			Body:              req.Body,
			Attachments:       attachments,
			Status:            status,
			Timestamp:         ts,
		}
		if err := msgRepo.Create(&msg); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) && req.ProviderMessageID != nil {
				// Retried webhook delivery; answer with the row the first
				// delivery stored.
				existing, ferr := msgRepo.FindByProviderMessageID(req.ProviderType, *req.ProviderMessageID)
				if ferr != nil {
					return ferr
				}
				if existing != nil {
					stored = *existing
					duplicate = true
					return nil
				}
			}
			return err
		}
		if err := convRepo.TouchLastMessage(conv.ID, ts); err != nil {
			return err
		}
		stored = msg
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}

	if created {
		s.metrics.ConversationsCreated.Inc()
	}
	if duplicate {
		s.metrics.DuplicateInbound.Inc()
		logrus.WithFields(logrus.Fields{
			"provider_type":       req.ProviderType,
			"provider_message_id": *req.ProviderMessageID,
			"message_id":          stored.ID,
		}).Info("Duplicate delivery absorbed")
	} else {
		s.metrics.MessagesIngested.WithLabelValues(string(req.ProviderType), string(req.Direction)).Inc()
	}
	s.metrics.IngestDuration.Observe(time.Since(start).Seconds())

	resp, err := model.ToMessageResponse(&stored)
	if err != nil {
		return nil, apperr.Internal("failed to map message", err)
	}
	return resp, nil
}

// GetMessageByID returns a single message.
func (s *MessageService) GetMessageByID(id string) (*model.MessageResponse, error) {
	msg, err := s.messages.FindByID(id)
	if err != nil {
		return nil, apperr.From(err)
	}
	if msg == nil {
		return nil, apperr.NotFound("message not found")
	}
	resp, err := model.ToMessageResponse(msg)
	if err != nil {
		return nil, apperr.Internal("failed to map message", err)
	}
	return resp, nil
}

// GetConversationMessages returns a conversation's history in stable
// chronological order.
func (s *MessageService) GetConversationMessages(conversationID string, limit int) ([]model.MessageResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = s.defaultLimit
	}

	conv, err := s.conversations.FindByID(conversationID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	msgs, err := s.messages.ListByConversation(conversationID, limit)
	if err != nil {
		return nil, apperr.From(err)
	}

	responses := make([]model.MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp, err := model.ToMessageResponse(&msgs[i])
		if err != nil {
			return nil, apperr.Internal("failed to map message", err)
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// UpdateMessageStatus transitions a message's delivery state; errorMessage is
// recorded when the new status is failed.
func (s *MessageService) UpdateMessageStatus(id string, status model.MessageStatus, errorMessage *string) (*model.MessageResponse, error) {
	if !status.Valid() {
		return nil, apperr.Validation([]apperr.FieldError{
			{Field: "status", Code: "invalid_status", Message: "status must be one of pending, sent, delivered, failed"},
		})
	}

	msg, err := s.messages.UpdateStatus(id, status, errorMessage)
	if err != nil {
		return nil, apperr.From(err)
	}
	if msg == nil {
		return nil, apperr.NotFound("message not found")
	}
	resp, err := model.ToMessageResponse(msg)
	if err != nil {
		return nil, apperr.Internal("failed to map message", err)
	}
	return resp, nil
}

// FindDuplicateInbound resolves a provider-assigned message id to the stored
// message, or nil when the delivery has not been seen.
func (s *MessageService) FindDuplicateInbound(providerType model.ProviderType, providerMessageID string) (*model.MessageResponse, error) {
	msg, err := s.messages.FindByProviderMessageID(providerType, providerMessageID)
	if err != nil {
		return nil, apperr.From(err)
	}
	if msg == nil {
		return nil, nil
	}
	resp, err := model.ToMessageResponse(msg)
	if err != nil {
		return nil, apperr.Internal("failed to map message", err)
	}
	return resp, nil
}

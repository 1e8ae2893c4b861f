package service

import (
	"github.com/sirupsen/logrus"

	"unified-messaging-go/internal/apperr"
	"unified-messaging-go/internal/model"
	"unified-messaging-go/internal/repository"
)

// ConversationService exposes the browse/delete surface over conversations.
type ConversationService struct {
	conversations *repository.ConversationRepository
	messages      *repository.MessageRepository
	defaultLimit  int
	detailLimit   int
}

func NewConversationService(conversations *repository.ConversationRepository, messages *repository.MessageRepository, defaultLimit, detailLimit int) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		defaultLimit:  defaultLimit,
		detailLimit:   detailLimit,
	}
}

// List returns conversations newest-first with their message count and last
// message attached.
func (s *ConversationService) List(limit, offset int) (*model.ConversationListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = s.defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	convs, err := s.conversations.List(limit, offset)
	if err != nil {
		return nil, apperr.From(err)
	}
	total, err := s.conversations.Count()
	if err != nil {
		return nil, apperr.From(err)
	}

	responses := make([]model.ConversationResponse, 0, len(convs))
	for i := range convs {
		resp := model.ToConversationResponse(&convs[i])

		count, err := s.messages.CountByConversation(convs[i].ID)
		if err != nil {
			return nil, apperr.From(err)
		}
		resp.MessageCount = &count

		last, err := s.messages.LastByConversation(convs[i].ID)
		if err != nil {
			return nil, apperr.From(err)
		}
		if last != nil {
			mapped, err := model.ToMessageResponse(last)
			if err != nil {
				return nil, apperr.Internal("failed to map message", err)
			}
			resp.LastMessage = mapped
		}

		responses = append(responses, resp)
	}

	return &model.ConversationListResponse{
		Conversations: responses,
		Pagination: model.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

// Get returns a conversation with its most recent messages in chronological
// order.
func (s *ConversationService) Get(id string) (*model.ConversationDetailResponse, error) {
	conv, err := s.conversations.FindByID(id)
	if err != nil {
		return nil, apperr.From(err)
	}
	if conv == nil {
		return nil, apperr.NotFound("conversation not found")
	}

	msgs, err := s.messages.RecentByConversation(id, s.detailLimit)
	if err != nil {
		return nil, apperr.From(err)
	}

	detail := model.ConversationDetailResponse{
		ConversationResponse: model.ToConversationResponse(conv),
		Messages:             make([]model.MessageResponse, 0, len(msgs)),
	}
	for i := range msgs {
		mapped, err := model.ToMessageResponse(&msgs[i])
		if err != nil {
			return nil, apperr.Internal("failed to map message", err)
		}
		detail.Messages = append(detail.Messages, *mapped)
	}
	return &detail, nil
}

// Delete removes a conversation and cascades to all of its messages.
func (s *ConversationService) Delete(id string) error {
	conv, err := s.conversations.FindByID(id)
	if err != nil {
		return apperr.From(err)
	}
	if conv == nil {
		return apperr.NotFound("conversation not found")
	}

	if err := s.conversations.Delete(id); err != nil {
		return apperr.From(err)
	}
	logrus.WithField("conversation_id", id).Info("Conversation deleted")
	return nil
}

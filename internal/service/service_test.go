package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unified-messaging-go/internal/metrics"
	"unified-messaging-go/internal/model"
	"unified-messaging-go/internal/repository"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.NewMetrics()

func setupTestServices(t *testing.T) (*gorm.DB, *MessageService, *ConversationService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Conversation{}, &model.Message{}))

	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	return db, NewMessageService(db, convRepo, msgRepo, testMetrics, 100),
		NewConversationService(convRepo, msgRepo, 50, 100)
}

func smsRequest(from, to, body string) *model.SendMessageRequest {
	return &model.SendMessageRequest{
		ProviderType: model.ProviderTypeSMS,
		MessageType:  model.MessageTypeSMS,
		Direction:    model.DirectionOutbound,
		From:         from,
		To:           to,
		Body:         body,
		Timestamp:    time.Now().UTC(),
	}
}

func emailRequest(from, to, body string) *model.SendMessageRequest {
	return &model.SendMessageRequest{
		ProviderType: model.ProviderTypeEmail,
		MessageType:  model.MessageTypeEmail,
		Direction:    model.DirectionOutbound,
		From:         from,
		To:           to,
		Body:         body,
		Timestamp:    time.Now().UTC(),
	}
}

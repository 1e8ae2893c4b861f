package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unified-messaging-go/config"
	"unified-messaging-go/internal/metrics"
	"unified-messaging-go/internal/model"
	"unified-messaging-go/internal/repository"
)

var testMetrics = metrics.NewMetrics()

func setupRefresher(t *testing.T) (*gorm.DB, *Refresher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Conversation{}, &model.Message{}))

	cfg := &config.StatsConfig{IntervalMinutes: 60}
	r := NewRefresher(cfg, repository.NewConversationRepository(db), repository.NewMessageRepository(db), testMetrics)
	return db, r
}

func TestRefresherRestart(t *testing.T) {
	_, r := setupRefresher(t)

	if err := r.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if !r.IsRunning() {
		t.Fatalf("refresher should be running after Start")
	}
	if err := r.Start(); err == nil {
		t.Fatalf("second start while running should fail")
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if r.IsRunning() {
		t.Fatalf("refresher should not be running after Stop")
	}
	if err := r.Start(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if !r.IsRunning() {
		t.Fatalf("refresher should be running after restart")
	}
	r.Stop()
}

func TestRunOnceRefreshesGauges(t *testing.T) {
	db, r := setupRefresher(t)

	conv := model.Conversation{Participants: `["+12025551234","+12025555678"]`}
	require.NoError(t, db.Create(&conv).Error)
	require.NoError(t, db.Create(&model.Message{
		ConversationID: conv.ID,
		ProviderType:   model.ProviderTypeSMS,
		MessageType:    model.MessageTypeSMS,
		Direction:      model.DirectionOutbound,
		From:           "+12025551234",
		To:             "+12025555678",
		Body:           "hi",
		Status:         model.MessageStatusPending,
	}).Error)

	require.NoError(t, r.RunOnce())

	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.TotalConversations))
	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.TotalMessages))
}

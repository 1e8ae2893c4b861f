package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"unified-messaging-go/config"
	"unified-messaging-go/internal/metrics"
	"unified-messaging-go/internal/repository"
)

// Refresher periodically refreshes the store-size gauges so /metrics reflects
// how many conversations and messages the service holds.
type Refresher struct {
	cron          *cron.Cron
	entryID       cron.EntryID
	config        *config.StatsConfig
	conversations *repository.ConversationRepository
	messages      *repository.MessageRepository
	metrics       *metrics.Metrics
	wg            sync.WaitGroup
	isRunning     bool
	mu            sync.RWMutex
}

// NewRefresher creates a new stats refresher
func NewRefresher(cfg *config.StatsConfig, conversations *repository.ConversationRepository, messages *repository.MessageRepository, m *metrics.Metrics) *Refresher {
	return &Refresher{
		cron:          cron.New(cron.WithSeconds()),
		config:        cfg,
		conversations: conversations,
		messages:      messages,
		metrics:       m,
	}
}

// Start starts the refresher
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("stats refresher is already running")
	}

	schedule := fmt.Sprintf("0 */%d * * * *", r.config.IntervalMinutes)
	entryID, err := r.cron.AddFunc(schedule, r.refresh)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.entryID = entryID
	r.cron.Start()
	r.isRunning = true

	logrus.Infof("Stats refresher started with interval: %d minutes", r.config.IntervalMinutes)
	return nil
}

// Stop stops the refresher
func (r *Refresher) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return nil
	}

	ctx := r.cron.Stop()
	select {
	case <-ctx.Done():
		logrus.Info("Stats refresher stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Stats refresher stop timeout, forcing shutdown")
	}

	r.cron = cron.New(cron.WithSeconds())
	r.isRunning = false
	return nil
}

// IsRunning returns whether the refresher is running
func (r *Refresher) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}

// refresh recomputes the store gauges.
func (r *Refresher) refresh() {
	r.wg.Add(1)
	defer r.wg.Done()

	conversations, err := r.conversations.Count()
	if err != nil {
		logrus.Errorf("Failed to count conversations: %v", err)
		return
	}
	messages, err := r.messages.Count()
	if err != nil {
		logrus.Errorf("Failed to count messages: %v", err)
		return
	}

	r.metrics.TotalConversations.Set(float64(conversations))
	r.metrics.TotalMessages.Set(float64(messages))

	logrus.WithFields(logrus.Fields{
		"conversations": conversations,
		"messages":      messages,
	}).Debug("Store stats refreshed")
}

// RunOnce refreshes the gauges once (for manual triggering)
func (r *Refresher) RunOnce() error {
	r.refresh()
	return nil
}

// GetNextRun returns the time of the next scheduled refresh
func (r *Refresher) GetNextRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isRunning {
		return time.Time{}
	}
	return r.cron.Entry(r.entryID).Next
}

// GetLastRun returns the time of the last refresh
func (r *Refresher) GetLastRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isRunning {
		return time.Time{}
	}
	return r.cron.Entry(r.entryID).Prev
}

// Wait waits for an in-flight refresh to finish
func (r *Refresher) Wait() {
	r.wg.Wait()
}

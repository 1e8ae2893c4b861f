package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"unified-messaging-go/internal/apperr"
	"unified-messaging-go/internal/service"
	"unified-messaging-go/internal/stats"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db            *gorm.DB
	messages      *service.MessageService
	conversations *service.ConversationService
	refresher     *stats.Refresher
}

// NewHandlers creates new HTTP handlers
func NewHandlers(db *gorm.DB, messages *service.MessageService, conversations *service.ConversationService, refresher *stats.Refresher) *Handlers {
	return &Handlers{
		db:            db,
		messages:      messages,
		conversations: conversations,
		refresher:     refresher,
	}
}

// SetupRoutes sets up all HTTP routes
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	// Health check
	router.GET("/healthz", h.HealthCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		// Outbound sends
		api.POST("/messages/sms/send", h.SendSMS)
		api.POST("/messages/email/send", h.SendEmail)

		// Inbound provider webhooks
		api.POST("/webhooks/sms", h.SMSWebhook)
		api.POST("/webhooks/email", h.EmailWebhook)

		// Messages
		api.GET("/messages/:id", h.GetMessage)
		api.PATCH("/messages/:id/status", h.UpdateMessageStatus)

		// Conversations
		api.GET("/conversations", h.GetConversations)
		api.GET("/conversations/:id", h.GetConversation)
		api.GET("/conversations/:id/messages", h.GetConversationMessages)
		api.DELETE("/conversations/:id", h.DeleteConversation)

		// Stats refresher control
		api.POST("/stats/start", h.StartRefresher)
		api.POST("/stats/stop", h.StopRefresher)
		api.POST("/stats/run-once", h.RunRefresherOnce)
		api.GET("/stats/status", h.GetRefresherStatus)
	}
}

// respondError is the single boundary that turns domain errors into HTTP
// responses; every AppError code maps to a status here.
func respondError(c *gin.Context, err error) {
	ae := apperr.From(err)
	if ae.Code == apperr.CodeInternal || ae.Code == apperr.CodeUnknown {
		logrus.Errorf("Internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, errors.Unwrap(ae))
	}
	c.JSON(ae.Code.HTTPStatus(), ErrorResponse{
		Error:   string(ae.Code),
		Message: ae.Message,
		Code:    ae.Code.HTTPStatus(),
		Fields:  ae.Fields,
	})
}

// respondBadBody rejects requests whose JSON could not be bound at all.
func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   string(apperr.CodeValidation),
		Message: "Invalid request body",
		Code:    http.StatusBadRequest,
	})
}

// parseTimestamp accepts an RFC3339 event time; missing or unparsable values
// fall back to ingestion time downstream.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// optional returns a pointer for non-empty provider-assigned ids.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Database:  "ok",
		Metrics:   make(map[string]string),
	}

	// Check database connection
	if err := h.db.Raw("SELECT 1").Error; err != nil {
		response.Status = "error"
		response.Database = "error"
		logrus.Errorf("Database health check failed: %v", err)
	}

	// Check refresher status
	if h.refresher.IsRunning() {
		response.Metrics["stats_refresher"] = "running"
		response.Metrics["next_run"] = h.refresher.GetNextRun().Format(time.RFC3339)
		response.Metrics["last_run"] = h.refresher.GetLastRun().Format(time.RFC3339)
	} else {
		response.Metrics["stats_refresher"] = "stopped"
	}

	statusCode := http.StatusOK
	if response.Status == "error" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

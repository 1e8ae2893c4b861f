package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetConversations returns conversations newest-first with pagination
func (h *Handlers) GetConversations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.conversations.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversation returns a conversation with its recent messages
func (h *Handlers) GetConversation(c *gin.Context) {
	resp, err := h.conversations.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversationMessages returns a conversation's history in chronological order
func (h *Handlers) GetConversationMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := h.messages.GetConversationMessages(c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
	})
}

// DeleteConversation deletes a conversation and all of its messages
func (h *Handlers) DeleteConversation(c *gin.Context) {
	if err := h.conversations.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Package handlers contains the gin handlers for the chat API.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/chat"
)

type Handler struct {
	ChatSvc     *chat.Service
	ChatTimeout time.Duration
}

func NewHandler(chatSvc *chat.Service, chatTimeout time.Duration) *Handler {
	if chatTimeout <= 0 {
		chatTimeout = 60 * time.Second
	}
	return &Handler{ChatSvc: chatSvc, ChatTimeout: chatTimeout}
}

func fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/chat"
	"github.com/maxgpt/maxgpt/internal/httpapi/middleware"
	"github.com/maxgpt/maxgpt/internal/logger"
)

type chatReq struct {
	Message  string         `json:"message"`
	Messages []chat.Message `json:"messages"`
}

// Chat handles POST /api/chat. The body carries the new message plus the
// caller-held history; the reply text is returned, or one of the fixed
// error bodies. Error kinds never leak upstream detail.
func (h *Handler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "message required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.ChatTimeout)
	defer cancel()

	reply, err := h.ChatSvc.Complete(ctx, req.Message, req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrNotConfigured):
			fail(c, http.StatusInternalServerError, "configuration missing")
		case errors.Is(err, chat.ErrEmptyMessage):
			fail(c, http.StatusBadRequest, "message required")
		case errors.Is(err, chat.ErrUnauthorized):
			fail(c, http.StatusUnauthorized, "invalid credential")
		case errors.Is(err, chat.ErrRateLimited):
			fail(c, http.StatusTooManyRequests, "rate limited")
		default:
			logger.Errorw("chat completion failed",
				"error", err,
				"request_id", c.GetString(middleware.RequestIDKey),
			)
			fail(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

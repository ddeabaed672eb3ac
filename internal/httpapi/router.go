// Package httpapi wires the gin router for the chat proxy.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/chat"
	"github.com/maxgpt/maxgpt/internal/config"
	"github.com/maxgpt/maxgpt/internal/httpapi/handlers"
	"github.com/maxgpt/maxgpt/internal/httpapi/middleware"
	"github.com/maxgpt/maxgpt/web"
)

func NewRouter(chatSvc *chat.Service, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(cors.Default())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	h := handlers.NewHandler(chatSvc, cfg.ChatTimeout)

	r.GET("/ping", h.Ping)
	r.POST("/api/chat", h.Chat)

	// the browser chat page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})

	return r
}

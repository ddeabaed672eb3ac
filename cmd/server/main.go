package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxgpt/maxgpt/internal/ai"
	"github.com/maxgpt/maxgpt/internal/chat"
	"github.com/maxgpt/maxgpt/internal/config"
	"github.com/maxgpt/maxgpt/internal/httpapi"
	"github.com/maxgpt/maxgpt/internal/logger"
)

const (
	maxCompletionTokens   = 1000
	completionTemperature = 0.7
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	reg := ai.NewRegistry()
	reg.Register("openai", func() (ai.Provider, error) {
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel,
			maxCompletionTokens, completionTemperature, cfg.ChatTimeout), nil
	})
	reg.Register("ollama", func() (ai.Provider, error) {
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel,
			maxCompletionTokens, completionTemperature, cfg.ChatTimeout), nil
	})

	provider, err := reg.Get(cfg.AIProvider)
	if err != nil {
		logger.Fatalf("provider init: %v", err)
	}

	// Ollama runs without a credential; OpenAI needs one. The flag is also
	// rechecked per call so requests never reach an unconfigured provider.
	configured := cfg.AIProvider != "openai" || cfg.OpenAIAPIKey != ""
	if !configured {
		logger.Warnf("OPENAI_API_KEY is not set; chat requests will report a configuration error")
	}

	chatSvc := chat.NewService(provider, configured)

	gin.SetMode(cfg.GinMode)
	r := httpapi.NewRouter(chatSvc, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: r,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("shutdown: %v", err)
	}
	logger.Info("stopped")
}

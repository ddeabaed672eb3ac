package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort string
	GinMode    string

	LogLevel  string
	LogFormat string

	// AI provider
	AIProvider    string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Upper bound for one completion round trip, proxy included.
	ChatTimeout time.Duration
}

func Load() Config {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "release"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "openai"
	}

	openAIBaseURL := os.Getenv("OPENAI_BASE_URL")
	if openAIBaseURL == "" {
		openAIBaseURL = "https://api.openai.com/v1"
	}
	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-3.5-turbo"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "llama3:latest"
	}

	timeoutSeconds := 60
	if v := os.Getenv("CHAT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSeconds = n
		}
	}

	return Config{
		ServerPort: port,
		GinMode:    ginMode,

		LogLevel:  logLevel,
		LogFormat: logFormat,

		AIProvider:    aiProvider,
		OpenAIBaseURL: openAIBaseURL,
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   openAIModel,
		OllamaBaseURL: ollamaBaseURL,
		OllamaModel:   ollamaModel,

		ChatTimeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// chatcli is a terminal client for the maxgpt chat server. It keeps the
// conversation in memory for the lifetime of the process and talks to the
// server through the same /api/chat endpoint the browser page uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/maxgpt/maxgpt/internal/apiclient"
	"github.com/maxgpt/maxgpt/internal/config"
	"github.com/maxgpt/maxgpt/internal/ingest"
	"github.com/maxgpt/maxgpt/internal/logger"
	"github.com/maxgpt/maxgpt/internal/session"
)

func historyFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "maxgpt", "input_history")
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "chat server base URL")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "console")
	defer logger.Sync()

	client := apiclient.New(*serverURL, cfg.ChatTimeout)
	ctrl := session.NewController(client)

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	histPath := historyFilePath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		_ = os.MkdirAll(filepath.Dir(histPath), 0o755)
		if f, err := os.Create(histPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("maxgpt chat - /file <path> uploads a file, /history shows the conversation, /quit exits")

	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			// Ctrl+D or closed stdin
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == "/quit" || input == "/q":
			return
		case input == "/history":
			printHistory(ctrl)
		case strings.HasPrefix(input, "/file "):
			uploadFile(ctrl, strings.TrimSpace(strings.TrimPrefix(input, "/file ")))
		default:
			turn, err := ctrl.Send(context.Background(), input)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("assistant> %s\n", turn.Text)
		}
	}
}

func uploadFile(ctrl *session.Controller, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	sel := ingest.Selection{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Reader:      f,
	}
	turn, err := ctrl.UploadFile(context.Background(), sel)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("assistant> %s\n", turn.Text)
}

func printHistory(ctrl *session.Controller) {
	for _, t := range ctrl.History() {
		who := "you"
		if t.Origin == session.OriginAssistant {
			who = "assistant"
		}
		fmt.Printf("[%s] %s: %s\n", t.CreatedAt.Format("15:04"), who, t.Text)
	}
}

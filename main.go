package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tayninh-assistant/server/internal/assistant"
	"github.com/tayninh-assistant/server/internal/assistant/engine"
	logx "github.com/tayninh-assistant/server/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg assistant.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init()

	eng, cleanup, err := assistant.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build assistant: %v", err)
	}
	defer cleanup()

	sessionID := uuid.NewString()
	if err := eng.StartSession(ctx, sessionID); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fmt.Println("🗺️  Chatbot Du Lịch Tây Ninh")
	fmt.Printf("🤖 %s\n", eng.Greeting())
	fmt.Println("(gõ 'exit' để thoát)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		fmt.Print("🤖 ")
		result, err := eng.ProcessTurn(ctx, sessionID, input, func(chunk string) {
			fmt.Print(chunk)
		})
		if err != nil {
			log.Printf("turn failed: %v", err)
			continue
		}
		fmt.Println()

		renderExtras(result)
	}
}

// renderExtras prints the collapsible sections the chat UI would show:
// map link, nearby food, and images, all gated on a resolved topic.
func renderExtras(result *engine.TurnResult) {
	if result.MapURL != "" {
		fmt.Printf("\n📍 Google Maps: %s\n", result.MapURL)
	}
	if len(result.Food) > 0 {
		fmt.Println("\n🍜 Gợi ý quán ăn gần đây:")
		for _, spot := range result.Food {
			fmt.Printf("  - %s — %s\n", spot.Name, spot.Note)
		}
	}
	if len(result.Images) > 0 {
		fmt.Printf("\n📸 Hình ảnh về %s:\n", result.Topic)
		for _, img := range result.Images {
			fmt.Printf("  %s\n", img)
		}
	}
}

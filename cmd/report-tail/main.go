package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eviden-bot/pkg/events"
	pktNats "eviden-bot/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subject := pktNats.Subject(events.TypeReportSubmitted)
	err = sub.Subscribe(ctx, subject, "", func(ctx context.Context, event events.Event) error {
		body, err := json.MarshalIndent(event.Payload(), "", "  ")
		if err != nil {
			return err
		}
		color.Green("[%s] %s %s", event.Timestamp().Format("2006-01-02 15:04:05"), event.EventType(), event.EventID())
		color.White("%s", body)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	color.Cyan("🚀 Tailing %s (Ctrl+C to stop)", subject)
	<-ctx.Done()
	color.Yellow("Stopped")
}

package main

import (
	"flag"
	"log"
	"strings"

	"eviden-bot/internal/config"

	"github.com/fatih/color"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	remove := flag.Bool("delete", false, "remove the registered webhook instead of setting it")
	dropPending := flag.Bool("drop-pending", false, "discard updates queued while no webhook was set")
	flag.Parse()

	cfg := config.Load()
	if cfg.Telegram.Token == "" {
		log.Fatal("Error: BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		color.Red("Failed to reach Telegram: %v", err)
		log.Fatal(err)
	}
	color.Cyan("🚀 Authorized as @%s", api.Self.UserName)

	if *remove {
		params := tgbotapi.Params{}
		params.AddBool("drop_pending_updates", *dropPending)
		if _, err := api.MakeRequest("deleteWebhook", params); err != nil {
			color.Red("deleteWebhook failed: %v", err)
			log.Fatal(err)
		}
		color.Green("Webhook removed")
		return
	}

	url := cfg.Telegram.WebhookURL
	if url == "" {
		base := strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")
		url = base + "/api" + cfg.Telegram.WebhookPath
		color.Yellow("TELEGRAM_WEBHOOK_URL not set, using %s", url)
	}

	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", cfg.Telegram.WebhookSecret)
	params.AddBool("drop_pending_updates", *dropPending)
	if err := params.AddInterface("allowed_updates", []string{"message", "callback_query"}); err != nil {
		log.Fatal(err)
	}

	if _, err := api.MakeRequest("setWebhook", params); err != nil {
		color.Red("setWebhook failed: %v", err)
		log.Fatal(err)
	}

	info, err := api.GetWebhookInfo()
	if err != nil {
		color.Red("getWebhookInfo failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Webhook registered: %s", info.URL)
	color.Green("Pending updates: %d", info.PendingUpdateCount)
	if info.LastErrorMessage != "" {
		color.Yellow("Last delivery error: %s", info.LastErrorMessage)
	}
}

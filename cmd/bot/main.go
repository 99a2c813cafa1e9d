package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gif-translate-bot/internal/bot/commands"
	"gif-translate-bot/internal/bot/inline"
	"gif-translate-bot/internal/bot/middleware"
	"gif-translate-bot/internal/config"
	"gif-translate-bot/internal/db"
	"gif-translate-bot/internal/systemd"
	"gif-translate-bot/internal/translate"
	"gif-translate-bot/internal/upload"
	"gif-translate-bot/internal/whitelist"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

func main() {
	cfg := config.Load()

	wl, err := whitelist.Load(cfg.WhitelistFile)
	if err != nil {
		log.Fatalf("Failed to load whitelist: %v", err)
	}
	if wl.Enforced() {
		log.Printf("Whitelist: enforcing %d user(s) from %s", wl.Len(), cfg.WhitelistFile)
	} else {
		log.Printf("Whitelist %s has no entries, admitting everyone", cfg.WhitelistFile)
	}

	var stats *db.DB
	if cfg.MongoDBURI != "" {
		stats, err = db.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
	} else {
		log.Printf("MONGODB_URI not set, usage stats disabled")
	}

	translator := translate.NewClient()
	uploader := upload.NewClient(cfg.UploadURL)

	b, err := gotgbot.NewBot(cfg.BotToken, nil)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Printf("Error processing update: %v", err)
			return ext.DispatcherActionNoop
		},
	})
	updater := ext.NewUpdater(dispatcher, nil)

	track := middleware.TrackUser(stats)
	dispatcher.AddHandlerToGroup(handlers.NewMessage(nil, track), -1)
	dispatcher.AddHandlerToGroup(handlers.NewInlineQuery(nil, track), -1)

	// Commands
	cmdHandler := commands.NewCommandHandler(stats, wl)
	dispatcher.AddHandler(handlers.NewCommand("start", cmdHandler.Start))
	dispatcher.AddHandler(handlers.NewCommand("help", cmdHandler.Help))
	dispatcher.AddHandler(handlers.NewCommand("id", cmdHandler.ID))
	dispatcher.AddHandler(handlers.NewCommand("stats", cmdHandler.StatsCmd))

	inlineHandler := inline.NewHandler(translator, uploader, wl)
	dispatcher.AddHandler(handlers.NewInlineQuery(nil, inlineHandler.HandleQuery))

	go func() {
		err = updater.StartPolling(b, &ext.PollingOpts{
			DropPendingUpdates: true,
			GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
				Timeout: 9,
				RequestOpts: &gotgbot.RequestOpts{
					Timeout: time.Second * 10,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to start polling: %v", err)
		}
	}()

	log.Printf("Bot started: @%s", b.User.Username)

	systemd.Notify(systemd.Ready)
	go systemd.WatchdogLoop(context.Background())

	http.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		html := fmt.Sprintf(`
		<html>
		<head><title>Translation GIF Bot</title></head>
		<body style="font-family: sans-serif; text-align: center; padding: 50px;">
			<h1>Translation GIF Bot</h1>
			<p>The bot is running successfully.</p>
			<p><a href="https://t.me/%s" style="text-decoration: none; background-color: #0088cc; color: white; padding: 10px 20px; border-radius: 5px;">Open in Telegram</a></p>
		</body>
		</html>`, b.User.Username)
		writer.Header().Set("Content-Type", "text/html")
		_, _ = writer.Write([]byte(html))
	})

	log.Printf("Server listening on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

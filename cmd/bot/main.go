// Package main is the entry point for the Discord bridge.
package main

import (
	"context"
	"log"

	"github.com/nautica/battleship-zk/internal/auditlog"
	"github.com/nautica/battleship-zk/internal/bot"
	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/env"
	"github.com/nautica/battleship-zk/internal/service"
)

func main() {
	cfg, err := env.LoadBotConfig()
	if err != nil {
		log.Fatalf("bot: loading config: %v", err)
	}

	identity := service.NewIdentityService(cfg.JWTSecret)
	notifier := service.NewNotificationService()
	matches := service.NewMatchService(notifier, auditlog.New("receipts"))

	ctrl := controller.NewAppController(identity, matches, matches, notifier)

	discordBot, err := bot.NewDiscordBot(cfg.DiscordToken, cfg.DiscordAppID, ctrl, notifier)
	if err != nil {
		log.Fatalf("bot: creating discord bot: %v", err)
	}

	log.Println("bot: starting")
	if err := discordBot.Start(context.Background()); err != nil {
		log.Fatalf("bot: %v", err)
	}
}

// Package bot provides a Discord bridge onto the lobby's application
// controller, so a match can be hosted, joined, and played with slash
// commands instead of the HTTP/WebSocket surface directly.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/nautica/battleship-zk/internal/controller"
)

// DiscordBot bridges Discord slash-command interactions onto an
// AppController, tracking which Discord user is in which match so an
// opponent's move can be announced back to the right channel.
type DiscordBot struct {
	session  *discordgo.Session
	appID    string
	ctrl     *controller.AppController
	notifier controller.NotificationService

	matchMu       sync.RWMutex
	activeMatches map[string]string // discordUserID -> matchID

	discordMu       sync.RWMutex
	playerToDiscord map[string]string // playerID -> discordUserID

	channelMu      sync.RWMutex
	matchToChannel map[string]string // matchID -> channelID
}

// NewDiscordBot creates a Discord bot instance around a Discord bot
// token, an application ID, and the lobby's application controller.
func NewDiscordBot(
	token, appID string,
	ctrl *controller.AppController,
	notifier controller.NotificationService,
) (*DiscordBot, error) {
	if appID == "" {
		return nil, fmt.Errorf("bot: app ID is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("bot: creating discord session: %w", err)
	}

	b := &DiscordBot{
		session:         session,
		appID:           appID,
		ctrl:            ctrl,
		notifier:        notifier,
		activeMatches:   make(map[string]string),
		playerToDiscord: make(map[string]string),
		matchToChannel:  make(map[string]string),
	}

	session.AddHandler(b.handleInteraction)

	return b, nil
}

// Start opens the Discord connection, registers slash commands, and
// blocks until ctx is cancelled or the process receives an interrupt.
func (b *DiscordBot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: opening discord connection: %w", err)
	}

	log.Println("bot: connected")

	b.subscribeToEvents()

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("bot: registering commands: %w", err)
	}
	log.Println("bot: slash commands registered")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("bot: received shutdown signal")
	case <-ctx.Done():
		log.Println("bot: context cancelled")
	}

	return b.Shutdown()
}

// Shutdown closes the Discord session.
func (b *DiscordBot) Shutdown() error {
	log.Println("bot: shutting down")
	return b.session.Close()
}

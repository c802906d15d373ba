package bot

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/nautica/battleship-zk/internal/events"
)

// subscribeToEvents subscribes the bot to every match's event stream and
// relays each one to Discord.
func (b *DiscordBot) subscribeToEvents() {
	_, ch := b.notifier.Subscribe("*")
	go func() {
		for event := range ch {
			b.handleGameEvent(event)
		}
	}()
}

// handleGameEvent turns a game event into a channel announcement, unless
// there is nowhere to send it or the event has nothing worth saying.
func (b *DiscordBot) handleGameEvent(event *events.GameEvent) {
	b.channelMu.RLock()
	channelID, ok := b.matchToChannel[event.MatchID]
	b.channelMu.RUnlock()
	if !ok || channelID == "" {
		return
	}

	embed := b.formatEventEmbed(event)
	if embed == nil {
		return
	}

	content := ""
	if event.TargetID != "" {
		b.discordMu.RLock()
		discordUserID := b.playerToDiscord[event.TargetID]
		b.discordMu.RUnlock()
		if discordUserID != "" {
			content = fmt.Sprintf("<@%s>", discordUserID)
		}
	}

	if err := b.sendChannelMessage(channelID, content, embed); err != nil {
		log.Printf("bot: failed to send message to channel %s: %v", channelID, err)
	}
}

func (b *DiscordBot) formatEventEmbed(event *events.GameEvent) *discordgo.MessageEmbed {
	switch event.Type {
	case events.EventPeerJoined:
		return &discordgo.MessageEmbed{
			Title:       "Opponent joined",
			Description: "Your opponent joined the match.",
			Color:       0x00ff00,
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Match ID: %s", event.MatchID)},
		}

	case events.EventShotTaken:
		data, ok := event.Data.(events.ShotEventData)
		if !ok {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title: "Shot taken",
			Description: fmt.Sprintf(
				"Attack at %s: %s",
				CoordinateToChess(int(data.X), int(data.Y)),
				data.Result,
			),
			Color: 0xff9900,
		}

	case events.EventTurnChanged:
		return &discordgo.MessageEmbed{
			Title:       "Your turn",
			Description: "It's your move.",
			Color:       0x0099ff,
		}

	case events.EventMatchOver:
		data, ok := event.Data.(events.MatchOverEventData)
		if !ok {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Match over",
			Description: fmt.Sprintf("Winner: %s", data.Winner),
			Color:       0xffd700,
		}

	case events.EventRetryNeeded:
		data, ok := event.Data.(events.RetryEventData)
		if !ok {
			return nil
		}
		return &discordgo.MessageEmbed{
			Title:       "Retry needed",
			Description: data.Reason,
			Color:       0xff0000,
		}

	default:
		return nil
	}
}

func (b *DiscordBot) sendChannelMessage(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("sending channel message: %w", err)
	}
	return nil
}

package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/nautica/battleship-zk/internal/dto"
)

// handleInteraction is the single entry point for every Discord
// interaction; it authenticates the Discord user against the identity
// service and routes to the matching subcommand.
func (b *DiscordBot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != "battleship" {
		return
	}
	if len(data.Options) == 0 {
		respondError(s, i, "No subcommand provided")
		return
	}

	subcommand := data.Options[0]
	ctx := context.Background()

	discordUserID := i.Member.User.ID
	username := i.Member.User.Username

	auth, err := b.ctrl.Login(ctx, username, "discord", discordUserID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to authenticate: %v", err))
		return
	}
	playerID := auth.User.ID

	switch subcommand.Name {
	case "host":
		b.handleHost(ctx, s, i, playerID)
	case "join":
		b.handleJoin(ctx, s, i, playerID, subcommand.Options)
	case "list":
		b.handleList(ctx, s, i)
	case "place":
		b.handlePlace(ctx, s, i, playerID, subcommand.Options)
	case "attack":
		b.handleAttack(ctx, s, i, playerID, subcommand.Options)
	case "status":
		b.handleStatus(ctx, s, i, playerID)
	default:
		respondError(s, i, "Unknown subcommand")
	}
}

func (b *DiscordBot) handleHost(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	playerID string,
) {
	matchID, err := b.ctrl.HostMatchAction(ctx, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to host match: %v", err))
		return
	}

	b.registerMatch(playerID, i.Member.User.ID, matchID, i.ChannelID)

	embed := &discordgo.MessageEmbed{
		Title: "Match created",
		Description: fmt.Sprintf(
			"Match ID: `%s`\n\nShare this ID with your opponent so they can join.",
			matchID,
		),
		Color: 0x00ff00,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /battleship place to set up your fleet",
		},
	}
	respondEmbed(s, i, embed, false)
}

func (b *DiscordBot) handleJoin(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	playerID string,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) {
	matchID := options[0].StringValue()

	view, err := b.ctrl.JoinMatchAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to join match: %v", err))
		return
	}

	discordUserID := i.Member.User.ID
	b.trackPlayer(playerID, discordUserID)
	b.trackMatch(discordUserID, matchID)

	embed := &discordgo.MessageEmbed{
		Title:       "Joined match",
		Description: fmt.Sprintf("Match ID: `%s`\n\nPhase: %s", matchID, view.Phase),
		Color:       0x00ff00,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /battleship place to set up your fleet",
		},
	}
	respondEmbed(s, i, embed, true)
}

func (b *DiscordBot) handleList(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	matches, err := b.ctrl.ListMatchesAction(ctx)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to list matches: %v", err))
		return
	}

	if len(matches) == 0 {
		respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Available matches",
			Description: "No matches are waiting for a guest. Use `/battleship host` to create one.",
			Color:       0xffaa00,
		}, true)
		return
	}

	description := ""
	for _, m := range matches {
		description += fmt.Sprintf("**%s** - host %s (%d/2 players)\n", m.ID, m.HostName, m.PlayerCount)
	}

	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Available matches",
		Description: description,
		Color:       0x0099ff,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /battleship join <match_id> to join one",
		},
	}, true)
}

func (b *DiscordBot) handlePlace(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	playerID string,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) {
	matchID, ok := b.getActiveMatch(i.Member.User.ID)
	if !ok {
		respondError(s, i, "You are not in an active match. Use `/battleship host` or `/battleship join` first.")
		return
	}

	opt := optionMap(options)
	orientation := "horizontal"
	if opt["vertical"].BoolValue() {
		orientation = "vertical"
	}

	req := dto.PlaceShipRequest{
		PlayerID:    playerID,
		ShipName:    opt["ship"].StringValue(),
		X:           uint32(opt["x"].IntValue()),
		Y:           uint32(opt["y"].IntValue()),
		Orientation: orientation,
	}

	view, err := b.ctrl.PlaceShipAction(ctx, matchID, playerID, req)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to place ship: %v", err))
		return
	}

	embed := FormatMatchView(&view, playerID)
	embed.Title = "Ship placed"
	respondEmbed(s, i, embed, true)
}

func (b *DiscordBot) handleAttack(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	playerID string,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) {
	matchID, ok := b.getActiveMatch(i.Member.User.ID)
	if !ok {
		respondError(s, i, "You are not in an active match. Use `/battleship host` or `/battleship join` first.")
		return
	}

	opt := optionMap(options)
	x := uint32(opt["x"].IntValue())
	y := uint32(opt["y"].IntValue())

	view, err := b.ctrl.AttackAction(ctx, matchID, playerID, x, y)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to attack: %v", err))
		return
	}

	embed := FormatMatchView(&view, playerID)
	embed.Title = fmt.Sprintf("Attack at %s", CoordinateToChess(int(x), int(y)))
	respondEmbed(s, i, embed, true)
}

func (b *DiscordBot) handleStatus(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	playerID string,
) {
	matchID, ok := b.getActiveMatch(i.Member.User.ID)
	if !ok {
		respondError(s, i, "You are not in an active match. Use `/battleship host` or `/battleship join` first.")
		return
	}

	view, err := b.ctrl.GetStateAction(ctx, matchID, playerID)
	if err != nil {
		respondError(s, i, fmt.Sprintf("Failed to fetch match state: %v", err))
		return
	}

	respondEmbed(s, i, FormatMatchView(&view, playerID), true)
}

func optionMap(
	options []*discordgo.ApplicationCommandInteractionDataOption,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
	if err != nil {
		log.Printf("bot: failed to respond to interaction: %v", err)
	}
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       0xff0000,
	}, true)
}

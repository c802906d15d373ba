package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "battleship",
		Description: "Play Battleship!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "host",
				Description: "Create a new match",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "join",
				Description: "Join an existing match",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "match_id",
						Description: "The match ID to join",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "list",
				Description: "List matches awaiting a guest",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "place",
				Description: "Place a ship on your board",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "ship",
						Description: "Ship to place",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Carrier", Value: "Carrier"},
							{Name: "Battleship", Value: "Battleship"},
							{Name: "Cruiser", Value: "Cruiser"},
							{Name: "Submarine", Value: "Submarine"},
							{Name: "Destroyer", Value: "Destroyer"},
						},
					},
					{
						Name:        "x",
						Description: "X coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "y",
						Description: "Y coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "vertical",
						Description: "Place the ship vertically?",
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Required:    true,
					},
				},
			},
			{
				Name:        "attack",
				Description: "Fire at a coordinate",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "x",
						Description: "X coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
					{
						Name:        "y",
						Description: "Y coordinate (0-9)",
						Type:        discordgo.ApplicationCommandOptionInteger,
						Required:    true,
						MinValue:    floatPtr(0),
						MaxValue:    9,
					},
				},
			},
			{
				Name:        "status",
				Description: "View your current match state",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	},
}

func floatPtr(f float64) *float64 {
	return &f
}

// registerCommands registers the slash commands with Discord.
func (b *DiscordBot) registerCommands() error {
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.appID, "", cmd); err != nil {
			return err
		}
		log.Printf("bot: registered command %s", cmd.Name)
	}
	return nil
}

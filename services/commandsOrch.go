package services

import (
	"lobbyRankBot/services/gameService"
	"lobbyRankBot/services/guildService"
	"lobbyRankBot/services/leaderboardService"
	"lobbyRankBot/services/lobbyService"
	"lobbyRankBot/services/playerService"
	"lobbyRankBot/services/rankService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, cache *leaderboardService.Cache) {
	switch i.ApplicationCommandData().Name {
	case "register":
		playerService.Register(s, i, db)
	case "profile":
		playerService.Profile(s, i, db)
	case "leaderboard":
		leaderboardService.ShowLeaderboard(s, i, db, cache)
	case "ranks":
		rankService.ShowRanks(s, i, db)
	case "add-rank":
		rankService.AddRank(s, i, db)
	case "remove-rank":
		rankService.RemoveRank(s, i, db)
	case "set-default-modifiers":
		guildService.SetDefaultModifiers(s, i, db)
	case "create-lobby":
		lobbyService.CreateLobby(s, i, db)
	case "set-announcement-channel":
		lobbyService.SetAnnouncementChannel(s, i, db)
	case "new-game":
		gameService.NewGameCommand(s, i, db)
	case "game":
		gameService.GameCommand(s, i, db, cache)
	case "draw":
		gameService.DrawCommand(s, i, db)
	case "undo-draw":
		gameService.UndoDrawCommand(s, i, db)
	case "cancel":
		gameService.CancelCommand(s, i, db)
	case "undo-game":
		gameService.UndoCommand(s, i, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	gameNumberOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "game-number",
		Description: "Game number within the lobby",
		Required:    true,
	}
	lobbyOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionChannel,
		Name:        "lobby",
		Description: "Lobby channel (defaults to the current channel)",
	}
	commentOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "comment",
		Description: "Optional comment attached to the result",
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register for ranked games in this server",
		},
		{
			Name:        "profile",
			Description: "Show your (or another player's) points, rank and record",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to look up",
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the server's top players",
		},
		{
			Name:        "ranks",
			Description: "Show the server's rank ladder",
		},
		{
			Name:        "add-rank",
			Description: "Add or update a rank tier for a role",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role granted at this rank",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "points",
					Description: "Point threshold for the rank",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "win-modifier",
					Description: "Points gained per win at this rank",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "loss-modifier",
					Description: "Points lost per loss at this rank",
				},
			},
		},
		{
			Name:        "remove-rank",
			Description: "Remove a rank tier",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Rank role to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "set-default-modifiers",
			Description: "Set the default win/loss point modifiers",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "win",
					Description: "Points gained per win",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "loss",
					Description: "Points lost per loss",
					Required:    true,
				},
			},
		},
		{
			Name:        "create-lobby",
			Description: "Make this channel a game lobby",
		},
		{
			Name:        "set-announcement-channel",
			Description: "Send this lobby's results to another channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to announce results in",
					Required:    true,
				},
			},
		},
		{
			Name:        "new-game",
			Description: "Record a formed game in this lobby",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "team1",
					Description: "Mentions of team 1's players",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "team2",
					Description: "Mentions of team 2's players",
					Required:    true,
				},
			},
		},
		{
			Name:        "game",
			Description: "Call a win for a team in a game",
			Options: []*discordgo.ApplicationCommandOption{
				gameNumberOption,
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "winning-team",
					Description: "Which team won",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Team 1", Value: 1},
						{Name: "Team 2", Value: 2},
					},
				},
				lobbyOption,
				commentOption,
			},
		},
		{
			Name:        "draw",
			Description: "Call a draw on a game",
			Options:     []*discordgo.ApplicationCommandOption{gameNumberOption, lobbyOption, commentOption},
		},
		{
			Name:        "undo-draw",
			Description: "Undo a draw, restoring draw counts",
			Options:     []*discordgo.ApplicationCommandOption{gameNumberOption, lobbyOption},
		},
		{
			Name:        "cancel",
			Description: "Cancel a game that has not been decided",
			Options:     []*discordgo.ApplicationCommandOption{gameNumberOption, lobbyOption, commentOption},
		},
		{
			Name:        "undo-game",
			Description: "Undo a decided game, reversing its point changes",
			Options:     []*discordgo.ApplicationCommandOption{gameNumberOption, lobbyOption},
		},
	}

	for _, command := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, "", command)
		if err != nil {
			return err
		}
	}

	return nil
}

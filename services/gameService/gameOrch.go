package gameService

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"lobbyRankBot/models"
	"lobbyRankBot/services/common"
	"lobbyRankBot/services/leaderboardService"
	"lobbyRankBot/services/messageService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

func parseMentions(raw string) []string {
	matches := mentionPattern.FindAllStringSubmatch(raw, -1)
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		if !common.Contains(ids, match[1]) {
			ids = append(ids, match[1])
		}
	}
	return ids
}

// NewGameCommand records a formed game in the current lobby. Team rosters
// come in as mention lists; picking order and captains are settled before
// this point.
func NewGameCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	team1 := parseMentions(options[0].StringValue())
	team2 := parseMentions(options[1].StringValue())

	if len(team1) == 0 || len(team2) == 0 {
		common.RespondEphemeral(s, i, "Both teams need at least one player mention.")
		return
	}
	for _, userID := range team2 {
		if common.Contains(team1, userID) {
			common.RespondEphemeral(s, i, fmt.Sprintf("<@%s> cannot be on both teams.", userID))
			return
		}
	}

	game, err := CreateGame(db, i.GuildID, i.ChannelID, team1, team2)
	if err != nil {
		respondEngineError(s, i, db, err, i.ChannelID)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Game **#%d** created.\n**Team 1:** %s\n**Team 2:** %s",
				game.GameID, mentionList(team1), mentionList(team2)),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// GameCommand resolves a game with a winning team and announces the point
// and rank movements.
func GameCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, cache *leaderboardService.Cache) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameNumber, winningTeam, lobbyChannelID, comment := resolveArgs(s, i)
	summary, err := DecideGame(db, i.GuildID, lobbyChannelID, gameNumber, winningTeam, i.Member.User.ID, comment)
	if err != nil {
		respondEngineError(s, i, db, err, lobbyChannelID)
		return
	}

	deltas := make(map[string]int)
	for _, out := range append(append([]PlayerOutcome{}, summary.Winners...), summary.Losers...) {
		deltas[out.Player.UserID] += out.Delta
	}
	if err := cache.ApplyDeltas(context.Background(), i.GuildID, deltas); err != nil {
		log.Printf("Leaderboard cache update failed for guild %s: %v", i.GuildID, err)
	}

	embed := resultEmbed(summary)
	announceResult(s, i, db, lobbyChannelID, embed)
}

// DrawCommand calls a draw on an undecided game.
func DrawCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameNumber, _, lobbyChannelID, comment := resolveArgs(s, i)
	summary, err := DrawGame(db, i.GuildID, lobbyChannelID, gameNumber, i.Member.User.ID, comment)
	if err != nil {
		respondEngineError(s, i, db, err, lobbyChannelID)
		return
	}

	embed := resultEmbed(summary)
	announceResult(s, i, db, lobbyChannelID, embed)
}

// UndoDrawCommand reverses a draw, restoring the draw counters.
func UndoDrawCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameNumber, _, lobbyChannelID, _ := resolveArgs(s, i)
	summary, err := UndoDraw(db, i.GuildID, lobbyChannelID, gameNumber)
	if err != nil {
		respondEngineError(s, i, db, err, lobbyChannelID)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("Draw on game #%d in <#%s> undone, draw counts restored.", summary.GameID, lobbyChannelID))
}

// CancelCommand voids a game that has not been decided.
func CancelCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameNumber, _, lobbyChannelID, comment := resolveArgs(s, i)
	summary, err := CancelGame(db, i.GuildID, lobbyChannelID, gameNumber, i.Member.User.ID, comment)
	if err != nil {
		respondEngineError(s, i, db, err, lobbyChannelID)
		return
	}

	embed := resultEmbed(summary)
	announceResult(s, i, db, lobbyChannelID, embed)
}

// UndoCommand asks for confirmation before running the undo engine; the
// button press lands in ConfirmUndo.
func UndoCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameNumber, _, lobbyChannelID, _ := resolveArgs(s, i)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Undo game **#%d** in <#%s>? Every point and rank change from its result will be reversed.", gameNumber, lobbyChannelID),
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: messageService.GetUndoConfirmButtons(lobbyChannelID, gameNumber),
				},
			},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// ConfirmUndo runs the undo engine after the confirmation button press.
func ConfirmUndo(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, cache *leaderboardService.Cache, lobbyChannelID string, gameNumber int) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	summary, err := UndoGame(db, i.GuildID, lobbyChannelID, gameNumber)
	if err != nil {
		respondEngineError(s, i, db, err, lobbyChannelID)
		return
	}

	if cache.Enabled() {
		if err := cache.Rebuild(context.Background(), db, i.GuildID); err != nil {
			log.Printf("Leaderboard cache rebuild failed for guild %s: %v", i.GuildID, err)
		}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Game #%d in <#%s> undone.", summary.GameID, lobbyChannelID),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// resolveArgs pulls the shared option set out of a game command: game
// number, winning team, lobby channel (defaults to the current channel) and
// comment.
func resolveArgs(s *discordgo.Session, i *discordgo.InteractionCreate) (gameNumber, winningTeam int, lobbyChannelID, comment string) {
	lobbyChannelID = i.ChannelID
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "game-number":
			gameNumber = int(opt.IntValue())
		case "winning-team":
			winningTeam = int(opt.IntValue())
		case "lobby":
			lobbyChannelID = opt.ChannelValue(s).ID
		case "comment":
			comment = opt.StringValue()
		}
	}
	return gameNumber, winningTeam, lobbyChannelID, comment
}

func respondEngineError(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, err error, lobbyChannelID string) {
	switch {
	case errors.Is(err, ErrLobbyNotFound):
		common.RespondEphemeral(s, i, "Channel is not a lobby.")
	case errors.Is(err, ErrGameNotFound):
		var lobby models.Lobby
		result := db.Where("guild_id = ? AND channel_id = ?", i.GuildID, lobbyChannelID).First(&lobby)
		if result.Error == nil {
			common.RespondEphemeral(s, i, fmt.Sprintf("Game not found. Most recent game is %d.", lobby.CurrentGameCount))
			return
		}
		common.RespondEphemeral(s, i, "Game not found.")
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidTeam):
		common.RespondEphemeral(s, i, strings.ToUpper(err.Error()[:1])+err.Error()[1:]+".")
	default:
		common.SendError(s, i, err, db)
	}
}

func mentionList(userIDs []string) string {
	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, " ")
}

func outcomeLines(outcomes []PlayerOutcome) string {
	if len(outcomes) == 0 {
		return "No registered players affected."
	}

	var sb strings.Builder
	for _, out := range outcomes {
		player := out.Player
		fmt.Fprintf(&sb, "%s **Points:** %d %s = %d",
			player.GetDisplayNameSafe(), player.Points-out.Delta, common.FormatDelta(out.Delta), player.Points)

		if out.Change != RankChangeNone {
			before := "N/A"
			if out.RankBefore != nil {
				before = "<@&" + out.RankBefore.RoleID + ">"
			}
			after := "N/A"
			if out.RankAfter != nil {
				after = "<@&" + out.RankAfter.RoleID + ">"
			}
			fmt.Fprintf(&sb, " **Rank:** %s => %s", before, after)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func resultEmbed(summary *GameSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Game #%d: %s", summary.GameID, summary.State),
		Color: 0x2ecc71,
	}

	switch summary.State {
	case models.StateDecided:
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Winning Team, Team %d", summary.WinningTeam), Value: outcomeLines(summary.Winners)},
			{Name: "Losing Team", Value: outcomeLines(summary.Losers)},
		}
	case models.StateDraw:
		embed.Color = 0x95a5a6
		embed.Description = fmt.Sprintf("Game called as a draw, %d player draw counts updated.", len(summary.Drawn))
	case models.StateCanceled:
		embed.Color = 0xe74c3c
		embed.Description = "Game canceled."
	}

	if summary.Comment != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Comment", Value: summary.Comment,
		})
	}
	return embed
}

// announceResult replies with the embed and mirrors it to the lobby's
// announcement channel when one is configured.
func announceResult(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, lobbyChannelID string, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	var lobby models.Lobby
	result := db.Where("guild_id = ? AND channel_id = ?", i.GuildID, lobbyChannelID).First(&lobby)
	if result.Error != nil || lobby.AnnouncementChannelID == nil {
		return
	}
	if *lobby.AnnouncementChannelID == i.ChannelID {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(*lobby.AnnouncementChannelID, embed); err != nil {
		log.Printf("Error announcing result to channel %s: %v", *lobby.AnnouncementChannelID, err)
	}
}

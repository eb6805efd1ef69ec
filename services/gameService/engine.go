package gameService

import (
	"errors"

	"lobbyRankBot/models"
	"lobbyRankBot/services/guildService"
	"lobbyRankBot/services/rankService"

	"gorm.io/gorm"
)

// The engine's public operations each run inside a single gorm transaction
// spanning the game-state read, all player mutations, and all ledger writes.
// The engine never owns the connection; callers hand in the *gorm.DB.

// CreateGame records a freshly formed game for a lobby, numbering it from the
// lobby's running counter. Rosters arrive as opaque user-id sets; how teams
// were picked is the caller's business.
func CreateGame(db *gorm.DB, guildID, lobbyChannelID string, team1, team2 []string) (*models.GameResult, error) {
	var game *models.GameResult
	err := db.Transaction(func(tx *gorm.DB) error {
		lobby, err := findLobby(tx, guildID, lobbyChannelID)
		if err != nil {
			return err
		}

		lobby.CurrentGameCount++
		if err := tx.Save(lobby).Error; err != nil {
			return err
		}

		game = &models.GameResult{
			GuildID: guildID,
			LobbyID: lobbyChannelID,
			GameID:  lobby.CurrentGameCount,
			State:   models.StateUndecided,
		}
		if err := tx.Create(game).Error; err != nil {
			return err
		}

		for team, roster := range map[int][]string{1: team1, 2: team2} {
			for _, userID := range roster {
				slot := models.GamePlayer{
					GuildID: guildID,
					LobbyID: lobbyChannelID,
					GameID:  game.GameID,
					UserID:  userID,
					Team:    team,
				}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// DecideGame resolves a game with a winning team: scores both rosters,
// appends one ledger entry per affected player, and stamps the game Decided.
func DecideGame(db *gorm.DB, guildID, lobbyChannelID string, gameNumber, winningTeam int, submitterID, comment string) (*GameSummary, error) {
	if winningTeam != 1 && winningTeam != 2 {
		return nil, ErrInvalidTeam
	}

	var summary *GameSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLobby(tx, guildID, lobbyChannelID); err != nil {
			return err
		}
		game, err := findGame(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		if err := checkTransition(game.State, ActionDecide); err != nil {
			return err
		}

		comp, err := guildService.GetOrCreateCompetition(tx, guildID)
		if err != nil {
			return err
		}
		table, err := rankService.LoadTable(tx, guildID)
		if err != nil {
			return err
		}

		team1, team2, err := loadRosters(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}

		winIDs, loseIDs := team1, team2
		if winningTeam == 2 {
			winIDs, loseIDs = team2, team1
		}

		winPlayers, err := loadPlayers(tx, guildID, winIDs)
		if err != nil {
			return err
		}
		losePlayers, err := loadPlayers(tx, guildID, loseIDs)
		if err != nil {
			return err
		}

		winList := scoreTeam(comp, table, true, winPlayers)
		loseList := scoreTeam(comp, table, false, losePlayers)

		for _, out := range winList {
			if err := persistOutcome(tx, out, true, lobbyChannelID, gameNumber); err != nil {
				return err
			}
		}
		for _, out := range loseList {
			if err := persistOutcome(tx, out, false, lobbyChannelID, gameNumber); err != nil {
				return err
			}
		}

		game.State = models.StateDecided
		game.WinningTeam = winningTeam
		game.SubmitterID = submitterID
		if comment != "" {
			game.Comment = &comment
		}
		if err := tx.Save(game).Error; err != nil {
			return err
		}

		summary = newSummary(game, comment)
		summary.Winners = winList
		summary.Losers = loseList
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DrawGame marks an undecided game as drawn and bumps every registered
// roster member's draw counter. No points move and no ledger entries exist
// for a draw.
func DrawGame(db *gorm.DB, guildID, lobbyChannelID string, gameNumber int, submitterID, comment string) (*GameSummary, error) {
	var summary *GameSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLobby(tx, guildID, lobbyChannelID); err != nil {
			return err
		}
		game, err := findGame(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		if err := checkTransition(game.State, ActionDraw); err != nil {
			return err
		}

		players, err := loadAllRosterPlayers(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}

		drawTeam(players)
		for _, player := range players {
			err := tx.Model(&models.Player{}).
				Where("id = ?", player.ID).
				UpdateColumn("draws", gorm.Expr("draws + ?", 1)).Error
			if err != nil {
				return err
			}
		}

		game.State = models.StateDraw
		game.SubmitterID = submitterID
		if comment != "" {
			game.Comment = &comment
		}
		if err := tx.Save(game).Error; err != nil {
			return err
		}

		summary = newSummary(game, comment)
		summary.Drawn = players
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// UndoDraw reverses a drawn game: decrements the draw counters and returns
// the game to Undecided. The symmetric counterpart of DrawGame.
func UndoDraw(db *gorm.DB, guildID, lobbyChannelID string, gameNumber int) (*GameSummary, error) {
	var summary *GameSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLobby(tx, guildID, lobbyChannelID); err != nil {
			return err
		}
		game, err := findGame(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		if err := checkTransition(game.State, ActionUndoDraw); err != nil {
			return err
		}

		players, err := loadAllRosterPlayers(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		for _, player := range players {
			// draws > 0 guards anyone who registered after the draw was
			// recorded; they have no count to restore.
			err := tx.Model(&models.Player{}).
				Where("id = ? AND draws > 0", player.ID).
				UpdateColumn("draws", gorm.Expr("draws - ?", 1)).Error
			if err != nil {
				return err
			}
		}

		game.State = models.StateUndecided
		if err := tx.Save(game).Error; err != nil {
			return err
		}

		summary = newSummary(game, "")
		summary.Drawn = players
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// CancelGame voids a game that never reached a result.
func CancelGame(db *gorm.DB, guildID, lobbyChannelID string, gameNumber int, submitterID, comment string) (*GameSummary, error) {
	var summary *GameSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLobby(tx, guildID, lobbyChannelID); err != nil {
			return err
		}
		game, err := findGame(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		if err := checkTransition(game.State, ActionCancel); err != nil {
			return err
		}

		game.State = models.StateCanceled
		game.SubmitterID = submitterID
		if comment != "" {
			game.Comment = &comment
		}
		if err := tx.Save(game).Error; err != nil {
			return err
		}

		summary = newSummary(game, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// UndoGame reverses a decided game from its ledger entries: restores every
// affected player's points and counters, removes the entries, and returns
// the game to Undecided. Entries whose player no longer exists are skipped
// without blocking the rest.
func UndoGame(db *gorm.DB, guildID, lobbyChannelID string, gameNumber int) (*GameSummary, error) {
	var summary *GameSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLobby(tx, guildID, lobbyChannelID); err != nil {
			return err
		}
		game, err := findGame(tx, guildID, lobbyChannelID, gameNumber)
		if err != nil {
			return err
		}
		if err := checkTransition(game.State, ActionUndo); err != nil {
			return err
		}

		var updates []models.ScoreUpdate
		err = tx.Where("guild_id = ? AND channel_id = ? AND game_id = ?",
			guildID, lobbyChannelID, gameNumber).Find(&updates).Error
		if err != nil {
			return err
		}

		for _, upd := range updates {
			var player models.Player
			err := tx.Where("guild_id = ? AND user_id = ?", guildID, upd.UserID).First(&player).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := persistReversal(tx, player.ID, upd); err != nil {
				return err
			}

			upd.ModifyAmount = 0
			if err := tx.Save(&upd).Error; err != nil {
				return err
			}
			if err := tx.Delete(&upd).Error; err != nil {
				return err
			}
		}

		game.State = models.StateUndecided
		if err := tx.Save(game).Error; err != nil {
			return err
		}

		summary = newSummary(game, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func newSummary(game *models.GameResult, comment string) *GameSummary {
	if comment == "" && game.Comment != nil {
		comment = *game.Comment
	}
	return &GameSummary{
		GuildID:     game.GuildID,
		LobbyID:     game.LobbyID,
		GameID:      game.GameID,
		State:       game.State,
		WinningTeam: game.WinningTeam,
		SubmitterID: game.SubmitterID,
		Comment:     comment,
	}
}

func findLobby(tx *gorm.DB, guildID, channelID string) (*models.Lobby, error) {
	var lobby models.Lobby
	err := tx.Where("guild_id = ? AND channel_id = ?", guildID, channelID).First(&lobby).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLobbyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lobby, nil
}

func findGame(tx *gorm.DB, guildID, lobbyChannelID string, gameNumber int) (*models.GameResult, error) {
	var game models.GameResult
	err := tx.Where("guild_id = ? AND lobby_id = ? AND game_id = ?",
		guildID, lobbyChannelID, gameNumber).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func loadRosters(tx *gorm.DB, guildID, lobbyChannelID string, gameNumber int) (team1, team2 []string, err error) {
	var slots []models.GamePlayer
	err = tx.Where("guild_id = ? AND lobby_id = ? AND game_id = ?",
		guildID, lobbyChannelID, gameNumber).Find(&slots).Error
	if err != nil {
		return nil, nil, err
	}
	for _, slot := range slots {
		if slot.Team == 1 {
			team1 = append(team1, slot.UserID)
		} else {
			team2 = append(team2, slot.UserID)
		}
	}
	return team1, team2, nil
}

// loadPlayers resolves roster user ids to player aggregates. Unregistered
// members are silently excluded from scoring.
func loadPlayers(tx *gorm.DB, guildID string, userIDs []string) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(userIDs))
	for _, userID := range userIDs {
		var player models.Player
		err := tx.Where("guild_id = ? AND user_id = ?", guildID, userID).First(&player).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

func loadAllRosterPlayers(tx *gorm.DB, guildID, lobbyChannelID string, gameNumber int) ([]*models.Player, error) {
	team1, team2, err := loadRosters(tx, guildID, lobbyChannelID, gameNumber)
	if err != nil {
		return nil, err
	}
	return loadPlayers(tx, guildID, append(team1, team2...))
}

// persistOutcome writes a scored player back as atomic increments so two
// games resolving for the same player cannot lose an update, then appends
// the ledger entry for the game.
func persistOutcome(tx *gorm.DB, out PlayerOutcome, win bool, lobbyChannelID string, gameNumber int) error {
	cols := map[string]interface{}{
		"points": gorm.Expr("points + ?", out.Delta),
	}
	if win {
		cols["wins"] = gorm.Expr("wins + ?", 1)
	} else {
		cols["losses"] = gorm.Expr("losses + ?", 1)
	}
	err := tx.Model(&models.Player{}).Where("id = ?", out.Player.ID).UpdateColumns(cols).Error
	if err != nil {
		return err
	}

	upd := models.ScoreUpdate{
		GuildID:      out.Player.GuildID,
		ChannelID:    lobbyChannelID,
		GameID:       gameNumber,
		UserID:       out.Player.UserID,
		ModifyAmount: out.Delta,
	}
	return tx.Create(&upd).Error
}

func persistReversal(tx *gorm.DB, playerID uint, upd models.ScoreUpdate) error {
	cols := map[string]interface{}{
		"points": gorm.Expr("points - ?", upd.ModifyAmount),
	}
	if upd.ModifyAmount < 0 {
		cols["losses"] = gorm.Expr("losses - ?", 1)
	} else {
		cols["wins"] = gorm.Expr("wins - ?", 1)
	}
	return tx.Model(&models.Player{}).Where("id = ?", playerID).UpdateColumns(cols).Error
}

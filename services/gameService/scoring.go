package gameService

import (
	"lobbyRankBot/models"
	"lobbyRankBot/services/rankService"
)

// scoreTeam applies a win or loss to every player on a roster, mutating the
// in-memory aggregates and returning one outcome per player. Callers are
// expected to have already dropped roster members without a Player row.
//
// Win: delta is the pre-update rank's win modifier, falling back to the
// competition default. A RankUp is reported when a qualifying rank appears
// where none existed, or the qualifying role changed.
//
// Loss: the loss modifier is a positive magnitude to subtract; the recorded
// delta is negative. A DeRank is reported when the player's points fell below
// the threshold of the rank they held going in.
func scoreTeam(comp *models.Competition, table *rankService.Table, win bool, players []*models.Player) []PlayerOutcome {
	outcomes := make([]PlayerOutcome, 0, len(players))
	for _, player := range players {
		before := table.CurrentRank(player.Points)

		var delta int
		change := RankChangeNone
		var after *models.Rank

		if win {
			delta = comp.DefaultWinModifier
			if before != nil && before.WinModifier != nil {
				delta = *before.WinModifier
			}
			player.Points += delta
			player.Wins++
			after = table.CurrentRank(player.Points)
			if after != nil && (before == nil || after.RoleID != before.RoleID) {
				change = RankUp
			}
		} else {
			magnitude := comp.DefaultLossModifier
			if before != nil && before.LossModifier != nil {
				magnitude = *before.LossModifier
			}
			if magnitude < 0 {
				magnitude = -magnitude
			}
			player.Points -= magnitude
			player.Losses++
			delta = -magnitude
			after = before
			if before != nil && player.Points < before.Points {
				change = DeRank
				after = table.CurrentRank(player.Points)
			}
		}

		outcomes = append(outcomes, PlayerOutcome{
			Player:     player,
			Delta:      delta,
			RankBefore: before,
			Change:     change,
			RankAfter:  after,
		})
	}
	return outcomes
}

// drawTeam bumps the draw counter for a roster. No points move and no ledger
// entries are written for a draw.
func drawTeam(players []*models.Player) {
	for _, player := range players {
		player.Draws++
	}
}

// reverseUpdate unwinds one ledger entry against its player aggregate.
// Subtracting the signed delta reverses both wins and losses; ranks are not
// recomputed because rank display always derives from current points.
func reverseUpdate(player *models.Player, upd models.ScoreUpdate) {
	if upd.ModifyAmount < 0 {
		player.Losses--
	} else {
		player.Wins--
	}
	player.Points -= upd.ModifyAmount
}

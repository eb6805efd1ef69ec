package gameService

import (
	"testing"

	"lobbyRankBot/models"
	"lobbyRankBot/services/rankService"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func intPtr(v int) *int { return &v }

func testComp(win, loss int) *models.Competition {
	return &models.Competition{GuildID: "guild1", DefaultWinModifier: win, DefaultLossModifier: loss}
}

func testTable(thresholds ...int) *rankService.Table {
	ranks := make([]models.Rank, 0, len(thresholds))
	for idx, points := range thresholds {
		ranks = append(ranks, models.Rank{
			GuildID: "guild1",
			RoleID:  string(rune('a' + idx)),
			Points:  points,
		})
	}
	return rankService.NewTable(ranks)
}

func testPlayer(userID string, points int) *models.Player {
	return &models.Player{GuildID: "guild1", UserID: userID, Points: points}
}

func TestScoreTeamRankThresholds(t *testing.T) {
	tests := []struct {
		name           string
		points         int
		win            bool
		expectedPoints int
		expectedDelta  int
		expectedChange RankChange
	}{
		{
			name:           "win crossing a threshold ranks up",
			points:         9,
			win:            true,
			expectedPoints: 11,
			expectedDelta:  2,
			expectedChange: RankUp,
		},
		{
			name:           "loss dropping below held threshold deranks",
			points:         11,
			win:            false,
			expectedPoints: 9,
			expectedDelta:  -2,
			expectedChange: DeRank,
		},
		{
			name:           "win within a tier is no change",
			points:         15,
			win:            true,
			expectedPoints: 17,
			expectedDelta:  2,
			expectedChange: RankChangeNone,
		},
		{
			name:           "loss within a tier is no change",
			points:         15,
			win:            false,
			expectedPoints: 13,
			expectedDelta:  -2,
			expectedChange: RankChangeNone,
		},
		{
			name:           "first win from zero gains the bottom rank",
			points:         0,
			win:            true,
			expectedPoints: 2,
			expectedDelta:  2,
			expectedChange: RankUp,
		},
		{
			name:           "loss while holding no rank is no change",
			points:         0,
			win:            false,
			expectedPoints: -2,
			expectedDelta:  -2,
			expectedChange: RankChangeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := testComp(2, 2)
			table := testTable(0, 10, 25)
			player := testPlayer("user1", tt.points)

			outcomes := scoreTeam(comp, table, tt.win, []*models.Player{player})
			if len(outcomes) != 1 {
				t.Fatalf("expected 1 outcome, got %d", len(outcomes))
			}

			out := outcomes[0]
			assertEqual(t, tt.expectedPoints, player.Points, "points")
			assertEqual(t, tt.expectedDelta, out.Delta, "delta")
			assertEqual(t, tt.expectedChange, out.Change, "rank change")
			if tt.win {
				assertEqual(t, 1, player.Wins, "wins")
				assertEqual(t, 0, player.Losses, "losses")
			} else {
				assertEqual(t, 0, player.Wins, "wins")
				assertEqual(t, 1, player.Losses, "losses")
			}
		})
	}
}

func TestScoreTeamRankModifierOverrides(t *testing.T) {
	comp := testComp(10, 5)
	table := rankService.NewTable([]models.Rank{
		{GuildID: "guild1", RoleID: "veteran", Points: 0, WinModifier: intPtr(3), LossModifier: intPtr(7)},
	})

	t.Run("win uses the rank override", func(t *testing.T) {
		player := testPlayer("user1", 20)
		out := scoreTeam(comp, table, true, []*models.Player{player})[0]
		assertEqual(t, 3, out.Delta, "delta")
		assertEqual(t, 23, player.Points, "points")
	})

	t.Run("loss uses the rank override", func(t *testing.T) {
		player := testPlayer("user1", 20)
		out := scoreTeam(comp, table, false, []*models.Player{player})[0]
		assertEqual(t, -7, out.Delta, "delta")
		assertEqual(t, 13, player.Points, "points")
	})

	t.Run("unranked player uses competition defaults", func(t *testing.T) {
		player := testPlayer("user1", 0)
		out := scoreTeam(comp, table, false, []*models.Player{player})[0]
		assertEqual(t, -5, out.Delta, "delta")
		assertEqual(t, -5, player.Points, "points")
	})
}

func TestScoreTeamNegativeLossModifierIsMagnitude(t *testing.T) {
	comp := testComp(10, 5)
	table := rankService.NewTable([]models.Rank{
		{GuildID: "guild1", RoleID: "odd", Points: 0, LossModifier: intPtr(-4)},
	})

	player := testPlayer("user1", 10)
	out := scoreTeam(comp, table, false, []*models.Player{player})[0]
	assertEqual(t, -4, out.Delta, "delta")
	assertEqual(t, 6, player.Points, "points")
}

func TestScoreTeamNoRanks(t *testing.T) {
	comp := testComp(3, 3)
	table := rankService.NewTable(nil)

	player := testPlayer("user1", 0)
	out := scoreTeam(comp, table, true, []*models.Player{player})[0]
	assertEqual(t, 3, out.Delta, "delta")
	assertEqual(t, RankChangeNone, out.Change, "rank change")
	if out.RankBefore != nil || out.RankAfter != nil {
		t.Error("expected no ranks with an empty table")
	}
}

func TestDrawTeamOnlyBumpsDraws(t *testing.T) {
	playerA := testPlayer("a", 10)
	playerB := testPlayer("b", -4)

	drawTeam([]*models.Player{playerA, playerB})

	for _, player := range []*models.Player{playerA, playerB} {
		assertEqual(t, 1, player.Draws, "draws for "+player.UserID)
		assertEqual(t, 0, player.Wins, "wins for "+player.UserID)
		assertEqual(t, 0, player.Losses, "losses for "+player.UserID)
	}
	assertEqual(t, 10, playerA.Points, "points untouched")
	assertEqual(t, -4, playerB.Points, "points untouched")
}

package rankService

import (
	"sort"

	"lobbyRankBot/models"

	"gorm.io/gorm"
)

// Table is a guild's rank tiers ordered ascending by point threshold. A
// player holds the rank with the highest threshold strictly below their
// points, found here with a binary floor lookup.
type Table struct {
	ranks []models.Rank
}

func NewTable(ranks []models.Rank) *Table {
	sorted := make([]models.Rank, len(ranks))
	copy(sorted, ranks)
	// Secondary sort on role id keeps duplicate thresholds deterministic
	// within a single resolution call.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points < sorted[j].Points
		}
		return sorted[i].RoleID < sorted[j].RoleID
	})
	return &Table{ranks: sorted}
}

// LoadTable reads all ranks for a guild and builds the lookup table.
func LoadTable(db *gorm.DB, guildID string) (*Table, error) {
	var ranks []models.Rank
	if err := db.Where("guild_id = ?", guildID).Find(&ranks).Error; err != nil {
		return nil, err
	}
	return NewTable(ranks), nil
}

// CurrentRank returns the rank held at the given point total, or nil when no
// threshold is strictly below it.
func (t *Table) CurrentRank(points int) *models.Rank {
	idx := sort.Search(len(t.ranks), func(i int) bool {
		return t.ranks[i].Points >= points
	})
	if idx == 0 {
		return nil
	}
	return &t.ranks[idx-1]
}

// Ranks returns the tiers in ascending threshold order.
func (t *Table) Ranks() []models.Rank {
	return t.ranks
}

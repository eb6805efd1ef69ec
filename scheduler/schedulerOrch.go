package scheduler

import (
	"fmt"

	"lobbyRankBot/models"
	"lobbyRankBot/scheduler/scheduler_jobs"
	"lobbyRankBot/services/leaderboardService"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(s *discordgo.Session, db *gorm.DB, cache *leaderboardService.Cache) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 0 */1 * * *", func() {
		// Every hour
		err := scheduler_jobs.CheckStaleGames(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 30 */1 * * *", func() {
		// Every hour, offset from the stale-game check
		err := scheduler_jobs.RebuildLeaderboards(db, cache)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			GuildID: "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}

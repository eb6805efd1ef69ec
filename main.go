package main

import (
	"log"
	"os"
	"strings"

	"lobbyRankBot/models"
	"lobbyRankBot/scheduler"
	"lobbyRankBot/services"
	"lobbyRankBot/services/leaderboardService"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB
var cache *leaderboardService.Cache

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	connString := os.Getenv("MYSQL_URL")
	if connString == "" {
		log.Fatalf("MYSQL_URL not set in environment variables")
	}

	u, err := dburl.Parse(connString)
	if err != nil {
		log.Fatalf("Error parsing MYSQL_URL: %v", err)
	}
	dsn := u.DSN
	if strings.Contains(dsn, "?") {
		dsn += "&charset=utf8mb4&parseTime=True&loc=Local"
	} else {
		dsn += "?charset=utf8mb4&parseTime=True&loc=Local"
	}

	db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Competition{},
		&models.Player{},
		&models.Rank{},
		&models.Lobby{},
		&models.GameResult{},
		&models.GamePlayer{},
		&models.ScoreUpdate{},
		&models.ErrorLog{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Error parsing REDIS_URL: %v", err)
		}
		cache = leaderboardService.NewCache(redis.NewClient(opts))
	}
}

func main() {
	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatalf("DISCORD_BOT_TOKEN not set in environment variables")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	dg.AddHandler(interactionCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Tracking ranked games!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	err = dg.Open()
	if err != nil {
		log.Fatalf("Error opening Discord session: %v", err)
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatalf("Error registering commands: %v", err)
	}

	scheduler.SetupCron(dg, db, cache)

	log.Println("Bot is running. Press CTRL+C to exit.")
	select {}
}

func interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		services.HandleSlashCommand(s, i, db, cache)
	case discordgo.InteractionMessageComponent:
		services.HandleComponentInteraction(s, i, db, cache)
	}
}

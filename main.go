package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/newsroom-backend/api"
	"github.com/rpupo63/newsroom-backend/assets"
	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/config"
	"github.com/rpupo63/newsroom-backend/content"
	"github.com/rpupo63/newsroom-backend/database"
	"github.com/rpupo63/newsroom-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "newsroom"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "newsroom"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// Trusted asset store
	assetStore, err := assets.NewS3Store(
		context.Background(),
		config.GetString(c, "ASSET_BUCKET", ""),
		config.GetStringSlice(c, "TRUSTED_ASSET_HOSTS", nil),
	)
	if err != nil {
		fmt.Printf("Error initializing asset store: %v\n", err)
		os.Exit(1)
	}

	sanitizer := content.NewSanitizer(content.Config{
		AllowedTags:  config.GetStringSlice(c, "SANITIZER_ALLOWED_TAGS", nil),
		AllowedAttrs: config.GetStringSlice(c, "SANITIZER_ALLOWED_ATTRS", nil),
	})

	issuer := auth.NewTokenIssuer(
		config.GetString(c, "JWT_SECRET", "your-secret-key"),
		time.Duration(config.GetInt(c, "JWT_TTL_HOURS", 24))*time.Hour,
	)

	deps := api.Dependencies{
		Articles:   services.NewArticleService(currentDB.ArticleRepo(), currentDB.CategoryRepo(), assetStore, sanitizer),
		Categories: services.NewCategoryService(currentDB.CategoryRepo()),
		Users:      services.NewUserService(currentDB.UserRepo(), issuer),
		UserStore:  currentDB.UserRepo(),
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(deps, issuer)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

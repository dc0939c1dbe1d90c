package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atelier/cmd"
	"atelier/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}

	startWebServer(&app, jobManager.StopAll, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A missing .env file is fine in deployments where the environment is
	// populated by the orchestrator.
	_ = godotenv.Load(".env")

	return cmd.Config{
		Environment: envOr("APP_ENV", "development"),
		HTTPPort:    envOr("HTTP_PORT", "8080"),

		DBDriver:   envOr("DB_DRIVER", "postgres"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOr("DB_NAME", "atelier"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
		SQLitePath: envOr("SQLITE_PATH", "atelier.db"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envOr("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPFromName: envOr("SMTP_FROM_NAME", "Atelier"),
		SMTPStartTLS: os.Getenv("SMTP_STARTTLS") == "true",

		MediaDir:       envOr("MEDIA_DIR", "media"),
		MediaURLPrefix: envOr("MEDIA_URL_PREFIX", "https://media.localhost.localdomain/videos"),

		SellerName:    envOr("SELLER_NAME", "Atelier"),
		SellerAddress: os.Getenv("SELLER_ADDRESS"),
		SellerVAT:     os.Getenv("SELLER_VAT"),
		SellerEmail:   os.Getenv("SELLER_EMAIL"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch configs.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			configs.DBHost, configs.DBPort, configs.DBUser,
			configs.DBPassword, configs.DBName, configs.DBSslMode)
		dialector = pgdriver.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(configs.SQLitePath)
	default:
		log.Fatalf("Unknown DB_DRIVER %q, expected postgres or sqlite", configs.DBDriver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, stopJobs func(), port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}

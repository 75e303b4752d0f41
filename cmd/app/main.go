package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"procurement/cmd"
	httpin "procurement/internal/adapters/in/http"
	kafkaout "procurement/internal/adapters/out/kafka"
	"procurement/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file loaded, using the process environment", "error", err)
	}
	configs := getConfigs()

	gormDB, err := gorm.Open(gormpostgres.Open(dsn(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = orderrepo.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	writer := kafkaout.NewWriter(configs.KafkaBrokers, configs.KafkaNotificationTopic)
	app, err := cmd.NewCompositionRoot(configs, gormDB, writer, prometheus.DefaultRegisterer, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	e, err := newWebServer(app)
	if err != nil {
		log.Fatalf("Error building web server: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		jobManager.StopAll()
		return errors.Join(e.Shutdown(shutdownCtx), app.Close())
	})

	if err = g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func getConfigs() cmd.Config {
	minAge, err := time.ParseDuration(envOrDefault("REMINDER_MIN_AGE", "24h"))
	if err != nil {
		log.Fatalf("Invalid REMINDER_MIN_AGE: %v", err)
	}

	return cmd.Config{
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOrDefault("DB_SSLMODE", "disable"),
		KafkaBrokers:           strings.Split(envOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaNotificationTopic: envOrDefault("KAFKA_NOTIFICATION_TOPIC", "procurement.notifications"),
		ReminderSchedule:       envOrDefault("REMINDER_SCHEDULE", "0 0 */4 * * *"),
		ReminderMinAge:         minAge,
	}
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func dsn(c cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func newWebServer(app *cmd.CompositionRoot) (*echo.Echo, error) {
	server, err := app.CreateServer()
	if err != nil {
		return nil, err
	}

	doc, err := httpin.LoadSpec()
	if err != nil {
		return nil, err
	}
	validator, err := httpin.RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.ErrorHandler(e)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	httpin.RegisterHandlers(e, server)
	return e, nil
}

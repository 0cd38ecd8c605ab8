package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/sahayuk/sahayuk/internal/auth"
	config "github.com/sahayuk/sahayuk/internal/configs"
	httpapi "github.com/sahayuk/sahayuk/internal/http"
	"github.com/sahayuk/sahayuk/internal/jobs"
	"github.com/sahayuk/sahayuk/internal/payments"
	"github.com/sahayuk/sahayuk/internal/quota"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
	"github.com/sahayuk/sahayuk/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the marketplace HTTP API, notification workers and maintenance jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		userRepo := repository.NewUserRepository(database)
		profileRepo := repository.NewProfileRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		bidRepo := repository.NewBidRepository(database)
		chatRepo := repository.NewChatRepository(database)
		notificationRepo := repository.NewNotificationRepository(database)
		reviewRepo := repository.NewReviewRepository(database)
		subscriberRepo := repository.NewSubscriberRepository(database)

		var quotaCounter quota.Counter
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			quotaCounter = quota.NewRedisCounter(redisClient)
		} else {
			log.Println("REDIS_ADDR not set, using in-process quota counter")
			quotaCounter = quota.NewMemoryCounter()
		}

		notifier := services.NewNotifier(
			notificationRepo,
			taskRepo,
			profileRepo,
			cfg.NotifierWorkers,
			cfg.NotifierQueueSize,
		)

		tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
		gateway := payments.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

		handler := httpapi.NewHandler(
			services.NewAuthService(userRepo, profileRepo, tokens),
			services.NewProfileService(profileRepo),
			services.NewTaskService(taskRepo, bidRepo, profileRepo, quotaCounter, notifier),
			services.NewBidService(database, notifier),
			services.NewChatService(chatRepo, taskRepo, bidRepo, services.NewUnreadBroadcaster()),
			services.NewNotificationService(notificationRepo),
			services.NewReviewService(reviewRepo, taskRepo),
			services.NewCompletionService(database, notifier),
			services.NewSubscriptionService(gateway, cfg.RazorpayWebhookSecret, userRepo, profileRepo, subscriberRepo),
		)

		scheduler := jobs.NewScheduler(taskRepo, profileRepo)
		if err := scheduler.Register(cfg.ExpirySweepSpec, cfg.QuotaResetSpec); err != nil {
			log.Fatalf("invalid cron spec: %v", err)
		}
		scheduler.Start()

		e := echo.New()
		httpapi.Register(e, handler, tokens, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		scheduler.Stop(shutdownCtx)
		notifier.Shutdown(shutdownCtx)

		log.Println("HTTP server and workers shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

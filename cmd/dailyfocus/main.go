package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-focus/internal/bot"
	"daily-focus/internal/config"
	"daily-focus/internal/handlers"
	"daily-focus/internal/repository"
	"daily-focus/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	blockRepo := repository.NewBlockRepository(db)

	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, blockRepo, cfg.DayOffsetHours)
	scheduleSvc := service.NewScheduleService(blockRepo, cfg.DayOffsetHours)
	analyticsSvc := service.NewAnalyticsService(blockRepo, taskRepo, categoryRepo)

	api := handlers.New(categorySvc, taskSvc, scheduleSvc, analyticsSvc)

	if cfg.DigestEnabled() {
		notifier, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}
		reportSvc := service.NewReportService(analyticsSvc, cfg.DayOffsetHours)

		scheduler := service.NewSchedulerService(time.Local)
		sendDigest := func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			text, err := reportSvc.DailyDigest(jobCtx, time.Now())
			if err != nil {
				log.Printf("digest: %v", err)
				return
			}
			if err := notifier.SendDigest(text); err != nil {
				log.Printf("digest: %v", err)
			}
		}
		if cfg.ReportTime != "" {
			if _, err := scheduler.ScheduleDaily(cfg.ReportTime, sendDigest); err != nil {
				log.Fatalf("schedule daily digest: %v", err)
			}
		}
		if cfg.ReportInterval > 0 {
			if _, err := scheduler.ScheduleInterval(cfg.ReportInterval, sendDigest); err != nil {
				log.Fatalf("schedule digest interval: %v", err)
			}
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Daily focus server listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

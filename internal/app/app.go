package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"tasktrack/internal/config"
	"tasktrack/internal/handlers"
	"tasktrack/internal/middleware"
	"tasktrack/internal/repositories"
	"tasktrack/internal/routes"
	"tasktrack/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database: ", err)
	}

	// === Repos / Services / Handlers ===
	taskRepo := repositories.NewTaskRepository(db)
	taskService := services.NewTaskService(taskRepo)
	taskHandler := handlers.NewTaskHandler(taskService)

	// === Reminders ===
	if cfg.Reminders.Enabled {
		emailService := services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
		reminder := services.NewReminderService(
			taskRepo,
			emailService,
			cfg.Reminders.NotifyTo,
			time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
			time.Duration(cfg.Reminders.WindowHours)*time.Hour,
		)
		go reminder.Run(context.Background())
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.TraceID())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, taskHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/config"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/database"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/handler"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/middleware"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/repository"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/router"
	queue_publisher "github.com/debarnabdas007/Sticky-Notes-Pro/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	var notesCache *middleware.NotesCache
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			notesCache = middleware.NewNotesCache(rdb, cacheCfg, logger)
		} else {
			logger.Warn("redis unavailable, note list cache disabled")
		}
	}

	authHandler := handler.NewAuthHandler(cfg, users)
	noteHandler := handler.NewNoteHandler(notes)
	noteHandler.Cache = notesCache
	if cfg.AMQPURL != "" {
		noteHandler.Publish = queue_publisher.NewPublisher(cfg.AMQPURL, logger).PublishNoteActivity
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterUsers(e, authHandler, cfg.JWTSecret, users)
	router.RegisterNotes(e, noteHandler, cfg.JWTSecret, users, notesCache)

	addr := ":" + cfg.Port
	go func() {
		logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			logger.Infof("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/infra"
	"backoffice/internal/repository"
	"backoffice/internal/router"
	"backoffice/internal/service"
	"backoffice/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title API Back-office
// @version 1.0
// @description API d'administration : catalogue, contenus, imports fournisseurs, commandes.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	mediaStore, err := infra.NewDiskStorage(cfg.MediaStoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	feedClient := infra.NewFeedClient(time.Duration(cfg.FeedTimeoutSeconds) * time.Second)
	feedCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// Repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewCodeHistoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	jobRepo := repository.NewImportJobRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Category cache: in-process TTL cache invalidated across instances
	// through a Redis pub/sub channel.
	categoryCache := service.NewCategoryCache(rdb, time.Duration(cfg.CategoryCacheTTLSeconds)*time.Second)
	categoryCache.Listen(rootCtx)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, categoryCache)
	productSvc := service.NewProductService(productRepo, categoryRepo, historyRepo)
	supplierSvc := service.NewSupplierService(supplierRepo, productRepo, jobRepo, dispatcher)
	bannerSvc := service.NewBannerService(bannerRepo)
	mediaSvc := service.NewMediaService(mediaRepo, mediaStore, cfg.MediaMaxSizeMB)
	userSvc := service.NewUserService(userRepo)
	orderSvc := service.NewOrderService(orderRepo, cfg.InvoiceStoragePath)

	// Background workers
	handlers := &worker.WorkerHandlers{
		Import: worker.NewImportWorker(jobRepo, supplierRepo, productRepo, feedClient, feedCB, rdb, dispatcher),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(rootCtx, rdb, handlers, cfg.WorkerPoolSize)

	engine := router.New(router.Deps{
		Cfg:        cfg,
		DB:         db,
		Redis:      rdb,
		FeedCB:     feedCB,
		MediaStore: mediaStore,
		Auth:       handler.NewAuthHandler(authSvc),
		Categories: handler.NewCategoryHandler(categorySvc),
		Products:   handler.NewProductHandler(productSvc),
		Suppliers:  handler.NewSupplierHandler(supplierSvc),
		ImportJobs: handler.NewImportJobHandler(supplierSvc),
		Banners:    handler.NewBannerHandler(bannerSvc),
		Media:      handler.NewMediaHandler(mediaSvc),
		Users:      handler.NewUserHandler(userSvc),
		Orders:     handler.NewOrderHandler(orderSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

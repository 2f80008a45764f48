package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/orderdesk/order-api/internal/config"
	"github.com/orderdesk/order-api/internal/db"
	"github.com/orderdesk/order-api/internal/es"
	"github.com/orderdesk/order-api/internal/events"
	"github.com/orderdesk/order-api/internal/httpserver"
	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/service"
)

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.DatabaseURL, "DATABASE_URL")

	logger := logging.New(configuration.LogLevel)

	gormDB, err := db.Open(context.Background(), configuration.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("database migrate error: %v", err)
	}

	var producer *events.Producer
	if configuration.KafkaAddress != "" {
		producer = events.NewProducer([]string{configuration.KafkaAddress}, configuration.KafkaTopic)
	}

	searchHandler := &httpserver.SearchHandler{Index: configuration.ES_INDEX}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler.ES = client
	}

	accounts := &repo.AccountRepo{DB: gormDB}
	catalog := &repo.CatalogRepo{DB: gormDB}
	orders := &repo.OrderRepo{DB: gormDB}
	analytics := &repo.AnalyticsRepo{DB: gormDB}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		UserHandler:     &httpserver.UserHandler{Svc: &service.AccountService{Repo: accounts}},
		CategoryHandler: &httpserver.CategoryHandler{Svc: &service.CatalogService{Repo: catalog}},
		ProductHandler: &httpserver.ProductHandler{
			Svc:   &service.CatalogService{Repo: catalog},
			ES:    searchHandler.ES,
			Index: configuration.ES_INDEX,
		},
		OrderHandler: &httpserver.OrderHandler{
			Svc:      &service.OrderService{Orders: orders, Accounts: accounts, Catalog: catalog},
			Producer: producer,
		},
		AnalyticsHandler: &httpserver.AnalyticsHandler{Svc: &service.AnalyticsService{Repo: analytics}},
		SearchHandler:    searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}

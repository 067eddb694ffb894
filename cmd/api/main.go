package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
	"github.com/guedes-jr/delizandra-storefront/internal/config"
	"github.com/guedes-jr/delizandra-storefront/internal/db"
	"github.com/guedes-jr/delizandra-storefront/internal/httpserver"
	cartrepo "github.com/guedes-jr/delizandra-storefront/internal/repository/cart"
	cartsvc "github.com/guedes-jr/delizandra-storefront/internal/service/cart"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var dbpool *pgxpool.Pool
	var repo cartrepo.Repository
	if cfg.DBConnString != "" {
		dbpool, err = db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
		repo = cartrepo.NewPostgres(dbpool)
	} else {
		logger.Printf("no DB_DSN set, carts are kept in memory only")
		repo = cartrepo.NewMemory()
	}

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, nil)
	cartService := cartsvc.New(repo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog: catalogClient,
		CartSvc: cartService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (catalog %s)", cfg.HTTPAddr, cfg.CatalogBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

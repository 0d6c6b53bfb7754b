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

	"github.com/groupwatch/movienight/internal/catalog"
	"github.com/groupwatch/movienight/internal/config"
	httpserver "github.com/groupwatch/movienight/internal/http"
	"github.com/groupwatch/movienight/internal/recommend"
	"github.com/groupwatch/movienight/internal/repository"
	"github.com/groupwatch/movienight/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[movienight] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, store.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime: time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:     time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("connect rating store: %v", err)
	}
	defer st.Close()

	catalogClient, err := catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogAPIKey, time.Duration(cfg.CatalogTimeoutSecs)*time.Second, logger)
	if err != nil {
		log.Fatalf("init catalog client: %v", err)
	}

	repo := repository.New(st)
	engine := recommend.NewEngine(repo.Ratings, catalogClient, recommend.Params{
		TopGenres:          cfg.EngineTopGenres,
		GenreWeight:        cfg.EngineGenreWeight,
		VoteWeight:         1 - cfg.EngineGenreWeight,
		PageSize:           cfg.EnginePageSize,
		AcclaimedVoteFloor: cfg.EngineAcclaimedFloor,
	}, logger)

	server := httpserver.New(cfg, st, engine, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prdash/internal/app/config"
	httpapi "prdash/internal/app/http"
	"prdash/internal/app/http/handler"
	"prdash/internal/domain/dataset"
	"prdash/internal/domain/view"
	"prdash/internal/infrastructure/alias"
	"prdash/internal/infrastructure/async"
	"prdash/internal/infrastructure/csvstore"
	"prdash/internal/infrastructure/logging"
	"prdash/internal/infrastructure/render"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	catalog, err := csvstore.LoadCatalog(cfg.DatasetsFile)
	if err != nil {
		log.Fatal("datasets config error", zap.Error(err))
	}

	aliases := alias.Map{}
	if cfg.AliasesFile != "" {
		aliases, err = alias.Load(cfg.AliasesFile)
		if err != nil {
			log.Fatal("aliases config error", zap.Error(err))
		}
	}

	store, err := csvstore.Load(cfg.DataFile, csvstore.Options{
		Catalog:      catalog,
		BotLogins:    cfg.BotLogins,
		MaxAdditions: cfg.MaxAdditions,
	})
	if err != nil {
		log.Fatal("data load error", zap.Error(err))
	}

	records, _ := store.All(ctx)
	log.Info("data loaded",
		zap.String("file", cfg.DataFile),
		zap.Int("records", len(records)),
	)

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventWorkers, log)
	defer eventBus.Close()

	datasetSvc := dataset.NewService(store)
	viewSvc := view.NewService(store, aliases, eventBus)

	h := handler.New(datasetSvc, viewSvc, render.NewRenderer(), log)
	h.DefaultBucket = view.Bucket(cfg.Bucket)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

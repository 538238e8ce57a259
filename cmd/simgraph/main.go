// Command simgraph runs the similarity graph server: REST API, websocket
// event stream, and the embeddings ingest pipeline.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simgraphai/simgraph/internal/api"
	"github.com/simgraphai/simgraph/internal/config"
	"github.com/simgraphai/simgraph/internal/db"
	"github.com/simgraphai/simgraph/internal/db/migrations"
	"github.com/simgraphai/simgraph/internal/dbpool"
	"github.com/simgraphai/simgraph/internal/imagedir"
	"github.com/simgraphai/simgraph/internal/ingest"
	"github.com/simgraphai/simgraph/internal/service"
	"github.com/simgraphai/simgraph/internal/store"
	"github.com/simgraphai/simgraph/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	nodes := store.NewNodeStore(base)
	edges := store.NewEdgeStore(base)

	images := imagedir.New(cfg.ImagesDir, log)
	builder := ingest.NewBuilder(nodes, edges, cfg.EmbeddingsFile, cfg.DefaultThreshold, cfg.IngestWorkers, log)

	traversal := service.NewTraversalService(nodes, edges, images, log)
	admin := service.NewAdminService(nodes, edges, images, builder, log)
	search := service.NewSearchService(nodes, log)

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	bridge := db.NewNotifyBridge(log, pool, hub)
	if err := bridge.Start(ctx); err != nil {
		return err
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:              log,
		Pool:             pool,
		Hub:              hub,
		Traversal:        traversal,
		Admin:            admin,
		Search:           search,
		Images:           images,
		CORSOrigins:      cfg.CORSOrigins,
		Version:          config.Version,
		DefaultThreshold: cfg.DefaultThreshold,
		NeighborLimit:    cfg.NeighborLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": config.Version,
		}).Info("simgraph listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/run"
	"github.com/redis/go-redis/v9"

	"github.com/nowfow/quiz/internal/blob"
	"github.com/nowfow/quiz/internal/config"
	"github.com/nowfow/quiz/internal/playlist"
	"github.com/nowfow/quiz/internal/realtime"
)

func main() {
	if err := runService(); err != nil {
		log.Fatalf("musicquiz: %v", err)
	}
}

func runService() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pg: %w", err)
	}
	defer pool.Close()

	if err := playlist.AutoMigrate(ctx, pool); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	dav := blob.NewWebDAV(blob.WebDAVConfig{
		URL:      cfg.WebDAVURL,
		Username: cfg.WebDAVUsername,
		Password: cfg.WebDAVPassword,
		Timeout:  cfg.WebDAVTimeout,
	})
	if err := dav.Ping(ctx); err != nil {
		log.Printf("musicquiz: webdav not reachable yet: %v", err)
	}

	opts := []playlist.Option{playlist.WithMusicDir(cfg.MusicDir)}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
		opts = append(opts, playlist.WithPublisher(playlist.NewRedisPublisher(rdb)))
	}

	svc := playlist.NewService(playlist.NewPostgresStore(pool), dav, opts...)
	srv := playlist.NewServer(svc, playlist.ServerConfig{
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigin:  cfg.CORSAllowedOrigin,
	})

	// No Timeout middleware: track streams and uploads may run for minutes.
	r := srv.Router(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	if rdb != nil {
		hub := realtime.NewHub()
		rt := realtime.NewServer(hub, rdb, realtime.Config{
			AllowedOrigin: cfg.CORSAllowedOrigin,
			Channel:       playlist.BroadcastChannel,
		})
		r.Get("/ws", rt.HandleWS)

		hubCtx, stopHub := context.WithCancel(ctx)
		g.Add(func() error {
			log.Printf("starting job 'hub'")
			hub.Run(hubCtx)
			return nil
		}, func(error) {
			stopHub()
		})

		subCtx, stopSub := context.WithCancel(ctx)
		g.Add(func() error {
			log.Printf("starting job 'redis subscriber'")
			return rt.RunRedisSubscriber(subCtx)
		}, func(error) {
			stopSub()
		})
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	g.Add(func() error {
		log.Printf("musicquiz listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("musicquiz: shutdown: %v", err)
		}
	})

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		log.Printf("musicquiz: received %s, stopped", sig.Signal)
		return nil
	}
	return err
}

// Command edge serves the playlist API as a CGI program: one process per
// request, metadata in a local SQLite file. Everything except the response
// goes to stderr.
package main

import (
	"fmt"
	"log"
	"net/http/cgi"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nowfow/quiz/internal/blob"
	"github.com/nowfow/quiz/internal/config"
	"github.com/nowfow/quiz/internal/edgedb"
	"github.com/nowfow/quiz/internal/playlist"
)

func main() {
	log.SetOutput(os.Stderr)
	if err := runEdge(); err != nil {
		log.Fatalf("musicquiz-edge: %v", err)
	}
}

func runEdge() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := edgedb.New(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.SQLitePath, err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	dav := blob.NewWebDAV(blob.WebDAVConfig{
		URL:      cfg.WebDAVURL,
		Username: cfg.WebDAVUsername,
		Password: cfg.WebDAVPassword,
		Timeout:  cfg.WebDAVTimeout,
	})

	svc := playlist.NewService(db, dav, playlist.WithMusicDir(cfg.MusicDir))
	srv := playlist.NewServer(svc, playlist.ServerConfig{
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigin:  cfg.CORSAllowedOrigin,
	})

	requestLogger := middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(os.Stderr, "", log.LstdFlags),
		NoColor: true,
	})

	return cgi.Serve(srv.Router(
		middleware.RequestID,
		requestLogger,
		middleware.Recoverer,
	))
}

// Package edgedb is the SQLite playlist store used by the request-scoped
// edge host.
package edgedb

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/nowfow/quiz/internal/playlist"
)

var (
	dbMaxOpenConns = 1
	dbOptions      = url.Values{
		// sleep for a little while when locked instead of failing with
		// SQLITE_BUSY. see https://www.sqlite.org/c3ref/busy_timeout.html
		"_busy_timeout": []string{"30000"},
	}
)

type DB struct {
	*gorm.DB
}

// trackRow maps the playlist table.
type trackRow struct {
	ID       int64  `gorm:"primary_key"`
	Title    string `gorm:"not null"`
	Path     string `gorm:"not null"`
	Position int    `gorm:"not null;index:idx_playlist_position"`
}

func (trackRow) TableName() string {
	return "playlist"
}

func (r trackRow) track() playlist.Track {
	return playlist.Track{
		ID:       r.ID,
		Title:    r.Title,
		Path:     r.Path,
		Position: r.Position,
	}
}

func New(path string) (*DB, error) {
	pathAndArgs := fmt.Sprintf("%s?%s", path, dbOptions.Encode())
	db, err := gorm.Open("sqlite3", pathAndArgs)
	if err != nil {
		return nil, fmt.Errorf("with gorm: %w", err)
	}
	// stdout carries the CGI response.
	db.SetLogger(log.New(os.Stderr, "gorm ", 0))
	db.DB().SetMaxOpenConns(dbMaxOpenConns)
	return &DB{DB: db}, nil
}

func NewMock() (*DB, error) {
	return New(":memory:")
}

func (db *DB) List(ctx context.Context) ([]playlist.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []trackRow
	err := db.
		Order("position ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("find tracks: %w", err)
	}
	tracks := make([]playlist.Track, 0, len(rows))
	for _, r := range rows {
		tracks = append(tracks, r.track())
	}
	return tracks, nil
}

func (db *DB) MaxPosition(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var pos int
	err := db.
		Model(&trackRow{}).
		Select("COALESCE(MAX(position), 0)").
		Row().
		Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("select max position: %w", err)
	}
	return pos, nil
}

func (db *DB) Insert(ctx context.Context, nt playlist.NewTrack) (playlist.Track, error) {
	if err := ctx.Err(); err != nil {
		return playlist.Track{}, err
	}
	row := trackRow{
		Title:    nt.Title,
		Path:     nt.Path,
		Position: nt.Position,
	}
	if err := db.Create(&row).Error; err != nil {
		return playlist.Track{}, fmt.Errorf("create track: %w", err)
	}
	var stored trackRow
	if err := db.First(&stored, row.ID).Error; err != nil {
		return playlist.Track{}, fmt.Errorf("read back track %d: %w", row.ID, err)
	}
	return stored.track(), nil
}

var _ playlist.Store = (*DB)(nil)

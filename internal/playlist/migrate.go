package playlist

import (
	"context"
	"log"
)

// AutoMigrate creates the playlist table. There is deliberately no unique
// index on position: concurrent uploads may share one.
func AutoMigrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS playlist (
          id       BIGSERIAL PRIMARY KEY,
          title    TEXT NOT NULL,
          path     TEXT NOT NULL,
          position INT  NOT NULL
      )
    `); err != nil {
		log.Printf("migrate playlist: %v", err)
		return err
	}

	if _, err := db.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_playlist_position
      ON playlist(position)
    `); err != nil {
		log.Printf("migrate playlist position index: %v", err)
		return err
	}

	return nil
}

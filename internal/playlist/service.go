package playlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nowfow/quiz/internal/blob"
)

// Service ties the metadata store and the file store together. It is safe
// for concurrent use as long as its stores are.
type Service struct {
	store     Store
	blobs     blob.Store
	musicDir  string
	publisher Publisher
}

type Option func(*Service)

// WithMusicDir sets the file store directory uploads are written to.
func WithMusicDir(dir string) Option {
	return func(s *Service) {
		s.musicDir = strings.TrimRight(dir, "/")
	}
}

// WithPublisher enables track.added events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func NewService(store Store, blobs blob.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		blobs:    blobs,
		musicDir: "/music",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the playlist in play order.
func (s *Service) List(ctx context.Context) ([]Track, error) {
	tracks, err := s.store.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return tracks, nil
}

// Ingest writes the upload to the file store and appends it to the end of
// the playlist. The read of the current maximum position and the insert
// are not atomic, so concurrent uploads may end up with the same position.
func (s *Service) Ingest(ctx context.Context, up Upload) (Track, error) {
	if up.Content == nil || up.Filename == "" || up.Size == 0 {
		return Track{}, ErrMissingFile
	}

	path := s.musicDir + "/" + up.Filename
	if err := s.blobs.Put(ctx, path, up.Content); err != nil {
		return Track{}, &BlobError{Op: "put", Path: path, Err: err}
	}

	maxPos, err := s.store.MaxPosition(ctx)
	if err != nil {
		log.Printf("musicquiz: %s stored without a playlist row: %v", path, err)
		return Track{}, &StoreError{Op: "max position", Err: err}
	}

	t, err := s.store.Insert(ctx, NewTrack{
		Title:    up.Filename,
		Path:     path,
		Position: maxPos + 1,
	})
	if err != nil {
		log.Printf("musicquiz: %s stored without a playlist row: %v", path, err)
		return Track{}, &StoreError{Op: "insert", Err: err}
	}

	s.publishAdded(ctx, t)
	return t, nil
}

// Insert adds a row with caller-chosen values. Nothing is validated: the
// path need not exist in the file store and the position may collide.
func (s *Service) Insert(ctx context.Context, nt NewTrack) (Track, error) {
	t, err := s.store.Insert(ctx, nt)
	if err != nil {
		return Track{}, &StoreError{Op: "insert", Err: err}
	}
	s.publishAdded(ctx, t)
	return t, nil
}

// OpenStream opens the file stored at path. The path is looked up in the
// file store directly; it does not have to belong to a playlist row.
func (s *Service) OpenStream(ctx context.Context, path string) (*Stream, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasSuffix(path, "/") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	body, err := s.blobs.Open(ctx, path)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &BlobError{Op: "open", Path: path, Err: err}
	}

	return &Stream{
		Path:        path,
		ContentType: contentTypeFor(path),
		Body:        body,
	}, nil
}

func (s *Service) publishAdded(ctx context.Context, t Track) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, NewEvent(EventTrackAdded, t)); err != nil {
		log.Printf("musicquiz: publish %s for track %d: %v", EventTrackAdded, t.ID, err)
	}
}

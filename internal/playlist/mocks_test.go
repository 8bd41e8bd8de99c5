package playlist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/nowfow/quiz/internal/blob"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]Track, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockStore) MaxPosition(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, nt NewTrack) (Track, error) {
	args := m.Called(ctx, nt)
	return args.Get(0).(Track), args.Error(1)
}

type MockBlobs struct {
	mock.Mock
}

func (m *MockBlobs) Put(ctx context.Context, path string, r io.Reader) error {
	args := m.Called(ctx, path, r)
	return args.Error(0)
}

func (m *MockBlobs) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// memStore is an in-memory Store. afterMaxPosition, when set, runs after the
// max position has been read and before the row is written.
type memStore struct {
	mu     sync.Mutex
	rows   []Track
	nextID int64

	afterMaxPosition func()
}

func (s *memStore) List(ctx context.Context) ([]Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.rows)
	slices.SortStableFunc(out, func(a, b Track) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return int(a.ID - b.ID)
	})
	if out == nil {
		out = []Track{}
	}
	return out, nil
}

func (s *memStore) MaxPosition(ctx context.Context) (int, error) {
	s.mu.Lock()
	pos := 0
	for _, r := range s.rows {
		pos = max(pos, r.Position)
	}
	s.mu.Unlock()

	if s.afterMaxPosition != nil {
		s.afterMaxPosition()
	}
	return pos, nil
}

func (s *memStore) Insert(ctx context.Context, nt NewTrack) (Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := Track{ID: s.nextID, Title: nt.Title, Path: nt.Path, Position: nt.Position}
	s.rows = append(s.rows, t)
	return t, nil
}

type memBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{files: map[string][]byte{}}
}

func (b *memBlobs) Put(ctx context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.files[path] = data
	b.mu.Unlock()
	return nil
}

func (b *memBlobs) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	b.mu.Lock()
	data, ok := b.files[path]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", path, blob.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/studio-b12/gowebdav"
)

const filePerm = 0o644

// WebDAVConfig holds the connection settings of the file host.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// WebDAV is a Store backed by a WebDAV server.
type WebDAV struct {
	client *gowebdav.Client
}

func NewWebDAV(cfg WebDAVConfig) *WebDAV {
	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &WebDAV{client: client}
}

// Ping checks that the share is reachable with the configured credentials.
func (w *WebDAV) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("connecting to webdav: %w", err)
	}
	return nil
}

func (w *WebDAV) Put(ctx context.Context, path string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// WriteStream creates missing parent collections before the PUT.
	if err := w.client.WriteStream(path, r, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (w *WebDAV) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := w.client.ReadStream(path)
	if gowebdav.IsErrNotFound(err) {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rc, nil
}

var _ Store = (*WebDAV)(nil)

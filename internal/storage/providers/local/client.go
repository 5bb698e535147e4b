package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mrlokans/hirehub/internal/storage"
)

var _ storage.Client = (*Client)(nil)

// Client implements storage.Client on the local filesystem. Objects are
// served back by the HTTP router under publicPath.
type Client struct {
	root       string
	publicPath string
}

// NewClient creates the root directory if needed.
func NewClient(root, publicPath string) (*Client, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &Client{
		root:       root,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

// Root returns the directory objects are written to.
func (c *Client) Root() string {
	return c.root
}

// PublicPath returns the URL prefix objects are served under.
func (c *Client) PublicPath() string {
	return c.publicPath
}

// Upload writes to a temporary file first so readers never see a partial object.
func (c *Client) Upload(ctx context.Context, key string, content io.Reader, _ int64, _ string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := c.path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close object: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (c *Client) URL(key string) string {
	return path.Join(c.publicPath, key)
}

func (c *Client) path(key string) string {
	return filepath.Join(c.root, filepath.FromSlash(key))
}

package installersvc

import (
	"context"
	"sync"

	"github.com/conn-castle/project-install/internal/config"
)

// Lazy defers connecting to the installer until the first tool call.
// A failed connection is not cached; the next call dials again.
type Lazy struct {
	mu   sync.Mutex
	dial func(ctx context.Context) (Conn, error)
	conn Conn
}

// NewLazy returns a Service that dials cfg on first use.
func NewLazy(cfg config.InstallerConfig, version string) *Lazy {
	return NewLazyWithDialer(func(ctx context.Context) (Conn, error) {
		return Dial(ctx, cfg, version)
	})
}

// NewLazyWithDialer returns a Service that calls dial on first use.
func NewLazyWithDialer(dial func(ctx context.Context) (Conn, error)) *Lazy {
	return &Lazy{dial: dial}
}

// Install connects if needed and runs the install tool.
func (l *Lazy) Install(ctx context.Context, req InstallRequest) error {
	conn, err := l.get(ctx)
	if err != nil {
		return err
	}
	return conn.Install(ctx, req)
}

// UnpackPackagesInDir connects if needed and runs the unpack tool.
func (l *Lazy) UnpackPackagesInDir(ctx context.Context, dirPath string) error {
	conn, err := l.get(ctx)
	if err != nil {
		return err
	}
	return conn.UnpackPackagesInDir(ctx, dirPath)
}

// Close closes the underlying connection if one was opened.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	l.conn = nil
	return err
}

func (l *Lazy) get(ctx context.Context) (Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		return l.conn, nil
	}
	conn, err := l.dial(ctx)
	if err != nil {
		return nil, err
	}
	l.conn = conn
	return conn, nil
}

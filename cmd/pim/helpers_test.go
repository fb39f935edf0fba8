package main

// NOTE: Tests in this package mutate package-level seams (loadConfigFunc,
// newDownloaderFunc, newInstallerFunc, withDirLock, isTerminal, confirmFunc, statPath).
// Do not use t.Parallel(). Each test restores seams via t.Cleanup().

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/installersvc"
	"github.com/conn-castle/project-install/internal/projectinstall"
)

type fakeConn struct {
	installs   []installersvc.InstallRequest
	unpacks    []string
	installErr error
	closed     int
}

func (c *fakeConn) Install(_ context.Context, req installersvc.InstallRequest) error {
	c.installs = append(c.installs, req)
	return c.installErr
}

func (c *fakeConn) UnpackPackagesInDir(_ context.Context, dirPath string) error {
	c.unpacks = append(c.unpacks, dirPath)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

type fakeDownloader struct {
	urls []string
	dirs []string
	err  error
}

func (d *fakeDownloader) Download(_ context.Context, url string, destDir string) error {
	d.urls = append(d.urls, url)
	d.dirs = append(d.dirs, destDir)
	if d.err != nil {
		return d.err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, "package.tgz"), []byte("bundle"), 0o644)
}

type cliEnv struct {
	dir        string
	cfg        config.Config
	conn       *fakeConn
	downloader *fakeDownloader
	locked     []string
}

func stubCLI(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{
		dir:        t.TempDir(),
		cfg:        config.Default(),
		conn:       &fakeConn{},
		downloader: &fakeDownloader{},
	}

	origLoad, origDl, origInst := loadConfigFunc, newDownloaderFunc, newInstallerFunc
	origLock, origTerm, origConfirm, origNoColor := withDirLock, isTerminal, confirmFunc, color.NoColor
	t.Cleanup(func() {
		loadConfigFunc, newDownloaderFunc, newInstallerFunc = origLoad, origDl, origInst
		withDirLock, isTerminal, confirmFunc, color.NoColor = origLock, origTerm, origConfirm, origNoColor
	})

	color.NoColor = true
	loadConfigFunc = func(string) (*config.Config, error) {
		cfg := env.cfg
		return &cfg, nil
	}
	newDownloaderFunc = func(config.TransportConfig) projectinstall.Downloader { return env.downloader }
	newInstallerFunc = func(config.InstallerConfig) installersvc.Conn { return env.conn }
	withDirLock = func(dir string, fn func() error) error {
		env.locked = append(env.locked, dir)
		return fn()
	}
	isTerminal = func() bool { return false }
	confirmFunc = func(string) (bool, error) {
		t.Fatal("unexpected confirmation prompt")
		return false, nil
	}
	return env
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(context.Background(), append([]string{"pim"}, args...), strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

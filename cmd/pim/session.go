package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/dirlock"
	"github.com/conn-castle/project-install/internal/installersvc"
	"github.com/conn-castle/project-install/internal/messages"
	"github.com/conn-castle/project-install/internal/projectinstall"
	"github.com/conn-castle/project-install/internal/transport"
)

var loadConfigFunc = loadConfig
var withDirLock = dirlock.With

var newDownloaderFunc = func(cfg config.TransportConfig) projectinstall.Downloader {
	return transport.NewHTTPDownloader(cfg)
}

var newInstallerFunc = func(cfg config.InstallerConfig) installersvc.Conn {
	return installersvc.NewLazy(cfg, Version)
}

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// session is one CLI invocation bound to a project directory.
type session struct {
	dir       string
	manager   *projectinstall.Manager
	installer installersvc.Conn
	out       io.Writer
	errOut    io.Writer
}

// openSession loads config, resolves the target directory, and builds the Manager.
// configure may adjust the options before the Manager is built.
func openSession(cmd *cobra.Command, root *rootOptions, configure func(*projectinstall.Options)) (*session, error) {
	cfg, err := loadConfigFunc(root.configPath)
	if err != nil {
		return nil, fmt.Errorf(messages.LoadConfigFmt, err)
	}
	dir, err := config.ExpandPath(root.dir)
	if err != nil {
		return nil, fmt.Errorf(messages.ResolveDirFmt, root.dir, err)
	}

	errOut := cmd.ErrOrStderr()
	installer := newInstallerFunc(cfg.Installer)
	opts := projectinstall.Options{
		Layout:     cfg.Layout,
		System:     projectinstall.RealSystem{},
		Downloader: newDownloaderFunc(cfg.Transport),
		Installer:  installer,
		WarnWriter: colorWriter{w: errOut, c: warnColor},
	}
	if configure != nil {
		configure(&opts)
	}
	manager, err := projectinstall.New(opts)
	if err != nil {
		_ = installer.Close()
		return nil, err
	}
	return &session{
		dir:       dir,
		manager:   manager,
		installer: installer,
		out:       cmd.OutOrStdout(),
		errOut:    errOut,
	}, nil
}

// run holds the directory lock while fn runs, then shuts the installer connection down.
func (s *session) run(fn func() error) error {
	err := withDirLock(s.dir, fn)
	if closeErr := s.installer.Close(); closeErr != nil {
		_, _ = warnColor.Fprintf(s.errOut, messages.InstallerCloseWarningFmt, closeErr)
	}
	return err
}

// close releases the installer connection without running anything.
func (s *session) close() {
	_ = s.installer.Close()
}

// loadConfig reads the config at path, or the default location when path is empty.
// The default location may be missing; an explicit path must exist.
func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		return config.LoadConfigOrDefault(defaultPath)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(expanded)
}

// colorWriter writes everything through a color.
type colorWriter struct {
	w io.Writer
	c *color.Color
}

func (cw colorWriter) Write(p []byte) (int, error) {
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

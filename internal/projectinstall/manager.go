// Package projectinstall sequences the steps that install a project or a package
// into a directory: manifest writes, bundle downloads, file copies, and calls to the
// out-of-process installer service.
//
// File operations and manifest reads or writes propagate their errors and stop the
// remaining steps. Installer calls are best effort: failures are written to the warning
// writer and the pipeline continues.
package projectinstall

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/installersvc"
	"github.com/conn-castle/project-install/internal/messages"
)

// FileItem is a source file on disk and the path it occupies relative to a project root.
type FileItem struct {
	AbsoluteFilePath string `json:"absoluteFilePath" yaml:"absoluteFilePath"`
	RelativeFilePath string `json:"relativeFilePath" yaml:"relativeFilePath"`
}

// Downloader fetches a remote bundle into a local directory.
type Downloader interface {
	Download(ctx context.Context, url string, destDir string) error
}

// Installer is the out-of-process installer service.
type Installer interface {
	Install(ctx context.Context, req installersvc.InstallRequest) error
	UnpackPackagesInDir(ctx context.Context, dirPath string) error
}

// Options configures a Manager.
type Options struct {
	// Layout holds the fixed path segments. The zero value selects config.DefaultLayout.
	Layout     config.Layout
	System     System
	Downloader Downloader
	Installer  Installer
	WarnWriter io.Writer

	// StrictManifest turns an unparseable existing manifest into an error instead of a fresh write.
	StrictManifest bool
	DiffMaxLines   int
}

// Manager runs install operations against project directories.
// A Manager holds no per-directory state; each call stands alone.
type Manager struct {
	layout         config.Layout
	sys            System
	downloader     Downloader
	installer      Installer
	warnWriter     io.Writer
	strictManifest bool
	diffMaxLines   int
}

// New validates opts and returns a Manager.
func New(opts Options) (*Manager, error) {
	if opts.System == nil {
		return nil, fmt.Errorf(messages.InstallSystemRequired)
	}
	if opts.Downloader == nil {
		return nil, fmt.Errorf(messages.InstallDownloaderRequired)
	}
	if opts.Installer == nil {
		return nil, fmt.Errorf(messages.InstallInstallerRequired)
	}
	layout := opts.Layout
	if layout == (config.Layout{}) {
		layout = config.DefaultLayout()
	}
	if err := layout.Validate(messages.InstallLayoutSource); err != nil {
		return nil, err
	}
	warnWriter := opts.WarnWriter
	if warnWriter == nil {
		warnWriter = os.Stderr
	}
	return &Manager{
		layout:         layout,
		sys:            opts.System,
		downloader:     opts.Downloader,
		installer:      opts.Installer,
		warnWriter:     warnWriter,
		strictManifest: opts.StrictManifest,
		diffMaxLines:   normalizeDiffMaxLines(opts.DiffMaxLines),
	}, nil
}

// Layout returns the path segments the Manager was built with.
func (m *Manager) Layout() config.Layout {
	return m.layout
}

// DownloadPackage clears the staging directory under dirPath, downloads downloadURL into it,
// and asks the installer to unpack what arrived. Unpack failures are logged, not returned.
func (m *Manager) DownloadPackage(ctx context.Context, downloadURL string, dirPath string) error {
	if strings.TrimSpace(downloadURL) == "" {
		return fmt.Errorf(messages.InstallDownloadURLRequired)
	}
	if err := requireDir(dirPath); err != nil {
		return err
	}
	staging := m.layout.DownloadDirPath(dirPath)
	return runSteps([]func() error{
		func() error {
			return m.removeStaging(staging)
		},
		func() error {
			if err := m.downloader.Download(ctx, downloadURL, staging); err != nil {
				return fmt.Errorf(messages.InstallDownloadFmt, downloadURL, staging, err)
			}
			return nil
		},
		m.bestEffort(messages.InstallUnpackFailedWarningFmt, staging, func() error {
			return m.installer.UnpackPackagesInDir(ctx, staging)
		}),
	})
}

// RemoveDownloadDir deletes the staging directory under dirPath. A missing directory is not an error.
func (m *Manager) RemoveDownloadDir(dirPath string) error {
	if err := requireDir(dirPath); err != nil {
		return err
	}
	return m.removeStaging(m.layout.DownloadDirPath(dirPath))
}

func (m *Manager) removeStaging(staging string) error {
	if err := m.sys.RemoveAll(staging); err != nil {
		return fmt.Errorf(messages.InstallRemoveStagingFmt, staging, err)
	}
	return nil
}

func requireDir(dirPath string) error {
	if strings.TrimSpace(dirPath) == "" {
		return fmt.Errorf(messages.InstallDirPathRequired)
	}
	return nil
}

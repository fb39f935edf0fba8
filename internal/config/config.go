package config

import (
	"path/filepath"
	"strings"
)

// Default layout segments and transport limits.
const (
	DefaultManifestFile     = "package.json"
	DefaultDownloadDir      = ".download"
	DefaultSourceDir        = "src"
	DefaultUserDir          = "usr"
	DefaultEtcDir           = "etc"
	DefaultTemplatesDir     = "templates"
	DefaultTimeoutSeconds   = 60
	DefaultMaxDownloadBytes = int64(200 * 1024 * 1024) // 200 MiB
	DefaultDownloadFileName = "package.tgz"
)

// Config is the full project-install configuration.
type Config struct {
	Layout    Layout          `toml:"layout"`
	Installer InstallerConfig `toml:"installer"`
	Transport TransportConfig `toml:"transport"`
}

// Layout holds the fixed path segments used to derive every path under a project directory.
// A Layout is a value; once handed to an installer it is never mutated.
type Layout struct {
	ManifestFile string `toml:"manifest_file"`
	DownloadDir  string `toml:"download_dir"`
	SourceDir    string `toml:"source_dir"`
	UserDir      string `toml:"user_dir"`
	EtcDir       string `toml:"etc_dir"`
	TemplatesDir string `toml:"templates_dir"`
}

// InstallerConfig describes how to launch the out-of-process installer service.
type InstallerConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Env     []string `toml:"env"`

	// EnvFile is an optional dotenv file loaded before Env; Env entries win on conflict.
	EnvFile string `toml:"env_file"`
}

// TransportConfig controls remote package downloads.
type TransportConfig struct {
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	MaxDownloadBytes int64  `toml:"max_download_bytes"`
	FileName         string `toml:"file_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: DefaultLayout(),
		Transport: TransportConfig{
			TimeoutSeconds:   DefaultTimeoutSeconds,
			MaxDownloadBytes: DefaultMaxDownloadBytes,
			FileName:         DefaultDownloadFileName,
		},
	}
}

// DefaultLayout returns the built-in path segments.
func DefaultLayout() Layout {
	return Layout{
		ManifestFile: DefaultManifestFile,
		DownloadDir:  DefaultDownloadDir,
		SourceDir:    DefaultSourceDir,
		UserDir:      DefaultUserDir,
		EtcDir:       DefaultEtcDir,
		TemplatesDir: DefaultTemplatesDir,
	}
}

// Join resolves segments under dir into a clean, platform-correct path.
// Leading separators on segments are treated as relative to dir.
func (l Layout) Join(dir string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dir)
	for _, segment := range segments {
		parts = append(parts, filepath.FromSlash(segment))
	}
	return filepath.Clean(filepath.Join(parts...))
}

// ManifestPath returns the manifest file path for a project directory.
func (l Layout) ManifestPath(dir string) string {
	return l.Join(dir, l.ManifestFile)
}

// DownloadDirPath returns the staging directory used for remote package downloads.
func (l Layout) DownloadDirPath(dir string) string {
	return l.Join(dir, l.DownloadDir)
}

// SourcePrefix returns the slash-separated source tree prefix, e.g. "/src/usr".
func (l Layout) SourcePrefix() string {
	return "/" + strings.Join([]string{l.SourceDir, l.UserDir}, "/")
}

// TemplatesPrefix returns the slash-separated templates prefix, e.g. "/src/etc/templates".
func (l Layout) TemplatesPrefix() string {
	return "/" + strings.Join([]string{l.SourceDir, l.EtcDir, l.TemplatesDir}, "/")
}

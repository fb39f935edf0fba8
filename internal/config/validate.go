package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/project-install/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if err := c.Layout.Validate(path); err != nil {
		return err
	}
	if c.Transport.TimeoutSeconds <= 0 {
		return fmt.Errorf(messages.ConfigTransportTimeoutInvalidFmt, path, c.Transport.TimeoutSeconds)
	}
	if c.Transport.MaxDownloadBytes <= 0 {
		return fmt.Errorf(messages.ConfigTransportMaxBytesInvalidFmt, path, c.Transport.MaxDownloadBytes)
	}
	if err := validateSegment(path, "transport.file_name", c.Transport.FileName); err != nil {
		return err
	}
	for i, entry := range c.Installer.Env {
		key, _, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf(messages.ConfigInstallerEnvInvalidFmt, path, i, entry)
		}
	}
	return nil
}

// Validate ensures every layout segment is a single, non-empty path element.
func (l Layout) Validate(path string) error {
	segments := []struct {
		key   string
		value string
	}{
		{"layout.manifest_file", l.ManifestFile},
		{"layout.download_dir", l.DownloadDir},
		{"layout.source_dir", l.SourceDir},
		{"layout.user_dir", l.UserDir},
		{"layout.etc_dir", l.EtcDir},
		{"layout.templates_dir", l.TemplatesDir},
	}
	for _, segment := range segments {
		if err := validateSegment(path, segment.key, segment.value); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(path string, key string, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf(messages.ConfigSegmentRequiredFmt, path, key)
	}
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf(messages.ConfigSegmentInvalidFmt, path, key, value)
	}
	return nil
}

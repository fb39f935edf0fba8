package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt          = "missing config file %s: %w"
	ConfigReadFileFmt             = "failed to read config file %s: %w"
	ConfigInvalidConfigFmt        = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt     = "config %s contains unrecognized keys: %w"
	ConfigResolveUserConfigDirFmt = "resolve user config dir: %w"
	ConfigPathRequired            = "path is required"
	ConfigExpandPathFmt           = "expand path %s: %w"

	// ConfigSegmentRequiredFmt formats missing layout segment errors.
	ConfigSegmentRequiredFmt          = "%s: %s is required"
	ConfigSegmentInvalidFmt           = "%s: %s must be a single path element (got %q)"
	ConfigTransportTimeoutInvalidFmt  = "%s: transport.timeout_seconds must be > 0 (got %d)"
	ConfigTransportMaxBytesInvalidFmt = "%s: transport.max_download_bytes must be > 0 (got %d)"
	ConfigInstallerEnvInvalidFmt      = "%s: installer.env[%d] must be KEY=VALUE (got %q)"
)

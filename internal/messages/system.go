package messages

// System messages for transport, installer service, locking, and filesystem helpers.
const (
	// TransportDestDirRequired indicates a destination directory is required for downloads.
	TransportDestDirRequired      = "download destination directory is required"
	TransportCreateRequestFmt     = "create request for %s: %w"
	TransportDownloadFailedFmt    = "download %s: %w"
	TransportDownloadTimeoutFmt   = "download %s: request timed out"
	TransportDownloadNotFoundFmt  = "download %s: not found (HTTP 404)"
	TransportUnexpectedStatusFmt  = "download %s: unexpected status %s"
	TransportDownloadTooLargeFmt  = "download %s: response too large (%d bytes > limit %d bytes)"
	TransportCreateDestDirFmt     = "create download directory %s: %w"
	TransportCreateTempFileFmt    = "create temp file: %w"
	TransportSyncTempFileFmt      = "sync temp file: %w"
	TransportCloseTempFileFmt     = "close temp file: %w"
	TransportMoveDownloadFmt      = "move download into place: %w"
	TransportInvalidURLFmt        = "invalid download URL %q: %w"
	TransportUnsupportedSchemeFmt = "unsupported download URL scheme %q (expected http or https)"

	// InstallerCommandRequired indicates the installer service command is not configured.
	InstallerCommandRequired = "installer command is required; set [installer].command in the config file"
	InstallerConnectFmt      = "connect to installer %s: %w"
	InstallerCallFmt         = "installer %s: %w"
	InstallerToolFailedFmt   = "%w: %s: %s"
	InstallerToolFailed      = "installer tool failed"
	InstallerNoDetails       = "no details"
	InstallerServerFailedFmt = "failed to run installer server: %w"
	InstallerServiceRequired = "installer service implementation is required"
	InstallerRunnerRequired  = "server runner is nil"
	InstallerToolInstallDesc = "Install dependencies into a project directory"
	InstallerToolUnpackDesc  = "Unpack every package archive found in a directory"
	InstallerDirPathRequired = "directory path is required"
	InstallerEnvFileFmt      = "load installer env file %s: %w"

	// FsutilCreateTempFileFmt formats temp file creation errors.
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"
	FsutilOpenSourceFmt     = "open %s: %w"
	FsutilStatSourceFmt     = "stat %s: %w"
	FsutilSourceIsDirFmt    = "%s is a directory"
	FsutilCreateDirFmt      = "create directory for %s: %w"
	FsutilCopyContentFmt    = "copy %s: %w"

	// DirlockResolveCacheDirFmt formats lock directory resolution errors.
	DirlockResolveCacheDirFmt = "resolve user cache dir: %w"
	DirlockCreateDirFmt       = "create lock dir %s: %w"
	DirlockOpenFmt            = "open lock %s: %w"
	DirlockLockFmt            = "lock %s: %w"
	DirlockTimeoutFmt         = "timed out waiting for lock after %s"
	DirlockPathRequired       = "lock target directory is required"

	// EnvfileLineErrorFmt formats a parse error with its line number.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "read env file: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "unexpected content after quoted value"
)

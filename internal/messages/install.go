package messages

// Project install messages.
const (
	// InstallSystemRequired indicates a filesystem implementation is required.
	InstallSystemRequired      = "install system is required"
	InstallDownloaderRequired  = "install downloader is required"
	InstallInstallerRequired   = "installer service is required"
	InstallDirPathRequired     = "project directory path is required"
	InstallManifestRequired    = "manifest fragment is required"
	InstallPackageDirRequired  = "package subdirectory is required"
	InstallDownloadURLRequired = "download URL is required"

	InstallReadManifestFmt        = "failed to read manifest %s: %w"
	InstallParseManifestFmt       = "failed to parse manifest %s: %w"
	InstallEncodeManifestFmt      = "failed to encode manifest %s: %w"
	InstallWriteManifestFmt       = "failed to write manifest %s: %w"
	InstallRemoveStagingFmt       = "failed to remove download directory %s: %w"
	InstallDownloadFmt            = "failed to download %s into %s: %w"
	InstallCopyFileFmt            = "failed to copy %s to %s: %w"
	InstallFileItemSourceRequired = "file item %d has no absolute file path"
	InstallFileItemTargetRequired = "file item %d has no relative file path"
	InstallFileItemEscapesFmt     = "file item %d (%s) resolves outside %s"
	InstallLayoutSource           = "layout"

	// InstallManifestCorruptWarningFmt warns that an unreadable manifest is being replaced.
	InstallManifestCorruptWarningFmt = "Warning: manifest %s could not be parsed (%v); writing a fresh manifest\n"

	// InstallUnpackFailedWarningFmt matches the installer log line for unpack failures.
	InstallUnpackFailedWarningFmt  = "Error unpacking packages in %s: %v\n"
	InstallModulesFailedWarningFmt = "Error modules installation in dir %s: %v\n"

	InstallDiffPreviewTruncatedFmt = "... (truncated to %d lines; rerun with %s <n> to see more)"
)

package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "pim"
	RootShort       = "Install projects and packages into a directory"
	RootLong        = "pim writes package manifests, downloads package bundles, copies project files, and asks the installer service to install dependencies."
	RootFlagConfig  = "Path to the config file (default: user config dir/project-install/config.toml)"
	RootFlagDir     = "Target project directory"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ManifestUse is the manifest command usage.
	ManifestUse           = "manifest"
	ManifestShort         = "Merge a manifest fragment into the project manifest"
	ManifestFlagFragment  = "JSON file holding the manifest fragment (- for stdin)"
	ManifestFlagDryRun    = "Show the manifest diff without writing"
	ManifestFlagDiffLines = "Maximum diff lines to show with --dry-run"
	ManifestFlagStrict    = "Fail instead of replacing an existing manifest that cannot be parsed"
	ManifestReadFragFmt   = "read manifest fragment %s: %w"
	ManifestParseFragFmt  = "parse manifest fragment %s: %w"
	ManifestUnchangedFmt  = "%s is already up to date\n"
	ManifestWrittenFmt    = "Wrote %s\n"

	// DownloadUse is the download command usage.
	DownloadUse        = "download <url>"
	DownloadShort      = "Download a package bundle into the staging directory and unpack it"
	DownloadDoneFmt    = "Downloaded %s into %s\n"
	DownloadReplaceFmt = "Replace the existing download directory %s?"
	DownloadCancelled  = "Download cancelled; existing download directory kept"

	// InstallUse is the install command name.
	InstallUse          = "install"
	InstallShort        = "Copy files into a directory and install dependencies"
	InstallProjectUse   = "project"
	InstallProjectShort = "Copy project files and install the dependencies declared in the manifest"
	InstallPackageUse   = "package"
	InstallPackageShort = "Copy package files into a package subdirectory and install its dependencies"

	InstallFlagFiles       = "JSON file listing {absoluteFilePath, relativeFilePath} items (- for stdin)"
	InstallFlagSubdir      = "Package subdirectory created under the source and templates trees"
	InstallFlagManifest    = "Package manifest to read dependencies and devDependencies from"
	InstallFlagDeps        = "Production dependency as name@version (repeatable; overrides --manifest)"
	InstallFlagDevDeps     = "Development dependency as name@version (repeatable; overrides --manifest)"
	InstallReadFilesFmt    = "read file list %s: %w"
	InstallParseFilesFmt   = "parse file list %s: %w"
	InstallReadPkgFmt      = "read package manifest %s: %w"
	InstallParsePkgFmt     = "parse package manifest %s: %w"
	InstallProjectDoneFmt  = "Installed %d files into %s\n"
	InstallPackageDoneFmt  = "Installed %d files into %s (%d skipped)\n"
	InstallSkippedEntryFmt = "  skipped %s\n"

	// CleanUse is the clean command name.
	CleanUse        = "clean"
	CleanShort      = "Remove the download staging directory"
	CleanPromptFmt  = "Remove %s?"
	CleanDoneFmt    = "Removed %s\n"
	CleanCancelled  = "Nothing removed"
	FlagYes         = "Skip the confirmation prompt"
	PromptAborted   = "prompt aborted"
	PromptYes       = "Yes"
	PromptNo        = "No"
	ResolveDirFmt   = "resolve project directory %s: %w"
	LoadConfigFmt   = "load config: %w"
	StdinSourceName = "stdin"
)

// InstallerCloseWarningFmt warns that the installer process did not shut down cleanly.
const InstallerCloseWarningFmt = "Warning: failed to stop installer: %v\n"

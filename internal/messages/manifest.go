package messages

// Manifest messages for JSON object decoding and dependency parsing.
const (
	// ManifestTrailingData indicates bytes after the top-level JSON object.
	ManifestTrailingData     = "unexpected data after top-level object"
	ManifestNotObjectFmt     = "expected a JSON object, got %T"
	ManifestObjectKeyFmt     = "expected object key, got %v"
	ManifestDelimiterFmt     = "unexpected delimiter %v"
	ManifestDepsNotObjectFmt = "%s must be an object, got %s"
	ManifestDepsKeyFmt       = "%s: %w"
	ManifestDepVersionFmt    = "version for %q must be a string, got %s"
	ManifestDepSpecifierFmt  = "dependency %q must be name@version"
)

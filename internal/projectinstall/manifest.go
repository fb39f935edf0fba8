package projectinstall

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/conn-castle/project-install/internal/manifest"
	"github.com/conn-castle/project-install/internal/messages"
)

const (
	manifestIndent = "  "
	manifestPerm   = 0o644
)

// manifestState is the existing manifest on disk and the result of merging a fragment over it.
type manifestState struct {
	path    string
	current []byte
	merged  *manifest.Object
}

// WriteNewPackageFile merges fragment over the manifest in dirPath and writes the result.
// Fragment values win at every depth; keys only in the existing manifest are kept.
// When no manifest exists the fragment is written as is.
func (m *Manager) WriteNewPackageFile(fragment *manifest.Object, dirPath string) error {
	state, err := m.resolveManifest(fragment, dirPath)
	if err != nil {
		return err
	}
	data, err := manifest.MarshalIndent(state.merged, manifestIndent)
	if err != nil {
		return fmt.Errorf(messages.InstallEncodeManifestFmt, state.path, err)
	}
	if err := m.sys.WriteFileAtomic(state.path, data, manifestPerm); err != nil {
		return fmt.Errorf(messages.InstallWriteManifestFmt, state.path, err)
	}
	return nil
}

// resolveManifest reads the existing manifest and merges fragment over it.
// A missing manifest starts fresh. An unparseable one starts fresh with a warning,
// or fails when the Manager is strict. Any other read error is returned.
func (m *Manager) resolveManifest(fragment *manifest.Object, dirPath string) (manifestState, error) {
	if fragment == nil {
		return manifestState{}, fmt.Errorf(messages.InstallManifestRequired)
	}
	if err := requireDir(dirPath); err != nil {
		return manifestState{}, err
	}
	path := m.layout.ManifestPath(dirPath)
	state := manifestState{path: path}

	data, err := m.sys.ReadFile(path)
	switch {
	case err == nil:
		state.current = data
	case errors.Is(err, fs.ErrNotExist):
		state.merged = fragment.Clone()
		return state, nil
	default:
		return manifestState{}, fmt.Errorf(messages.InstallReadManifestFmt, path, err)
	}

	existing, err := manifest.Parse(data)
	if err != nil {
		if m.strictManifest {
			return manifestState{}, fmt.Errorf(messages.InstallParseManifestFmt, path, err)
		}
		_, _ = fmt.Fprintf(m.warnWriter, messages.InstallManifestCorruptWarningFmt, path, err)
		state.merged = fragment.Clone()
		return state, nil
	}
	state.merged = manifest.Merge(existing, fragment)
	return state, nil
}

// ManifestPreview describes the change WriteNewPackageFile would make.
type ManifestPreview struct {
	Path        string
	UnifiedDiff string
	Truncated   bool
}

// Changed reports whether the write would alter the manifest.
func (p ManifestPreview) Changed() bool {
	return strings.TrimSpace(p.UnifiedDiff) != ""
}

// PreviewManifest renders a unified diff of the manifest write without touching disk.
func (m *Manager) PreviewManifest(fragment *manifest.Object, dirPath string) (ManifestPreview, error) {
	state, err := m.resolveManifest(fragment, dirPath)
	if err != nil {
		return ManifestPreview{}, err
	}
	next, err := manifest.MarshalIndent(state.merged, manifestIndent)
	if err != nil {
		return ManifestPreview{}, fmt.Errorf(messages.InstallEncodeManifestFmt, state.path, err)
	}
	name := m.layout.ManifestFile
	rendered, truncated := renderTruncatedUnifiedDiff(
		name+" (current)",
		name+" (merged)",
		ensureTrailingNewline(string(state.current)),
		ensureTrailingNewline(string(next)),
		m.diffMaxLines,
	)
	return ManifestPreview{
		Path:        state.path,
		UnifiedDiff: rendered,
		Truncated:   truncated,
	}, nil
}

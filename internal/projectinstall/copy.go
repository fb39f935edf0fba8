package projectinstall

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/installersvc"
	"github.com/conn-castle/project-install/internal/manifest"
	"github.com/conn-castle/project-install/internal/messages"
)

// Placement says where a file item lands when installing as a package.
type Placement int

const (
	// PlacementSkip marks items outside both package prefixes; they are not copied.
	PlacementSkip Placement = iota
	// PlacementSource marks items under the source prefix, e.g. /src/usr.
	PlacementSource
	// PlacementTemplate marks items under the templates prefix, e.g. /src/etc/templates.
	PlacementTemplate
	// PlacementRoot marks project items copied to the same relative path under the project root.
	PlacementRoot
)

// String returns a short label for the placement.
func (p Placement) String() string {
	switch p {
	case PlacementSource:
		return "source"
	case PlacementTemplate:
		return "template"
	case PlacementRoot:
		return "root"
	default:
		return "skip"
	}
}

// PlannedCopy is one file item and the destination it resolves to.
// Dest is empty when Placement is PlacementSkip.
type PlannedCopy struct {
	Item      FileItem
	Placement Placement
	Dest      string
}

// PackageRequest is the input of InstallAsPackage.
// A nil dependency set skips its install phase; an empty, non-nil set still calls the installer.
type PackageRequest struct {
	FileItems       []FileItem
	Dependencies    *manifest.Dependencies
	DevDependencies *manifest.Dependencies
	DirPath         string
	PackageSubdir   string
}

// PackageResult reports what InstallAsPackage planned and how many copies completed.
type PackageResult struct {
	Plan   []PlannedCopy
	Copied int
}

// Skipped returns the number of items that matched neither package prefix.
func (r PackageResult) Skipped() int {
	count := 0
	for _, planned := range r.Plan {
		if planned.Placement == PlacementSkip {
			count++
		}
	}
	return count
}

// InstallProject copies fileItems into dirPath in order, then asks the installer to install
// the dependencies already declared in the directory's manifest.
// A copy failure stops the remaining copies and the install call. The install call is best effort.
func (m *Manager) InstallProject(ctx context.Context, fileItems []FileItem, dirPath string) error {
	if err := requireDir(dirPath); err != nil {
		return err
	}
	plan, err := PlanProjectCopies(m.layout, fileItems, dirPath)
	if err != nil {
		return err
	}
	steps := make([]func() error, 0, len(plan)+1)
	for _, planned := range plan {
		steps = append(steps, func() error {
			return m.copy(planned)
		})
	}
	steps = append(steps, m.installStep(ctx, dirPath, "", false))
	return runSteps(steps)
}

// InstallAsPackage copies the items under the package prefixes into req.PackageSubdir,
// then installs production and development dependencies in that order.
// Copy failures stop everything after them. Each install call is best effort, so a failed
// production install does not prevent the development install.
func (m *Manager) InstallAsPackage(ctx context.Context, req PackageRequest) (PackageResult, error) {
	if err := requireDir(req.DirPath); err != nil {
		return PackageResult{}, err
	}
	plan, err := PlanPackageCopies(m.layout, req.FileItems, req.DirPath, req.PackageSubdir)
	if err != nil {
		return PackageResult{}, err
	}
	result := PackageResult{Plan: plan}

	steps := make([]func() error, 0, len(plan)+2)
	for _, planned := range plan {
		if planned.Placement == PlacementSkip {
			continue
		}
		steps = append(steps, func() error {
			if err := m.copy(planned); err != nil {
				return err
			}
			result.Copied++
			return nil
		})
	}
	steps = append(steps,
		m.dependencyStep(ctx, req.DirPath, req.Dependencies, false),
		m.dependencyStep(ctx, req.DirPath, req.DevDependencies, true),
	)
	err = runSteps(steps)
	return result, err
}

func (m *Manager) copy(planned PlannedCopy) error {
	if err := m.sys.CopyFile(planned.Item.AbsoluteFilePath, planned.Dest); err != nil {
		return fmt.Errorf(messages.InstallCopyFileFmt, planned.Item.AbsoluteFilePath, planned.Dest, err)
	}
	return nil
}

func (m *Manager) dependencyStep(ctx context.Context, dirPath string, deps *manifest.Dependencies, development bool) func() error {
	if deps == nil {
		return skipStep
	}
	return m.installStep(ctx, dirPath, deps.String(), development)
}

func (m *Manager) installStep(ctx context.Context, dirPath string, dependencies string, development bool) func() error {
	return m.bestEffort(messages.InstallModulesFailedWarningFmt, dirPath, func() error {
		return m.installer.Install(ctx, installersvc.InstallRequest{
			DestDirPath:   dirPath,
			Dependencies:  dependencies,
			IsDevelopment: development,
		})
	})
}

// PlanProjectCopies resolves every item to dirPath joined with its relative path.
// Relative paths are rooted at dirPath, so ".." elements cannot climb above it.
func PlanProjectCopies(layout config.Layout, fileItems []FileItem, dirPath string) ([]PlannedCopy, error) {
	plan := make([]PlannedCopy, 0, len(fileItems))
	for i, item := range fileItems {
		rel, err := relativeSlashPath(i, item)
		if err != nil {
			return nil, err
		}
		plan = append(plan, PlannedCopy{Item: item, Placement: PlacementRoot, Dest: layout.Join(dirPath, rel)})
	}
	return plan, nil
}

// PlanPackageCopies classifies every item against the source and templates prefixes.
// Matching items resolve to <dirPath>/<prefix>/<packageSubdir>/<rest>; others are skipped
// without validation. Prefixes are matched against the relative path as given, on whole
// segments, so src/usr/a.js and /src/usrx/a.js are both skipped.
func PlanPackageCopies(layout config.Layout, fileItems []FileItem, dirPath string, packageSubdir string) ([]PlannedCopy, error) {
	if strings.TrimSpace(packageSubdir) == "" {
		return nil, fmt.Errorf(messages.InstallPackageDirRequired)
	}
	prefixes := []struct {
		prefix    string
		placement Placement
	}{
		{layout.SourcePrefix(), PlacementSource},
		{layout.TemplatesPrefix(), PlacementTemplate},
	}

	plan := make([]PlannedCopy, 0, len(fileItems))
	for i, item := range fileItems {
		raw := strings.ReplaceAll(strings.TrimSpace(item.RelativeFilePath), `\`, "/")
		planned := PlannedCopy{Item: item, Placement: PlacementSkip}
		for _, candidate := range prefixes {
			rest, ok := cutSegmentPrefix(raw, candidate.prefix)
			if !ok {
				continue
			}
			rest = path.Clean("/" + rest)
			if rest == "/" {
				break
			}
			if strings.TrimSpace(item.AbsoluteFilePath) == "" {
				return nil, fmt.Errorf(messages.InstallFileItemSourceRequired, i)
			}
			prefixDir := layout.Join(dirPath, candidate.prefix)
			scope := layout.Join(prefixDir, packageSubdir)
			if !beneath(prefixDir, scope) {
				return nil, fmt.Errorf(messages.InstallFileItemEscapesFmt, i, item.RelativeFilePath, prefixDir)
			}
			planned.Placement = candidate.placement
			planned.Dest = layout.Join(scope, rest)
			break
		}
		plan = append(plan, planned)
	}
	return plan, nil
}

// relativeSlashPath validates item and returns its relative path as a cleaned,
// slash-separated path with a leading slash.
func relativeSlashPath(index int, item FileItem) (string, error) {
	if strings.TrimSpace(item.AbsoluteFilePath) == "" {
		return "", fmt.Errorf(messages.InstallFileItemSourceRequired, index)
	}
	rel := path.Clean("/" + strings.ReplaceAll(strings.TrimSpace(item.RelativeFilePath), `\`, "/"))
	if rel == "/" {
		return "", fmt.Errorf(messages.InstallFileItemTargetRequired, index)
	}
	return rel, nil
}

// cutSegmentPrefix returns the remainder of rel after prefix when prefix is a leading
// run of whole segments of rel and something follows it.
func cutSegmentPrefix(rel string, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(rel, prefix+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// beneath reports whether target lies strictly below root.
func beneath(root string, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), target)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

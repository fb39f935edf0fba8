package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/manifest"
	"github.com/conn-castle/project-install/internal/messages"
	"github.com/conn-castle/project-install/internal/projectinstall"
)

const stdinPath = "-"

// readInput returns the contents of path, or of stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, messages.StdinSourceName, err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, path, err
	}
	data, err := os.ReadFile(expanded)
	return data, expanded, err
}

// readFragment loads a manifest fragment from a JSON file or stdin.
func readFragment(cmd *cobra.Command, path string) (*manifest.Object, error) {
	data, source, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestReadFragFmt, source, err)
	}
	fragment, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf(messages.ManifestParseFragFmt, source, err)
	}
	return fragment, nil
}

// readFileItems loads a file list. YAML is used for .yaml and .yml files, JSON otherwise.
// An empty path yields an empty list.
func readFileItems(cmd *cobra.Command, path string) ([]projectinstall.FileItem, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, source, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallReadFilesFmt, source, err)
	}
	var items []projectinstall.FileItem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, fmt.Errorf(messages.InstallParseFilesFmt, source, err)
	}
	return items, nil
}

// packageDependencies builds the production and development sets for a package install.
// Sets come from the package manifest when given; --deps and --dev-deps replace them.
// A set that is neither in the manifest nor on the command line stays nil and its phase is skipped.
func packageDependencies(cmd *cobra.Command, manifestPath string, deps []string, devDeps []string) (*manifest.Dependencies, *manifest.Dependencies, error) {
	var prod, dev *manifest.Dependencies
	if strings.TrimSpace(manifestPath) != "" {
		data, source, err := readInput(cmd, manifestPath)
		if err != nil {
			return nil, nil, fmt.Errorf(messages.InstallReadPkgFmt, source, err)
		}
		obj, err := manifest.Parse(data)
		if err != nil {
			return nil, nil, fmt.Errorf(messages.InstallParsePkgFmt, source, err)
		}
		if prod, err = manifest.DependenciesFromObject(obj, "dependencies"); err != nil {
			return nil, nil, fmt.Errorf(messages.InstallParsePkgFmt, source, err)
		}
		if dev, err = manifest.DependenciesFromObject(obj, "devDependencies"); err != nil {
			return nil, nil, fmt.Errorf(messages.InstallParsePkgFmt, source, err)
		}
	}
	if len(deps) > 0 {
		parsed, err := parseDependencyFlags(deps)
		if err != nil {
			return nil, nil, err
		}
		prod = parsed
	}
	if len(devDeps) > 0 {
		parsed, err := parseDependencyFlags(devDeps)
		if err != nil {
			return nil, nil, err
		}
		dev = parsed
	}
	return prod, dev, nil
}

func parseDependencyFlags(values []string) (*manifest.Dependencies, error) {
	deps := manifest.NewDependencies()
	for _, value := range values {
		dep, err := manifest.ParseDependency(value)
		if err != nil {
			return nil, err
		}
		deps.Set(dep.Name, dep.Version)
	}
	return deps, nil
}

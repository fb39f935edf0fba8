package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/project-install/internal/config"
)

func TestRootVersionFlag(t *testing.T) {
	origVersion, origCommit, origBuild := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuild })
	Version, Commit, BuildDate = "v1.2.3", "unknown", "unknown"

	out, _, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", strings.TrimSpace(out))
}

func TestRootHelpListsCommands(t *testing.T) {
	out, _, err := runCLI(t, "")
	require.NoError(t, err)
	for _, name := range []string{"manifest", "download", "install", "clean"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuild })

	Version, Commit, BuildDate = "v0.1.0", "abc123", "2026-01-02"
	assert.Equal(t, "v0.1.0 (commit abc123, built 2026-01-02)", versionString())

	Commit, BuildDate = "unknown", ""
	assert.Equal(t, "v0.1.0", versionString())
}

func TestRunMainExitsOnError(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func(context.Context, []string, io.Reader, io.Writer, io.Writer) error {
		return errors.New("boom")
	}

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"pim"}, strings.NewReader(""), io.Discard, &stderr, func(c int) { code = c })
	assert.Equal(t, 1, code)
	assert.Equal(t, "boom\n", stderr.String())

	executeFunc = func(context.Context, []string, io.Reader, io.Writer, io.Writer) error { return nil }
	code = -1
	runMain([]string{"pim"}, strings.NewReader(""), io.Discard, &stderr, func(c int) { code = c })
	assert.Equal(t, -1, code)
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	path := filepath.Join(home, config.AppDirName, "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[layout]\ndownload_dir = \"staging\"\n"), 0o644))

	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Layout.DownloadDir)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	path := filepath.Join(dir, "pim.toml")
	require.NoError(t, os.WriteFile(path, []byte("[installer]\ncommand = \"node\"\nargs = [\"installer.js\"]\n"), 0o644))
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Installer.Command)
	assert.Equal(t, []string{"installer.js"}, cfg.Installer.Args)

	require.NoError(t, os.WriteFile(path, []byte("[layout]\nbogus = 1\n"), 0o644))
	_, err = loadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrConfigValidation))
}

func TestConfigErrorsSurfaceFromCommands(t *testing.T) {
	stubCLI(t)
	loadConfigFunc = func(string) (*config.Config, error) { return nil, errors.New("bad toml") }

	_, _, err := runCLI(t, "", "clean", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config: bad toml")
}

func TestColorWriterPassesThrough(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	var buf bytes.Buffer
	n, err := colorWriter{w: &buf, c: color.New(color.FgYellow)}.Write([]byte("careful\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "careful\n", buf.String())
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/project-install/internal/installersvc"
	"github.com/conn-castle/project-install/internal/testutil"
)

func TestManifestCommandMergesFragmentFromStdin(t *testing.T) {
	env := stubCLI(t)
	testutil.WriteFile(t, env.dir, "package.json", `{"name":"old","version":"1.0.0"}`)

	out, _, err := runCLI(t, `{"name":"new","scripts":{"start":"node ."}}`, "manifest", "--fragment", "-", "--dir", env.dir)
	require.NoError(t, err)

	path := filepath.Join(env.dir, "package.json")
	assert.Equal(t, "Wrote "+path+"\n", out)
	assert.Equal(t, `{
  "name": "new",
  "version": "1.0.0",
  "scripts": {
    "start": "node ."
  }
}`, testutil.ReadFile(t, path))
	assert.Equal(t, []string{env.dir}, env.locked)
	assert.Equal(t, 1, env.conn.closed)
	assert.Empty(t, env.conn.installs)
}

func TestManifestCommandDryRun(t *testing.T) {
	env := stubCLI(t)
	path := testutil.WriteFile(t, env.dir, "package.json", "{\n  \"name\": \"old\"\n}")
	fragment := testutil.WriteFile(t, t.TempDir(), "fragment.json", `{"name":"new"}`)

	out, _, err := runCLI(t, "", "manifest", "--fragment", fragment, "--dry-run", "-C", env.dir)
	require.NoError(t, err)
	assert.Contains(t, out, `-  "name": "old"`)
	assert.Contains(t, out, `+  "name": "new"`)
	assert.Equal(t, "{\n  \"name\": \"old\"\n}", testutil.ReadFile(t, path))

	same := testutil.WriteFile(t, t.TempDir(), "same.json", `{"name":"old"}`)
	out, _, err = runCLI(t, "", "manifest", "--fragment", same, "--dry-run", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, path+" is already up to date\n", out)
}

func TestManifestCommandStrictRejectsCorruptManifest(t *testing.T) {
	env := stubCLI(t)
	testutil.WriteFile(t, env.dir, "package.json", `{oops`)

	_, _, err := runCLI(t, `{"name":"x"}`, "manifest", "--fragment", "-", "--strict", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")

	_, stderr, err := runCLI(t, `{"name":"x"}`, "manifest", "--fragment", "-", "-C", env.dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "could not be parsed")
}

func TestManifestCommandRequiresFragment(t *testing.T) {
	env := stubCLI(t)

	_, _, err := runCLI(t, "", "manifest", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "fragment" not set`)

	_, _, err = runCLI(t, "[1]", "manifest", "--fragment", "-", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest fragment stdin")
}

func TestDownloadCommand(t *testing.T) {
	env := stubCLI(t)
	staging := filepath.Join(env.dir, ".download")
	testutil.WriteFile(t, env.dir, ".download/stale.tgz", "old")

	out, _, err := runCLI(t, "", "download", "https://example.com/pkg.tgz", "-C", env.dir)
	require.NoError(t, err)

	assert.Equal(t, "Downloaded https://example.com/pkg.tgz into "+staging+"\n", out)
	assert.Equal(t, []string{staging}, env.downloader.dirs)
	assert.Equal(t, []string{staging}, env.conn.unpacks)
	_, statErr := os.Stat(filepath.Join(staging, "stale.tgz"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestDownloadCommandDeclinedPrompt(t *testing.T) {
	env := stubCLI(t)
	testutil.WriteFile(t, env.dir, ".download/keep.tgz", "keep")
	isTerminal = func() bool { return true }
	var asked string
	confirmFunc = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, _, err := runCLI(t, "", "download", "https://example.com/pkg.tgz", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "Download cancelled; existing download directory kept\n", out)
	assert.Equal(t, "keep", testutil.ReadFile(t, filepath.Join(env.dir, ".download", "keep.tgz")))
	assert.Contains(t, asked, filepath.Join(env.dir, ".download"))
	assert.Empty(t, env.downloader.urls)
	assert.Equal(t, 1, env.conn.closed)
	assert.Empty(t, env.locked)
}

func TestDownloadCommandPromptSkippedWithYesOrMissingDir(t *testing.T) {
	env := stubCLI(t)
	isTerminal = func() bool { return true }

	_, _, err := runCLI(t, "", "download", "https://example.com/a.tgz", "-C", env.dir)
	require.NoError(t, err, "no staging dir yet, so nothing to confirm")

	_, _, err = runCLI(t, "", "download", "https://example.com/b.tgz", "--yes", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a.tgz", "https://example.com/b.tgz"}, env.downloader.urls)
}

func TestDownloadCommandFailure(t *testing.T) {
	env := stubCLI(t)
	env.downloader.err = errors.New("HTTP 404")

	_, _, err := runCLI(t, "", "download", "https://example.com/pkg.tgz", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Empty(t, env.conn.unpacks)

	_, _, err = runCLI(t, "", "download", "-C", env.dir)
	require.Error(t, err)
}

func TestInstallProjectCommandJSONList(t *testing.T) {
	env := stubCLI(t)
	src := t.TempDir()
	list := testutil.WriteJSON(t, src, "files.json", []map[string]string{
		{"absoluteFilePath": testutil.WriteFile(t, src, "index.js", "main"), "relativeFilePath": "/src/index.js"},
	})

	out, _, err := runCLI(t, "", "install", "project", "--files", list, "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "Installed 1 files into "+env.dir+"\n", out)
	assert.Equal(t, "main", testutil.ReadFile(t, filepath.Join(env.dir, "src", "index.js")))
	assert.Equal(t, []installersvc.InstallRequest{{DestDirPath: env.dir}}, env.conn.installs)
}

func TestInstallProjectCommandYAMLList(t *testing.T) {
	env := stubCLI(t)
	src := t.TempDir()
	abs := testutil.WriteFile(t, src, "a.txt", "a")
	list := testutil.WriteFile(t, src, "files.yaml", "- absoluteFilePath: "+abs+"\n  relativeFilePath: docs/a.txt\n")

	_, _, err := runCLI(t, "", "install", "project", "--files", list, "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "a", testutil.ReadFile(t, filepath.Join(env.dir, "docs", "a.txt")))
}

func TestInstallProjectCommandWithoutFiles(t *testing.T) {
	env := stubCLI(t)
	env.conn.installErr = errors.New("npm missing")

	out, stderr, err := runCLI(t, "", "install", "project", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "Installed 0 files into "+env.dir+"\n", out)
	assert.Contains(t, stderr, "Error modules installation in dir "+env.dir+": npm missing")
	assert.Len(t, env.conn.installs, 1)
}

func TestInstallProjectCommandBadList(t *testing.T) {
	env := stubCLI(t)

	_, _, err := runCLI(t, `{"not":"a list"}`, "install", "project", "--files", "-", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse file list stdin")

	_, _, err = runCLI(t, "", "install", "project", "--files", filepath.Join(t.TempDir(), "nope.json"), "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file list")
}

func TestInstallPackageCommand(t *testing.T) {
	env := stubCLI(t)
	src := t.TempDir()
	list := testutil.WriteJSON(t, src, "files.json", []map[string]string{
		{"absoluteFilePath": testutil.WriteFile(t, src, "Foo.js", "foo"), "relativeFilePath": "/src/usr/components/Foo.js"},
		{"absoluteFilePath": testutil.WriteFile(t, src, "Bar.js", "bar"), "relativeFilePath": "/other/Bar.js"},
	})
	pkg := testutil.WriteFile(t, src, "package.json", `{"name":"pkgA","dependencies":{"react":"^18.0.0","lodash":"4.17.21"},"devDependencies":{"jest":"^29.0.0"}}`)

	out, _, err := runCLI(t, "", "install", "package", "--files", list, "--subdir", "pkgA", "--manifest", pkg, "--dev-deps", "vitest@^1.0.0", "-C", env.dir)
	require.NoError(t, err)

	assert.Equal(t, "Installed 1 files into "+env.dir+" (1 skipped)\n  skipped /other/Bar.js\n", out)
	assert.Equal(t, "foo", testutil.ReadFile(t, filepath.Join(env.dir, "src", "usr", "pkgA", "components", "Foo.js")))
	assert.Equal(t, []installersvc.InstallRequest{
		{DestDirPath: env.dir, Dependencies: "react@^18.0.0 lodash@4.17.21", IsDevelopment: false},
		{DestDirPath: env.dir, Dependencies: "vitest@^1.0.0", IsDevelopment: true},
	}, env.conn.installs)
}

func TestInstallPackageCommandWithoutDependencies(t *testing.T) {
	env := stubCLI(t)

	_, _, err := runCLI(t, "", "install", "package", "--subdir", "pkgA", "-C", env.dir)
	require.NoError(t, err)
	assert.Empty(t, env.conn.installs)

	_, _, err = runCLI(t, "", "install", "package", "--subdir", "pkgA", "--deps", "react@18", "--deps", "@scope/ui@2.0.0", "-C", env.dir)
	require.NoError(t, err)
	require.Len(t, env.conn.installs, 1)
	assert.Equal(t, "react@18 @scope/ui@2.0.0", env.conn.installs[0].Dependencies)
}

func TestInstallPackageCommandErrors(t *testing.T) {
	env := stubCLI(t)

	_, _, err := runCLI(t, "", "install", "package", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "subdir" not set`)

	_, _, err = runCLI(t, "", "install", "package", "--subdir", "pkgA", "--deps", "react", "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be name@version")

	pkg := testutil.WriteFile(t, t.TempDir(), "package.json", `{"dependencies":["react"]}`)
	_, _, err = runCLI(t, "", "install", "package", "--subdir", "pkgA", "--manifest", pkg, "-C", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse package manifest")
}

func TestCleanCommand(t *testing.T) {
	env := stubCLI(t)
	testutil.WriteFile(t, env.dir, ".download/pkg.tgz", "x")
	staging := filepath.Join(env.dir, ".download")

	out, _, err := runCLI(t, "", "clean", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "Removed "+staging+"\n", out)
	_, statErr := os.Stat(staging)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	_, _, err = runCLI(t, "", "clean", "-C", env.dir)
	require.NoError(t, err, "cleaning twice is fine")
}

func TestCleanCommandPrompt(t *testing.T) {
	env := stubCLI(t)
	testutil.WriteFile(t, env.dir, ".download/pkg.tgz", "x")
	isTerminal = func() bool { return true }

	confirmFunc = func(string) (bool, error) { return false, nil }
	out, _, err := runCLI(t, "", "clean", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, "Nothing removed\n", out)

	confirmFunc = func(string) (bool, error) { return false, errors.New("prompt aborted") }
	_, _, err = runCLI(t, "", "clean", "-C", env.dir)
	require.Error(t, err)

	confirmFunc = func(string) (bool, error) { return true, nil }
	_, _, err = runCLI(t, "", "clean", "-C", env.dir)
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(env.dir, ".download"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCommandsUseConfiguredLayout(t *testing.T) {
	env := stubCLI(t)
	env.cfg.Layout.DownloadDir = "staging"

	_, _, err := runCLI(t, "", "download", "https://example.com/p.tgz", "-C", env.dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(env.dir, "staging")}, env.downloader.dirs)
}

package projectinstall

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/project-install/internal/installersvc"
)

// journal records calls across fakes so tests can assert ordering.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// faultSystem wraps a System with call recording and per-path error injection.
type faultSystem struct {
	base       System
	log        *journal
	readErrs   map[string]error
	writeErrs  map[string]error
	copyErrs   map[string]error
	removeErrs map[string]error
}

func newFaultSystem(base System, log *journal) *faultSystem {
	return &faultSystem{
		base:       base,
		log:        log,
		readErrs:   map[string]error{},
		writeErrs:  map[string]error{},
		copyErrs:   map[string]error{},
		removeErrs: map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) ReadFile(name string) ([]byte, error) {
	f.log.add("read %s", name)
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadFile(name)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f.log.add("write %s", filename)
	if err, ok := f.writeErrs[normalizePath(filename)]; ok {
		return err
	}
	return f.base.WriteFileAtomic(filename, data, perm)
}

func (f *faultSystem) CopyFile(src string, dst string) error {
	f.log.add("copy %s -> %s", src, dst)
	if err, ok := f.copyErrs[normalizePath(src)]; ok {
		return err
	}
	return f.base.CopyFile(src, dst)
}

func (f *faultSystem) RemoveAll(path string) error {
	f.log.add("remove %s", path)
	if err, ok := f.removeErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.RemoveAll(path)
}

type fakeDownloader struct {
	log     *journal
	err     error
	payload map[string]string
}

func (d *fakeDownloader) Download(_ context.Context, url string, destDir string) error {
	d.log.add("download %s -> %s", url, destDir)
	if d.err != nil {
		return d.err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	for name, content := range d.payload {
		if err := os.WriteFile(filepath.Join(destDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeInstaller struct {
	log       *journal
	installs  []installersvc.InstallRequest
	unpacks   []string
	installFn func(installersvc.InstallRequest) error
	unpackErr error
}

func (i *fakeInstaller) Install(_ context.Context, req installersvc.InstallRequest) error {
	i.log.add("install %s deps=%q dev=%t", req.DestDirPath, req.Dependencies, req.IsDevelopment)
	i.installs = append(i.installs, req)
	if i.installFn != nil {
		return i.installFn(req)
	}
	return nil
}

func (i *fakeInstaller) UnpackPackagesInDir(_ context.Context, dirPath string) error {
	i.log.add("unpack %s", dirPath)
	i.unpacks = append(i.unpacks, dirPath)
	return i.unpackErr
}

type harness struct {
	dir        string
	log        *journal
	sys        *faultSystem
	downloader *fakeDownloader
	installer  *fakeInstaller
	warnings   *bytes.Buffer
	manager    *Manager
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	log := &journal{}
	h := &harness{
		dir:        t.TempDir(),
		log:        log,
		sys:        newFaultSystem(RealSystem{}, log),
		downloader: &fakeDownloader{log: log},
		installer:  &fakeInstaller{log: log},
		warnings:   &bytes.Buffer{},
	}
	opts := Options{
		System:     h.sys,
		Downloader: h.downloader,
		Installer:  h.installer,
		WarnWriter: h.warnings,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	manager, err := New(opts)
	require.NoError(t, err)
	h.manager = manager
	return h
}

// writeSource creates a source file outside the project directory and returns its path.
func writeSource(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

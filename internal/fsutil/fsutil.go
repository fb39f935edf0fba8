// Package fsutil holds small filesystem helpers shared by the installer and transport.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/conn-castle/project-install/internal/messages"
)

// Seams for tests.
var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
	osChmod      = os.Chmod
)

// WriteFileAtomic writes data to filename by writing a temp file in the same
// directory and renaming it into place. The parent directory must exist.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := osCreateTemp(dir, "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFileFmt, filename, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := osChmod(tmpName, perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FsutilSetPermissionsFmt, filename, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FsutilWriteTempFileFmt, filename, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FsutilSyncTempFileFmt, filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FsutilCloseTempFileFmt, filename, err)
	}
	if err := osRename(tmpName, filename); err != nil {
		return fmt.Errorf(messages.FsutilRenameTempFileFmt, filename, err)
	}
	committed = true
	return nil
}

// CopyFile copies the regular file src to dst, creating dst's parent
// directories and preserving the source permission bits. An existing dst is replaced.
func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(messages.FsutilOpenSourceFmt, src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf(messages.FsutilStatSourceFmt, src, err)
	}
	if info.IsDir() {
		return fmt.Errorf(messages.FsutilSourceIsDirFmt, src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf(messages.FsutilCreateDirFmt, dst, err)
	}

	tmp, err := osCreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFileFmt, dst, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FsutilCopyContentFmt, src, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FsutilCloseTempFileFmt, dst, err)
	}
	if err := osChmod(tmpName, info.Mode().Perm()); err != nil {
		return fmt.Errorf(messages.FsutilSetPermissionsFmt, dst, err)
	}
	if err := osRename(tmpName, dst); err != nil {
		return fmt.Errorf(messages.FsutilRenameTempFileFmt, dst, err)
	}
	committed = true
	return nil
}

package projectinstall

import (
	"os"

	"github.com/conn-castle/project-install/internal/fsutil"
)

// System abstracts the filesystem operations the install pipeline needs.
type System interface {
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	CopyFile(src string, dst string) error
	RemoveAll(path string) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFileAtomic writes data to filename atomically with the provided permissions.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// CopyFile copies src to dst, creating parent directories of dst as needed.
func (RealSystem) CopyFile(src string, dst string) error {
	return fsutil.CopyFile(src, dst)
}

// RemoveAll removes path and any children it contains. A missing path is not an error.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Package dirlock serializes work on a project directory across processes
// using an advisory lock file kept in the user cache directory.
package dirlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/messages"
)

const locksDirName = "locks"

type fileLock struct {
	file *os.File
}

var userCacheDir = os.UserCacheDir
var lockFileFn = lockFile
var unlockFileFn = unlockFile
var flockFn = unix.Flock
var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// With holds the lock for dir while fn runs.
// Two callers targeting the same directory never run fn concurrently.
func With(dir string, fn func() error) error {
	path, err := Path(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.DirlockCreateDirFmt, filepath.Dir(path), err)
	}
	return withFileLock(path, fn)
}

// Path returns the lock file path for dir.
func Path(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf(messages.DirlockPathRequired)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	cacheDir, err := userCacheDir()
	if err != nil {
		return "", fmt.Errorf(messages.DirlockResolveCacheDirFmt, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(cacheDir, config.AppDirName, locksDirName, hex.EncodeToString(sum[:])+".lock"), nil
}

// withFileLock acquires a lock for path, runs fn, and releases the lock.
func withFileLock(path string, fn func() error) error {
	lock, err := acquireFileLock(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquireFileLock opens or creates path and acquires an exclusive lock.
func acquireFileLock(path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.DirlockOpenFmt, path, err)
	}
	if err := lockFileFn(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf(messages.DirlockLockFmt, path, err)
	}
	return &fileLock{file: file}, nil
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFileFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

// lockFile polls for an exclusive advisory lock until lockWaitTimeout elapses.
func lockFile(file *os.File) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.DirlockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}

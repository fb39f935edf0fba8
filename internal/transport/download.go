// Package transport downloads remote package bundles into a local staging directory.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/messages"
)

var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
)

// HTTPDownloader fetches a URL into a directory with a single attempt.
type HTTPDownloader struct {
	client   *http.Client
	maxBytes int64
	fileName string
}

// NewHTTPDownloader builds a downloader from transport settings.
func NewHTTPDownloader(cfg config.TransportConfig) *HTTPDownloader {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutSeconds) * time.Second
	}
	return NewHTTPDownloaderWithClient(&http.Client{Timeout: timeout}, cfg)
}

// NewHTTPDownloaderWithClient builds a downloader that uses client for requests.
func NewHTTPDownloaderWithClient(client *http.Client, cfg config.TransportConfig) *HTTPDownloader {
	maxBytes := cfg.MaxDownloadBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxDownloadBytes
	}
	fileName := strings.TrimSpace(cfg.FileName)
	if fileName == "" {
		fileName = config.DefaultDownloadFileName
	}
	return &HTTPDownloader{client: client, maxBytes: maxBytes, fileName: fileName}
}

// Download fetches rawURL and stores the body in destDir, creating destDir if needed.
// The file name comes from Content-Disposition, then the URL path, then the configured fallback.
// Failures are returned as-is; nothing is retried.
func (d *HTTPDownloader) Download(ctx context.Context, rawURL string, destDir string) error {
	if strings.TrimSpace(destDir) == "" {
		return fmt.Errorf(messages.TransportDestDirRequired)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf(messages.TransportInvalidURLFmt, rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf(messages.TransportUnsupportedSchemeFmt, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf(messages.TransportCreateRequestFmt, rawURL, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return fmt.Errorf(messages.TransportDownloadTimeoutFmt, rawURL)
		}
		return fmt.Errorf(messages.TransportDownloadFailedFmt, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf(messages.TransportDownloadNotFoundFmt, rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.TransportUnexpectedStatusFmt, rawURL, resp.Status)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf(messages.TransportCreateDestDirFmt, destDir, err)
	}
	name := d.targetName(resp.Header.Get("Content-Disposition"), parsed)
	return d.writeBody(rawURL, resp.Body, filepath.Join(destDir, name))
}

func (d *HTTPDownloader) writeBody(rawURL string, body io.Reader, dest string) error {
	tmp, err := osCreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.TransportCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	n, copyErr := io.Copy(tmp, io.LimitReader(body, d.maxBytes+1))
	if copyErr != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.TransportDownloadFailedFmt, rawURL, copyErr)
	}
	if n > d.maxBytes {
		_ = tmp.Close()
		return fmt.Errorf(messages.TransportDownloadTooLargeFmt, rawURL, n, d.maxBytes)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.TransportSyncTempFileFmt, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.TransportCloseTempFileFmt, err)
	}
	if err := osRename(tmpName, dest); err != nil {
		return fmt.Errorf(messages.TransportMoveDownloadFmt, err)
	}
	committed = true
	return nil
}

// targetName picks a safe single-element file name for the download.
func (d *HTTPDownloader) targetName(disposition string, u *url.URL) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := safeName(params["filename"]); name != "" {
				return name
			}
		}
	}
	if name := safeName(path.Base(u.Path)); name != "" {
		return name
	}
	return d.fileName
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return ""
	}
	return name
}

// isTimeoutError reports whether err is a network timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

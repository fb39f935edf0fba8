// Package installersvc talks to the out-of-process installer service over MCP.
// The service exposes two tools: one installs npm-style dependency lists into a
// project directory and one unpacks every package archive found in a directory.
package installersvc

import (
	"context"
	"errors"

	"github.com/conn-castle/project-install/internal/messages"
)

// Tool names exposed by the installer service.
const (
	ToolInstall = "install"
	ToolUnpack  = "unpackPackagesInDir"
)

// ErrToolFailed reports that the installer service ran a tool and the tool reported failure.
var ErrToolFailed = errors.New(messages.InstallerToolFailed)

// InstallRequest is the payload of the install tool.
// Dependencies is a space-separated list of name@version specifiers and may be empty.
type InstallRequest struct {
	DestDirPath   string `json:"destDirPath"`
	Dependencies  string `json:"dependencies"`
	IsDevelopment bool   `json:"isDevelopment"`
}

// UnpackRequest is the payload of the unpackPackagesInDir tool.
type UnpackRequest struct {
	DirPath string `json:"dirPath"`
}

// Service is the installer contract shared by the MCP client and server sides.
type Service interface {
	Install(ctx context.Context, req InstallRequest) error
	UnpackPackagesInDir(ctx context.Context, dirPath string) error
}

// Conn is a Service backed by a connection that must be closed.
type Conn interface {
	Service
	Close() error
}

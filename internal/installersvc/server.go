package installersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/project-install/internal/messages"
)

const serverName = "project-install-installer"

type serverRunner func(ctx context.Context, server *mcp.Server) error

// Serve exposes impl as an installer service over stdio until ctx is done or stdin closes.
// pim never calls it; it is the entry point for installer processes written in Go.
func Serve(ctx context.Context, impl Service, version string) error {
	return serve(ctx, impl, version, defaultServerRunner)
}

func serve(ctx context.Context, impl Service, version string, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.InstallerServerFailedFmt, errors.New(messages.InstallerRunnerRequired))
	}
	server, err := NewServer(impl, version)
	if err != nil {
		return err
	}
	if err := runner(ctx, server); err != nil {
		return fmt.Errorf(messages.InstallerServerFailedFmt, err)
	}
	return nil
}

// NewServer builds an MCP server that routes the installer tools to impl.
func NewServer(impl Service, version string) (*mcp.Server, error) {
	if impl == nil {
		return nil, fmt.Errorf(messages.InstallerServiceRequired)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolInstall,
		Description: messages.InstallerToolInstallDesc,
	}, installHandler(impl))
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolUnpack,
		Description: messages.InstallerToolUnpackDesc,
	}, unpackHandler(impl))

	return server, nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func installHandler(impl Service) func(context.Context, *mcp.CallToolRequest, InstallRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in InstallRequest) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.DestDirPath) == "" {
			return toolResult(errors.New(messages.InstallerDirPathRequired)), nil, nil
		}
		return toolResult(impl.Install(ctx, in)), nil, nil
	}
}

func unpackHandler(impl Service) func(context.Context, *mcp.CallToolRequest, UnpackRequest) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UnpackRequest) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.DirPath) == "" {
			return toolResult(errors.New(messages.InstallerDirPathRequired)), nil, nil
		}
		return toolResult(impl.UnpackPackagesInDir(ctx, in.DirPath)), nil, nil
	}
}

// toolResult reports err as a tool-level failure so the session stays usable.
func toolResult(err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "ok"}},
	}
}

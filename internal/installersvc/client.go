package installersvc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/project-install/internal/config"
	"github.com/conn-castle/project-install/internal/envfile"
	"github.com/conn-castle/project-install/internal/messages"
)

const clientName = "project-install"

var execCommand = exec.Command
var readEnvFile = os.ReadFile

// toolCaller is the subset of *mcp.ClientSession used by Client.
type toolCaller interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
	Close() error
}

// Client calls installer tools over an MCP client session.
type Client struct {
	session toolCaller
}

// Dial launches the configured installer command and connects to it over stdio.
func Dial(ctx context.Context, cfg config.InstallerConfig, version string) (*Client, error) {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		return nil, fmt.Errorf(messages.InstallerCommandRequired)
	}
	env, err := installerEnv(cfg)
	if err != nil {
		return nil, err
	}
	cmd := execCommand(command, cfg.Args...)
	cmd.Env = env
	cmd.Stderr = os.Stderr

	client, err := Connect(ctx, &mcp.CommandTransport{Command: cmd}, version)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallerConnectFmt, command, err)
	}
	return client, nil
}

// installerEnv returns the process environment followed by the env file and then cfg.Env.
// Later entries override earlier ones for the same key.
func installerEnv(cfg config.InstallerConfig) ([]string, error) {
	env := os.Environ()
	if strings.TrimSpace(cfg.EnvFile) != "" {
		path, err := config.ExpandPath(cfg.EnvFile)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallerEnvFileFmt, cfg.EnvFile, err)
		}
		data, err := readEnvFile(path)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallerEnvFileFmt, path, err)
		}
		fileEnv, err := envfile.Environ(string(data))
		if err != nil {
			return nil, fmt.Errorf(messages.InstallerEnvFileFmt, path, err)
		}
		env = append(env, fileEnv...)
	}
	return append(env, cfg.Env...), nil
}

// Connect opens an MCP client session over transport.
func Connect(ctx context.Context, transport mcp.Transport, version string) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: version,
	}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	return &Client{session: session}, nil
}

// Install runs the install tool.
func (c *Client) Install(ctx context.Context, req InstallRequest) error {
	return c.call(ctx, ToolInstall, req)
}

// UnpackPackagesInDir runs the unpackPackagesInDir tool.
func (c *Client) UnpackPackagesInDir(ctx context.Context, dirPath string) error {
	return c.call(ctx, ToolUnpack, UnpackRequest{DirPath: dirPath})
}

// Close ends the session and stops the installer process when one was launched.
func (c *Client) Close() error {
	return c.session.Close()
}

func (c *Client) call(ctx context.Context, tool string, args any) error {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return fmt.Errorf(messages.InstallerCallFmt, tool, err)
	}
	if res != nil && res.IsError {
		return fmt.Errorf(messages.InstallerToolFailedFmt, ErrToolFailed, tool, resultText(res))
	}
	return nil
}

// resultText joins the text content of a tool result.
func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok && strings.TrimSpace(text.Text) != "" {
			parts = append(parts, strings.TrimSpace(text.Text))
		}
	}
	if len(parts) == 0 {
		return messages.InstallerNoDetails
	}
	return strings.Join(parts, "; ")
}

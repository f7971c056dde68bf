package cli

import (
	"context"
	"fmt"

	"github.com/ignition-tooling/ignition-lint/pkg/console"
	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveLog = logger.New("cli:serve_command")

// NewServeCommand creates the serve command
func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio so coding agents can lint
views and scripts through tool calls. Three tools are exposed:

  lint_view     Validate a single view.json file
  lint_script   Validate a single Jython script file
  lint_project  Validate an entire Ignition project directory

Each tool returns the JSON report. The severity floor and mode flags apply
to every tool call.

Examples:
  ignition-lint serve                     # Serve with default settings
  ignition-lint serve --mode strict       # Strict component acceptance
  ignition-lint serve --severity warning  # Report failure from warnings up`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := buildRunner(cmd)
			if err != nil {
				return err
			}
			serveLog.Print("Starting MCP server on stdio")
			server := newMCPServer(runner, version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	addLintFlags(cmd)
	return cmd
}

type lintFileArgs struct {
	Path string `json:"path" jsonschema:"absolute or relative path to the file"`
}

type lintProjectArgs struct {
	Root string `json:"root" jsonschema:"path to the Ignition project directory"`
}

func newMCPServer(runner *lint.Runner, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "ignition-lint", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_view",
		Description: "Validate a Perspective view.json file and return the JSON lint report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args lintFileArgs) (*mcp.CallToolResult, any, error) {
		return lintResult(runner, []string{args.Path})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_script",
		Description: "Validate a Jython script file and return the JSON lint report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args lintFileArgs) (*mcp.CallToolResult, any, error) {
		return lintResult(runner, []string{args.Path})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lint_project",
		Description: "Validate every view and script in an Ignition project directory and return the JSON lint report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args lintProjectArgs) (*mcp.CallToolResult, any, error) {
		files, err := lint.DiscoverProject(args.Root)
		if err != nil {
			return nil, nil, err
		}
		return lintResult(runner, files)
	})

	return server
}

func lintResult(runner *lint.Runner, files []string) (*mcp.CallToolResult, any, error) {
	report := runner.Run(files)
	data, err := console.RenderJSON(report)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding report: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: !report.Passed(runner.SeverityFloor()),
	}, nil, nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxyprofile/pkg/artifact"
	"github.com/matzehuels/galaxyprofile/pkg/buildinfo"
	"github.com/matzehuels/galaxyprofile/pkg/config"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/pipeline"
)

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	var backend backendOptions

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing render tools over stdio",
		Long: `Mcp starts a Model Context Protocol server on stdin/stdout with two tools:

  render_profile   render all documents of a config into a directory
  render_artifact  render one document and return its SVG source

Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), backend)
			if err != nil {
				return err
			}
			defer runner.Close()

			s := server.NewMCPServer(appName, buildinfo.Version)
			newMCPTools(runner, c.Logger).register(s)
			c.Logger.Info("mcp server ready", "transport", "stdio")
			return server.ServeStdio(s)
		},
	}

	backend.register(cmd)
	return cmd
}

// mcpTools implements the MCP tool handlers on top of a runner.
type mcpTools struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newMCPTools(runner *pipeline.Runner, logger *log.Logger) *mcpTools {
	return &mcpTools{runner: runner, logger: logger}
}

func (t *mcpTools) register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("render_profile",
		mcp.WithDescription("Renders all four galaxy profile SVG documents (header, stats card, tech stack, projects) from a profile config and writes them to a directory."),
		mcp.WithString("config_path",
			mcp.Description("Path to the profile config file (YAML or TOML). Defaults to ./config.yml"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory the documents are written to. Defaults to ./assets/generated"),
		),
		mcp.WithBoolean("demo",
			mcp.Description("Use fixed demo data instead of calling the GitHub API"),
		),
		mcp.WithBoolean("png",
			mcp.Description("Also write PNG previews"),
		),
	), t.renderProfile)

	s.AddTool(mcp.NewTool("render_artifact",
		mcp.WithDescription("Renders one galaxy profile document and returns its SVG source."),
		mcp.WithString("artifact",
			mcp.Required(),
			mcp.Description("Document name: galaxy-header, stats-card, tech-stack or projects-constellation"),
		),
		mcp.WithString("config_path",
			mcp.Description("Path to the profile config file (YAML or TOML). Defaults to ./config.yml"),
		),
		mcp.WithBoolean("demo",
			mcp.Description("Use fixed demo data instead of calling the GitHub API"),
		),
	), t.renderArtifact)
}

func (t *mcpTools) renderProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments
	configPath := stringArg(args, "config_path", config.DefaultPath)
	outputDir := stringArg(args, "output_dir", defaultOutputDir)
	demo := boolArg(args, "demo")

	cfg, _, err := loadProfile(configPath, demo)
	if err != nil {
		return toolError(err), nil
	}
	store, err := artifact.NewDirStore(outputDir)
	if err != nil {
		return toolError(err), nil
	}
	defer store.Close(ctx)

	result, err := t.runner.Execute(ctx, cfg, pipeline.Options{
		Demo:    demo,
		Formats: parseFormats(boolArg(args, "png")),
	})
	if err != nil {
		return toolError(err), nil
	}
	rows, err := saveArtifacts(ctx, store, cfg.Username, result)
	if err != nil {
		return toolError(err), nil
	}
	t.logger.Info("rendered profile", "user", cfg.Username, "files", len(rows), "dir", outputDir)

	var b strings.Builder
	fmt.Fprintf(&b, "Rendered %d documents for %s (run %s).\n\n", len(rows), cfg.Username, result.RunID)
	for _, r := range rows {
		fmt.Fprintf(&b, "  - %s (%s)\n", r.Dest, formatBytes(r.Size))
	}
	switch {
	case result.Demo:
		b.WriteString("\nDemo data was used.\n")
	case result.Degraded:
		b.WriteString("\nGitHub data was unavailable; fallback values were rendered.\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (t *mcpTools) renderArtifact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments
	name, ok := args["artifact"].(string)
	if !ok || name == "" {
		return toolError(errors.New(errors.ErrCodeInvalidInput, "artifact is required")), nil
	}
	a, err := pipeline.ParseArtifact(name)
	if err != nil {
		return toolError(err), nil
	}
	demo := boolArg(args, "demo")
	cfg, _, err := loadProfile(stringArg(args, "config_path", config.DefaultPath), demo)
	if err != nil {
		return toolError(err), nil
	}

	result, err := t.runner.Execute(ctx, cfg, pipeline.Options{Demo: demo, Only: []pipeline.Artifact{a}})
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(string(result.Artifacts[a.Filename(pipeline.FormatSVG)])), nil
}

// toolError reports err to the client as a failed tool call.
func toolError(err error) *mcp.CallToolResult {
	msg := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		msg = string(code) + ": " + msg
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
		IsError: true,
	}
}

func stringArg(args map[string]interface{}, key, def string) string {
	if v, ok := args[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func boolArg(args map[string]interface{}, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	}
	return false
}

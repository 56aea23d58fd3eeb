package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rodrigopv/vercheck/internal/fetch"
	"github.com/rodrigopv/vercheck/internal/resolver"
	"github.com/rodrigopv/vercheck/internal/store"
)

// MCPServer represents an MCP server instance
type MCPServer struct {
	host      string
	port      int
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(host string, port int) *MCPServer {
	return &MCPServer{
		host: host,
		port: port,
	}
}

// Start initializes the MCP server and serves it over SSE.
func (s *MCPServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	log.Printf("Starting MCP server on %s\n", addr)

	if err := s.InitMCPServer(); err != nil {
		return fmt.Errorf("failed to initialize MCP server: %w", err)
	}

	sseServer := server.NewSSEServer(s.mcpServer)
	return sseServer.Start(addr)
}

// InitMCPServer initializes the MCP server and registers the resolve tool.
func (s *MCPServer) InitMCPServer() error {
	log.Println("Initializing MCP server...")

	mcpServer := server.NewMCPServer(
		"vercheck",
		"1.0.0",
		server.WithLogging(),
		server.WithRecovery(),
	)

	resolveTool := mcp.NewTool("vercheck_resolve",
		mcp.WithDescription("Resolve the currently published version of a mobile application from its distribution store"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Target platform"),
			mcp.Enum("android", "ios"),
		),
		mcp.WithString("package",
			mcp.Description("Package / bundle identifier of the installed build"),
		),
		mcp.WithString("local_version",
			mcp.Description("Version string of the installed build, echoed into the record"),
		),
		mcp.WithString("play_id",
			mcp.Description("Explicit Play Store application id (defaults to package)"),
		),
		mcp.WithString("apple_id",
			mcp.Description("Explicit App Store numeric id (takes precedence over bundle id)"),
		),
		mcp.WithString("bundle_id",
			mcp.Description("Explicit App Store bundle id (defaults to package)"),
		),
		mcp.WithString("country",
			mcp.Description("App Store lookup country code (defaults to us)"),
		),
		mcp.WithString("manufacturer",
			mcp.Description("Device manufacturer routing signal for the Android OEM store"),
		),
	)

	mcpServer.AddTool(resolveTool, s.handleResolveToolRequest)

	s.mcpServer = mcpServer

	log.Println("MCP server initialized successfully")
	return nil
}

// handleResolveToolRequest handles resolve tool requests from MCP clients
func (s *MCPServer) handleResolveToolRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, ok := request.Params.Arguments["platform"].(string)
	if !ok || platform == "" {
		return mcp.NewToolResultError("Missing or invalid platform"), nil
	}

	stringArg := func(name string) string {
		v, _ := request.Params.Arguments[name].(string)
		return v
	}

	req := store.Request{
		Local: store.PackageInfo{
			PackageName: stringArg("package"),
			Version:     stringArg("local_version"),
		},
		PlayStoreID: stringArg("play_id"),
		AppleID:     stringArg("apple_id"),
		BundleID:    stringArg("bundle_id"),
		Country:     stringArg("country"),
	}

	log.Printf("Received resolve request for platform %s, package %q", platform, req.Local.PackageName)

	var classifier resolver.DeviceClassifier
	if manufacturer := stringArg("manufacturer"); manufacturer != "" {
		classifier = resolver.StaticClassifier(manufacturer)
	}

	fetcher := fetch.NewHTTPFetcher()
	rsv := resolver.New(fetcher, classifier)

	record, err := rsv.Resolve(store.Platform(platform), req)
	if err != nil {
		log.Printf("Resolve error: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("Error resolving store version: %v", err)), nil
	}

	jsonData, jsonErr := json.MarshalIndent(record, "", "  ")
	if jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error converting record to JSON: %v", jsonErr)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

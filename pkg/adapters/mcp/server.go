package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/dto"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
	"github.com/aretw0/knitcalc/pkg/ports"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LocalesURI is the resource listing the available languages.
const LocalesURI = "knitcalc://locales"

// Server wraps a Calculator and exposes it as an MCP Server.
type Server struct {
	engine    ports.Calculator
	catalog   *locale.Catalog
	mode      domain.Mode
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. defaultMode applies when a
// tool call names no mode.
func NewServer(engine ports.Calculator, catalog *locale.Catalog, defaultMode domain.Mode) *Server {
	if catalog == nil {
		catalog = locale.Default()
	}
	if !defaultMode.Valid() {
		defaultMode = domain.Decrease
	}
	s := &Server{
		engine:    engine,
		catalog:   catalog,
		mode:      defaultMode,
		mcpServer: server.NewMCPServer("knitcalc", knitcalc.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: distribute_stitches
	distributeTool := mcp.NewTool("distribute_stitches",
		mcp.WithDescription("Spread increases or decreases evenly across a row of knitting and return the grouped instructions."),
		mcp.WithNumber("stitches", mcp.Required(), mcp.Description("Stitches currently on the needle")),
		mcp.WithNumber("changes", mcp.Required(), mcp.Description("Number of increases or decreases to make")),
		mcp.WithString("mode", mcp.Description("'decrease' or 'increase' (defaults to the server setting)")),
		mcp.WithString("lang", mcp.Description("Language tag for the text rendering, e.g. 'en' or 'nb-NO'")),
		mcp.WithBoolean("expand", mcp.Description("Also return every individual action")),
		mcp.WithOutputSchema[dto.DistributeResponse](),
	)
	s.mcpServer.AddTool(distributeTool, mcp.NewStructuredToolHandler(s.handleDistribute))

	// TOOL: list_locales
	s.mcpServer.AddTool(mcp.NewTool("list_locales",
		mcp.WithDescription("List the languages instructions can be rendered in."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.catalog.Langs())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleDistribute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.DistributeResponse, error) {
	in, err := dto.DecodeInput(args)
	if err != nil {
		return dto.DistributeResponse{}, err
	}

	req, res, err := dto.Evaluate(ctx, s.engine, in, s.mode)
	if err != nil {
		return dto.DistributeResponse{}, fmt.Errorf("calculation failed: %w", err)
	}

	tbl := s.catalog.Lookup(in.Lang)
	view := presentation.Render(presentation.Context{Mode: req.Mode, Locale: tbl}, res)
	slog.Debug("MCP distribute", "stitches", req.Stitches, "changes", req.Changes, "mode", req.Mode, "outcome", res.Outcome)

	return dto.NewDistributeResponse(res, view, tbl.Lang, in.Expand), nil
}

func (s *Server) registerResources() {
	// EXPOSE: knitcalc://locales
	s.mcpServer.AddResource(mcp.NewResource(LocalesURI, "Available Languages",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type entry struct {
			Lang    string   `json:"lang"`
			Name    string   `json:"name"`
			Aliases []string `json:"aliases,omitempty"`
		}
		var entries []entry
		for _, t := range s.catalog.Tables() {
			entries = append(entries, entry{Lang: t.Lang, Name: t.Name, Aliases: t.Aliases})
		}
		jsonBytes, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to list locales: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LocalesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

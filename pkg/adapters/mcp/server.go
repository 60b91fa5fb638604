package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/executor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProgramsURI is the resource listing every available program.
const ProgramsURI = "turing://programs"

// RunArgs are the arguments of the run_machine tool.
type RunArgs struct {
	Program    string `json:"program,omitempty"`
	Definition string `json:"definition,omitempty"`
	Tape       string `json:"tape,omitempty"`
	MaxSteps   int    `json:"max_steps,omitempty"`
}

// NameArgs are the arguments of tools addressing a single program.
type NameArgs struct {
	Name string `json:"name"`
}

// ProgramList is the result of list_programs.
type ProgramList struct {
	Programs []executor.Summary `json:"programs" jsonschema_description:"Available programs"`
}

// Server wraps an Executor and exposes it as an MCP Server.
type Server struct {
	exec      *executor.Executor
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for tool failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(exec *executor.Executor, opts ...Option) *Server {
	s := &Server{
		exec:      exec,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
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

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine to completion and return the final tape. "+
			"Give either the name of a program or an inline YAML/JSON definition."),
		mcp.WithString("program", mcp.Description("Name of a program (see list_programs)")),
		mcp.WithString("definition", mcp.Description("Inline machine definition document (YAML or JSON)")),
		mcp.WithString("tape", mcp.Description("Initial tape, one symbol per character. Defaults to the program's example")),
		mcp.WithNumber("max_steps", mcp.Description("Abort after this many steps (optional)")),
		mcp.WithOutputSchema[domain.RunResult](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: list_programs
	s.mcpServer.AddTool(mcp.NewTool("list_programs",
		mcp.WithDescription("List the available programs with a short description and an example tape."),
		mcp.WithOutputSchema[ProgramList](),
	), mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: describe_program
	s.mcpServer.AddTool(mcp.NewTool("describe_program",
		mcp.WithDescription("Describe a program: start and halting states, blank symbol and rule table (markdown)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Program name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := s.exec.Lookup(request.GetString("name", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(tui.DescribeMarkdown(def)), nil
	})

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state diagram of a program as Mermaid source."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Program name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		diagram, err := s.diagram(request.GetString("name", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(diagram), nil
	})
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (domain.RunResult, error) {
	req := executor.Request{
		Program:  args.Program,
		Tape:     args.Tape,
		MaxSteps: args.MaxSteps,
	}
	if args.Definition != "" {
		// YAML is a superset of JSON, so one parser serves both.
		def, err := definition.Parse([]byte(args.Definition), definition.FormatYAML)
		if err != nil {
			return domain.RunResult{}, fmt.Errorf("invalid definition: %w", err)
		}
		req.Definition = def
	}

	res, err := s.exec.Execute(ctx, req)
	if err != nil {
		s.logger.Debug("MCP run_machine failed", "program", args.Program, "err", err)
		return domain.RunResult{}, err
	}
	return *res, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ProgramList, error) {
	list, err := s.exec.List()
	if err != nil {
		return ProgramList{}, err
	}
	if list == nil {
		list = []executor.Summary{}
	}
	return ProgramList{Programs: list}, nil
}

func (s *Server) diagram(name string) (string, error) {
	def, err := s.exec.Lookup(name)
	if err != nil {
		return "", err
	}
	m, err := def.Build(nil)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(graph.Diagram{
		Start:       m.InitialState(),
		Halting:     m.HaltingStates(),
		Blank:       m.Blank(),
		Transitions: m.Table().Transitions(),
	}, nil), nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://programs
	s.mcpServer.AddResource(mcp.NewResource(ProgramsURI, "Available Programs",
		mcp.WithResourceDescription("Programs that run_machine accepts by name"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.exec.List()
		if err != nil {
			return nil, fmt.Errorf("failed to list programs: %w", err)
		}
		jsonBytes, _ := json.Marshal(list)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ProgramsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

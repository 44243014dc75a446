package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SELab-2/Dwengo-4-sub000"
	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/internal/validation"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/session"
)

// PickResult carries the key of the new draft node.
type PickResult struct {
	Node    domain.NodeKey  `json:"node" jsonschema_description:"Key of the inserted draft node"`
	Session editor.Snapshot `json:"session"`
}

// SaveResult carries the id the store assigned to the path.
type SaveResult struct {
	PathID int64 `json:"path_id" jsonschema_description:"Id of the stored path"`
}

// Server exposes the editing sessions of a Manager as MCP tools.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("dwengo-mcp", strings.TrimSpace(dwengo.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
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
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Id returned by open_session"))
}

func branchParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("parent", mcp.Description("Decision node key (p:<id> or d:<seq>) owning the branch; empty for the root sequence")),
		mcp.WithNumber("option", mcp.Description("Answer option index of the branch under parent")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

func (s *Server) registerTools() {
	add := s.mcpServer.AddTool

	add(tool("list_paths", "List the stored learning paths."),
		mcp.NewStructuredToolHandler(s.handleListPaths))

	add(tool("search_content", "Search the content catalog for content to insert.",
		mcp.WithString("query", mcp.Description("Case-insensitive substring of the title")),
		mcp.WithString("kind", mcp.Enum(string(domain.ContentKindLearningObject), string(domain.ContentKindMultipleChoice), string(domain.ContentKindOpenQuestion))),
		mcp.WithString("language", mcp.Description("Language code, e.g. en or nl")),
	), mcp.NewStructuredToolHandler(s.handleSearchContent))

	add(tool("open_session", "Start editing a new path, or a stored one when path_id is given.",
		mcp.WithNumber("path_id", mcp.Description("Stored path to edit")),
		mcp.WithString("title", mcp.Description("Title of a new path")),
		mcp.WithString("description", mcp.Description("Description of a new path")),
		mcp.WithString("language", mcp.Description("Language of a new path")),
	), mcp.NewStructuredToolHandler(s.handleOpenSession))

	add(tool("get_session", "Show the sequences, phase and notice of a session.", sessionParam()),
		mcp.NewStructuredToolHandler(s.handleGetSession))

	add(tool("start_insertion", "Open content selection for a new node at position of a branch.",
		append([]mcp.ToolOption{sessionParam(), mcp.WithNumber("position", mcp.Required(), mcp.Description("Index the new node will take"))}, branchParams()...)...,
	), mcp.NewStructuredToolHandler(s.handleStartInsertion))

	add(tool("cancel_insertion", "Abandon content selection.", sessionParam()),
		mcp.NewStructuredToolHandler(s.handleCancelInsertion))

	add(tool("pick_content", "Insert the chosen content as a draft node at the pending position.",
		sessionParam(),
		mcp.WithString("local", mcp.Description("Id of teacher-owned content")),
		mcp.WithString("hruid", mcp.Description("Handle of catalog content")),
		mcp.WithString("language", mcp.Description("Language of catalog content")),
		mcp.WithNumber("version", mcp.Description("Version of catalog content")),
		mcp.WithOutputSchema[PickResult](),
	), mcp.NewStructuredToolHandler(s.handlePickContent))

	add(tool("open_branches", "Inspect the answer branches of a decision node.",
		sessionParam(), mcp.WithString("node", mcp.Required(), mcp.Description("Decision node key")),
	), mcp.NewStructuredToolHandler(s.handleOpenBranches))

	add(tool("close_branches", "Leave the branch view.", sessionParam()),
		mcp.NewStructuredToolHandler(s.handleCloseBranches))

	add(tool("move_node", "Reorder a node within its branch.",
		append([]mcp.ToolOption{sessionParam(),
			mcp.WithNumber("from", mcp.Required()),
			mcp.WithNumber("to", mcp.Required()),
		}, branchParams()...)...,
	), mcp.NewStructuredToolHandler(s.handleMove))

	add(tool("delete_node", "Remove a node; a decision node takes its branches with it.",
		append([]mcp.ToolOption{sessionParam(), mcp.WithNumber("index", mcp.Required())}, branchParams()...)...,
	), mcp.NewStructuredToolHandler(s.handleDelete))

	add(tool("save_path", "Validate the path and submit it to the store. Ends the session.",
		sessionParam(), mcp.WithOutputSchema[SaveResult](),
	), mcp.NewStructuredToolHandler(s.handleSave))

	add(tool("close_session", "End a session without saving.", sessionParam()),
		mcp.NewStructuredToolHandler(s.handleCloseSession))
}

// -- Arguments --

type searchArgs struct {
	Query    string `json:"query"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
}

type openArgs struct {
	PathID      *int64 `json:"path_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type branchArgs struct {
	SessionID string `json:"session_id"`
	Parent    string `json:"parent"`
	Option    int    `json:"option"`
}

func (a branchArgs) branch() (domain.BranchContext, error) {
	var parent domain.NodeKey
	if err := parent.UnmarshalText([]byte(a.Parent)); err != nil {
		return domain.BranchContext{}, err
	}
	return domain.Branch(parent, a.Option), nil
}

type insertionArgs struct {
	branchArgs
	Position int `json:"position"`
}

type pickArgs struct {
	SessionID string `json:"session_id"`
	Local     string `json:"local"`
	Hruid     string `json:"hruid"`
	Language  string `json:"language"`
	Version   int    `json:"version"`
}

func (a pickArgs) ref() domain.ContentRef {
	if a.Local != "" {
		return domain.LocalRef(a.Local)
	}
	return domain.ExternalRef(a.Hruid, a.Language, max(a.Version, 1))
}

type nodeArgs struct {
	SessionID string `json:"session_id"`
	Node      string `json:"node"`
}

type moveArgs struct {
	branchArgs
	From int `json:"from"`
	To   int `json:"to"`
}

type deleteArgs struct {
	branchArgs
	Index int `json:"index"`
}

// -- Handlers --

func (s *Server) handleListPaths(ctx context.Context, request mcp.CallToolRequest, _ struct{}) ([]domain.PathSummary, error) {
	return s.sessions.Store().ListPaths(ctx)
}

func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest, args searchArgs) ([]domain.ContentSummary, error) {
	query, err := validation.SanitizeText(args.Query)
	if err != nil {
		s.logger.Warn("MCP search_content: Input rejected", "err", err, "size", len(args.Query))
		return nil, fmt.Errorf("input rejected: %w", err)
	}
	return s.sessions.Catalog().SearchContent(ctx, domain.ContentFilter{
		Query:    query,
		Kind:     domain.ContentKind(args.Kind),
		Language: args.Language,
	})
}

func (s *Server) handleOpenSession(ctx context.Context, request mcp.CallToolRequest, args openArgs) (editor.Snapshot, error) {
	if args.PathID != nil {
		sess, err := s.sessions.Open(ctx, *args.PathID)
		if err != nil {
			return editor.Snapshot{}, err
		}
		return sess.Snapshot(), nil
	}
	meta, err := validation.SanitizeMetadata(domain.PathMetadata{
		Title:       args.Title,
		Description: args.Description,
		Language:    args.Language,
	})
	if err != nil {
		return editor.Snapshot{}, err
	}
	sess, err := s.sessions.Create(ctx, meta)
	if err != nil {
		return editor.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (editor.Snapshot, error) {
	return s.apply(args.SessionID, func(*editor.Session) error { return nil })
}

func (s *Server) handleStartInsertion(ctx context.Context, request mcp.CallToolRequest, args insertionArgs) (editor.Snapshot, error) {
	bc, err := args.branch()
	if err != nil {
		return editor.Snapshot{}, err
	}
	return s.apply(args.SessionID, func(sess *editor.Session) error {
		return sess.StartInsertion(args.Position, bc)
	})
}

func (s *Server) handleCancelInsertion(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (editor.Snapshot, error) {
	return s.apply(args.SessionID, func(sess *editor.Session) error { return sess.CancelInsertion() })
}

func (s *Server) handlePickContent(ctx context.Context, request mcp.CallToolRequest, args pickArgs) (PickResult, error) {
	sess, err := s.sessions.Get(args.SessionID)
	if err != nil {
		return PickResult{}, err
	}
	key, err := sess.PickContent(ctx, args.ref())
	if err != nil {
		return PickResult{}, err
	}
	return PickResult{Node: key, Session: sess.Snapshot()}, nil
}

func (s *Server) handleOpenBranches(ctx context.Context, request mcp.CallToolRequest, args nodeArgs) (editor.Snapshot, error) {
	var key domain.NodeKey
	if err := key.UnmarshalText([]byte(args.Node)); err != nil {
		return editor.Snapshot{}, err
	}
	return s.apply(args.SessionID, func(sess *editor.Session) error { return sess.OpenBranches(key) })
}

func (s *Server) handleCloseBranches(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (editor.Snapshot, error) {
	return s.apply(args.SessionID, func(sess *editor.Session) error { return sess.CloseBranches() })
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest, args moveArgs) (editor.Snapshot, error) {
	bc, err := args.branch()
	if err != nil {
		return editor.Snapshot{}, err
	}
	return s.apply(args.SessionID, func(sess *editor.Session) error {
		return sess.Move(ctx, bc, args.From, args.To)
	})
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest, args deleteArgs) (editor.Snapshot, error) {
	bc, err := args.branch()
	if err != nil {
		return editor.Snapshot{}, err
	}
	return s.apply(args.SessionID, func(sess *editor.Session) error {
		return sess.Delete(ctx, bc, args.Index)
	})
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SaveResult, error) {
	id, err := s.sessions.Save(ctx, args.SessionID)
	if err != nil {
		s.logger.Warn("MCP save_path failed", "session_id", args.SessionID, "err", err)
		return SaveResult{}, err
	}
	return SaveResult{PathID: id}, nil
}

func (s *Server) handleCloseSession(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (sessionArgs, error) {
	return args, s.sessions.Close(args.SessionID)
}

// apply runs fn on the session and returns its snapshot afterwards.
func (s *Server) apply(id string, fn func(*editor.Session) error) (editor.Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	if err := fn(sess); err != nil {
		return editor.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *Server) registerResources() {
	// EXPOSE: dwengo://sessions
	s.mcpServer.AddResource(mcp.NewResource("dwengo://sessions", "Live editing sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.sessions.List())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "dwengo://sessions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SELab-2/Dwengo-4-sub000"
	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/graph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/validation"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/session"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server implements the generated ServerInterface over the editing sessions of a Manager.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	metrics  http.Handler
	logger   *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStreams shares a StreamManager whose Hooks are registered on the sessions.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) { s.Streams = streams }
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// NewHandler creates the HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	handler := HandlerWithOptions(server, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: server.paramError,
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Dwengo Path Editor API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// -- Handlers --

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, Info{
		App:        "dwengo-path-editor",
		Version:    strings.TrimSpace(dwengo.Version),
		ApiVersion: apiVersion,
	})
}

// ListPaths handles the GET /paths request.
func (s *Server) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := s.Sessions.Store().ListPaths(r.Context())
	if err != nil {
		s.writeError(w, r, err, http.StatusBadGateway)
		return
	}
	s.writeJSON(w, http.StatusOK, paths)
}

// SearchContent handles the GET /content request backing the content picker.
func (s *Server) SearchContent(w http.ResponseWriter, r *http.Request, params SearchContentParams) {
	var filter domain.ContentFilter
	if params.Q != nil {
		query, err := validation.SanitizeText(*params.Q)
		if err != nil {
			s.writeError(w, r, err, http.StatusBadRequest)
			return
		}
		filter.Query = query
	}
	if params.Kind != nil {
		filter.Kind = domain.ContentKind(*params.Kind)
	}
	if params.Lang != nil {
		filter.Language = *params.Lang
	}

	items, err := s.Sessions.Catalog().SearchContent(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err, http.StatusBadGateway)
		return
	}
	if items == nil {
		items = []ContentSummary{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.List())
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}

	var (
		sess *editor.Session
		err  error
	)
	if body.Metadata, err = validation.SanitizeMetadata(body.Metadata); err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}
	if body.PathID != nil {
		sess, err = s.Sessions.Open(r.Context(), *body.PathID)
	} else {
		sess, err = s.Sessions.Create(r.Context(), body.Metadata)
	}
	if err != nil {
		s.writeError(w, r, err, http.StatusBadGateway)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// GetSession handles the GET /sessions/{sessionId} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	s.withSession(w, r, sessionId, func(sess *editor.Session) error { return nil })
}

// CloseSession handles the DELETE /sessions/{sessionId} request. Unsaved drafts are discarded.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	if err := s.Sessions.Close(sessionId); err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMetadata handles the PUT /sessions/{sessionId}/metadata request.
func (s *Server) SetMetadata(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body SetMetadataJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	meta, err := validation.SanitizeMetadata(body)
	if err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}
	s.withSession(w, r, sessionId, func(sess *editor.Session) error { return sess.SetMetadata(meta) })
}

// StartInsertion handles the POST /sessions/{sessionId}/insertion request.
func (s *Server) StartInsertion(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body StartInsertionJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.withSession(w, r, sessionId, func(sess *editor.Session) error {
		return sess.StartInsertion(body.Position, body.Branch)
	})
}

// CancelInsertion handles the DELETE /sessions/{sessionId}/insertion request.
func (s *Server) CancelInsertion(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	s.withSession(w, r, sessionId, func(sess *editor.Session) error { return sess.CancelInsertion() })
}

// PickContent handles the POST /sessions/{sessionId}/pick request.
func (s *Server) PickContent(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body PickContentJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	sess, err := s.Sessions.Get(sessionId)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	key, err := sess.PickContent(r.Context(), body.Content)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, PickResponse{Node: key, Session: sess.Snapshot()})
}

// OpenBranches handles the POST /sessions/{sessionId}/branches request.
func (s *Server) OpenBranches(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body OpenBranchesJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.withSession(w, r, sessionId, func(sess *editor.Session) error { return sess.OpenBranches(body.Node) })
}

// CloseBranches handles the DELETE /sessions/{sessionId}/branches request.
func (s *Server) CloseBranches(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	s.withSession(w, r, sessionId, func(sess *editor.Session) error { return sess.CloseBranches() })
}

// MoveNode handles the POST /sessions/{sessionId}/move request.
func (s *Server) MoveNode(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body MoveNodeJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.withSession(w, r, sessionId, func(sess *editor.Session) error {
		return sess.Move(r.Context(), body.Branch, body.From, body.To)
	})
}

// DeleteNode handles the POST /sessions/{sessionId}/delete request.
func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	var body DeleteNodeJSONRequestBody
	if !s.decode(w, r, &body) {
		return
	}
	s.withSession(w, r, sessionId, func(sess *editor.Session) error {
		return sess.Delete(r.Context(), body.Branch, body.Index)
	})
}

// Save handles the POST /sessions/{sessionId}/save request.
// Errors the store reports pass through as 502 with the store's message.
func (s *Server) Save(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	pathID, err := s.Sessions.Save(r.Context(), sessionId)
	if err != nil {
		s.writeError(w, r, err, http.StatusBadGateway)
		return
	}
	s.writeJSON(w, http.StatusOK, SaveResponse{PathID: pathID})
}

// DismissNotice handles the DELETE /sessions/{sessionId}/notice request.
func (s *Server) DismissNotice(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	s.withSession(w, r, sessionId, func(sess *editor.Session) error {
		sess.DismissNotice()
		return nil
	})
}

// GetGraph handles the GET /sessions/{sessionId}/graph request with a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	sess, err := s.Sessions.Get(sessionId)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	snap := sess.Snapshot()
	overlay := &graph.GraphOverlay{}
	if snap.Viewing != nil {
		overlay.Highlight = *snap.Viewing
	}
	out, err := graph.GenerateMermaid(sess.Graph(), overlay)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, out)
}

// SubscribeEvents handles the GET /sessions/{sessionId}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, sessionId SessionId) {
	if _, err := s.Sessions.Get(sessionId); err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to Session Events", "session_id", sessionId)
	ch, cancel := s.Streams.Subscribe(sessionId)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionId)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

// -- Helpers --

// withSession runs fn on the session and answers with its snapshot.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, id string, fn func(*editor.Session) error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	if err := fn(sess); err != nil {
		s.writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

// paramError answers malformed path and query parameters.
func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("Invalid request parameter", "path", r.URL.Path, "err", err)
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

// writeError maps err onto a status code. fallback is used for errors of no known class,
// which on store-backed routes are collaborator failures.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := StatusFor(err, fallback)
	body := ErrorResponse{Error: err.Error()}

	var verr *validation.Error
	if errors.As(err, &verr) {
		body.Fields = verr.Map()
	}

	switch {
	case status >= 500:
		s.logger.Error("Request failed", "path", r.URL.Path, "status", status, "err", err)
	default:
		s.logger.Debug("Request refused", "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, body)
}

// StatusFor returns the HTTP status for err, or fallback when err has no known class.
func StatusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case domain.IsFatal(err):
		return http.StatusInternalServerError
	case validation.IsValidation(err),
		errors.Is(err, domain.ErrEmptyPath),
		errors.Is(err, domain.ErrBlankTitle):
		return http.StatusUnprocessableEntity
	case domain.IsRejection(err),
		errors.Is(err, domain.ErrNotDecision),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSaveInProgress),
		errors.Is(err, domain.ErrPathLocked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrPathNotFound),
		errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrNodeNotFound):
		return http.StatusNotFound
	}
	return fallback
}

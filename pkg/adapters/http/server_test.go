package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/session"
)

var (
	lesson   = domain.ContentSummary{Ref: domain.LocalRef("a"), Title: "Algorithms", Language: "en", Kind: domain.ContentKindLearningObject}
	question = domain.ContentSummary{
		Ref: domain.LocalRef("q"), Title: "Pick one", Language: "en", Kind: domain.ContentKindMultipleChoice,
		PromptText: "Which?", Options: []string{"x", "y"},
	}
)

type fixture struct {
	store   *memory.Store
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	mgr := session.NewManager(store, memory.NewCatalog(lesson, question))
	return &fixture{store: store, handler: NewHandler(mgr)}
}

func (f *fixture) do(t *testing.T, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) editor.Snapshot {
	t.Helper()
	var snap editor.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func (f *fixture) create(t *testing.T) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/sessions", CreateSessionRequest{
		Metadata: domain.PathMetadata{Title: "Intro", Description: "First steps", Language: "en"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSnapshot(t, w).SessionID
}

func (f *fixture) insert(t *testing.T, id string, position int, bc domain.BranchContext, ref domain.ContentRef) *httptest.ResponseRecorder {
	t.Helper()
	w := f.do(t, http.MethodPost, "/sessions/"+id+"/insertion", InsertionRequest{Position: position, Branch: bc})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, editor.PhaseSelecting, decodeSnapshot(t, w).Phase)
	return f.do(t, http.MethodPost, "/sessions/"+id+"/pick", PickRequest{Content: ref})
}

func TestServer_EditAndSave(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	w := f.insert(t, id, 0, domain.Root, lesson.Ref)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var picked PickResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &picked))
	assert.Equal(t, domain.DraftKey(0), picked.Node)
	assert.Equal(t, editor.PhaseIdle, picked.Session.Phase)

	w = f.do(t, http.MethodPost, "/sessions/"+id+"/save", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotZero(t, saved.PathID)

	// The session ended with the save.
	w = f.do(t, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/paths", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paths []domain.PathSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paths))
	require.Len(t, paths, 1)
	assert.Equal(t, saved.PathID, paths[0].ID)
	assert.Equal(t, 1, paths[0].Nodes)
}

func TestServer_Rejections(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	w := f.insert(t, id, 0, domain.Root, question.Ref)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Nothing may follow the decision node.
	w = f.insert(t, id, 1, domain.Root, lesson.Ref)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrPastDecision.Error(), body.Error)

	w = f.do(t, http.MethodGet, "/sessions/"+id, nil)
	snap := decodeSnapshot(t, w)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, editor.NoticeError, snap.Notice.Kind)
	assert.Len(t, snap.Branches[0].Nodes, 1)

	w = f.do(t, http.MethodPost, "/sessions/"+id+"/move", MoveRequest{Branch: domain.Root, From: 0, To: 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodDelete, "/sessions/"+id+"/branches", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "branches are not open")
}

func TestServer_BranchesAndGraph(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	w := f.insert(t, id, 0, domain.Root, question.Ref)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/sessions/"+id+"/branches", BranchesRequest{Node: domain.DraftKey(0)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decodeSnapshot(t, w)
	assert.Equal(t, editor.PhaseViewingBranches, snap.Phase)
	require.NotNil(t, snap.Viewing)

	w = f.do(t, http.MethodGet, "/sessions/"+id+"/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `d_0{"Pick one"}`)
	assert.Contains(t, w.Body.String(), "class d_0 current;")

	w = f.do(t, http.MethodPost, "/sessions/"+id+"/branches", BranchesRequest{Node: domain.PersistedKey(99)})
	assert.Equal(t, http.StatusConflict, w.Code, "only allowed from idle")

	w = f.do(t, http.MethodDelete, "/sessions/"+id+"/branches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPost, "/sessions/"+id+"/branches", BranchesRequest{Node: domain.PersistedKey(99)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_InvalidMetadata(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/sessions", CreateSessionRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeSnapshot(t, w).SessionID

	w = f.insert(t, id, 0, domain.Root, lesson.Ref)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/sessions/"+id+"/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "title")
	assert.Contains(t, body.Fields, "language")
}

func TestServer_OpenExclusive(t *testing.T) {
	f := newFixture(t)
	b := dsl.New(domain.PathMetadata{Title: "Stored", Description: "Seeded", Language: "en"})
	b.Add(1).Lesson("a", "Algorithms")
	f.store.Seed(b.MustBuild(7))

	pathID := int64(7)
	w := f.do(t, http.MethodPost, "/sessions", CreateSessionRequest{PathID: &pathID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	snap := decodeSnapshot(t, w)
	require.NotNil(t, snap.PathID)
	assert.Equal(t, pathID, *snap.PathID)

	w = f.do(t, http.MethodPost, "/sessions", CreateSessionRequest{PathID: &pathID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodDelete, "/sessions/"+snap.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	missing := int64(404)
	w = f.do(t, http.MethodPost, "/sessions", CreateSessionRequest{PathID: &missing})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_SearchContent(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/content?q=ALGO", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []domain.ContentSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Algorithms", items[0].Title)

	w = f.do(t, http.MethodGet, "/content?kind=open_question", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestServer_BadBody(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/move", strings.NewReader("{"))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_OpenAPISpec(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dwengo Learning Path Editor API")

	w = f.do(t, http.MethodGet, "/swagger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/openapi.yaml")

	w = f.do(t, http.MethodGet, "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "0.1.0", info.ApiVersion)
	assert.NotEmpty(t, info.Version)
}

func TestServer_RoutesMatchSpec(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)
	f := newFixture(t)

	routes := 0
	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			url := strings.ReplaceAll(path, "{sessionId}", "missing")
			w := f.do(t, method, url, nil)
			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
			if w.Code == http.StatusNotFound {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "%s %s is not routed", method, path)
			}
			routes++
		}
	}
	assert.Equal(t, 20, routes)
}

func TestStatusFor(t *testing.T) {
	storeDown := errors.New("connection refused")
	tests := []struct {
		err  error
		want int
	}{
		{domain.Reject("move", domain.Root, domain.ErrIndexOutOfRange), http.StatusConflict},
		{domain.Invariant("Insert", domain.ErrUnknownBranch, "branch"), http.StatusInternalServerError},
		{domain.ErrEmptyPath, http.StatusUnprocessableEntity},
		{domain.ErrSaveInProgress, http.StatusConflict},
		{domain.ErrSessionClosed, http.StatusGone},
		{domain.ErrPathNotFound, http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{storeDown, http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err, http.StatusBadGateway), tt.err.Error())
	}
}

func TestStreamManager_Hooks(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, cancel := sm.Subscribe("s1")
	defer cancel()

	hooks := sm.Hooks()
	hooks.OnEdit(context.Background(), &domain.EditEvent{
		EventBase: domain.EventBase{Type: domain.EventNodeInserted, SessionID: "s1"},
		Node:      domain.DraftKey(3),
	})
	// Another session's events stay there.
	hooks.OnEdit(context.Background(), &domain.EditEvent{
		EventBase: domain.EventBase{Type: domain.EventNodeDeleted, SessionID: "s2"},
	})

	select {
	case msg := <-ch:
		assert.Equal(t, string(domain.EventNodeInserted), msg.Event)
		assert.Contains(t, msg.Data, `"node":"d:3"`)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	select {
	case msg := <-ch:
		t.Fatalf("unexpected event %q", msg.Event)
	default:
	}
}

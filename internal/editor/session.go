// Package editor implements the edit session of one learning path: the small state machine
// the UI drives (insert, pick, reorder, delete, inspect branches, save) on top of the path
// graph, and the save protocol that hands the flattened graph to the path store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/reconcile"
	"github.com/SELab-2/Dwengo-4-sub000/internal/validation"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

// Phase is the interaction state of a session.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSelecting       Phase = "selecting_content"
	PhaseViewingBranches Phase = "viewing_branches"
	PhaseSaving          Phase = "saving"
)

// Selection is the pending insertion target while content is being picked.
// Position is the index the new node will take in Branch.
type Selection struct {
	Position int                  `json:"position"`
	Branch   domain.BranchContext `json:"branch"`
}

// Session owns the in-memory structure of one path being edited.
// All methods are safe for concurrent use; the HTTP adapter may call them from several requests.
type Session struct {
	mu sync.Mutex

	id       string
	pathID   *int64
	meta     domain.PathMetadata
	graph    *pathgraph.Graph
	warnings []pathgraph.Warning

	phase     Phase
	selection Selection
	fetching  uint64 // pick in flight; zero when none
	picks     uint64
	viewing   domain.NodeKey
	nextDraft int64
	notice    *Notice
	closed    bool

	store   ports.PathStore
	catalog ports.ContentCatalog

	logger    *slog.Logger
	hooks     domain.EditorHooks
	noticeTTL time.Duration
	now       func() time.Time
}

// New starts a session for a path that does not exist yet. The root sequence is empty.
func New(store ports.PathStore, catalog ports.ContentCatalog, meta domain.PathMetadata, opts ...Option) *Session {
	s := &Session{
		meta:    meta,
		graph:   pathgraph.New(),
		phase:   PhaseIdle,
		store:   store,
		catalog: catalog,
	}
	defaults(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a session on a stored path, rebuilding its sequences from the persisted transitions.
// Branches that could not be placed are reported through Warnings and a notice; the next save drops them.
func Open(ctx context.Context, store ports.PathStore, catalog ports.ContentCatalog, pathID int64, opts ...Option) (*Session, error) {
	path, err := store.LoadPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	g, warnings, err := pathgraph.FromPath(path)
	if err != nil {
		return nil, err
	}

	s := New(store, catalog, path.Metadata, opts...)
	id := path.ID
	s.pathID = &id
	s.graph = g
	s.warnings = warnings
	for _, w := range warnings {
		s.logger.Warn("Orphaned part of stored path", "path_id", id, "warning", w.String())
	}
	if len(warnings) > 0 {
		s.setNotice(NoticeWarning, "some branches no longer match their question and will be dropped on save")
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// PathID returns the id of the edited path, nil until a new path is saved.
func (s *Session) PathID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pathID == nil {
		return nil
	}
	id := *s.pathID
	return &id
}

// Phase returns the current interaction state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Warnings lists what bootstrap could not place.
func (s *Session) Warnings() []pathgraph.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pathgraph.Warning(nil), s.warnings...)
}

// Graph returns a copy of the current structure.
func (s *Session) Graph() *pathgraph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// Metadata returns the path's own data as edited so far.
func (s *Session) Metadata() domain.PathMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// SetMetadata replaces the path's own data. It is validated on save.
func (s *Session) SetMetadata(meta domain.PathMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.meta = meta
	return nil
}

// editable reports whether structural edits are currently allowed.
func (s *Session) editable() error {
	switch {
	case s.closed:
		return domain.ErrSessionClosed
	case s.phase == PhaseSaving:
		return domain.ErrSaveInProgress
	}
	return nil
}

// StartInsertion opens content selection for a new node at position of bc.
// Calling it again while selecting is a no-op; the caller must cancel first.
func (s *Session) StartInsertion(position int, bc domain.BranchContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}
	switch s.phase {
	case PhaseSelecting:
		return nil
	case PhaseIdle:
	default:
		return domain.ErrInvalidTransition
	}
	if !s.graph.HasBranch(bc) {
		err := domain.Invariant("StartInsertion", domain.ErrUnknownBranch, "branch %s", bc)
		s.logger.Error("Insertion into unknown branch", "branch", bc.String(), "err", err)
		return err
	}
	if position < 0 || position > len(s.graph.SequenceFor(bc)) {
		return domain.Reject("start insertion", bc, domain.ErrIndexOutOfRange)
	}

	s.phase = PhaseSelecting
	s.selection = Selection{Position: position, Branch: bc}
	return nil
}

// CancelInsertion abandons content selection. A pick still waiting on the catalog is discarded.
func (s *Session) CancelInsertion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.phase != PhaseSelecting {
		return domain.ErrInvalidTransition
	}
	s.phase = PhaseIdle
	s.selection = Selection{}
	s.fetching = 0
	return nil
}

// PickContent resolves ref through the catalog and inserts it as a draft node at the pending
// position. The session stays in content selection while the catalog is queried, so a second
// pick is refused, and returns to idle whether or not the insertion succeeds; a rejection is
// returned and shown as a notice.
func (s *Session) PickContent(ctx context.Context, ref domain.ContentRef) (domain.NodeKey, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.NodeKey{}, domain.ErrSessionClosed
	}
	if s.phase != PhaseSelecting || s.fetching != 0 {
		s.mu.Unlock()
		return domain.NodeKey{}, domain.ErrInvalidTransition
	}
	s.picks++
	pick := s.picks
	s.fetching = pick
	target := s.selection
	s.mu.Unlock()

	summary, fetchErr := s.catalog.FetchContent(ctx, ref)

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return domain.NodeKey{}, domain.ErrSessionClosed
	case s.fetching != pick:
		// Cancelled while the catalog was answering.
		s.mu.Unlock()
		return domain.NodeKey{}, domain.ErrInvalidTransition
	}
	s.fetching = 0
	s.phase = PhaseIdle
	s.selection = Selection{}

	if fetchErr != nil {
		s.setNotice(NoticeError, "could not load the selected content: "+fetchErr.Error())
		s.mu.Unlock()
		return domain.NodeKey{}, fetchErr
	}

	node := &domain.DraftNode{Seq: s.nextDraft, NodeData: domain.NodeDataFrom(summary)}
	err := s.graph.Insert(target.Branch, target.Position-1, node)
	if err != nil {
		ev := s.rejected(err, target.Branch, node.Key(), target.Position)
		s.mu.Unlock()
		s.emitRejected(ctx, ev)
		return domain.NodeKey{}, err
	}
	s.nextDraft++
	ev := s.event(domain.EventNodeInserted, target.Branch, node.Key(), target.Position)
	s.mu.Unlock()

	s.emitEdit(ctx, ev)
	return node.Key(), nil
}

// OpenBranches shows the option branches of a decision node.
func (s *Session) OpenBranches(key domain.NodeKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}
	if s.phase != PhaseIdle {
		return domain.ErrInvalidTransition
	}
	n, ok := s.graph.Node(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, domain.ErrNodeNotFound)
	}
	if !domain.IsDecision(n) {
		return domain.ErrNotDecision
	}
	s.phase = PhaseViewingBranches
	s.viewing = key
	return nil
}

// CloseBranches returns to idle.
func (s *Session) CloseBranches() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.phase != PhaseViewingBranches {
		return domain.ErrInvalidTransition
	}
	s.phase = PhaseIdle
	s.viewing = domain.NodeKey{}
	return nil
}

// Move reorders bc. It is allowed while idle or while viewing branches.
func (s *Session) Move(ctx context.Context, bc domain.BranchContext, from, to int) error {
	s.mu.Lock()
	if err := s.structuralEdit(); err != nil {
		s.mu.Unlock()
		return err
	}
	seq := s.graph.SequenceFor(bc)
	var key domain.NodeKey
	if from >= 0 && from < len(seq) {
		key = seq[from].Key()
	}
	if err := s.graph.Move(bc, from, to); err != nil {
		ev := s.rejected(err, bc, key, to)
		s.mu.Unlock()
		s.emitRejected(ctx, ev)
		return err
	}
	ev := s.event(domain.EventNodeMoved, bc, key, to)
	s.mu.Unlock()

	s.emitEdit(ctx, ev)
	return nil
}

// Delete removes the node at index of bc and, for a decision node, every branch beneath it.
func (s *Session) Delete(ctx context.Context, bc domain.BranchContext, index int) error {
	s.mu.Lock()
	if err := s.structuralEdit(); err != nil {
		s.mu.Unlock()
		return err
	}
	removed, discarded, err := s.graph.Delete(bc, index)
	if err != nil {
		ev := s.rejected(err, bc, domain.NodeKey{}, index)
		s.mu.Unlock()
		s.emitRejected(ctx, ev)
		return err
	}
	if s.phase == PhaseViewingBranches {
		if _, ok := s.graph.Node(s.viewing); !ok {
			s.phase = PhaseIdle
			s.viewing = domain.NodeKey{}
		}
	}
	ev := s.event(domain.EventNodeDeleted, bc, removed.Key(), index)
	ev.Discarded = discarded
	s.mu.Unlock()

	s.emitEdit(ctx, ev)
	return nil
}

func (s *Session) structuralEdit() error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.phase == PhaseSelecting {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Save validates and flattens the structure and submits it to the store in one request.
// Local failures never reach the store. A store failure is returned unchanged and leaves the
// structure as it was, so the user can retry. A successful save ends the session.
func (s *Session) Save(ctx context.Context) (int64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, domain.ErrSessionClosed
	}
	switch s.phase {
	case PhaseSaving:
		s.mu.Unlock()
		return 0, domain.ErrSaveInProgress
	case PhaseIdle:
	default:
		s.mu.Unlock()
		return 0, domain.ErrInvalidTransition
	}

	req, err := s.buildRequest()
	if err != nil {
		s.setNotice(NoticeError, err.Error())
		s.logger.Debug("Save rejected locally", "session_id", s.id, "err", err)
		if domain.IsFatal(err) {
			s.logger.Error("Path structure is inconsistent", "session_id", s.id, "err", err)
		}
		s.mu.Unlock()
		return 0, err
	}
	drafts := 0
	for _, n := range req.Payload.Nodes {
		if n.Draft {
			drafts++
		}
	}
	s.phase = PhaseSaving
	s.mu.Unlock()

	start := time.Now()
	id, err := s.store.SaveOrCreatePath(ctx, req)
	ev := &domain.SaveEvent{
		EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventSaved, SessionID: s.id},
		PathID:    id,
		Nodes:     len(req.Payload.Nodes),
		Drafts:    drafts,
		Duration:  time.Since(start),
		Err:       err,
	}

	s.mu.Lock()
	s.phase = PhaseIdle
	if err != nil {
		ev.Type = domain.EventSaveFailed
		s.setNotice(NoticeError, err.Error())
		s.logger.Warn("Saving path failed", "session_id", s.id, "err", err)
	} else {
		s.pathID = &id
		s.closed = true
		s.setNotice(NoticeInfo, "path saved")
		s.logger.Info("Path saved", "session_id", s.id, "path_id", id, "nodes", ev.Nodes, "drafts", drafts)
	}
	s.mu.Unlock()

	if s.hooks.OnSave != nil {
		s.hooks.OnSave(ctx, ev)
	}
	return id, err
}

func (s *Session) buildRequest() (domain.SaveRequest, error) {
	if err := validation.ValidateMetadata(s.meta); err != nil {
		return domain.SaveRequest{}, err
	}
	payload, err := reconcile.Flatten(s.graph)
	if err != nil {
		return domain.SaveRequest{}, err
	}
	req := domain.SaveRequest{Metadata: s.meta, Payload: payload}
	if s.pathID != nil {
		id := *s.pathID
		req.PathID = &id
	}
	return req, nil
}

// Close ends the session without saving.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.phase = PhaseIdle
	s.fetching = 0
}

func (s *Session) event(t domain.EventType, bc domain.BranchContext, key domain.NodeKey, index int) *domain.EditEvent {
	return &domain.EditEvent{
		EventBase: domain.EventBase{Timestamp: s.now(), Type: t, SessionID: s.id},
		Branch:    bc,
		Node:      key,
		Index:     index,
	}
}

// rejected records a failed edit. Must be called with the lock held.
func (s *Session) rejected(err error, bc domain.BranchContext, key domain.NodeKey, index int) *domain.EditEvent {
	if domain.IsFatal(err) {
		s.logger.Error("Edit aborted", "session_id", s.id, "branch", bc.String(), "err", err)
		s.setNotice(NoticeError, err.Error())
		return nil
	}
	reason := err
	var re *domain.RejectionError
	if errors.As(err, &re) {
		reason = re.Reason
	}
	s.logger.Debug("Edit rejected", "session_id", s.id, "branch", bc.String(), "index", index, "reason", reason)
	s.setNotice(NoticeError, reason.Error())

	ev := s.event(domain.EventRejected, bc, key, index)
	ev.Reason = reason.Error()
	return ev
}

func (s *Session) emitEdit(ctx context.Context, ev *domain.EditEvent) {
	if ev != nil && s.hooks.OnEdit != nil {
		s.hooks.OnEdit(ctx, ev)
	}
}

func (s *Session) emitRejected(ctx context.Context, ev *domain.EditEvent) {
	if ev != nil && s.hooks.OnRejected != nil {
		s.hooks.OnRejected(ctx, ev)
	}
}

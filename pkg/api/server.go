package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rejean-McCormick/Ariane/pkg/ingest"
	"github.com/Rejean-McCormick/Ariane/pkg/query"
	"github.com/Rejean-McCormick/Ariane/pkg/workflow"
)

// maxBodyBytes bounds ingest request bodies.
const maxBodyBytes = 8 << 20

// Server routes HTTP requests to the ingest, query and workflow handlers.
type Server struct {
	logger    *slog.Logger
	ingest    *ingest.Handler
	query     *query.Handler
	workflows *workflow.Handler
}

// NewServer wires the three handlers behind one router.
func NewServer(logger *slog.Logger, ih *ingest.Handler, qh *query.Handler, wh *workflow.Handler) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, ingest: ih, query: qh, workflows: wh}
}

// ServeHTTP dispatches on the first path segment.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segs := splitPath(r.URL.Path)
	if len(segs) == 0 {
		WriteNotFound(w, "resource not found")
		return
	}

	switch segs[0] {
	case "health":
		s.handleHealth(w, r, segs[1:])
	case "contexts":
		s.handleContexts(w, r, segs[1:])
	case "ingest":
		s.handleIngest(w, r, segs[1:])
	case "workflows":
		s.handleWorkflows(w, r, segs[1:])
	default:
		WriteNotFound(w, "resource not found")
	}
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 0 {
		WriteNotFound(w, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w, http.MethodGet)
		return
	}
	WriteJSON(w, http.StatusOK, s.query.Health())
}

func (s *Server) handleContexts(w http.ResponseWriter, r *http.Request, rest []string) {
	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w, http.MethodGet)
		return
	}

	switch len(rest) {
	case 0:
		WriteJSON(w, http.StatusOK, s.query.ListContexts())
		return
	case 1:
		resp, err := s.query.GetContext(rest[0])
		s.respond(w, resp, err)
		return
	}

	contextID := rest[0]
	switch rest[1] {
	case "states":
		s.handleStates(w, r, contextID, rest[2:])
	case "transitions":
		s.handleTransitions(w, r, contextID, rest[2:])
	case "path":
		if len(rest) != 2 {
			WriteNotFound(w, "resource not found")
			return
		}
		s.handlePath(w, r, contextID)
	default:
		WriteNotFound(w, "resource not found")
	}
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request, contextID string, rest []string) {
	q := r.URL.Query()
	switch len(rest) {
	case 0:
		filter := query.StateFilter{
			Tag:          q.Get("tag"),
			Source:       q.Get("source"),
			ReviewStatus: q.Get("review_status"),
		}
		resp, err := s.query.ListStates(contextID, filter)
		s.respond(w, resp, err)
	case 1:
		resp, err := s.query.GetState(contextID, rest[0])
		s.respond(w, resp, err)
	case 2:
		filter := transitionFilterFromQuery(q)
		switch rest[1] {
		case "outgoing":
			resp, err := s.query.ListOutgoing(contextID, rest[0], filter)
			s.respond(w, resp, err)
		case "incoming":
			resp, err := s.query.ListIncoming(contextID, rest[0], filter)
			s.respond(w, resp, err)
		default:
			WriteNotFound(w, "resource not found")
		}
	default:
		WriteNotFound(w, "resource not found")
	}
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request, contextID string, rest []string) {
	switch len(rest) {
	case 0:
		filter := transitionFilterFromQuery(r.URL.Query())
		resp, err := s.query.ListTransitions(contextID, filter)
		s.respond(w, resp, err)
	case 1:
		resp, err := s.query.GetTransition(contextID, rest[0])
		s.respond(w, resp, err)
	default:
		WriteNotFound(w, "resource not found")
	}
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request, contextID string) {
	q := r.URL.Query()
	source := q.Get("source")
	target := q.Get("target")
	if source == "" || target == "" {
		WriteBadRequest(w, "source and target query parameters are required")
		return
	}

	maxDepth := -1
	if raw := q.Get("max_depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteBadRequest(w, "max_depth must be a non-negative integer")
			return
		}
		maxDepth = n
	}

	resp, err := s.query.ShortestPath(contextID, source, target, maxDepth)
	s.respond(w, resp, err)
}

func transitionFilterFromQuery(q map[string][]string) query.TransitionFilter {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return query.TransitionFilter{
		Source:       get("source"),
		ReviewStatus: get("review_status"),
		IntentID:     get("intent_id"),
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 1 {
		WriteNotFound(w, "resource not found")
		return
	}
	if r.Method != http.MethodPost {
		WriteMethodNotAllowed(w, http.MethodPost)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteBadRequest(w, "failed to read request body")
		return
	}

	switch rest[0] {
	case "context":
		overwrite := r.URL.Query().Get("overwrite") != "false"
		resp, err := s.ingest.IngestContext(body, overwrite)
		s.respond(w, resp, err)
	case "state":
		resp, err := s.ingest.IngestStateRecord(body)
		s.respond(w, resp, err)
	case "states":
		raws, err := decodeArray(body)
		if err != nil {
			WriteBadRequest(w, "request body must be a JSON array")
			return
		}
		resp, err := s.ingest.IngestStateRecords(raws)
		s.respond(w, resp, err)
	case "transition":
		resp, err := s.ingest.IngestTransitionRecord(body)
		s.respond(w, resp, err)
	case "transitions":
		raws, err := decodeArray(body)
		if err != nil {
			WriteBadRequest(w, "request body must be a JSON array")
			return
		}
		resp, err := s.ingest.IngestTransitionRecords(raws)
		s.respond(w, resp, err)
	case "bundle":
		resp, err := s.ingest.IngestBundle(body)
		s.respond(w, resp, err)
	default:
		WriteNotFound(w, "resource not found")
	}
}

func decodeArray(body []byte) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func (s *Server) handleWorkflows(w http.ResponseWriter, r *http.Request, rest []string) {
	switch len(rest) {
	case 0:
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			resp, err := s.workflows.List(q.Get("context_id"), q.Get("intent_id"), q.Get("tag"))
			s.respond(w, resp, err)
		case http.MethodPost:
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				WriteBadRequest(w, "failed to read request body")
				return
			}
			resp, err := s.workflows.Upsert(body)
			if err != nil {
				var werr *workflow.Error
				if errors.As(err, &werr) {
					WriteBadRequest(w, werr.Detail)
					return
				}
				WriteInternal(w, err)
				return
			}
			WriteJSON(w, http.StatusOK, resp)
		default:
			WriteMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	case 1:
		switch r.Method {
		case http.MethodGet:
			expand := r.URL.Query().Get("expand") == "true"
			resp, err := s.workflows.Get(rest[0], expand)
			s.respond(w, resp, err)
		case http.MethodDelete:
			WriteJSON(w, http.StatusOK, s.workflows.Delete(rest[0]))
		default:
			WriteMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
		}
	default:
		WriteNotFound(w, "resource not found")
	}
}

// respond maps domain errors to their HTTP status. Ingest failures are
// client errors, query failures are missing resources, workflow
// failures on read paths are missing resources, and anything else,
// including capacity exhaustion, is a 500.
func (s *Server) respond(w http.ResponseWriter, body any, err error) {
	if err == nil {
		WriteJSON(w, http.StatusOK, body)
		return
	}

	var ierr *ingest.Error
	if errors.As(err, &ierr) {
		WriteBadRequest(w, ierr.Detail)
		return
	}
	var qerr *query.Error
	if errors.As(err, &qerr) {
		WriteNotFound(w, qerr.Detail)
		return
	}
	var werr *workflow.Error
	if errors.As(err, &werr) {
		WriteNotFound(w, werr.Detail)
		return
	}
	WriteInternal(w, err)
}

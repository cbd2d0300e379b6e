package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// CreatedResponse answers POST /{kind}.
type CreatedResponse struct {
	ID   string      `json:"id"`
	Kind domain.Kind `json:"kind"`
}

// AutomatonResponse answers GET /{kind}/{id}.
type AutomatonResponse struct {
	ID         string         `json:"id"`
	Kind       domain.Kind    `json:"kind"`
	Name       string         `json:"name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	Definition map[string]any `json:"definition"`
}

// TestRequest is the body of POST /{kind}/{id}/test.
type TestRequest struct {
	Input *string `json:"input"`
}

// TestResponse answers POST /{kind}/{id}/test.
type TestResponse struct {
	ID       string `json:"id"`
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	domain.Result
}

// CreateAutomaton handles the POST /{kind} request.
func (s *Server) CreateAutomaton(w http.ResponseWriter, r *http.Request) {
	kind, err := s.kindParam(r)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, s.Logger, &requestError{cause: fmt.Errorf("invalid request body: %w", err)})
		return
	}

	id, err := s.Service.Create(r.Context(), kind, raw)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/%s/%s", kind, id))
	writeJSON(w, s.Logger, http.StatusCreated, CreatedResponse{ID: id, Kind: kind})
}

// ListAutomata handles the GET /{kind} request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	kind, err := s.kindParam(r)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	entries, err := s.Service.List(r.Context(), kind)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	writeJSON(w, s.Logger, http.StatusOK, entries)
}

// GetAutomaton handles the GET /{kind}/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, AutomatonResponse{
		ID:         entry.ID,
		Kind:       entry.Kind,
		Name:       entry.Name,
		CreatedAt:  entry.CreatedAt,
		Definition: entry.Automaton.Definition(),
	})
}

// TestAutomaton handles the POST /{kind}/{id}/test request.
func (s *Server) TestAutomaton(w http.ResponseWriter, r *http.Request) {
	kind, id, err := s.pathParams(r)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}

	var body TestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, s.Logger, &requestError{cause: fmt.Errorf("invalid request body: %w", err)})
		return
	}
	if body.Input == nil {
		writeError(w, s.Logger, &requestError{cause: fmt.Errorf("property %q is missing", "input")})
		return
	}

	res, err := s.Service.Test(r.Context(), id, kind, *body.Input)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, TestResponse{
		ID:       id,
		Input:    *body.Input,
		Accepted: res.Accepted(),
		Result:   res,
	})
}

// GetAutomatonGraph handles the GET /{kind}/{id}/graph request.
func (s *Server) GetAutomatonGraph(w http.ResponseWriter, r *http.Request) {
	format, err := graph.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, s.Logger, &requestError{cause: err})
		return
	}
	entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == graph.FormatDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	fmt.Fprint(w, graph.Render(format, entry.Automaton, nil))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (domain.Entry, bool) {
	kind, id, err := s.pathParams(r)
	if err != nil {
		writeError(w, s.Logger, err)
		return domain.Entry{}, false
	}
	entry, err := s.Service.Lookup(r.Context(), id, kind)
	if err != nil {
		writeError(w, s.Logger, err)
		return domain.Entry{}, false
	}
	return entry, true
}

func (s *Server) kindParam(r *http.Request) (domain.Kind, error) {
	return domain.ParseKind(chi.URLParam(r, "kind"))
}

func (s *Server) pathParams(r *http.Request) (domain.Kind, string, error) {
	kind, err := s.kindParam(r)
	if err != nil {
		return "", "", err
	}
	var id string
	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", "", &requestError{cause: fmt.Errorf("invalid format for parameter id: %w", err)}
	}
	return kind, id, nil
}

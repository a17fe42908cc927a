package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/errors"
	pkgio "github.com/matzehuels/epicroadmap/pkg/io"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// RawTreeResponse is the body returned by POST /v1/tree/raw.
type RawTreeResponse struct {
	Tree  *tree.Tree    `json:"tree"`
	Stats roadmap.Stats `json:"stats"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Code:      errors.ErrCodeUnsupported,
		Message:   r.Method + " is not allowed on " + r.URL.Path,
		RequestID: RequestID(r.Context()),
	})
}

func (s *Server) handleRawTree(w http.ResponseWriter, r *http.Request) {
	in, err := pkgio.ReadInput(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	raw, stats := s.runner.Build(r.Context(), in.Links, in.Scope())
	writeJSON(w, http.StatusOK, RawTreeResponse{Tree: raw, Stats: stats})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	in, err := pkgio.ReadInput(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if in.Backlog == nil {
		in.Backlog = s.backlog
	}
	res, err := s.runner.Run(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRanks(w http.ResponseWriter, r *http.Request) {
	cfg, err := backlog.Decode(r.Body, backlog.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg.RankMap())
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusRequestEntityTooLarge {
		code, msg = errors.ErrCodeInvalidInput, "request body too large"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/cli"
	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/driver"
	"github.com/zkcircuit/leoparse/internal/parser"
)

// MaxSourceBytes bounds the request body of /parse.
const MaxSourceBytes = 1 << 20

// SharedHeader is set on responses that were computed for another,
// identical in-flight request.
const SharedHeader = "X-Leoparse-Shared"

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

// ParseResponse is the body returned by POST /parse. Program is the JSON
// encoding of the ast.Program and is null when Error is set.
type ParseResponse struct {
	Program     json.RawMessage          `json:"program"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	Error       *parser.Error            `json:"error,omitempty"`
}

type parseResponse struct {
	Program     *ast.Program             `json:"program"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	Error       *parser.Error            `json:"error,omitempty"`
}

// Handler serves the parse API over any http.Server.
type Handler struct {
	driver *driver.Driver
	logger *cli.Logger
	group  singleflight.Group
	mux    *http.ServeMux
}

// NewHandler creates the API handler.
func NewHandler(drv *driver.Driver, logger *cli.Logger) *Handler {
	if logger == nil {
		logger = cli.NewLogger(false, false)
	}
	h := &Handler{driver: drv, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("/parse", h.handleParse)
	h.mux.HandleFunc("/healthz", h.handleHealth)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": cli.Version})
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ParseRequest
	body := http.MaxBytesReader(w, r.Body, MaxSourceBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, http.StatusRequestEntityTooLarge, "source too large")
			return
		}
		if errors.Is(err, io.EOF) {
			httpError(w, http.StatusBadRequest, "empty request body")
			return
		}
		httpError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Filename == "" {
		req.Filename = "input.leo"
	}

	v, err, shared := h.group.Do(requestKey(req), func() (interface{}, error) {
		return h.parse(req)
	})
	if err != nil {
		h.logger.Error("parse %s: %v", req.Filename, err)
		httpError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	h.logger.Debug("parse %s shared=%v", req.Filename, shared)

	w.Header().Set("Content-Type", "application/json")
	if shared {
		w.Header().Set(SharedHeader, "true")
	}
	_, _ = w.Write(v.([]byte))
}

// parse runs the parser and encodes the response body once, so callers
// sharing a flight write identical bytes.
func (h *Handler) parse(req ParseRequest) ([]byte, error) {
	res := h.driver.ParseSource(req.Filename, req.Source)

	resp := parseResponse{Program: res.Program, Diagnostics: res.Diagnostics}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []diagnostics.Diagnostic{}
	}
	var perr *parser.Error
	if errors.As(res.Err, &perr) {
		resp.Error = perr
	}
	return json.Marshal(resp)
}

// requestKey identifies identical requests.
func requestKey(req ParseRequest) string {
	sum := sha256.New()
	sum.Write([]byte(req.Filename))
	sum.Write([]byte{0})
	sum.Write([]byte(req.Source))
	return hex.EncodeToString(sum.Sum(nil))
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
)

// APIPrefix is the path every resource route lives under.
const APIPrefix = "/api/v1"

const (
	defaultPageSize = 10
	maxPageSize     = 1000
)

// Options configure a Server.
type Options struct {
	// Token, when set, is required as a bearer token on every API call.
	Token  string
	Logger logr.Logger
	// Empty starts without fixtures.
	Empty bool
}

// Server is an in-memory stand-in for the building management backend. It
// implements the list contract, the filter grammar and the mutation
// endpoints of the real service.
type Server struct {
	store  *store
	token  string
	log    logr.Logger
	router *mux.Router
}

// errorResponse mirrors the backend's error body.
type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// New builds a Server seeded with the demo fixtures.
func New(opts Options) *Server {
	var tables []*table
	if opts.Empty {
		for _, t := range fixtures() {
			t.rows = nil
			tables = append(tables, t)
		}
	} else {
		tables = fixtures()
	}
	s := &Server{
		store: newStore(tables...),
		token: strings.TrimSpace(opts.Token),
		log:   opts.Logger.WithName("devserver"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Count returns the number of stored rows of resource.
func (s *Server) Count(resource string) int { return s.store.count(resource) }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.Use(s.requireToken)
	api.HandleFunc("/{resource}", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{resource}", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/{resource}", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/{resource}/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/{resource}/{id}", s.handleDelete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, err := intParam(q.Get("page"), 1)
	if err != nil || pageNum < 1 {
		s.writeError(w, r, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	size, err := intParam(q.Get("size"), defaultPageSize)
	if err != nil || size < 1 {
		s.writeError(w, r, http.StatusBadRequest, "size must be a positive integer")
		return
	}
	size = min(size, maxPageSize)

	result, err := s.store.list(mux.Vars(r)["resource"], q.Get("filter"), pageNum, size)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": result})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	row, err := s.store.get(vars["resource"], vars["id"])
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var row record
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	created, err := s.store.create(mux.Vars(r)["resource"], row)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	updated, err := s.store.update(mux.Vars(r)["resource"], patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.store.remove(vars["resource"], vars["id"]); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code":    http.StatusOK,
		"message": fmt.Sprintf("delete %s success", strings.TrimSuffix(vars["resource"], "s")),
		"data":    nil,
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			s.writeError(w, r, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rec.status,
			"requestID", r.Header.Get("X-Request-ID"),
			"latency", time.Since(start))
	})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var se *storeError
	if errors.As(err, &se) {
		s.writeError(w, r, se.status, se.msg)
		return
	}
	s.writeError(w, r, http.StatusInternalServerError, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Timestamp: time.Now().Format("2006-01-02T15:04:05.000"),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// ListenAndServe serves on addr until ctx is cancelled. ready, if non-nil,
// receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(addr string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

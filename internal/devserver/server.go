// Package devserver is an in-memory implementation of the employee REST
// service. It speaks either schema revision and exists for local development
// and for exercising the client end to end in tests.
package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/employee"
)

const maxBodyBytes = 1 << 20

// Server holds records in insertion order behind a mutex.
type Server struct {
	schema employee.Schema
	router *mux.Router

	mu      sync.RWMutex
	records []employee.Record
	now     func() time.Time
}

// New builds a Server for schema. A nil schema selects employee.Structured.
func New(schema employee.Schema) *Server {
	if schema == nil {
		schema = employee.Structured
	}
	s := &Server{schema: schema, now: time.Now}
	s.router = s.routes()
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed appends records as if they had been created.
func (s *Server) Seed(recs ...employee.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recs...)
}

// Records returns a copy of the stored records.
func (s *Server) Records() []employee.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]employee.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc(employee.PathProbe, s.handleProbe).Methods(http.MethodGet)
	r.HandleFunc(employee.PathCreate, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(employee.PathList, s.handleList).Methods(http.MethodGet)

	if s.schema.Name() == employee.SchemaFlat {
		r.HandleFunc(employee.PathUpdate, s.handleUpdate).Methods(http.MethodPut)
		r.HandleFunc(employee.PathDelete, s.handleDelete).Methods(http.MethodDelete)
	} else {
		r.HandleFunc(employee.PathUpdate+"/{id}", s.handleUpdate).Methods(http.MethodPut)
		r.HandleFunc(employee.PathDelete+"/{id}", s.handleDelete).Methods(http.MethodDelete)
	}
	return r
}

func (s *Server) handleProbe(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "schema": s.schema.Name()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.readRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if rec.ID == "" {
		rec.ID = employee.NewID(s.now())
	}

	s.mu.Lock()
	if s.indexLocked(rec.ID) >= 0 {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, fmt.Errorf("employee %s already exists", rec.ID))
		return
	}
	s.records = append(s.records, rec)
	s.mu.Unlock()

	s.writeRecord(w, http.StatusCreated, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get(employee.FilterParam))

	s.mu.RLock()
	matches := make([]json.RawMessage, 0, len(s.records))
	var encodeErr error
	for _, rec := range s.records {
		if filter != "" && rec.ID != filter {
			continue
		}
		raw, err := s.schema.Encode(rec)
		if err != nil {
			encodeErr = err
			break
		}
		matches = append(matches, raw)
	}
	s.mu.RUnlock()

	if encodeErr != nil {
		writeError(w, http.StatusInternalServerError, encodeErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{s.schema.ListKey(): matches})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	rec, err := s.readRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if id, ok := mux.Vars(r)["id"]; ok {
		rec.ID = id
	}

	s.mu.Lock()
	idx := s.indexLocked(rec.ID)
	if idx < 0 {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, fmt.Errorf("employee %s not found", rec.ID))
		return
	}
	s.records[idx] = rec
	s.mu.Unlock()

	s.writeRecord(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if id, err = employee.ParseFlatDelete(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, fmt.Errorf("employee %s not found", id))
		return
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted", "id": id})
}

func (s *Server) readRecord(r *http.Request) (employee.Record, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return employee.Record{}, fmt.Errorf("read body: %w", err)
	}
	rec, err := s.schema.DecodeRecord(body)
	if errors.Is(err, employee.ErrNotRecord) {
		return employee.Record{}, fmt.Errorf("body is not a %s employee record", s.schema.Name())
	}
	return rec, err
}

func (s *Server) writeRecord(w http.ResponseWriter, status int, rec employee.Record) {
	raw, err := s.schema.Encode(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, status, json.RawMessage(raw))
}

func (s *Server) indexLocked(id string) int {
	for i, rec := range s.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("write response failed")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

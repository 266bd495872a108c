package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/store"
)

// Server holds the API server state. The underlying store performs no
// locking of its own, so every store access goes through mu.
type Server struct {
	mu      sync.Mutex
	store   RecordStore
	archive SnapshotArchive // nil disables snapshot endpoints
	config  ServerConfig
	metrics *Metrics // nil disables instrumentation
}

// NewServer creates a new API server
func NewServer(recordStore RecordStore, snapshots SnapshotArchive, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   recordStore,
		archive: snapshots,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) recordOp(operation string, success bool, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordStoreOperation(operation, success, time.Since(start))
	s.metrics.UpdateStoreStats(s.store.RecordCount(), int(s.store.Header().StringBlockSize))
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUnknownField),
		errors.Is(err, store.ErrTypeMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	h := s.store.Header()
	s.mu.Unlock()

	sendSuccess(w, HeaderResponse{
		Magic:           string(h.Magic[:]),
		RecordCount:     h.RecordCount,
		FieldCount:      h.FieldCount,
		RecordSize:      h.RecordSize,
		StringBlockSize: h.StringBlockSize,
	})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		sendError(w, "Record index must be an integer", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	record, err := s.store.GetRecord(index)
	s.mu.Unlock()

	s.recordOp("get_record", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, RecordResponse{Index: index, Fields: recordFields(record)})
}

// handleFindRecords serves GET /records?field=<name>&value=<text>. Without
// parameters it lists every record.
func (s *Server) handleFindRecords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	field := r.URL.Query().Get("field")
	text := r.URL.Query().Get("value")

	s.mu.Lock()
	defer s.mu.Unlock()

	if field == "" {
		records := make([]RecordResponse, 0, s.store.RecordCount())
		for i := 0; i < s.store.RecordCount(); i++ {
			record, err := s.store.GetRecord(i)
			if err != nil {
				s.recordOp("list_records", false, start)
				sendError(w, err.Error(), statusFor(err))
				return
			}
			records = append(records, RecordResponse{Index: i, Fields: recordFields(record)})
		}
		s.recordOp("list_records", true, start)
		sendSuccess(w, records)
		return
	}

	ft, ok := s.store.Schema().TypeOf(field)
	if !ok {
		s.recordOp("find_by", false, start)
		sendError(w, fmt.Sprintf("unknown field %q", field), http.StatusBadRequest)
		return
	}
	value, err := codec.ParseValue(ft, text)
	if err != nil {
		s.recordOp("find_by", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	matches, err := s.store.FindBy(field, value)
	s.recordOp("find_by", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}

	records := make([]RecordResponse, 0, len(matches))
	for _, m := range matches {
		records = append(records, RecordResponse{Index: m.Index, Fields: recordFields(m.Record)})
	}
	sendSuccess(w, records)
}

// handleCreateRecord serves POST /records. An empty body appends a
// zero-initialized record; a JSON object body seeds the new record's fields.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// An empty body is fine; anything present must parse as a JSON object.
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		sendError(w, "Request body must be empty or a JSON object of field values", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(raw) == 0 {
		index := s.store.CreateRecord()
		s.recordOp("create_record", true, start)
		sendSuccess(w, map[string]int{"index": index})
		return
	}

	values, err := s.valuesFromJSON(raw)
	if err != nil {
		s.recordOp("create_record", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	index, err := s.store.CreateRecordWithValues(values)
	s.recordOp("create_record", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]int{"index": index})
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		sendError(w, "Record index must be an integer", http.StatusBadRequest)
		return
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		sendError(w, "Request body must be a JSON object of field values", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.valuesFromJSON(raw)
	if err != nil {
		s.recordOp("update_record", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.store.UpdateRecordMulti(index, values)
	s.recordOp("update_record", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]int{"index": index})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		sendError(w, "Record index must be an integer", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = s.store.DeleteRecord(index)
	s.mu.Unlock()

	s.recordOp("delete_record", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]int{"index": index})
}

// handleSave serves POST /save, persisting the store to its originating
// file.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.Lock()
	err := s.store.Write()
	s.mu.Unlock()

	s.recordOp("write", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]string{"status": "saved"})
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "Snapshot archive is not configured", http.StatusServiceUnavailable)
		return
	}
	start := time.Now()

	s.mu.Lock()
	image := s.store.Encode()
	s.mu.Unlock()

	id, err := s.archive.Save(image)
	s.recordOp("snapshot", err == nil, start)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, SnapshotResponse{ID: id.String(), Size: len(image)})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "Snapshot archive is not configured", http.StatusServiceUnavailable)
		return
	}

	entries, err := s.archive.List()
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snapshots := make([]SnapshotResponse, 0, len(entries))
	for _, e := range entries {
		snapshots = append(snapshots, SnapshotResponse{ID: e.ID.String(), Size: e.Size})
	}
	sendSuccess(w, snapshots)
}

// recordFields flattens a decoded record into JSON-friendly values.
func recordFields(record store.Record) map[string]interface{} {
	fields := make(map[string]interface{}, len(record))
	for name, v := range record {
		fields[name] = v.Interface()
	}
	return fields
}

// valuesFromJSON converts a decoded JSON object into typed values per the
// store's schema. JSON numbers arrive as float64 and are range-checked
// before narrowing.
func (s *Server) valuesFromJSON(raw map[string]interface{}) (map[string]codec.Value, error) {
	values := make(map[string]codec.Value, len(raw))
	for field, rv := range raw {
		ft, ok := s.store.Schema().TypeOf(field)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", field)
		}

		switch ft {
		case codec.FieldUint32:
			n, err := jsonInteger(rv)
			if err != nil || n < 0 || n > math.MaxUint32 {
				return nil, fmt.Errorf("field %q requires a uint32 value", field)
			}
			values[field] = codec.Uint32Value(uint32(n))
		case codec.FieldInt32:
			n, err := jsonInteger(rv)
			if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("field %q requires an int32 value", field)
			}
			values[field] = codec.Int32Value(int32(n))
		case codec.FieldFloat32:
			f, ok := rv.(float64)
			if !ok {
				return nil, fmt.Errorf("field %q requires a number", field)
			}
			values[field] = codec.Float32Value(float32(f))
		case codec.FieldString:
			str, ok := rv.(string)
			if !ok {
				return nil, fmt.Errorf("field %q requires a string", field)
			}
			values[field] = codec.StringValue(str)
		}
	}
	return values, nil
}

func jsonInteger(rv interface{}) (int64, error) {
	f, ok := rv.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int64(f), nil
}

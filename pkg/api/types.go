// Package api exposes one DBC store over a REST interface: header and
// record reads, field searches, record mutation, persistence, and archive
// snapshots.
package api

import (
	"github.com/segmentio/ksuid"

	"github.com/wowtools/dbckit/pkg/archive"
	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/schema"
	"github.com/wowtools/dbckit/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// HeaderResponse is the JSON form of a DBC header.
type HeaderResponse struct {
	Magic           string `json:"magic"`
	RecordCount     uint32 `json:"record_count"`
	FieldCount      uint32 `json:"field_count"`
	RecordSize      uint32 `json:"record_size"`
	StringBlockSize uint32 `json:"string_block_size"`
}

// RecordResponse pairs a record's index with its decoded fields.
type RecordResponse struct {
	Index  int                    `json:"index"`
	Fields map[string]interface{} `json:"fields"`
}

// SnapshotResponse describes one archive snapshot.
type SnapshotResponse struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

// RecordStore defines the store operations the API serves. *store.Store
// implements it.
type RecordStore interface {
	Header() codec.Header
	Schema() *schema.Schema
	RecordCount() int
	GetRecord(index int) (store.Record, error)
	FindBy(field string, value codec.Value) ([]store.Match, error)
	CreateRecord() int
	CreateRecordWithValues(values map[string]codec.Value) (int, error)
	UpdateRecord(index int, field string, value codec.Value) error
	UpdateRecordMulti(index int, values map[string]codec.Value) error
	DeleteRecord(index int) error
	Write() error
	Encode() []byte
}

// SnapshotArchive defines the archive operations the API serves.
// *archive.Archive implements it.
type SnapshotArchive interface {
	Save(image []byte) (ksuid.KSUID, error)
	List() ([]archive.Entry, error)
}

// Package store holds the typed, mutable in-memory representation of one DBC
// file: the decoded header, a contiguous array of 4-byte record slots, and
// the string block. It supports round-trip read/modify/write plus CRUD and
// linear search over the decoded records.
//
// A Store performs no internal locking. It assumes exclusive access by one
// caller; share it across goroutines only behind an external mutex.
package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wowtools/dbckit/pkg/codec"
	"github.com/wowtools/dbckit/pkg/schema"
)

// Config holds configuration for a Store.
type Config struct {
	// Path is the originating DBC file, the target of Read and Write.
	Path string
	// Schema defines the record layout. It must agree with the file's
	// field count.
	Schema *schema.Schema
	// Magic, when set, is validated against the header's magic bytes on
	// Read. Empty disables validation, matching clients that copy the tag
	// verbatim.
	Magic string
}

// Store is the in-memory representation of a DBC file.
type Store struct {
	config  Config
	header  codec.Header
	slots   []uint32 // record_count × field_count, row-major
	strings *codec.StringBlock
}

// NewStore creates an empty store. Call Read to load the file at
// Config.Path.
func NewStore(config Config) (*Store, error) {
	if config.Schema == nil {
		return nil, fmt.Errorf("store config requires a schema")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("store config requires a file path")
	}
	if config.Magic != "" && len(config.Magic) != 4 {
		return nil, fmt.Errorf("expected magic must be exactly 4 bytes, got %q", config.Magic)
	}

	return &Store{
		config: Config{
			Path:   config.Path,
			Schema: config.Schema,
			Magic:  config.Magic,
		},
		// A fresh block starts with a single nul so the zero-initialized
		// string slots of created records decode to the empty string.
		header: codec.Header{
			FieldCount:      uint32(config.Schema.Len()),
			RecordSize:      uint32(config.Schema.Len()) * 4,
			StringBlockSize: 1,
		},
		strings: codec.NewStringBlock([]byte{0}),
	}, nil
}

// Path returns the originating file path.
func (s *Store) Path() string { return s.config.Path }

// Schema returns the field layout the store was opened with.
func (s *Store) Schema() *schema.Schema { return s.config.Schema }

// Header returns a copy of the current header. RecordCount tracks mutations;
// StringBlockSize tracks string interning; RecordSize is carried verbatim
// from the source file and never recomputed.
func (s *Store) Header() codec.Header { return s.header }

// RecordCount returns the number of records currently held.
func (s *Store) RecordCount() int { return int(s.header.RecordCount) }

// Read loads the file at the configured path, replacing any previously
// loaded state. On any error the store is left unchanged.
func (s *Store) Read() error {
	data, err := os.ReadFile(s.config.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.config.Path, err)
	}

	header, err := codec.DecodeHeader(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTruncated, err)
	}

	if s.config.Magic != "" && string(header.Magic[:]) != s.config.Magic {
		return fmt.Errorf("%w: expected %q, got %q", ErrBadMagic, s.config.Magic, header.Magic[:])
	}

	if int(header.FieldCount) != s.config.Schema.Len() {
		return fmt.Errorf("%w: header declares %d fields, schema declares %d",
			ErrSchemaMismatch, header.FieldCount, s.config.Schema.Len())
	}

	slotCount := uint64(header.RecordCount) * uint64(header.FieldCount)
	recordBytes := slotCount * 4
	need := uint64(codec.HeaderSize) + recordBytes + uint64(header.StringBlockSize)
	if uint64(len(data)) < need {
		return fmt.Errorf("%w: file is %d bytes, header demands %d", ErrTruncated, len(data), need)
	}

	slots := make([]uint32, slotCount)
	for i := range slots {
		off := codec.HeaderSize + i*4
		slots[i] = binary.LittleEndian.Uint32(data[off : off+4])
	}

	blockStart := uint64(codec.HeaderSize) + recordBytes
	block := make([]byte, header.StringBlockSize)
	copy(block, data[blockStart:blockStart+uint64(header.StringBlockSize)])

	// Commit only after a fully successful parse.
	s.header = header
	s.slots = slots
	s.strings = codec.NewStringBlock(block)
	return nil
}

// Write serializes the store back to its originating path.
func (s *Store) Write() error {
	return s.writeFile(s.config.Path)
}

// WriteTo serializes the store to an arbitrary path. The destination
// directory must already exist; the originating file is never touched.
func (s *Store) WriteTo(path string) error {
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationUnwritable, filepath.Dir(path))
	}
	return s.writeFile(path)
}

// writeFile serializes through a temp file in the destination directory so a
// failed write never leaves a half-written DBC behind.
func (s *Store) writeFile(path string) error {
	data := s.Encode()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dbc-write-*")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDestinationUnwritable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s", ErrDestinationUnwritable, err)
	}
	return nil
}

// Encode serializes the current state into DBC wire format: header, slots in
// schema order, string block.
func (s *Store) Encode() []byte {
	buf := make([]byte, 0, codec.HeaderSize+len(s.slots)*4+s.strings.Len())
	buf = append(buf, s.header.Encode()...)

	var slot [4]byte
	for _, raw := range s.slots {
		binary.LittleEndian.PutUint32(slot[:], raw)
		buf = append(buf, slot[:]...)
	}

	return append(buf, s.strings.Bytes()...)
}

// fieldCount returns the slots per record.
func (s *Store) fieldCount() int { return s.config.Schema.Len() }

// recordSlots returns the slot row of record i. Callers must have
// bounds-checked i.
func (s *Store) recordSlots(i int) []uint32 {
	n := s.fieldCount()
	return s.slots[i*n : (i+1)*n]
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= s.RecordCount() {
		return fmt.Errorf("%w: index %d, record count %d", ErrIndexOutOfRange, index, s.RecordCount())
	}
	return nil
}

// Package archive keeps point-in-time snapshots of serialized DBC images in
// a local pebble database, keyed by KSUID. Snapshot IDs embed their creation
// second, so List comes back in rough chronological order.
package archive

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrSnapshotNotFound is returned when no snapshot exists for an ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Entry describes one stored snapshot.
type Entry struct {
	ID   ksuid.KSUID
	Size int
}

// Archive is a pebble-backed snapshot store.
type Archive struct {
	db *pebble.DB
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive at %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// Save stores a DBC image as a new snapshot and returns its ID.
func (a *Archive) Save(image []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), image, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return id, nil
}

// Load returns the image stored under id.
func (a *Archive) Load(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := a.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	defer closer.Close()

	// The buffer is only valid until the closer is closed.
	image := make([]byte, len(data))
	copy(image, data)
	return image, nil
}

// Delete removes the snapshot stored under id.
func (a *Archive) Delete(id ksuid.KSUID) error {
	if err := a.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	return nil
}

// List returns all snapshots in creation order.
func (a *Archive) List() ([]Entry, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			// Not a snapshot key; skip.
			continue
		}
		entries = append(entries, Entry{ID: id, Size: len(iter.Value())})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate archive: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

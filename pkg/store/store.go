// Package store persists rendered snapshots so they can be shared by ID.
//
// A snapshot captures everything needed to reproduce a visualization: the
// sample, the options it was run with, and the computed layout. Two
// backends implement [Store]: an in-memory map for development and tests,
// and MongoDB for deployments where snapshots must survive restarts and be
// visible across instances.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/layout"
)

// Snapshot is a stored visualization.
type Snapshot struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Count     int           `json:"count" bson:"count"`
	Seed      uint64        `json:"seed" bson:"seed"`
	Strategy  string        `json:"strategy" bson:"strategy"`
	Data      []int         `json:"data" bson:"data"`
	Layout    layout.Layout `json:"layout" bson:"layout"`
}

// Store is the snapshot persistence interface.
type Store interface {
	// Put saves a snapshot, overwriting any existing snapshot with the
	// same ID.
	Put(ctx context.Context, s Snapshot) error

	// Get retrieves a snapshot by ID. A missing ID yields an error with
	// code errors.ErrCodeSnapshotNotFound.
	Get(ctx context.Context, id string) (Snapshot, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}

// MemoryStore is a map-backed store for development and testing.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]Snapshot)}
}

// Put saves a snapshot.
func (s *MemoryStore) Put(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = snap
	return nil
}

// Get retrieves a snapshot by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return Snapshot{}, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	return snap, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

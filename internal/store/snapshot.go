// Package store persists the in-memory state as a single JSON document
// and reports database status for the admin surface. The in-memory
// repositories stay authoritative; the snapshot is a whole-state dump
// rewritten after mutating requests.
package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"github.com/telemart/telemart-backend/internal/order"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/user"
)

type snapshot struct {
	Products  []product.Product `json:"products"`
	Users     []user.User       `json:"users"`
	Orders    []order.Order     `json:"orders"`
	LastSaved time.Time         `json:"lastSaved"`
}

// DatabaseStatus is the admin database-status payload.
type DatabaseStatus struct {
	Type               string     `json:"type"`
	PersistenceEnabled bool       `json:"persistence_enabled"`
	DataFile           string     `json:"data_file,omitempty"`
	LastSaved          *time.Time `json:"lastSaved,omitempty"`
	Users              int        `json:"users"`
	Products           int        `json:"products"`
	Orders             int        `json:"orders"`
}

type Store struct {
	path     string
	products product.Repository
	users    user.Repository
	orders   order.Repository

	mu        sync.Mutex // serializes snapshot writes
	lastSaved time.Time
}

func New(path string, products product.Repository, users user.Repository, orders order.Repository) *Store {
	return &Store{path: path, products: products, users: users, orders: orders}
}

func (s *Store) Enabled() bool { return s.path != "" }

// Load restores a previously saved snapshot into the repositories.
// A missing file is not an error; the seed catalog applies instead.
func (s *Store) Load(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	for i := range snap.Products {
		if err := s.products.Put(ctx, &snap.Products[i]); err != nil {
			return err
		}
	}
	for i := range snap.Users {
		if err := s.users.Create(ctx, &snap.Users[i]); err != nil {
			return err
		}
	}
	for i := range snap.Orders {
		if err := s.orders.Create(ctx, &snap.Orders[i]); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.lastSaved = snap.LastSaved
	s.mu.Unlock()
	log.Printf("[store] snapshot loaded: %d products, %d users, %d orders",
		len(snap.Products), len(snap.Users), len(snap.Orders))
	return nil
}

// Save dumps the whole state to the data file. The write goes to a temp
// file first so a crash mid-write never truncates the previous snapshot.
func (s *Store) Save(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	snap, err := s.gather(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.LastSaved = time.Now().UTC()
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.lastSaved = snap.LastSaved
	return nil
}

// Status reports entity counts and persistence state.
func (s *Store) Status(ctx context.Context) (*DatabaseStatus, error) {
	snap, err := s.gather(ctx)
	if err != nil {
		return nil, err
	}
	st := &DatabaseStatus{
		Type:               "in-memory",
		PersistenceEnabled: s.Enabled(),
		DataFile:           s.path,
		Users:              len(snap.Users),
		Products:           len(snap.Products),
		Orders:             len(snap.Orders),
	}
	s.mu.Lock()
	if !s.lastSaved.IsZero() {
		t := s.lastSaved
		st.LastSaved = &t
	}
	s.mu.Unlock()
	return st, nil
}

func (s *Store) gather(ctx context.Context) (*snapshot, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{Products: products, Users: users, Orders: orders}, nil
}

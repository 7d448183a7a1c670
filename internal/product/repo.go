// Package product provides the repository interface and in-memory
// implementation for managing catalog products.
package product

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	Put(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	// AdjustStock adds delta (may be negative) to the product's stock.
	// Returns the resulting stock. Never takes stock below zero.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}

type MemRepo struct {
	mu    sync.RWMutex
	items map[string]*Product
}

func NewMemRepo() *MemRepo {
	return &MemRepo{items: make(map[string]*Product)}
}

func (r *MemRepo) Put(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemRepo) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return 0, ErrNotFound
	}
	newStock := p.Stock + delta
	if newStock < 0 {
		return p.Stock, ErrInsufficientStock
	}
	p.Stock = newStock
	return newStock, nil
}

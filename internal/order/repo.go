package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/telemart/telemart-backend/internal/user"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type MemRepo struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

func NewMemRepo() *MemRepo {
	return &MemRepo{orders: make(map[string]*Order)}
}

func (r *MemRepo) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	cp.Items = make([]user.CartItem, len(o.Items))
	copy(cp.Items, o.Items)
	r.orders[o.OrderID] = &cp
	return nil
}

func (r *MemRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	cp.Items = make([]user.CartItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp, nil
}

func (r *MemRepo) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		cp.Items = make([]user.CartItem, len(o.Items))
		copy(cp.Items, o.Items)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

package user

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, telegramID string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateCart(ctx context.Context, telegramID string, cart []CartItem) error
	AppendOrder(ctx context.Context, telegramID, orderID string) error
}

type MemRepo struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemRepo() *MemRepo {
	return &MemRepo{users: make(map[string]*User)}
}

func (r *MemRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.TelegramID]; ok {
		return ErrAlreadyExist
	}
	cp := clone(u)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.users[u.TelegramID] = cp
	return nil
}

func (r *MemRepo) GetByID(ctx context.Context, telegramID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[telegramID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(u), nil
}

func (r *MemRepo) List(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out, nil
}

func (r *MemRepo) UpdateCart(ctx context.Context, telegramID string, cart []CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	u.Cart = make([]CartItem, len(cart))
	copy(u.Cart, cart)
	return nil
}

func (r *MemRepo) AppendOrder(ctx context.Context, telegramID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	u.Orders = append(u.Orders, orderID)
	return nil
}

// clone copies the user including its slices so callers can't mutate
// repository state behind the lock. Slices stay non-nil so empty carts
// render as [] on the wire, not null.
func clone(u *User) *User {
	cp := *u
	cp.Cart = make([]CartItem, len(u.Cart))
	copy(cp.Cart, u.Cart)
	cp.Orders = make([]string, len(u.Orders))
	copy(cp.Orders, u.Orders)
	return &cp
}

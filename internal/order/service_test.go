package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/telemart/telemart-backend/internal/cart"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/user"
)

type fixture struct {
	svc      *Service
	carts    *cart.Service
	users    user.Repository
	products product.Repository
	orders   Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := user.NewMemRepo()
	products := product.NewMemRepo()
	orders := NewMemRepo()
	ctx := context.Background()

	if err := users.Create(ctx, &user.User{TelegramID: "U1", Username: "alice"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	seed := []product.Product{
		{ID: "PROD001", Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10},
		{ID: "PROD003", Name: "Headphones", Price: decimal.RequireFromString("149.99"), Stock: 50},
	}
	for i := range seed {
		if err := products.Put(ctx, &seed[i]); err != nil {
			t.Fatalf("put product: %v", err)
		}
	}
	return &fixture{
		svc:      NewService(orders, users, products),
		carts:    cart.NewService(users, products),
		users:    users,
		products: products,
		orders:   orders,
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get product %s: %v", id, err)
	}
	return p.Stock
}

func TestCreate_EmptyCartNoSideEffects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "U1", "somewhere", ""); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err=%v, want ErrEmptyCart", err)
	}
	if got := f.stock(t, "PROD001"); got != 10 {
		t.Fatalf("stock=%d, want unchanged 10", got)
	}
	list, _ := f.orders.List(ctx)
	if len(list) != 0 {
		t.Fatalf("orders created: %d", len(list))
	}
}

func TestCreate_UnknownUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.svc.Create(context.Background(), "nobody", "somewhere", ""); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("err=%v, want user.ErrNotFound", err)
	}
}

func TestCreate_SnapshotsTotalDecrementsStockClearsCart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD001", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.carts.Add(ctx, "U1", "PROD003", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	o, err := f.svc.Create(ctx, "U1", "221B Baker Street", "CARD")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 999.99 + 2*149.99
	if o.Total != "1299.97" {
		t.Fatalf("total=%s, want 1299.97", o.Total)
	}
	if o.Status != StatusPending {
		t.Fatalf("status=%s, want PENDING", o.Status)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items=%d, want 2", len(o.Items))
	}
	if got := f.stock(t, "PROD001"); got != 9 {
		t.Fatalf("PROD001 stock=%d, want 9", got)
	}
	if got := f.stock(t, "PROD003"); got != 48 {
		t.Fatalf("PROD003 stock=%d, want 48", got)
	}

	u, _ := f.users.GetByID(ctx, "U1")
	if len(u.Cart) != 0 {
		t.Fatalf("cart not cleared: %+v", u.Cart)
	}
	if len(u.Orders) != 1 || u.Orders[0] != o.OrderID {
		t.Fatalf("order reference not recorded: %+v", u.Orders)
	}
}

func TestCreate_PaymentMethodDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD001", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.svc.Create(ctx, "U1", "somewhere", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.PaymentMethod != "NOT_SPECIFIED" {
		t.Fatalf("payment_method=%s, want NOT_SPECIFIED", o.PaymentMethod)
	}
}

func TestCreate_OversoldCartRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD001", 8); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Another order drains the stock the cart was counting on.
	if _, err := f.products.AdjustStock(ctx, "PROD001", -5); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if _, err := f.svc.Create(ctx, "U1", "somewhere", ""); !errors.Is(err, product.ErrInsufficientStock) {
		t.Fatalf("err=%v, want ErrInsufficientStock", err)
	}
	if got := f.stock(t, "PROD001"); got != 5 {
		t.Fatalf("stock=%d, want 5 (no partial decrement)", got)
	}
	u, _ := f.users.GetByID(ctx, "U1")
	if len(u.Cart) != 1 {
		t.Fatalf("cart should survive a failed checkout: %+v", u.Cart)
	}
}

func TestCartMutationAfterCheckoutDoesNotTouchOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD003", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.svc.Create(ctx, "U1", "somewhere", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.carts.Add(ctx, "U1", "PROD003", 5); err != nil {
		t.Fatalf("post-checkout add: %v", err)
	}

	got, err := f.svc.Get(ctx, o.OrderID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("order items changed after checkout: %+v", got.Items)
	}
}

func TestSetStatus_EnumMembershipOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD003", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.svc.Create(ctx, "U1", "somewhere", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.SetStatus(ctx, o.OrderID, "wtf"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err=%v, want ErrInvalidStatus", err)
	}
	if _, err := f.svc.SetStatus(ctx, "missing", "SHIPPED"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}

	// No transition-legality guard: DELIVERED straight from PENDING,
	// and back again, both pass.
	upd, err := f.svc.SetStatus(ctx, o.OrderID, "DELIVERED")
	if err != nil {
		t.Fatalf("set DELIVERED: %v", err)
	}
	if upd.Status != StatusDelivered {
		t.Fatalf("status=%s, want DELIVERED", upd.Status)
	}
	if !upd.UpdatedAt.After(upd.CreatedAt) && !upd.UpdatedAt.Equal(upd.CreatedAt) {
		t.Fatalf("updated_at not advanced: %v < %v", upd.UpdatedAt, upd.CreatedAt)
	}
	if _, err := f.svc.SetStatus(ctx, o.OrderID, "PENDING"); err != nil {
		t.Fatalf("set back to PENDING: %v", err)
	}
}

func TestCancel_RestoresStockOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD003", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.svc.Create(ctx, "U1", "somewhere", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := f.stock(t, "PROD003"); got != 48 {
		t.Fatalf("stock=%d, want 48", got)
	}

	cancelled, err := f.svc.Cancel(ctx, o.OrderID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status=%s, want CANCELLED", cancelled.Status)
	}
	if got := f.stock(t, "PROD003"); got != 50 {
		t.Fatalf("stock=%d, want restored 50", got)
	}

	// Second cancel hits the terminal guard and must not restock again.
	if _, err := f.svc.Cancel(ctx, o.OrderID); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("err=%v, want ErrNotCancellable", err)
	}
	if got := f.stock(t, "PROD003"); got != 50 {
		t.Fatalf("stock=%d after double cancel, want 50", got)
	}
}

func TestCancel_DeliveredRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD003", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	o, err := f.svc.Create(ctx, "U1", "somewhere", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.SetStatus(ctx, o.OrderID, "DELIVERED"); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if _, err := f.svc.Cancel(ctx, o.OrderID); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("err=%v, want ErrNotCancellable", err)
	}
	if got := f.stock(t, "PROD003"); got != 48 {
		t.Fatalf("stock=%d, want unchanged 48", got)
	}
}

func TestListByUser_ResolvesReferencesInOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		if _, err := f.carts.Add(ctx, "U1", "PROD003", 1); err != nil {
			t.Fatalf("add: %v", err)
		}
		o, err := f.svc.Create(ctx, "U1", "somewhere", "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, o.OrderID)
	}

	list, err := f.svc.ListByUser(ctx, "U1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len=%d, want 3", len(list))
	}
	for i, o := range list {
		if o.OrderID != ids[i] {
			t.Fatalf("order %d: id=%s, want %s", i, o.OrderID, ids[i])
		}
	}
}

// Scenario: PROD003 stock=50 price=149.99; add 2, checkout, cancel.
func TestOrderLifecycleScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.Add(ctx, "U1", "PROD003", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	sum, err := f.carts.View(ctx, "U1")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if sum.Total != "299.98" {
		t.Fatalf("cart total=%s, want 299.98", sum.Total)
	}

	o, err := f.svc.Create(ctx, "U1", "221B Baker Street", "CARD")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Total != "299.98" || o.Status != StatusPending {
		t.Fatalf("order total=%s status=%s, want 299.98/PENDING", o.Total, o.Status)
	}
	if got := f.stock(t, "PROD003"); got != 48 {
		t.Fatalf("stock=%d, want 48", got)
	}

	cancelled, err := f.svc.Cancel(ctx, o.OrderID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status=%s, want CANCELLED", cancelled.Status)
	}
	if got := f.stock(t, "PROD003"); got != 50 {
		t.Fatalf("stock=%d, want 50", got)
	}
}

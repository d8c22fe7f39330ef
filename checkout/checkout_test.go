package checkout

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emma-ortiz/OlivosVerdes-3/cart"
	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
	"github.com/emma-ortiz/OlivosVerdes-3/models"
	"github.com/emma-ortiz/OlivosVerdes-3/session"
)

type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

type fakeProfiles struct {
	profile *models.DeliveryProfile
	err     error
}

func (f *fakeProfiles) DeliveryProfile(context.Context, string) (*models.DeliveryProfile, error) {
	return f.profile, f.err
}

type fakeOrders struct {
	created []*models.Order
	orders  map[uint]*models.Order
	err     error

	// When set, CreateOrder signals entered and then blocks until
	// release is closed.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeOrders) CreateOrder(_ context.Context, order *models.Order) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return f.err
	}
	order.ID = uint(len(f.created) + 1)
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID uint, userID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func testProduct(id uint, price string) *models.Product {
	return &models.Product{ID: id, BasePrice: decimal.RequireFromString(price)}
}

type fixture struct {
	svc      *Service
	carts    *cart.Manager
	catalog  *fakeCatalog
	profiles *fakeProfiles
	orders   *fakeOrders
}

func newFixture(products ...*models.Product) *fixture {
	cat := &fakeCatalog{products: make(map[string]*models.Product)}
	for _, p := range products {
		cat.products[strconv.FormatUint(uint64(p.ID), 10)] = p
	}
	carts := cart.NewManager(session.NewMemoryStore(), cat, decimal.RequireFromString("40.00"))
	profiles := &fakeProfiles{profile: &models.DeliveryProfile{DeliveryAddress: "Av. Central 123"}}
	orders := &fakeOrders{orders: make(map[uint]*models.Order)}
	return &fixture{
		svc:      NewService(carts, cat, profiles, orders),
		carts:    carts,
		catalog:  cat,
		profiles: profiles,
		orders:   orders,
	}
}

func (f *fixture) addToCart(t *testing.T, productID string, qty int) {
	t.Helper()
	_, err := f.carts.Add(context.Background(), "sid", productID, qty)
	require.NoError(t, err)
}

func TestConfirmEmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.created)
}

func TestConfirmMissingDeliveryAddress(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.addToCart(t, "1", 1)

	for _, profile := range []*models.DeliveryProfile{nil, {DeliveryAddress: "  "}} {
		f.profiles.profile = profile
		_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")
		assert.ErrorIs(t, err, ErrMissingDeliveryAddress)
	}
	assert.Empty(t, f.orders.created)
}

func TestConfirmMissingPaymentInfo(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.addToCart(t, "1", 1)

	_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "   ")
	assert.ErrorIs(t, err, ErrMissingPaymentInfo)
	assert.Empty(t, f.orders.created)
}

func TestConfirmCreatesOrderAndClearsCart(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"), testProduct(2, "5.00"))
	f.addToCart(t, "1", 2)
	f.addToCart(t, "2", 1)

	conf, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111 1111 1111 1111")
	require.NoError(t, err)
	assert.NotZero(t, conf.OrderID)
	assert.True(t, strings.HasPrefix(conf.PaymentRef, "sim_sandbox_"))
	assert.Empty(t, conf.Skipped)

	require.Len(t, f.orders.created, 1)
	order := f.orders.created[0]
	assert.Equal(t, "user-a", order.UserID)
	assert.True(t, order.Completed)
	assert.True(t, order.Paid)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, uint(1), order.Lines[0].ProductID)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, uint(2), order.Lines[1].ProductID)

	c, _, err := f.carts.Snapshot(context.Background(), "sid")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "cart must be empty after checkout")
}

func TestConfirmSkipsVanishedProducts(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"), testProduct(2, "5.00"))
	f.addToCart(t, "1", 1)
	f.addToCart(t, "2", 1)

	delete(f.catalog.products, "2")

	conf, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")
	require.NoError(t, err)
	require.Len(t, conf.Skipped, 1)
	assert.Equal(t, "2", conf.Skipped[0].ProductID)

	require.Len(t, f.orders.created, 1)
	require.Len(t, f.orders.created[0].Lines, 1)
	assert.Equal(t, uint(1), f.orders.created[0].Lines[0].ProductID)
}

func TestConfirmPersistenceFailureKeepsCart(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.addToCart(t, "1", 1)
	f.orders.err = errors.New("connection reset")

	_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create order", perr.Op)

	c, _, err := f.carts.Snapshot(context.Background(), "sid")
	require.NoError(t, err)
	assert.False(t, c.IsEmpty(), "cart must survive a failed checkout")
}

func TestConfirmDoubleSubmit(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.addToCart(t, "1", 1)

	f.orders.entered = make(chan struct{}, 1)
	f.orders.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")
		done <- err
	}()

	// Wait for the first confirmation to reach the storage layer.
	select {
	case <-f.orders.entered:
	case <-time.After(time.Second):
		t.Fatal("first confirmation never started")
	}

	_, err := f.svc.Confirm(context.Background(), "sid", "user-a", "4111")
	assert.ErrorIs(t, err, ErrInFlight)

	close(f.orders.release)
	require.NoError(t, <-done)
	assert.Len(t, f.orders.created, 1)
}

func TestPreviewUsesLiveBasePrice(t *testing.T) {
	today := time.Now()
	p := testProduct(1, "12.00")
	p.Promotion = &models.Promotion{
		ProductID:       1,
		DiscountedPrice: decimal.RequireFromString("8.00"),
		StartDate:       today.AddDate(0, 0, -1),
		EndDate:         today.AddDate(0, 0, 1),
	}
	f := newFixture(p)
	f.addToCart(t, "1", 2)

	// The cart itself snapshots the discounted price...
	summary, _, err := f.carts.Totals(context.Background(), "sid")
	require.NoError(t, err)
	assert.True(t, summary.Items[0].UnitPrice.Equal(decimal.RequireFromString("8.00")))

	// ...while the preview quotes the base price.
	quote, err := f.svc.Preview(context.Background(), "sid", "user-a")
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	assert.True(t, quote.Lines[0].UnitPrice.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("24.00")))
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("64.00")))
}

func TestPreviewLinesAreStablyOrdered(t *testing.T) {
	f := newFixture(testProduct(2, "5.00"), testProduct(10, "3.00"))
	f.addToCart(t, "10", 1)
	f.addToCart(t, "2", 1)

	first, err := f.svc.Preview(context.Background(), "sid", "user-a")
	require.NoError(t, err)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, uint(2), first.Lines[0].Product.ID)
	assert.Equal(t, uint(10), first.Lines[1].Product.ID)

	second, err := f.svc.Preview(context.Background(), "sid", "user-a")
	require.NoError(t, err)
	for i := range first.Lines {
		assert.Equal(t, first.Lines[i].Product.ID, second.Lines[i].Product.ID)
	}
}

func TestPreviewPreconditions(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))

	_, err := f.svc.Preview(context.Background(), "sid", "user-a")
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.addToCart(t, "1", 1)
	f.profiles.profile = nil
	_, err = f.svc.Preview(context.Background(), "sid", "user-a")
	assert.ErrorIs(t, err, ErrMissingDeliveryAddress)
}

func TestViewOrderOwnership(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.orders.orders[5] = &models.Order{
		ID:     5,
		UserID: "user-a",
		Lines:  []models.OrderLine{{ProductID: 1, Quantity: 2}},
	}

	_, err := f.svc.ViewOrder(context.Background(), 5, "user-b")
	assert.ErrorIs(t, err, ErrNotFound)

	view, err := f.svc.ViewOrder(context.Background(), 5, "user-a")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.True(t, view.Subtotal.Equal(decimal.RequireFromString("20.00")))
}

func TestViewOrderRepricesFromLiveCatalog(t *testing.T) {
	f := newFixture(testProduct(1, "10.00"))
	f.orders.orders[5] = &models.Order{
		ID:     5,
		UserID: "user-a",
		Lines:  []models.OrderLine{{ProductID: 1, Quantity: 1}},
	}

	f.catalog.products["1"].BasePrice = decimal.RequireFromString("11.00")

	view, err := f.svc.ViewOrder(context.Background(), 5, "user-a")
	require.NoError(t, err)
	assert.True(t, view.Lines[0].UnitPrice.Equal(decimal.RequireFromString("11.00")),
		"order lines reprice from the current catalog price")
}

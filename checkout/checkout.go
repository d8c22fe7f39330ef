package checkout

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emma-ortiz/OlivosVerdes-3/cart"
	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

// Profiles supplies the delivery profile for the checking-out user; nil
// without error means the user has not created one.
type Profiles interface {
	DeliveryProfile(ctx context.Context, userID string) (*models.DeliveryProfile, error)
}

// Orders is the order persistence boundary.
type Orders interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID uint, userID string) (*models.Order, error)
}

// QuoteLine is one cart line priced for the checkout preview. The preview
// quotes from the live catalog base price, not the cart's snapshot and not
// the promotion price; the cart page and the checkout page can therefore
// disagree while a promotion is active. That mirrors the storefront's
// long-standing behavior and is kept on purpose.
type QuoteLine struct {
	Product   *models.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Quote is the read-only checkout preview.
type Quote struct {
	Lines           []QuoteLine     `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"delivery_address"`
}

// Confirmation is the result of a successful checkout.
type Confirmation struct {
	OrderID    uint           `json:"order_id"`
	PaymentRef string         `json:"payment_ref"`
	Skipped    []cart.Warning `json:"skipped,omitempty"`
}

// OrderViewLine prices an order line from the product's current catalog
// price at read time; orders hold no price of their own.
type OrderViewLine struct {
	Product   *models.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderView is an order plus its lines priced for display.
type OrderView struct {
	Order    *models.Order   `json:"order"`
	Lines    []OrderViewLine `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// Service turns a session cart into a persisted order.
type Service struct {
	carts    *cart.Manager
	catalog  cart.Catalog
	profiles Profiles
	orders   Orders
	now      func() time.Time
	pending  *inflight
}

func NewService(carts *cart.Manager, cat cart.Catalog, profiles Profiles, orders Orders) *Service {
	return &Service{
		carts:    carts,
		catalog:  cat,
		profiles: profiles,
		orders:   orders,
		now:      time.Now,
		pending:  newInflight(),
	}
}

// Preview produces a quote for the session's cart without touching
// persisted state. Preconditions: non-empty cart, delivery address on
// file.
func (s *Service) Preview(ctx context.Context, sid, userID string) (*Quote, error) {
	c, _, err := s.carts.Snapshot(ctx, sid)
	if err != nil {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	profile, err := s.deliveryProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Subtotal:        decimal.Zero,
		Shipping:        s.carts.ShippingCost(),
		DeliveryAddress: profile.DeliveryAddress,
	}
	for _, id := range cart.SortedIDs(c) {
		line := c[id]
		product, err := s.catalog.GetProduct(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, &PersistenceError{Op: "load product", Err: err}
		}

		subtotal := product.BasePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		quote.Lines = append(quote.Lines, QuoteLine{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: product.BasePrice,
			Subtotal:  subtotal,
		})
		quote.Subtotal = quote.Subtotal.Add(subtotal)
	}
	quote.Total = quote.Subtotal.Add(quote.Shipping)
	return quote, nil
}

// Confirm runs the payment step: it validates the preconditions, creates
// the order with its lines, and clears the cart. Cart lines whose product
// has disappeared are skipped, not fatal; the order is created from the
// rest. A storage failure leaves the cart intact for a retry.
func (s *Service) Confirm(ctx context.Context, sid, userID, cardNumber string) (*Confirmation, error) {
	if !s.pending.tryAcquire(sid) {
		return nil, ErrInFlight
	}
	defer s.pending.release(sid)

	c, _, err := s.carts.Snapshot(ctx, sid)
	if err != nil {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if _, err := s.deliveryProfile(ctx, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cardNumber) == "" {
		return nil, ErrMissingPaymentInfo
	}

	order := &models.Order{
		UserID:       userID,
		Completed:    true,
		Paid:         true,
		PaymentRef:   "sim_sandbox_" + uuid.NewString(),
		ShippingCost: s.carts.ShippingCost(),
		CreatedAt:    s.now(),
	}

	var skipped []cart.Warning
	for _, id := range cart.SortedIDs(c) {
		line := c[id]
		product, err := s.catalog.GetProduct(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			skipped = append(skipped, cart.Warning{ProductID: id, Reason: "product no longer available"})
			continue
		}
		if err != nil {
			return nil, &PersistenceError{Op: "load product", Err: err}
		}
		if line.Quantity < 1 {
			skipped = append(skipped, cart.Warning{ProductID: id, Reason: "invalid quantity"})
			continue
		}

		order.Lines = append(order.Lines, models.OrderLine{
			ProductID: product.ID,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, &PersistenceError{Op: "create order", Err: err}
	}

	if err := s.carts.Clear(ctx, sid); err != nil {
		// The order exists; a stale cart is the lesser failure.
		log.Printf("checkout: clearing cart for session %s failed: %v", sid, err)
	}

	return &Confirmation{
		OrderID:    order.ID,
		PaymentRef: order.PaymentRef,
		Skipped:    skipped,
	}, nil
}

// ViewOrder fetches an order by (id, owner). Orders owned by a different
// user surface as ErrNotFound. Line prices are derived from the current
// catalog price.
func (s *Service) ViewOrder(ctx context.Context, orderID uint, userID string) (*OrderView, error) {
	order, err := s.orders.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	view := &OrderView{Order: order, Subtotal: decimal.Zero}
	for _, line := range order.Lines {
		product, err := s.catalog.GetProduct(ctx, strconv.FormatUint(uint64(line.ProductID), 10))
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, &PersistenceError{Op: "load product", Err: err}
		}

		subtotal := product.BasePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, OrderViewLine{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: product.BasePrice,
			Subtotal:  subtotal,
		})
		view.Subtotal = view.Subtotal.Add(subtotal)
	}
	view.Total = view.Subtotal.Add(order.ShippingCost)
	return view, nil
}

func (s *Service) deliveryProfile(ctx context.Context, userID string) (*models.DeliveryProfile, error) {
	profile, err := s.profiles.DeliveryProfile(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load delivery profile", Err: err}
	}
	if profile == nil || strings.TrimSpace(profile.DeliveryAddress) == "" {
		return nil, ErrMissingDeliveryAddress
	}
	return profile, nil
}

package cart

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emma-ortiz/OlivosVerdes-3/catalog"
	"github.com/emma-ortiz/OlivosVerdes-3/models"
	"github.com/emma-ortiz/OlivosVerdes-3/session"
)

// Catalog is the slice of the product catalog the cart needs.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// ItemTotal is one priced cart line in a Summary.
type ItemTotal struct {
	Product   *models.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Summary is the cart's derived totals: snapshot price times quantity per
// line, plus the flat shipping cost.
type Summary struct {
	Items    []ItemTotal     `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Manager couples the pure cart operations with the session store and the
// catalog: it loads the stored cart, applies one mutation, and persists
// the result within a single request.
type Manager struct {
	store    session.Store
	catalog  Catalog
	shipping decimal.Decimal
	now      func() time.Time
}

func NewManager(store session.Store, cat Catalog, shipping decimal.Decimal) *Manager {
	return &Manager{
		store:    store,
		catalog:  cat,
		shipping: shipping,
		now:      time.Now,
	}
}

// ShippingCost is the flat per-order delivery charge.
func (m *Manager) ShippingCost() decimal.Decimal {
	return m.shipping
}

func (m *Manager) load(ctx context.Context, sid string) (Cart, []Warning, error) {
	data, err := m.store.Get(ctx, sid)
	if errors.Is(err, session.ErrNoSession) {
		return New(), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	c, warnings, err := Decode(data)
	if err != nil {
		// An unreadable payload is treated like no cart at all.
		return New(), []Warning{{Reason: "cart payload reset"}}, nil
	}
	return c, warnings, nil
}

func (m *Manager) save(ctx context.Context, sid string, c Cart) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, sid, data)
}

// Add resolves the product, prices it for today, and adds qty units to the
// session's cart. Returns catalog.ErrNotFound when the product is unknown.
func (m *Manager) Add(ctx context.Context, sid, productID string, qty int) (Line, error) {
	product, err := m.catalog.GetProduct(ctx, productID)
	if err != nil {
		return Line{}, err
	}

	c, _, err := m.load(ctx, sid)
	if err != nil {
		return Line{}, err
	}
	line := c.Add(product, m.now(), qty)
	if err := m.save(ctx, sid, c); err != nil {
		return Line{}, err
	}
	return line, nil
}

// Adjust bumps a line's quantity up or down by one. The price snapshot is
// left untouched. Unknown products are a silent no-op.
func (m *Manager) Adjust(ctx context.Context, sid, productID string, dir Direction) (Line, bool, error) {
	c, _, err := m.load(ctx, sid)
	if err != nil {
		return Line{}, false, err
	}
	line, present := c.Adjust(productID, dir)
	if err := m.save(ctx, sid, c); err != nil {
		return Line{}, false, err
	}
	return line, present, nil
}

// Remove deletes a line and reports whether it existed.
func (m *Manager) Remove(ctx context.Context, sid, productID string) (bool, error) {
	c, _, err := m.load(ctx, sid)
	if err != nil {
		return false, err
	}
	removed := c.Remove(productID)
	if removed {
		if err := m.save(ctx, sid, c); err != nil {
			return false, err
		}
	}
	return removed, nil
}

// Clear empties the session's cart.
func (m *Manager) Clear(ctx context.Context, sid string) error {
	return m.store.Delete(ctx, sid)
}

// Snapshot returns the validated cart without the hygiene pass.
func (m *Manager) Snapshot(ctx context.Context, sid string) (Cart, []Warning, error) {
	return m.load(ctx, sid)
}

// Totals prices the cart from its snapshots and performs cart hygiene:
// lines whose product no longer exists in the catalog are dropped from the
// stored cart and reported as warnings. Two consecutive calls with no
// intervening mutation produce identical summaries.
func (m *Manager) Totals(ctx context.Context, sid string) (*Summary, []Warning, error) {
	c, warnings, err := m.load(ctx, sid)
	if err != nil {
		return nil, nil, err
	}

	dirty := len(warnings) > 0
	summary := &Summary{
		Subtotal: decimal.Zero,
		Shipping: m.shipping,
	}

	for _, id := range SortedIDs(c) {
		line := c[id]
		product, err := m.catalog.GetProduct(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			delete(c, id)
			warnings = append(warnings, Warning{ProductID: id, Reason: "product no longer available"})
			dirty = true
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Items = append(summary.Items, ItemTotal{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		})
		summary.Subtotal = summary.Subtotal.Add(subtotal)
	}

	summary.Total = summary.Subtotal.Add(summary.Shipping)

	if dirty {
		if err := m.save(ctx, sid, c); err != nil {
			return nil, nil, err
		}
	}
	return summary, warnings, nil
}

// SortedIDs returns the cart's product ids in numeric order, for stable
// iteration over the map.
func SortedIDs(c Cart) []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseUint(ids[i], 10, 64)
		b, errB := strconv.ParseUint(ids[j], 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

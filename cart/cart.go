package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
	"github.com/emma-ortiz/OlivosVerdes-3/pricing"
)

// Direction selects how Adjust changes a line's quantity.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// Line is one carted product: how many units and the unit price that was
// in effect when the product was (last) added.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Cart maps product ids (string form of the numeric catalog id) to lines.
// It is plain session state; every operation takes the cart explicitly and
// the caller persists the result.
type Cart map[string]Line

func New() Cart {
	return make(Cart)
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Add puts qty units of the product in the cart at today's effective
// price. Re-adding an already carted product sums the quantities and
// overwrites the price snapshot, so a promotion discovered on re-add
// propagates to the units already in the cart.
func (c Cart) Add(p *models.Product, today time.Time, qty int) Line {
	if qty < 1 {
		qty = 1
	}
	price := pricing.EffectivePrice(p, today)

	id := p.StringID()
	line, ok := c[id]
	if ok {
		line.Quantity += qty
	} else {
		line.Quantity = qty
	}
	line.UnitPrice = price
	c[id] = line
	return line
}

// Adjust increments or decrements a line's quantity by one, preserving the
// price snapshot. Decrementing a quantity-1 line removes it: the cart
// never holds zero-quantity lines. Adjusting a product that is not in the
// cart is a no-op; the return value reports whether the line still exists.
func (c Cart) Adjust(productID string, dir Direction) (Line, bool) {
	line, ok := c[productID]
	if !ok {
		return Line{}, false
	}

	switch dir {
	case Increase:
		line.Quantity++
		c[productID] = line
	case Decrease:
		if line.Quantity > 1 {
			line.Quantity--
			c[productID] = line
		} else {
			delete(c, productID)
			return Line{}, false
		}
	}
	return line, true
}

// Remove deletes the line if present and reports whether it was there.
func (c Cart) Remove(productID string) bool {
	if _, ok := c[productID]; !ok {
		return false
	}
	delete(c, productID)
	return true
}

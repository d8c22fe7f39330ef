package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Warning reports a cart line that was dropped during validation or
// hygiene. Warnings are advisory; the remaining cart is fully usable.
type Warning struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// wireLine is the stored form of a cart line: the quantity and the price
// snapshot as a decimal string.
type wireLine struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// Decode parses a stored cart payload, validating each line at the
// session-store boundary. Lines with a non-positive quantity or an
// unparseable price are dropped and reported, never carried along.
func Decode(data []byte) (Cart, []Warning, error) {
	var wire map[string]wireLine
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, fmt.Errorf("decode cart payload: %w", err)
	}

	c := New()
	var warnings []Warning
	for id, wl := range wire {
		if wl.Quantity < 1 {
			warnings = append(warnings, Warning{ProductID: id, Reason: "invalid quantity"})
			continue
		}
		price, err := decimal.NewFromString(wl.Price)
		if err != nil {
			warnings = append(warnings, Warning{ProductID: id, Reason: "invalid price"})
			continue
		}
		c[id] = Line{Quantity: wl.Quantity, UnitPrice: price}
	}
	return c, warnings, nil
}

// Encode serializes the cart into its stored form.
func Encode(c Cart) ([]byte, error) {
	wire := make(map[string]wireLine, len(c))
	for id, line := range c {
		wire[id] = wireLine{
			Quantity: line.Quantity,
			Price:    line.UnitPrice.StringFixed(2),
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode cart payload: %w", err)
	}
	return data, nil
}

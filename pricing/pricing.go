package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

// EffectivePrice returns the unit price of a product on the given day:
// the promotion's discounted price while the promotion window is open,
// the base price otherwise.
func EffectivePrice(p *models.Product, today time.Time) decimal.Decimal {
	if p.Promotion != nil && p.Promotion.ActiveOn(today) {
		return p.Promotion.DiscountedPrice
	}
	return p.BasePrice
}
